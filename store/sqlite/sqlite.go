/*
Package sqlite provides the SQLite-backed AgreementStore.

PURPOSE:
  Persists agreements, their planned totals, and the append-only
  payment ledger. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

LEDGER CONTRACT:
  The payments table is append-only except for the status column
  (pending -> approved/rejected review). Amounts and timestamps are
  never updated, and rows are never deleted.

KEY TABLES:
  agreements: Loan terms, lifecycle status, planned totals
  payments:   Payment ledger entries

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers
  don't block, single writer at a time, better crash recovery.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/lendtab.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool with versioned migrations.

SEE ALSO:
  - lending/store.go: Interface definition
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
)

// Store implements lending.AgreementStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS agreements (
		id TEXT PRIMARY KEY,
		lender TEXT NOT NULL,
		borrower TEXT NOT NULL,
		status TEXT NOT NULL,
		principal_minor_units INTEGER NOT NULL,
		annual_rate_percent TEXT NOT NULL,
		repayment_type TEXT NOT NULL,
		installments INTEGER NOT NULL,
		frequency TEXT NOT NULL,
		custom_days INTEGER NOT NULL DEFAULT 0,
		start_mode TEXT NOT NULL,
		start_date TEXT,
		first_offset_unit TEXT NOT NULL,
		first_offset_count INTEGER NOT NULL,
		first_payment_date TEXT,
		planned_interest INTEGER NOT NULL,
		planned_total INTEGER NOT NULL,
		planned_rows INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Payment ledger (append-only; only status is ever updated)
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		agreement_id TEXT NOT NULL REFERENCES agreements(id),
		amount_minor_units INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payments_agreement
		ON payments(agreement_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_agreements_status
		ON agreements(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// AGREEMENTS
// =============================================================================

func (s *Store) CreateAgreement(ctx context.Context, a *lending.Agreement, plan lending.PlannedTotals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agreements (
			id, lender, borrower, status,
			principal_minor_units, annual_rate_percent, repayment_type,
			installments, frequency, custom_days,
			start_mode, start_date, first_offset_unit, first_offset_count,
			first_payment_date, planned_interest, planned_total, planned_rows,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Lender, a.Borrower, string(a.Status),
		a.Config.PrincipalMinorUnits, a.Config.AnnualRatePercent.String(), string(a.Config.RepaymentType),
		a.Config.Installments, string(a.Config.Frequency), a.Config.CustomDays,
		string(a.Config.StartMode), nullableDate(a.Config.StartDate),
		string(a.Config.FirstPaymentOffset.Unit), a.Config.FirstPaymentOffset.Count,
		nullableDate(a.Config.FirstPaymentDate),
		plan.TotalInterestMinorUnits, plan.TotalToRepayMinorUnits, plan.Rows,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert agreement: %w", err)
	}
	return nil
}

func (s *Store) GetAgreement(ctx context.Context, id uuid.UUID) (*lending.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, lender, borrower, status,
			principal_minor_units, annual_rate_percent, repayment_type,
			installments, frequency, custom_days,
			start_mode, start_date, first_offset_unit, first_offset_count,
			first_payment_date, created_at
		FROM agreements WHERE id = ?`, id.String())

	a, err := scanAgreement(row)
	if err != nil {
		return nil, err
	}

	if a.Payments, err = s.loadPayments(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) GetPlannedTotals(ctx context.Context, id uuid.UUID) (lending.PlannedTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var plan lending.PlannedTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT planned_interest, planned_total, planned_rows
		FROM agreements WHERE id = ?`, id.String()).
		Scan(&plan.TotalInterestMinorUnits, &plan.TotalToRepayMinorUnits, &plan.Rows)
	if err == sql.ErrNoRows {
		return lending.PlannedTotals{}, lending.ErrAgreementNotFound
	}
	if err != nil {
		return lending.PlannedTotals{}, fmt.Errorf("failed to load planned totals: %w", err)
	}
	return plan, nil
}

func (s *Store) ListAgreements(ctx context.Context) ([]*lending.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lender, borrower, status,
			principal_minor_units, annual_rate_percent, repayment_type,
			installments, frequency, custom_days,
			start_mode, start_date, first_offset_unit, first_offset_count,
			first_payment_date, created_at
		FROM agreements ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	defer rows.Close()

	var out []*lending.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, a := range out {
		if a.Payments, err = s.loadPayments(ctx, a.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) UpdateAgreementStatus(ctx context.Context, id uuid.UUID, status lending.AgreementStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE agreements SET status = ? WHERE id = ?`,
		string(status), id.String())
	if err != nil {
		return fmt.Errorf("failed to update agreement status: %w", err)
	}
	return checkAffected(res, lending.ErrAgreementNotFound)
}

func (s *Store) SetLoanStartDate(ctx context.Context, id uuid.UUID, start schedule.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE agreements SET start_date = ? WHERE id = ?`,
		start.String(), id.String())
	if err != nil {
		return fmt.Errorf("failed to set loan start date: %w", err)
	}
	return checkAffected(res, lending.ErrAgreementNotFound)
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *Store) AddPayment(ctx context.Context, agreementID uuid.UUID, p lending.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, agreement_id, amount_minor_units, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID.String(), agreementID.String(), p.AmountMinorUnits, string(p.Status),
		p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, agreementID, paymentID uuid.UUID, status lending.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE payments SET status = ? WHERE id = ? AND agreement_id = ?`,
		string(status), paymentID.String(), agreementID.String())
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return checkAffected(res, lending.ErrPaymentNotFound)
}

func (s *Store) loadPayments(ctx context.Context, agreementID uuid.UUID) ([]lending.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount_minor_units, status, created_at
		FROM payments WHERE agreement_id = ? ORDER BY created_at, id`,
		agreementID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer rows.Close()

	var out []lending.Payment
	for rows.Next() {
		var p lending.Payment
		var id, status, createdAt string
		if err := rows.Scan(&id, &p.AmountMinorUnits, &status, &createdAt); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt payment id %q: %w", id, err)
		}
		p.Status = lending.PaymentStatus(status)
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("corrupt payment timestamp %q: %w", createdAt, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgreement(row rowScanner) (*lending.Agreement, error) {
	var a lending.Agreement
	var id, status, rate, repaymentType, frequency, startMode, offsetUnit, createdAt string
	var startDate, firstPaymentDate sql.NullString

	err := row.Scan(
		&id, &a.Lender, &a.Borrower, &status,
		&a.Config.PrincipalMinorUnits, &rate, &repaymentType,
		&a.Config.Installments, &frequency, &a.Config.CustomDays,
		&startMode, &startDate, &offsetUnit, &a.Config.FirstPaymentOffset.Count,
		&firstPaymentDate, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, lending.ErrAgreementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan agreement: %w", err)
	}

	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("corrupt agreement id %q: %w", id, err)
	}
	a.Status = lending.AgreementStatus(status)
	if a.Config.AnnualRatePercent, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("corrupt rate %q: %w", rate, err)
	}
	a.Config.RepaymentType = schedule.RepaymentType(repaymentType)
	a.Config.Frequency = schedule.Frequency(frequency)
	a.Config.StartMode = schedule.StartMode(startMode)
	a.Config.FirstPaymentOffset.Unit = schedule.OffsetUnit(offsetUnit)

	if a.Config.StartDate, err = parseNullableDate(startDate); err != nil {
		return nil, err
	}
	if a.Config.FirstPaymentDate, err = parseNullableDate(firstPaymentDate); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt agreement timestamp %q: %w", createdAt, err)
	}
	return &a, nil
}

func nullableDate(d *schedule.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullableDate(s sql.NullString) (*schedule.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := schedule.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
