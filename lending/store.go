/*
store.go - Persistence interface for agreements and payments

PURPOSE:
  Defines the boundary between the lending domain and storage. The
  schedule and status engines never touch this; only the API layer
  loads agreements through it and hands them to the pure engines.

APPEND-ONLY LEDGER CONTRACT:
  Payments are appended and reviewed (pending -> approved/rejected).
  There is no way to edit a payment amount or delete an entry;
  corrections happen by rejecting and re-recording.

IMPLEMENTATIONS:
  - store/sqlite: Production storage
  - store/memory: Tests and dev mode

SEE ALSO:
  - store/sqlite/sqlite.go
  - store/memory/memory.go
*/
package lending

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lendtab/loan-engine/schedule"
)

var (
	// ErrAgreementNotFound is returned when the agreement ID is unknown.
	ErrAgreementNotFound = errors.New("agreement not found")

	// ErrPaymentNotFound is returned when the payment ID is unknown.
	ErrPaymentNotFound = errors.New("payment not found")
)

// AgreementStore persists agreements and their payment ledgers.
type AgreementStore interface {
	// CreateAgreement persists a new agreement with its planned totals.
	CreateAgreement(ctx context.Context, a *Agreement, plan PlannedTotals) error

	// GetAgreement loads an agreement with its full payment ledger.
	GetAgreement(ctx context.Context, id uuid.UUID) (*Agreement, error)

	// GetPlannedTotals loads the totals persisted at creation time.
	GetPlannedTotals(ctx context.Context, id uuid.UUID) (PlannedTotals, error)

	// ListAgreements returns all agreements, newest first, ledgers included.
	ListAgreements(ctx context.Context) ([]*Agreement, error)

	// UpdateAgreementStatus moves the agreement through its lifecycle.
	UpdateAgreementStatus(ctx context.Context, id uuid.UUID, status AgreementStatus) error

	// SetLoanStartDate records the real start date when an
	// upon-acceptance agreement is accepted.
	SetLoanStartDate(ctx context.Context, id uuid.UUID, start schedule.Date) error

	// AddPayment appends a ledger entry.
	AddPayment(ctx context.Context, agreementID uuid.UUID, p Payment) error

	// UpdatePaymentStatus reviews a pending payment.
	UpdatePaymentStatus(ctx context.Context, agreementID, paymentID uuid.UUID, status PaymentStatus) error
}
