/*
generator.go - Repayment schedule generation

PURPOSE:
  Produces the full amortization table for a loan: one row per
  installment with principal, simple interest, total payment, remaining
  balance, and a due time in whichever representation the resolved mode
  calls for.

ALGORITHM:
  1. Validate the config (fatal: non-positive principal or count).
  2. Resolve mode, loan start and the first due basis.
  3. Split principal evenly across rows; the FINAL row absorbs the
     integer-division remainder so the principal sum is exact.
  4. Per row: interest = remaining x (rate/100/365) x days, where days
     is the true calendar gap between consecutive due dates when real
     dates exist, else the period's nominal day count.
  5. Due dates advance re-anchored to the first due date, never
     chained, so month-end clamping cannot drift.

INTEREST MODEL:
  Simple interest on the remaining principal balance, actual/365.
  No compounding; accrued interest never joins the balance.

PURITY:
  Generate reads nothing but its arguments. "Today" enters only through
  the now parameter, so identical inputs always produce identical output.

SEE ALSO:
  - frequency.go: Period resolution and due-date advancement
  - mode.go: Mode decision, offsets, labels
  - lending/status.go: Reconciles payments against the generated rows
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	daysInYear = decimal.NewFromInt(365)
)

// Generate computes the repayment schedule for a loan config.
//
// A failed generation returns (nil, err); callers never see a partially
// populated schedule.
func Generate(cfg LoanConfig, ctx Context, now time.Time) (*ScheduleResult, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	period, err := Resolve(cfg.Frequency, cfg.CustomDays)
	if err != nil {
		return nil, err
	}

	mode := ResolveMode(cfg, ctx)

	// Loan start: the fixed/known date, or "today" when an
	// upon-acceptance loan is being accepted right now. Stays nil in
	// Preview mode.
	var start *Date
	switch {
	case cfg.StartDate != nil:
		d := *cfg.StartDate
		start = &d
	case mode == ModeActual:
		d := DateOf(now)
		start = &d
	}

	firstOffset := OffsetFor(cfg.FirstPaymentOffset)

	// First due basis: an exact picked date overrides the offset. The
	// picked date also forces real dates onto preview rows - the one
	// documented exception to "preview has no dates".
	var firstDue *Date
	switch {
	case cfg.FirstPaymentDate != nil:
		d := *cfg.FirstPaymentDate
		firstDue = &d
	case start != nil:
		d := firstOffset.ApplyTo(*start)
		firstDue = &d
	}

	n := cfg.Installments
	perInstallment := cfg.PrincipalMinorUnits / int64(n)
	// Remainder policy: the final row absorbs the leftover minor units,
	// keeping every earlier row identical and the principal sum exact.
	remainder := cfg.PrincipalMinorUnits - perInstallment*int64(n)

	zeroRate := cfg.AnnualRatePercent.IsZero()
	var dailyRate decimal.Decimal
	if !zeroRate {
		dailyRate = cfg.AnnualRatePercent.Div(hundred).Div(daysInYear)
	}

	rows := make([]InstallmentRow, 0, n)
	remaining := cfg.PrincipalMinorUnits
	var totalInterest int64
	var prevDue *Date

	for i := 0; i < n; i++ {
		row := InstallmentRow{Index: i}

		rowPrincipal := perInstallment
		if i == n-1 {
			rowPrincipal += remainder
		}

		if firstDue != nil {
			d := period.AdvanceFrom(*firstDue, i)
			row.DueDate = &d
			row.DueLabel = d.String()
		} else {
			o := firstOffset.Advance(period, i)
			row.DueOffset = &o
			row.DueLabel = o.Label()
		}

		// Interest day count: prefer true calendar gaps when dates
		// exist, fall back to nominal period lengths otherwise.
		var days int
		switch {
		case i == 0 && row.DueDate != nil && start != nil:
			days = DaysBetween(*start, *row.DueDate)
		case i == 0:
			days = firstOffset.ApproxDays()
		case row.DueDate != nil && prevDue != nil:
			days = DaysBetween(*prevDue, *row.DueDate)
		default:
			days = period.ApproxDays
		}
		if days < 0 {
			days = 0
		}

		if !zeroRate {
			row.InterestMinorUnits = dailyRate.
				Mul(decimal.NewFromInt(remaining)).
				Mul(decimal.NewFromInt(int64(days))).
				Round(0).
				IntPart()
		}

		row.PrincipalMinorUnits = rowPrincipal
		row.TotalPaymentMinorUnits = rowPrincipal + row.InterestMinorUnits

		remaining -= rowPrincipal
		if remaining < 1 {
			remaining = 0
		}
		row.RemainingBalanceMinorUnits = remaining

		totalInterest += row.InterestMinorUnits
		prevDue = row.DueDate
		rows = append(rows, row)
	}

	result := &ScheduleResult{
		Mode:                    mode,
		Rows:                    rows,
		TotalInterestMinorUnits: totalInterest,
		TotalToRepayMinorUnits:  cfg.PrincipalMinorUnits + totalInterest,
		LoanStartDate:           start,
	}

	if start != nil {
		result.LoanStartLabel = start.String()
	} else {
		result.LoanStartLabel = "Upon acceptance"
	}

	last := rows[len(rows)-1]
	if start != nil && last.DueDate != nil {
		result.Term = TermBetween(*start, *last.DueDate)
	} else {
		result.Term = TermFromOffset(firstOffset.Advance(period, n-1))
	}

	return result, nil
}

func validate(cfg LoanConfig) error {
	if cfg.PrincipalMinorUnits <= 0 {
		return &InvalidConfigError{Field: "PrincipalMinorUnits", Reason: "must be positive"}
	}
	if cfg.Installments <= 0 {
		return &InvalidConfigError{Field: "Installments", Reason: "must be positive"}
	}
	if cfg.RepaymentType == RepaymentOneTime && cfg.Installments != 1 {
		return &InvalidConfigError{Field: "Installments", Reason: "must be 1 for one-time repayment"}
	}
	if cfg.AnnualRatePercent.IsNegative() {
		return &InvalidConfigError{Field: "AnnualRatePercent", Reason: "must not be negative"}
	}
	if cfg.FirstPaymentOffset.Count < 0 {
		return &InvalidConfigError{Field: "FirstPaymentOffset", Reason: "must not be negative"}
	}
	if cfg.StartMode == StartFixedDate && cfg.StartDate == nil {
		return &InvalidConfigError{Field: "StartDate", Reason: "required for fixed_date start mode"}
	}
	return nil
}
