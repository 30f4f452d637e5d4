/*
status.go - Installment status engine

PURPOSE:
  Answers "where does this loan stand right now?": which installment is
  due next, how much of it is still owed, and whether it is upcoming,
  overdue, or the whole loan is paid off.

THE INSTALLMENT POINTER:
  Payments are credited against the schedule cumulatively, not row by
  row. Walking the rows, the pointer lands on the first row whose
  cumulative required total is not yet covered by cumulative approved
  payments. A partial payment therefore never advances the pointer, and
  an overpayment can skip it forward several rows at once.

AMOUNT DUE:
  amountDue is cumulative-required-at-pointer minus cumulative-paid:
  partial credit already applied to the pointer row is reflected, so
  the number shown is what actually remains on that installment.

PURITY:
  A pure read over (agreement, ledger, now). The schedule is regenerated
  on every call; nothing is cached or mutated, and any generation
  failure degrades to StateNone rather than a partial answer.

SEE ALSO:
  - schedule/generator.go: The regenerated schedule
  - ledger.go: Approved payment summation
*/
package lending

import (
	"time"

	"github.com/lendtab/loan-engine/schedule"
)

// =============================================================================
// INSTALLMENT STATUS - Derived repayment state
// =============================================================================

// PaymentState classifies the agreement's current repayment position.
type PaymentState string

const (
	StateUpcoming PaymentState = "upcoming"
	StateOverdue  PaymentState = "overdue"
	StatePaidOff  PaymentState = "paid_off"
	// StateNone: no meaningful status (missing, inactive, or
	// non-installment agreement, or schedule generation failed).
	StateNone PaymentState = "none"
)

// NextPaymentInfo identifies the pointer row.
type NextPaymentInfo struct {
	Index int                     `json:"index"`
	Row   schedule.InstallmentRow `json:"row"`
}

// InstallmentStatus is the derived repayment state of an agreement.
// Exactly one of DaysUntilDue/DaysOverdue is set for upcoming/overdue;
// both are nil otherwise.
type InstallmentStatus struct {
	State PaymentState `json:"state"`

	AmountDueMinorUnits *int64         `json:"amount_due_minor_units,omitempty"`
	DueDate             *schedule.Date `json:"due_date,omitempty"`

	DaysUntilDue *int `json:"days_until_due,omitempty"`
	DaysOverdue  *int `json:"days_overdue,omitempty"`

	NextPayment *NextPaymentInfo `json:"next_payment,omitempty"`
}

func noStatus() InstallmentStatus {
	return InstallmentStatus{State: StateNone}
}

// GetStatus reconciles the agreement's payment ledger against its
// regenerated schedule. now is always explicit; the engine never reads
// a clock.
func GetStatus(a *Agreement, now time.Time) InstallmentStatus {
	if a == nil || a.Status != StatusActive {
		return noStatus()
	}
	if a.Config.RepaymentType != schedule.RepaymentInstallments {
		return oneTimeStatus(a, now)
	}

	result, err := schedule.Generate(a.Config, a.ScheduleContext(), now)
	if err != nil {
		return noStatus()
	}

	paid := ApprovedTotal(a.Payments)

	// Pointer walk: first row whose cumulative required total is not
	// fully covered.
	var requiredCumulative int64
	pointer := -1
	for _, row := range result.Rows {
		requiredCumulative += row.TotalPaymentMinorUnits
		if paid < requiredCumulative {
			pointer = row.Index
			break
		}
	}
	if pointer == -1 {
		return InstallmentStatus{State: StatePaidOff}
	}

	row := result.Rows[pointer]
	amountDue := requiredCumulative - paid

	status := InstallmentStatus{
		State:               StateUpcoming,
		AmountDueMinorUnits: &amountDue,
		NextPayment:         &NextPaymentInfo{Index: pointer, Row: row},
	}

	if result.Mode == schedule.ModePreview || row.DueDate == nil {
		// No real dates yet: there is a next payment but nothing can
		// be overdue.
		return status
	}

	due := *row.DueDate
	status.DueDate = &due
	classifyByDate(&status, due, now)
	return status
}

// oneTimeStatus is the single-due-date path for lump-sum loans: the
// whole amount is one installment, so no pointer walk is needed.
func oneTimeStatus(a *Agreement, now time.Time) InstallmentStatus {
	result, err := schedule.Generate(a.Config, a.ScheduleContext(), now)
	if err != nil || len(result.Rows) == 0 {
		return noStatus()
	}

	row := result.Rows[0]
	paid := ApprovedTotal(a.Payments)
	if paid >= row.TotalPaymentMinorUnits {
		return InstallmentStatus{State: StatePaidOff}
	}

	amountDue := row.TotalPaymentMinorUnits - paid
	status := InstallmentStatus{
		State:               StateUpcoming,
		AmountDueMinorUnits: &amountDue,
		NextPayment:         &NextPaymentInfo{Index: 0, Row: row},
	}
	if result.Mode == schedule.ModePreview || row.DueDate == nil {
		return status
	}

	due := *row.DueDate
	status.DueDate = &due
	classifyByDate(&status, due, now)
	return status
}

// classifyByDate fills the upcoming/overdue split. Both sides of the
// comparison are truncated to midnight, so "due today" is upcoming
// with zero days left.
func classifyByDate(status *InstallmentStatus, due schedule.Date, now time.Time) {
	diff := schedule.DaysBetween(schedule.DateOf(now), due)
	if diff >= 0 {
		status.State = StateUpcoming
		status.DaysUntilDue = &diff
		return
	}
	overdue := -diff
	status.State = StateOverdue
	status.DaysOverdue = &overdue
}
