/*
Package lending is the agreement domain on top of the schedule engine.

PURPOSE:
  Defines loan agreements between two people, their append-only payment
  ledger, and the installment status engine that reconciles payments
  against the generated schedule.

KEY CONCEPTS IN THIS FILE (types.go):
  - Agreement: The persisted loan record (terms + lifecycle status)
  - Payment:   One ledger entry; only approved entries count toward
               the schedule

DESIGN PRINCIPLES:
  1. The ledger is append-only. A payment is recorded as pending and
     later approved or rejected; it is never edited or removed.
  2. Status is derived, never stored. Upcoming/Overdue/PaidOff are
     recomputed from (agreement, ledger, now) on every read.

SEE ALSO:
  - status.go: The installment status engine
  - plan.go: Plan-drift regression guard
  - store.go: Persistence interface
*/
package lending

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendtab/loan-engine/schedule"
)

// =============================================================================
// AGREEMENT - The persisted loan record
// =============================================================================

// AgreementStatus is the lifecycle state of an agreement.
type AgreementStatus string

const (
	StatusDraft     AgreementStatus = "draft"     // wizard in progress
	StatusProposed  AgreementStatus = "proposed"  // sent, awaiting acceptance
	StatusActive    AgreementStatus = "active"    // accepted, repayments running
	StatusCompleted AgreementStatus = "completed" // fully repaid
	StatusDeclined  AgreementStatus = "declined"
)

// Agreement is a loan between a lender and a borrower.
type Agreement struct {
	ID       uuid.UUID       `json:"id"`
	Lender   string          `json:"lender"`
	Borrower string          `json:"borrower"`
	Status   AgreementStatus `json:"status"`

	Config schedule.LoanConfig `json:"config"`

	// Payments is the append-only ledger, oldest first.
	Payments []Payment `json:"payments"`

	CreatedAt time.Time `json:"created_at"`
}

// ScheduleContext derives the schedule context for this agreement.
// An active agreement is never a preview; its start date is real as
// soon as it is recorded on the config.
func (a *Agreement) ScheduleContext() schedule.Context {
	return schedule.Context{
		Preview:          a.Status == StatusDraft || a.Status == StatusProposed,
		AgreementStatus:  string(a.Status),
		HasRealStartDate: a.Config.StartDate != nil,
	}
}

// =============================================================================
// PAYMENT - One ledger entry
// =============================================================================

// PaymentStatus is the review state of a recorded payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment is a single entry in the agreement's payment ledger.
type Payment struct {
	ID               uuid.UUID     `json:"id"`
	AmountMinorUnits int64         `json:"amount_minor_units"`
	Status           PaymentStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}
