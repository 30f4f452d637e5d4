/*
Package schedule generates loan repayment schedules and their totals.

PURPOSE:
  This package is the computation core of the lending app: simple-interest
  amortization across arbitrary payment frequencies, calendar-accurate
  due dates, and dual time representation (relative "after loan start"
  labels before a start date is known, concrete dates after).

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanConfig: Everything the borrower and lender agreed on
  - Context:    Who is asking (preview wizard vs. live agreement)
  - InstallmentRow / ScheduleResult: The generated amortization table

DESIGN PRINCIPLES:
  1. Purity: Generate is a function of (config, context, now). No clocks,
     no globals, no I/O. Identical inputs give identical outputs.
  2. Minor units: All money is int64 currency subunits (cents). Rate
     math runs through decimal.Decimal and is rounded exactly once per
     value, so sums are exact.
  3. Structured time: Relative due labels carry a structured DueOffset
     alongside the rendered phrase; nothing ever re-parses label text.

USAGE:
  cfg := schedule.LoanConfig{
      PrincipalMinorUnits: 600000,
      AnnualRatePercent:   decimal.NewFromInt(5),
      RepaymentType:       schedule.RepaymentInstallments,
      Installments:        12,
      Frequency:           schedule.FreqMonthly,
      StartMode:           schedule.StartFixedDate,
      StartDate:           &start,
      FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetDays, Count: 31},
  }
  result, err := schedule.Generate(cfg, schedule.Context{}, time.Now())

SEE ALSO:
  - generator.go: The amortization algorithm
  - mode.go: Preview/Actual resolution and labeling
  - frequency.go: Payment frequency -> period resolution
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// LOAN CONFIG - The agreed terms
// =============================================================================

// RepaymentType distinguishes lump-sum loans from installment plans.
type RepaymentType string

const (
	RepaymentOneTime      RepaymentType = "one_time"
	RepaymentInstallments RepaymentType = "installments"
)

// StartMode says how the loan start date is determined.
type StartMode string

const (
	// StartFixedDate: the parties agreed on a concrete calendar date.
	StartFixedDate StartMode = "fixed_date"
	// StartUponAcceptance: the loan starts whenever the borrower accepts.
	// Until that happens there is no real start date.
	StartUponAcceptance StartMode = "upon_acceptance"
)

// OffsetUnit is the unit of a first-payment offset.
type OffsetUnit string

const (
	OffsetDays   OffsetUnit = "days"
	OffsetMonths OffsetUnit = "months"
	OffsetYears  OffsetUnit = "years"
)

// PaymentOffset places the first due date relative to the loan start.
// A zero offset means the first payment is due on the start date itself.
type PaymentOffset struct {
	Unit  OffsetUnit `json:"unit"`
	Count int        `json:"count"`
}

// LoanConfig holds every parameter the schedule depends on.
type LoanConfig struct {
	PrincipalMinorUnits int64
	AnnualRatePercent   decimal.Decimal
	RepaymentType       RepaymentType
	Installments        int
	Frequency           Frequency
	CustomDays          int // interval for FreqCustomDays, ignored otherwise

	StartMode StartMode
	// StartDate is the fixed date for StartFixedDate, or the real start
	// once an upon-acceptance loan has actually been accepted. Nil when
	// the start is not yet known.
	StartDate *Date

	FirstPaymentOffset PaymentOffset
	// FirstPaymentDate is an exact first due date picked by the user.
	// When set it overrides FirstPaymentOffset entirely.
	FirstPaymentDate *Date
}

// Context describes the calling situation for mode resolution.
type Context struct {
	// Preview: the wizard is showing a draft, nothing is signed yet.
	Preview bool
	// AgreementStatus of the backing agreement, empty for drafts.
	AgreementStatus string
	// HasRealStartDate: an upon-acceptance loan has been accepted and
	// the acceptance date recorded.
	HasRealStartDate bool
}

// =============================================================================
// SCHEDULE RESULT - The amortization table
// =============================================================================

// InstallmentRow is one line of the repayment table.
type InstallmentRow struct {
	Index int

	// DueDate is set in Actual mode (and in the picked-first-date
	// preview exception). Nil when only a relative label exists.
	DueDate *Date
	// DueLabel is what the UI shows: a formatted date in Actual mode,
	// a relative phrase ("3 months after loan start") in Preview mode.
	DueLabel string
	// DueOffset is the structured offset behind a relative label.
	// Nil whenever DueDate is set.
	DueOffset *DueOffset

	PrincipalMinorUnits        int64
	InterestMinorUnits         int64
	TotalPaymentMinorUnits     int64
	RemainingBalanceMinorUnits int64
}

// ScheduleResult is the full generated schedule plus totals.
type ScheduleResult struct {
	Mode Mode
	Rows []InstallmentRow

	TotalInterestMinorUnits int64
	TotalToRepayMinorUnits  int64

	// LoanStartDate is nil in Preview mode.
	LoanStartDate  *Date
	LoanStartLabel string

	// Term is the overall duration from loan start to the last due date.
	Term Term
}
