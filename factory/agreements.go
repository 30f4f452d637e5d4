/*
Package factory provides preset demo agreements.

PURPOSE:
  Named, reproducible agreement configurations for dev seeding and
  manual testing. Each preset exercises a different corner of the
  engine: fixed vs upon-acceptance starts, installment vs one-time
  repayment, zero interest, custom frequencies.

USAGE:
  for _, preset := range factory.Presets() {
      a := preset.Build(time.Now())
      store.CreateAgreement(ctx, a, plan)
  }

SEE ALSO:
  - cmd/server/main.go: The -seed flag
*/
package factory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
)

// Preset is a named demo agreement configuration.
type Preset struct {
	Name        string
	Description string
	Lender      string
	Borrower    string
	Status      lending.AgreementStatus
	Config      schedule.LoanConfig
}

// Build materializes the preset into a fresh agreement.
func (p Preset) Build(now time.Time) *lending.Agreement {
	cfg := p.Config
	if cfg.StartDate != nil {
		d := *cfg.StartDate
		cfg.StartDate = &d
	}
	return &lending.Agreement{
		ID:        uuid.New(),
		Lender:    p.Lender,
		Borrower:  p.Borrower,
		Status:    p.Status,
		Config:    cfg,
		CreatedAt: now,
	}
}

// Presets returns all demo presets.
func Presets() []Preset {
	start := schedule.NewDate(2025, time.January, 1)

	return []Preset{
		{
			Name:        "monthly-standard",
			Description: "EUR 6,000 over 12 monthly installments at 5%",
			Lender:      "Alice",
			Borrower:    "Ben",
			Status:      lending.StatusActive,
			Config: schedule.LoanConfig{
				PrincipalMinorUnits: 600000,
				AnnualRatePercent:   decimal.NewFromInt(5),
				RepaymentType:       schedule.RepaymentInstallments,
				Installments:        12,
				Frequency:           schedule.FreqMonthly,
				StartMode:           schedule.StartFixedDate,
				StartDate:           &start,
				FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetDays, Count: 31},
			},
		},
		{
			Name:        "one-time-year",
			Description: "EUR 10,000 lump sum due after one year at 7%",
			Lender:      "Alice",
			Borrower:    "Carol",
			Status:      lending.StatusActive,
			Config: schedule.LoanConfig{
				PrincipalMinorUnits: 1000000,
				AnnualRatePercent:   decimal.NewFromInt(7),
				RepaymentType:       schedule.RepaymentOneTime,
				Installments:        1,
				Frequency:           schedule.FreqYearly,
				StartMode:           schedule.StartFixedDate,
				StartDate:           &start,
				FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetDays, Count: 365},
			},
		},
		{
			Name:        "upon-acceptance-draft",
			Description: "EUR 1,200 over 8 biweekly installments, not yet accepted",
			Lender:      "Dana",
			Borrower:    "Eli",
			Status:      lending.StatusProposed,
			Config: schedule.LoanConfig{
				PrincipalMinorUnits: 120000,
				AnnualRatePercent:   decimal.NewFromFloat(3.5),
				RepaymentType:       schedule.RepaymentInstallments,
				Installments:        8,
				Frequency:           schedule.FreqBiweekly,
				StartMode:           schedule.StartUponAcceptance,
				FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetDays, Count: 14},
			},
		},
		{
			Name:        "interest-free",
			Description: "EUR 300 between friends, 6 monthly installments, no interest",
			Lender:      "Fay",
			Borrower:    "Gus",
			Status:      lending.StatusActive,
			Config: schedule.LoanConfig{
				PrincipalMinorUnits: 30000,
				AnnualRatePercent:   decimal.Zero,
				RepaymentType:       schedule.RepaymentInstallments,
				Installments:        6,
				Frequency:           schedule.FreqMonthly,
				StartMode:           schedule.StartFixedDate,
				StartDate:           &start,
				FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetMonths, Count: 1},
			},
		},
		{
			Name:        "custom-interval",
			Description: "EUR 900 repaid every 10 days at 4%",
			Lender:      "Hana",
			Borrower:    "Ivan",
			Status:      lending.StatusActive,
			Config: schedule.LoanConfig{
				PrincipalMinorUnits: 90000,
				AnnualRatePercent:   decimal.NewFromInt(4),
				RepaymentType:       schedule.RepaymentInstallments,
				Installments:        9,
				Frequency:           schedule.FreqCustomDays,
				CustomDays:          10,
				StartMode:           schedule.StartFixedDate,
				StartDate:           &start,
				FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetDays, Count: 10},
			},
		},
	}
}
