/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract:
  dates travel as "2006-01-02" strings, rates as decimal strings, and
  money as integer minor units.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Conversion from DTOs to domain types happens in toLoanConfig; the
  engine's own validation is the source of truth for business rules.

SEE ALSO:
  - handlers.go: Uses these types
  - compat.go: Legacy frequency normalization
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoanConfigDTO is the wire form of a loan configuration.
type LoanConfigDTO struct {
	PrincipalMinorUnits int64  `json:"principal_minor_units"`
	AnnualRatePercent   string `json:"annual_rate_percent"`
	RepaymentType       string `json:"repayment_type"`
	Installments        int    `json:"installments"`
	Frequency           string `json:"frequency"`
	CustomDays          int    `json:"custom_days,omitempty"`

	StartMode string `json:"start_mode"`
	StartDate string `json:"start_date,omitempty"`

	FirstPaymentOffsetUnit  string `json:"first_payment_offset_unit,omitempty"`
	FirstPaymentOffsetCount int    `json:"first_payment_offset_count"`
	FirstPaymentDate        string `json:"first_payment_date,omitempty"`
}

// PreviewRequest asks for a schedule without a persisted agreement.
type PreviewRequest struct {
	Config  LoanConfigDTO `json:"config"`
	Preview bool          `json:"preview"`
}

// CreateAgreementRequest creates a persisted agreement.
type CreateAgreementRequest struct {
	Lender   string        `json:"lender"`
	Borrower string        `json:"borrower"`
	Config   LoanConfigDTO `json:"config"`
}

// RecordPaymentRequest appends a pending ledger entry.
type RecordPaymentRequest struct {
	AmountMinorUnits int64 `json:"amount_minor_units"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// InstallmentRowDTO is one schedule row on the wire.
type InstallmentRowDTO struct {
	Index                      int                 `json:"index"`
	DueDate                    *string             `json:"due_date"`
	DueLabel                   string              `json:"due_label"`
	DueOffset                  *schedule.DueOffset `json:"due_offset,omitempty"`
	PrincipalMinorUnits        int64               `json:"principal_minor_units"`
	InterestMinorUnits         int64               `json:"interest_minor_units"`
	TotalPaymentMinorUnits     int64               `json:"total_payment_minor_units"`
	RemainingBalanceMinorUnits int64               `json:"remaining_balance_minor_units"`
}

// ScheduleDTO is the generated schedule on the wire.
type ScheduleDTO struct {
	Mode                    string              `json:"mode"`
	Rows                    []InstallmentRowDTO `json:"rows"`
	TotalInterestMinorUnits int64               `json:"total_interest_minor_units"`
	TotalToRepayMinorUnits  int64               `json:"total_to_repay_minor_units"`
	LoanStartDate           *string             `json:"loan_start_date"`
	LoanStartLabel          string              `json:"loan_start_label"`
	Term                    string              `json:"term"`
}

// AgreementDTO is a persisted agreement on the wire.
type AgreementDTO struct {
	ID        string        `json:"id"`
	Lender    string        `json:"lender"`
	Borrower  string        `json:"borrower"`
	Status    string        `json:"status"`
	Config    LoanConfigDTO `json:"config"`
	Payments  []PaymentDTO  `json:"payments"`
	CreatedAt string        `json:"created_at"`
}

// PaymentDTO is one ledger entry on the wire.
type PaymentDTO struct {
	ID               string `json:"id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

// StatusDTO is the installment status on the wire.
type StatusDTO struct {
	State               string             `json:"state"`
	AmountDueMinorUnits *int64             `json:"amount_due_minor_units,omitempty"`
	DueDate             *string            `json:"due_date,omitempty"`
	DaysUntilDue        *int               `json:"days_until_due,omitempty"`
	DaysOverdue         *int               `json:"days_overdue,omitempty"`
	NextPaymentIndex    *int               `json:"next_payment_index,omitempty"`
	NextPaymentRow      *InstallmentRowDTO `json:"next_payment_row,omitempty"`
}

// PlanDiffDTO is the drift report for the export endpoint.
type PlanDiffDTO struct {
	AgreementID string              `json:"agreement_id"`
	InSync      bool                `json:"in_sync"`
	Drifts      []lending.PlanDrift `json:"drifts"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// toLoanConfig converts the wire form into a domain config. Frequency
// goes through the legacy shim; everything else is validated by the
// engine itself.
func toLoanConfig(dto LoanConfigDTO) (schedule.LoanConfig, error) {
	cfg := schedule.LoanConfig{
		PrincipalMinorUnits: dto.PrincipalMinorUnits,
		RepaymentType:       schedule.RepaymentType(dto.RepaymentType),
		Installments:        dto.Installments,
		Frequency:           ParseFrequency(dto.Frequency),
		CustomDays:          dto.CustomDays,
		StartMode:           schedule.StartMode(dto.StartMode),
		FirstPaymentOffset: schedule.PaymentOffset{
			Unit:  schedule.OffsetUnit(dto.FirstPaymentOffsetUnit),
			Count: dto.FirstPaymentOffsetCount,
		},
	}

	if dto.RepaymentType == "" {
		cfg.RepaymentType = schedule.RepaymentInstallments
	}
	if dto.StartMode == "" {
		cfg.StartMode = schedule.StartUponAcceptance
	}
	if dto.FirstPaymentOffsetUnit == "" {
		cfg.FirstPaymentOffset.Unit = schedule.OffsetDays
	}

	rate, err := decimal.NewFromString(dto.AnnualRatePercent)
	if err != nil {
		return schedule.LoanConfig{}, fmt.Errorf("%w: annual_rate_percent %q", schedule.ErrInvalidInput, dto.AnnualRatePercent)
	}
	cfg.AnnualRatePercent = rate

	if dto.StartDate != "" {
		d, err := schedule.ParseDate(dto.StartDate)
		if err != nil {
			return schedule.LoanConfig{}, err
		}
		cfg.StartDate = &d
	}
	if dto.FirstPaymentDate != "" {
		d, err := schedule.ParseDate(dto.FirstPaymentDate)
		if err != nil {
			return schedule.LoanConfig{}, err
		}
		cfg.FirstPaymentDate = &d
	}
	return cfg, nil
}

func toLoanConfigDTO(cfg schedule.LoanConfig) LoanConfigDTO {
	dto := LoanConfigDTO{
		PrincipalMinorUnits:     cfg.PrincipalMinorUnits,
		AnnualRatePercent:       cfg.AnnualRatePercent.String(),
		RepaymentType:           string(cfg.RepaymentType),
		Installments:            cfg.Installments,
		Frequency:               string(cfg.Frequency),
		CustomDays:              cfg.CustomDays,
		StartMode:               string(cfg.StartMode),
		FirstPaymentOffsetUnit:  string(cfg.FirstPaymentOffset.Unit),
		FirstPaymentOffsetCount: cfg.FirstPaymentOffset.Count,
	}
	if cfg.StartDate != nil {
		dto.StartDate = cfg.StartDate.String()
	}
	if cfg.FirstPaymentDate != nil {
		dto.FirstPaymentDate = cfg.FirstPaymentDate.String()
	}
	return dto
}

func toScheduleDTO(result *schedule.ScheduleResult) ScheduleDTO {
	dto := ScheduleDTO{
		Mode:                    string(result.Mode),
		Rows:                    make([]InstallmentRowDTO, len(result.Rows)),
		TotalInterestMinorUnits: result.TotalInterestMinorUnits,
		TotalToRepayMinorUnits:  result.TotalToRepayMinorUnits,
		LoanStartLabel:          result.LoanStartLabel,
		Term:                    result.Term.String(),
	}
	if result.LoanStartDate != nil {
		s := result.LoanStartDate.String()
		dto.LoanStartDate = &s
	}
	for i, row := range result.Rows {
		dto.Rows[i] = toRowDTO(row)
	}
	return dto
}

func toRowDTO(row schedule.InstallmentRow) InstallmentRowDTO {
	dto := InstallmentRowDTO{
		Index:                      row.Index,
		DueLabel:                   row.DueLabel,
		DueOffset:                  row.DueOffset,
		PrincipalMinorUnits:        row.PrincipalMinorUnits,
		InterestMinorUnits:         row.InterestMinorUnits,
		TotalPaymentMinorUnits:     row.TotalPaymentMinorUnits,
		RemainingBalanceMinorUnits: row.RemainingBalanceMinorUnits,
	}
	if row.DueDate != nil {
		s := row.DueDate.String()
		dto.DueDate = &s
	}
	return dto
}

func toAgreementDTO(a *lending.Agreement) AgreementDTO {
	dto := AgreementDTO{
		ID:        a.ID.String(),
		Lender:    a.Lender,
		Borrower:  a.Borrower,
		Status:    string(a.Status),
		Config:    toLoanConfigDTO(a.Config),
		Payments:  make([]PaymentDTO, len(a.Payments)),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
	for i, p := range a.Payments {
		dto.Payments[i] = PaymentDTO{
			ID:               p.ID.String(),
			AmountMinorUnits: p.AmountMinorUnits,
			Status:           string(p.Status),
			CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return dto
}

func toStatusDTO(status lending.InstallmentStatus) StatusDTO {
	dto := StatusDTO{
		State:               string(status.State),
		AmountDueMinorUnits: status.AmountDueMinorUnits,
		DaysUntilDue:        status.DaysUntilDue,
		DaysOverdue:         status.DaysOverdue,
	}
	if status.DueDate != nil {
		s := status.DueDate.String()
		dto.DueDate = &s
	}
	if status.NextPayment != nil {
		idx := status.NextPayment.Index
		row := toRowDTO(status.NextPayment.Row)
		dto.NextPaymentIndex = &idx
		dto.NextPaymentRow = &row
	}
	return dto
}
