/*
handlers.go - HTTP handlers for the lending API

PURPOSE:
  Implements the HTTP surface over the pure engines: schedule preview
  for the wizard, agreement lifecycle, the payment ledger, the status
  widget endpoint, and the plan-drift export.

THE HANDLERS DO THREE THINGS:
  1. Decode/validate DTOs
  2. Load the agreement through the store
  3. Call the pure engine with an explicit "now"

  All business logic lives in schedule/ and lending/; nothing here
  computes money or dates.

ERROR HANDLING:
  - 400: Invalid input or config (schedule.IsClientError)
  - 404: Unknown agreement/payment
  - 409: Lifecycle conflicts (accepting a non-proposed agreement)
  - 500: Store failures

SECURITY NOTE:
  No authentication middleware here; auth/session handling is owned by
  the outer application.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store lending.AgreementStore

	// Now supplies the current time, injectable for tests.
	Now func() time.Time
}

// NewHandler creates a new handler with the given store.
func NewHandler(store lending.AgreementStore) *Handler {
	return &Handler{
		Store: store,
		Now:   time.Now,
	}
}

// =============================================================================
// SCHEDULE PREVIEW
// =============================================================================

// PreviewSchedule generates a schedule for the wizard, without any
// persisted agreement backing it.
func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg, err := toLoanConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan config", err)
		return
	}

	ctx := schedule.Context{
		Preview:          req.Preview,
		HasRealStartDate: cfg.StartDate != nil,
	}
	result, err := schedule.Generate(cfg, ctx, h.Now())
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleDTO(result))
}

// =============================================================================
// AGREEMENTS
// =============================================================================

// ListAgreements returns all agreements.
func (h *Handler) ListAgreements(w http.ResponseWriter, r *http.Request) {
	agreements, err := h.Store.ListAgreements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list agreements", err)
		return
	}

	dtos := make([]AgreementDTO, len(agreements))
	for i, a := range agreements {
		dtos[i] = toAgreementDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAgreement persists a new proposed agreement together with its
// planned totals.
func (h *Handler) CreateAgreement(w http.ResponseWriter, r *http.Request) {
	var req CreateAgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Lender == "" || req.Borrower == "" {
		writeError(w, http.StatusBadRequest, "lender and borrower are required", nil)
		return
	}

	cfg, err := toLoanConfig(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid loan config", err)
		return
	}

	now := h.Now()
	a := &lending.Agreement{
		ID:        uuid.New(),
		Lender:    req.Lender,
		Borrower:  req.Borrower,
		Status:    lending.StatusProposed,
		Config:    cfg,
		CreatedAt: now,
	}

	// The planned totals persisted here are what the export endpoint
	// later diffs against.
	result, err := schedule.Generate(cfg, a.ScheduleContext(), now)
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	if err := h.Store.CreateAgreement(r.Context(), a, lending.PlannedTotalsOf(result)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create agreement", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAgreementDTO(a))
}

// GetAgreement returns one agreement with its payment ledger.
func (h *Handler) GetAgreement(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toAgreementDTO(a))
}

// AcceptAgreement activates a proposed agreement. For upon-acceptance
// loans this is the moment the real start date comes into existence.
func (h *Handler) AcceptAgreement(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}
	if a.Status != lending.StatusProposed {
		writeError(w, http.StatusConflict, "Agreement is not awaiting acceptance", nil)
		return
	}

	if a.Config.StartDate == nil {
		start := schedule.DateOf(h.Now())
		if err := h.Store.SetLoanStartDate(r.Context(), a.ID, start); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record start date", err)
			return
		}
		a.Config.StartDate = &start
	}

	if err := h.Store.UpdateAgreementStatus(r.Context(), a.ID, lending.StatusActive); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate agreement", err)
		return
	}
	a.Status = lending.StatusActive
	writeJSON(w, http.StatusOK, toAgreementDTO(a))
}

// GetSchedule regenerates and returns the agreement's schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}

	result, err := schedule.Generate(a.Config, a.ScheduleContext(), h.Now())
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(result))
}

// GetStatus returns the derived installment status for dashboards.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toStatusDTO(lending.GetStatus(a, h.Now())))
}

// ExportPlanDiff recomputes the schedule and diffs it against the
// totals persisted at creation time.
func (h *Handler) ExportPlanDiff(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}

	stored, err := h.Store.GetPlannedTotals(r.Context(), a.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	drifts, err := lending.DiffPlan(a, stored, h.Now())
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlanDiffDTO{
		AgreementID: a.ID.String(),
		InSync:      len(drifts) == 0,
		Drifts:      drifts,
	})
}

// =============================================================================
// PAYMENTS
// =============================================================================

// RecordPayment appends a pending entry to the payment ledger.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	a, ok := h.loadAgreement(w, r)
	if !ok {
		return
	}
	if a.Status != lending.StatusActive {
		writeError(w, http.StatusConflict, "Agreement is not active", nil)
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.AmountMinorUnits <= 0 {
		writeError(w, http.StatusBadRequest, "amount_minor_units must be positive", nil)
		return
	}

	p := lending.Payment{
		ID:               uuid.New(),
		AmountMinorUnits: req.AmountMinorUnits,
		Status:           lending.PaymentPending,
		CreatedAt:        h.Now(),
	}
	if err := h.Store.AddPayment(r.Context(), a.ID, p); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, PaymentDTO{
		ID:               p.ID.String(),
		AmountMinorUnits: p.AmountMinorUnits,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// ApprovePayment marks a pending payment as approved, crediting it
// against the schedule.
func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	h.reviewPayment(w, r, lending.PaymentApproved)
}

// RejectPayment marks a pending payment as rejected.
func (h *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	h.reviewPayment(w, r, lending.PaymentRejected)
}

func (h *Handler) reviewPayment(w http.ResponseWriter, r *http.Request, status lending.PaymentStatus) {
	agreementID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agreement id", err)
		return
	}
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment id", err)
		return
	}

	if err := h.Store.UpdatePaymentStatus(r.Context(), agreementID, paymentID, status); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) loadAgreement(w http.ResponseWriter, r *http.Request) (*lending.Agreement, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid agreement id", err)
		return nil, false
	}

	a, err := h.Store.GetAgreement(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	return a, true
}

func writeScheduleError(w http.ResponseWriter, err error) {
	if schedule.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid loan config", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to generate schedule", err)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, lending.ErrAgreementNotFound) || errors.Is(err, lending.ErrPaymentNotFound) {
		writeError(w, http.StatusNotFound, "Not found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Store failure", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
