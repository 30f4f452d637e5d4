// Package memory provides an in-memory AgreementStore for tests and dev mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu         sync.RWMutex
	agreements map[uuid.UUID]*lending.Agreement
	plans      map[uuid.UUID]lending.PlannedTotals
}

func New() *Store {
	return &Store{
		agreements: make(map[uuid.UUID]*lending.Agreement),
		plans:      make(map[uuid.UUID]lending.PlannedTotals),
	}
}

func (s *Store) CreateAgreement(_ context.Context, a *lending.Agreement, plan lending.PlannedTotals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agreements[a.ID] = cloneAgreement(a)
	s.plans[a.ID] = plan
	return nil
}

func (s *Store) GetAgreement(_ context.Context, id uuid.UUID) (*lending.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agreements[id]
	if !ok {
		return nil, lending.ErrAgreementNotFound
	}
	return cloneAgreement(a), nil
}

func (s *Store) GetPlannedTotals(_ context.Context, id uuid.UUID) (lending.PlannedTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return lending.PlannedTotals{}, lending.ErrAgreementNotFound
	}
	return plan, nil
}

func (s *Store) ListAgreements(_ context.Context) ([]*lending.Agreement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*lending.Agreement, 0, len(s.agreements))
	for _, a := range s.agreements {
		out = append(out, cloneAgreement(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateAgreementStatus(_ context.Context, id uuid.UUID, status lending.AgreementStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agreements[id]
	if !ok {
		return lending.ErrAgreementNotFound
	}
	a.Status = status
	return nil
}

func (s *Store) SetLoanStartDate(_ context.Context, id uuid.UUID, start schedule.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agreements[id]
	if !ok {
		return lending.ErrAgreementNotFound
	}
	a.Config.StartDate = &start
	return nil
}

func (s *Store) AddPayment(_ context.Context, agreementID uuid.UUID, p lending.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agreements[agreementID]
	if !ok {
		return lending.ErrAgreementNotFound
	}
	a.Payments = append(a.Payments, p)
	return nil
}

func (s *Store) UpdatePaymentStatus(_ context.Context, agreementID, paymentID uuid.UUID, status lending.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agreements[agreementID]
	if !ok {
		return lending.ErrAgreementNotFound
	}
	for i := range a.Payments {
		if a.Payments[i].ID == paymentID {
			a.Payments[i].Status = status
			return nil
		}
	}
	return lending.ErrPaymentNotFound
}

// cloneAgreement keeps callers from mutating stored state through the
// returned pointer.
func cloneAgreement(a *lending.Agreement) *lending.Agreement {
	clone := *a
	clone.Payments = make([]lending.Payment, len(a.Payments))
	copy(clone.Payments, a.Payments)
	if a.Config.StartDate != nil {
		d := *a.Config.StartDate
		clone.Config.StartDate = &d
	}
	if a.Config.FirstPaymentDate != nil {
		d := *a.Config.FirstPaymentDate
		clone.Config.FirstPaymentDate = &d
	}
	return &clone
}
