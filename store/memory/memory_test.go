package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendtab/loan-engine/lending"
	"github.com/lendtab/loan-engine/schedule"
	"github.com/lendtab/loan-engine/store/memory"
)

func newAgreement(createdAt time.Time) *lending.Agreement {
	start := schedule.NewDate(2025, time.January, 1)
	return &lending.Agreement{
		ID:       uuid.New(),
		Lender:   "alice",
		Borrower: "bob",
		Status:   lending.StatusProposed,
		Config: schedule.LoanConfig{
			PrincipalMinorUnits: 100000,
			AnnualRatePercent:   decimal.NewFromInt(5),
			RepaymentType:       schedule.RepaymentInstallments,
			Installments:        4,
			Frequency:           schedule.FreqMonthly,
			StartMode:           schedule.StartFixedDate,
			StartDate:           &start,
			FirstPaymentOffset:  schedule.PaymentOffset{Unit: schedule.OffsetMonths, Count: 1},
		},
		CreatedAt: createdAt,
	}
}

func TestMemoryStore_Roundtrip(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	a := newAgreement(time.Now())
	plan := lending.PlannedTotals{TotalInterestMinorUnits: 1000, TotalToRepayMinorUnits: 101000, Rows: 4}

	require.NoError(t, store.CreateAgreement(ctx, a, plan))

	got, err := store.GetAgreement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	gotPlan, err := store.GetPlannedTotals(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, plan, gotPlan)

	_, err = store.GetAgreement(ctx, uuid.New())
	assert.ErrorIs(t, err, lending.ErrAgreementNotFound)
}

func TestMemoryStore_ReturnsDefensiveCopies(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	a := newAgreement(time.Now())
	require.NoError(t, store.CreateAgreement(ctx, a, lending.PlannedTotals{}))

	// Mutating a loaded copy must not leak into stored state.
	loaded, err := store.GetAgreement(ctx, a.ID)
	require.NoError(t, err)
	loaded.Status = lending.StatusDeclined
	loaded.Payments = append(loaded.Payments, lending.Payment{ID: uuid.New()})
	*loaded.Config.StartDate = schedule.NewDate(1999, time.December, 31)

	fresh, err := store.GetAgreement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, lending.StatusProposed, fresh.Status)
	assert.Empty(t, fresh.Payments)
	assert.True(t, fresh.Config.StartDate.Equal(schedule.NewDate(2025, time.January, 1)))
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	older := newAgreement(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	newer := newAgreement(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.CreateAgreement(ctx, older, lending.PlannedTotals{}))
	require.NoError(t, store.CreateAgreement(ctx, newer, lending.PlannedTotals{}))

	list, err := store.ListAgreements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
}

func TestMemoryStore_PaymentReview(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	a := newAgreement(time.Now())
	require.NoError(t, store.CreateAgreement(ctx, a, lending.PlannedTotals{}))

	p := lending.Payment{ID: uuid.New(), AmountMinorUnits: 25000, Status: lending.PaymentPending, CreatedAt: time.Now()}
	require.NoError(t, store.AddPayment(ctx, a.ID, p))
	require.NoError(t, store.UpdatePaymentStatus(ctx, a.ID, p.ID, lending.PaymentApproved))

	got, err := store.GetAgreement(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, lending.PaymentApproved, got.Payments[0].Status)

	err = store.UpdatePaymentStatus(ctx, a.ID, uuid.New(), lending.PaymentApproved)
	assert.ErrorIs(t, err, lending.ErrPaymentNotFound)
}
