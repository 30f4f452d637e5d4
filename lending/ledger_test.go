package lending

import (
	"testing"

	"github.com/google/uuid"
)

func TestLedgerTotals(t *testing.T) {
	payments := []Payment{
		approved(10000),
		pending(2500),
		{ID: uuid.New(), AmountMinorUnits: 99999, Status: PaymentRejected},
		approved(500),
		pending(100),
	}

	if got := ApprovedTotal(payments); got != 10500 {
		t.Errorf("ApprovedTotal = %d, want 10500", got)
	}
	if got := PendingTotal(payments); got != 2600 {
		t.Errorf("PendingTotal = %d, want 2600", got)
	}
}

func TestLedgerTotals_Empty(t *testing.T) {
	if got := ApprovedTotal(nil); got != 0 {
		t.Errorf("ApprovedTotal(nil) = %d", got)
	}
	if got := PendingTotal(nil); got != 0 {
		t.Errorf("PendingTotal(nil) = %d", got)
	}
}
