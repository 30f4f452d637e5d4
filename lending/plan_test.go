package lending

import (
	"testing"
	"time"

	"github.com/lendtab/loan-engine/schedule"
)

func plannedForAgreement(t *testing.T, a *Agreement, now time.Time) PlannedTotals {
	t.Helper()
	result, err := schedule.Generate(a.Config, a.ScheduleContext(), now)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return PlannedTotalsOf(result)
}

func TestDiffPlan_CleanRecomputation(t *testing.T) {
	a := sixMonthLoan(StatusActive)
	now := at(2025, time.March, 1)
	stored := plannedForAgreement(t, a, now)

	drifts, err := DiffPlan(a, stored, now)
	if err != nil {
		t.Fatalf("DiffPlan failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("drifts = %+v, want none", drifts)
	}
}

func TestDiffPlan_OneMinorUnitIsTolerated(t *testing.T) {
	a := sixMonthLoan(StatusActive)
	now := at(2025, time.March, 1)
	stored := plannedForAgreement(t, a, now)
	stored.TotalInterestMinorUnits++
	stored.TotalToRepayMinorUnits--

	drifts, err := DiffPlan(a, stored, now)
	if err != nil {
		t.Fatalf("DiffPlan failed: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("drifts = %+v, want rounding drift tolerated", drifts)
	}
}

func TestDiffPlan_ReportsTotalDrift(t *testing.T) {
	a := sixMonthLoan(StatusActive)
	now := at(2025, time.March, 1)
	stored := plannedForAgreement(t, a, now)
	stored.TotalInterestMinorUnits += 500

	drifts, err := DiffPlan(a, stored, now)
	if err != nil {
		t.Fatalf("DiffPlan failed: %v", err)
	}
	if len(drifts) != 1 {
		t.Fatalf("drifts = %+v, want exactly one", drifts)
	}
	if drifts[0].Field != "total_interest_minor_units" {
		t.Errorf("field = %q", drifts[0].Field)
	}
	if drifts[0].Stored-drifts[0].Recomputed != 500 {
		t.Errorf("stored=%d recomputed=%d, want a 500 gap", drifts[0].Stored, drifts[0].Recomputed)
	}
}

func TestDiffPlan_RowCountHasNoTolerance(t *testing.T) {
	a := sixMonthLoan(StatusActive)
	now := at(2025, time.March, 1)
	stored := plannedForAgreement(t, a, now)
	stored.Rows++

	drifts, err := DiffPlan(a, stored, now)
	if err != nil {
		t.Fatalf("DiffPlan failed: %v", err)
	}
	if len(drifts) != 1 || drifts[0].Field != "rows" {
		t.Errorf("drifts = %+v, want a single rows drift", drifts)
	}
}

func TestDiffPlan_GenerationFailureSurfaces(t *testing.T) {
	a := sixMonthLoan(StatusActive)
	a.Config.PrincipalMinorUnits = 0

	_, err := DiffPlan(a, PlannedTotals{}, at(2025, time.March, 1))
	if err == nil {
		t.Fatal("expected an error from an invalid config")
	}
}
