/*
plan.go - Plan-drift regression guard

PURPOSE:
  When an agreement is created, its planned totals are persisted. The
  debug/export surface recomputes the schedule from the stored config
  and diffs it against those persisted totals. Any drift beyond one
  minor unit means the engine's output changed for existing agreements,
  which is exactly the regression this guard exists to catch.

TOLERANCE:
  Rounding drift of at most one minor unit per field is accepted; the
  engine is allowed to change its rounding path by a cent, not more.

SEE ALSO:
  - api/handlers.go: The export endpoint calling DiffPlan
*/
package lending

import (
	"time"

	"github.com/lendtab/loan-engine/schedule"
)

// PlannedTotals are the schedule totals persisted at agreement creation.
type PlannedTotals struct {
	TotalInterestMinorUnits int64 `json:"total_interest_minor_units"`
	TotalToRepayMinorUnits  int64 `json:"total_to_repay_minor_units"`
	Rows                    int   `json:"rows"`
}

// PlannedTotalsOf extracts the persistable totals from a schedule.
func PlannedTotalsOf(result *schedule.ScheduleResult) PlannedTotals {
	return PlannedTotals{
		TotalInterestMinorUnits: result.TotalInterestMinorUnits,
		TotalToRepayMinorUnits:  result.TotalToRepayMinorUnits,
		Rows:                    len(result.Rows),
	}
}

// PlanDrift reports one field that moved beyond tolerance.
type PlanDrift struct {
	Field      string `json:"field"`
	Stored     int64  `json:"stored"`
	Recomputed int64  `json:"recomputed"`
}

// DiffPlan regenerates the agreement's schedule and diffs it against
// the stored totals. An empty slice means the plan still holds.
func DiffPlan(a *Agreement, stored PlannedTotals, now time.Time) ([]PlanDrift, error) {
	result, err := schedule.Generate(a.Config, a.ScheduleContext(), now)
	if err != nil {
		return nil, err
	}

	recomputed := PlannedTotalsOf(result)
	var drifts []PlanDrift

	if delta(stored.TotalInterestMinorUnits, recomputed.TotalInterestMinorUnits) > 1 {
		drifts = append(drifts, PlanDrift{
			Field:      "total_interest_minor_units",
			Stored:     stored.TotalInterestMinorUnits,
			Recomputed: recomputed.TotalInterestMinorUnits,
		})
	}
	if delta(stored.TotalToRepayMinorUnits, recomputed.TotalToRepayMinorUnits) > 1 {
		drifts = append(drifts, PlanDrift{
			Field:      "total_to_repay_minor_units",
			Stored:     stored.TotalToRepayMinorUnits,
			Recomputed: recomputed.TotalToRepayMinorUnits,
		})
	}
	// Row count drift has no tolerance: a changed row count is always
	// a behavior change.
	if stored.Rows != recomputed.Rows {
		drifts = append(drifts, PlanDrift{
			Field:      "rows",
			Stored:     int64(stored.Rows),
			Recomputed: int64(recomputed.Rows),
		})
	}
	return drifts, nil
}

func delta(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
