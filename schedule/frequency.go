/*
frequency.go - Payment frequency resolution

PURPOSE:
  Maps a payment frequency to the period it repeats on: the calendar
  unit to advance by, the multiplier, and the nominal day count used
  for interest when real calendar gaps are unavailable (Preview mode).

NOMINAL DAY COUNTS:
  Week-based frequencies are exact (7/14/28 days). Month/quarter/year
  frequencies use the conventional 30/91/365 approximations; Actual
  mode replaces these with true elapsed calendar days per row.

UNKNOWN FREQUENCIES:
  The engine rejects unrecognized frequencies with ErrUnknownFrequency
  instead of silently assuming Monthly - a silent default masks
  configuration bugs. Legacy spellings are normalized at the API
  boundary (api.ParseFrequency), not here.

SEE ALSO:
  - generator.go: Uses PeriodSpec for due dates and interest day counts
  - api/compat.go: Legacy frequency shim
*/
package schedule

import "fmt"

// =============================================================================
// FREQUENCY - How often installments fall due
// =============================================================================

type Frequency string

const (
	FreqWeekly      Frequency = "weekly"
	FreqBiweekly    Frequency = "biweekly"
	FreqEvery4Weeks Frequency = "every_4_weeks"
	FreqMonthly     Frequency = "monthly"
	FreqQuarterly   Frequency = "quarterly"
	FreqYearly      Frequency = "yearly"
	// FreqCustomDays repeats every LoanConfig.CustomDays days.
	FreqCustomDays Frequency = "custom_days"
)

// PeriodUnit is the calendar unit a period advances by.
type PeriodUnit string

const (
	PeriodDays   PeriodUnit = "days"
	PeriodWeeks  PeriodUnit = "weeks"
	PeriodMonths PeriodUnit = "months"
	PeriodYears  PeriodUnit = "years"
)

// PeriodSpec is a resolved payment period.
type PeriodSpec struct {
	Unit       PeriodUnit
	Multiplier int
	// ApproxDays is the nominal length in days, used for interest when
	// no real calendar dates exist. Exact for day/week units.
	ApproxDays int
}

// Resolve maps a frequency to its period. customDays is only consulted
// for FreqCustomDays and must be positive there.
func Resolve(f Frequency, customDays int) (PeriodSpec, error) {
	switch f {
	case FreqWeekly:
		return PeriodSpec{Unit: PeriodWeeks, Multiplier: 1, ApproxDays: 7}, nil
	case FreqBiweekly:
		return PeriodSpec{Unit: PeriodWeeks, Multiplier: 2, ApproxDays: 14}, nil
	case FreqEvery4Weeks:
		return PeriodSpec{Unit: PeriodWeeks, Multiplier: 4, ApproxDays: 28}, nil
	case FreqMonthly:
		return PeriodSpec{Unit: PeriodMonths, Multiplier: 1, ApproxDays: 30}, nil
	case FreqQuarterly:
		return PeriodSpec{Unit: PeriodMonths, Multiplier: 3, ApproxDays: 91}, nil
	case FreqYearly:
		return PeriodSpec{Unit: PeriodYears, Multiplier: 1, ApproxDays: 365}, nil
	case FreqCustomDays:
		if customDays <= 0 {
			return PeriodSpec{}, &InvalidConfigError{Field: "CustomDays", Reason: "must be positive for custom_days frequency"}
		}
		return PeriodSpec{Unit: PeriodDays, Multiplier: customDays, ApproxDays: customDays}, nil
	default:
		return PeriodSpec{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, f)
	}
}

// AdvanceFrom returns the anchor advanced by `times` periods. Advancement
// is always re-anchored to the same base date so month-end clamping never
// drifts: Jan 31 -> Feb 28 -> Mar 31, not Mar 28.
func (p PeriodSpec) AdvanceFrom(anchor Date, times int) Date {
	switch p.Unit {
	case PeriodDays:
		return anchor.AddDays(p.Multiplier * times)
	case PeriodWeeks:
		// Weeks are exact day shifts, so weekday is preserved.
		return anchor.AddDays(7 * p.Multiplier * times)
	case PeriodMonths:
		return anchor.AddMonths(p.Multiplier * times)
	case PeriodYears:
		return anchor.AddYears(p.Multiplier * times)
	default:
		return anchor
	}
}
