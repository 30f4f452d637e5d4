package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestResolve_KnownFrequencies(t *testing.T) {
	cases := []struct {
		freq       Frequency
		customDays int
		want       PeriodSpec
	}{
		{FreqWeekly, 0, PeriodSpec{Unit: PeriodWeeks, Multiplier: 1, ApproxDays: 7}},
		{FreqBiweekly, 0, PeriodSpec{Unit: PeriodWeeks, Multiplier: 2, ApproxDays: 14}},
		{FreqEvery4Weeks, 0, PeriodSpec{Unit: PeriodWeeks, Multiplier: 4, ApproxDays: 28}},
		{FreqMonthly, 0, PeriodSpec{Unit: PeriodMonths, Multiplier: 1, ApproxDays: 30}},
		{FreqQuarterly, 0, PeriodSpec{Unit: PeriodMonths, Multiplier: 3, ApproxDays: 91}},
		{FreqYearly, 0, PeriodSpec{Unit: PeriodYears, Multiplier: 1, ApproxDays: 365}},
		{FreqCustomDays, 10, PeriodSpec{Unit: PeriodDays, Multiplier: 10, ApproxDays: 10}},
	}

	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			got, err := Resolve(tc.freq, tc.customDays)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Resolve(%s) = %+v, want %+v", tc.freq, got, tc.want)
			}
		})
	}
}

func TestResolve_UnknownFrequencyIsHardError(t *testing.T) {
	// The core never silently defaults; the legacy shim lives at the
	// API boundary.
	_, err := Resolve(Frequency("every_full_moon"), 0)
	if !errors.Is(err, ErrUnknownFrequency) {
		t.Fatalf("expected ErrUnknownFrequency, got %v", err)
	}
}

func TestResolve_CustomDaysRequiresPositiveInterval(t *testing.T) {
	_, err := Resolve(FreqCustomDays, 0)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// =============================================================================
// DUE-DATE ADVANCEMENT
// =============================================================================

func TestAdvanceFrom_ReanchorsMonthEnds(t *testing.T) {
	// GIVEN: A monthly schedule anchored at Jan 31
	// WHEN: Advancing row by row
	// THEN: Clamping applies per row from the anchor, so March returns
	//       to the 31st instead of inheriting February's 28th.
	monthly := PeriodSpec{Unit: PeriodMonths, Multiplier: 1, ApproxDays: 30}
	anchor := NewDate(2025, time.January, 31)

	want := []Date{
		NewDate(2025, time.January, 31),
		NewDate(2025, time.February, 28),
		NewDate(2025, time.March, 31),
		NewDate(2025, time.April, 30),
		NewDate(2025, time.May, 31),
	}
	for i, w := range want {
		got := monthly.AdvanceFrom(anchor, i)
		if !got.Equal(w) {
			t.Errorf("AdvanceFrom(%d) = %s, want %s", i, got, w)
		}
	}
}

func TestAdvanceFrom_WeeksPreserveWeekday(t *testing.T) {
	biweekly := PeriodSpec{Unit: PeriodWeeks, Multiplier: 2, ApproxDays: 14}
	anchor := NewDate(2025, time.January, 6) // a Monday

	for i := 0; i < 6; i++ {
		got := biweekly.AdvanceFrom(anchor, i)
		if got.Time().Weekday() != time.Monday {
			t.Errorf("AdvanceFrom(%d) = %s (%s), want a Monday", i, got, got.Time().Weekday())
		}
		if DaysBetween(anchor, got) != 14*i {
			t.Errorf("AdvanceFrom(%d) is %d days out, want %d", i, DaysBetween(anchor, got), 14*i)
		}
	}
}

func TestAdvanceFrom_Years(t *testing.T) {
	yearly := PeriodSpec{Unit: PeriodYears, Multiplier: 1, ApproxDays: 365}
	anchor := NewDate(2024, time.February, 29)

	if got := yearly.AdvanceFrom(anchor, 1); !got.Equal(NewDate(2025, time.February, 28)) {
		t.Errorf("AdvanceFrom leap anchor = %s, want 2025-02-28", got)
	}
	if got := yearly.AdvanceFrom(anchor, 4); !got.Equal(NewDate(2028, time.February, 29)) {
		t.Errorf("AdvanceFrom to leap year = %s, want 2028-02-29", got)
	}
}
