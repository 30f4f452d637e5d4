package schedule

import (
	"errors"
	"testing"
	"time"
)

// =============================================================================
// MONTH/YEAR CLAMPING
// =============================================================================

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		name  string
		start Date
		n     int
		want  Date
	}{
		{"jan 31 plus one month", NewDate(2025, time.January, 31), 1, NewDate(2025, time.February, 28)},
		{"jan 31 plus one month leap year", NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)},
		{"jan 31 plus two months", NewDate(2025, time.January, 31), 2, NewDate(2025, time.March, 31)},
		{"mar 31 plus one month", NewDate(2025, time.March, 31), 1, NewDate(2025, time.April, 30)},
		{"mid month unaffected", NewDate(2025, time.June, 15), 1, NewDate(2025, time.July, 15)},
		{"across year boundary", NewDate(2025, time.November, 30), 3, NewDate(2026, time.February, 28)},
		{"negative months", NewDate(2025, time.March, 31), -1, NewDate(2025, time.February, 28)},
		{"negative across year", NewDate(2025, time.January, 15), -2, NewDate(2024, time.November, 15)},
		{"zero months", NewDate(2025, time.May, 31), 0, NewDate(2025, time.May, 31)},
		{"twelve months", NewDate(2025, time.February, 28), 12, NewDate(2026, time.February, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.start.AddMonths(tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tc.start, tc.n, got, tc.want)
			}
		})
	}
}

func TestAddYears_LeapDayClamps(t *testing.T) {
	cases := []struct {
		name  string
		start Date
		n     int
		want  Date
	}{
		{"feb 29 to non-leap", NewDate(2024, time.February, 29), 1, NewDate(2025, time.February, 28)},
		{"feb 29 to leap", NewDate(2024, time.February, 29), 4, NewDate(2028, time.February, 29)},
		{"ordinary date", NewDate(2025, time.July, 4), 3, NewDate(2028, time.July, 4)},
		{"negative years", NewDate(2025, time.February, 28), -1, NewDate(2024, time.February, 28)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.start.AddYears(tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("AddYears(%s, %d) = %s, want %s", tc.start, tc.n, got, tc.want)
			}
		})
	}
}

func TestAddDays_ExactShift(t *testing.T) {
	// Crossing a leap day counts it.
	got := NewDate(2024, time.February, 28).AddDays(2)
	want := NewDate(2024, time.March, 1)
	if !got.Equal(want) {
		t.Errorf("AddDays = %s, want %s", got, want)
	}

	got = NewDate(2025, time.January, 1).AddDays(-1)
	want = NewDate(2024, time.December, 31)
	if !got.Equal(want) {
		t.Errorf("AddDays(-1) = %s, want %s", got, want)
	}
}

// =============================================================================
// DAY DIFFS AND NORMALIZATION
// =============================================================================

func TestDaysBetween(t *testing.T) {
	a := NewDate(2025, time.January, 31)
	b := NewDate(2025, time.February, 3)

	if got := DaysBetween(a, b); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
	// Leap year: full 2024 is 366 days.
	if got := DaysBetween(NewDate(2024, time.January, 1), NewDate(2025, time.January, 1)); got != 366 {
		t.Errorf("DaysBetween leap year = %d, want 366", got)
	}
}

func TestDateOf_TruncatesToMidnight(t *testing.T) {
	instant := time.Date(2025, time.March, 10, 23, 59, 58, 0, time.UTC)
	got := DateOf(instant)
	if !got.Equal(NewDate(2025, time.March, 10)) {
		t.Errorf("DateOf = %s, want 2025-03-10", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !d.Equal(NewDate(2025, time.February, 28)) {
		t.Errorf("ParseDate = %s", d)
	}

	if _, err := ParseDate("28/02/2025"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := ParseDate(""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty string, got %v", err)
	}
}
