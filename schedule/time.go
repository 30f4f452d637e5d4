/*
time.go - Calendar-safe date arithmetic

PURPOSE:
  Day-granularity date type used everywhere in the engine. Loan schedules
  only ever care about whole days: every Date is normalized to midnight
  UTC, so comparing, diffing and advancing dates never drifts across
  DST boundaries or picks up stray wall-clock components.

WHY NOT time.AddDate FOR MONTHS/YEARS:
  time.AddDate normalizes overflow: Jan 31 + 1 month = Mar 3. Repayment
  schedules need clamping instead: Jan 31 + 1 month = Feb 28 (29 in leap
  years), and Feb 29 + 1 year = Feb 28. AddMonths/AddYears below clamp
  to the last valid day of the target month.

KEY FUNCTIONS:
  NewDate / DateOf / ParseDate:  Constructors
  AddDays / AddMonths / AddYears: Calendar-safe arithmetic
  DaysBetween:                    Whole-day difference

SEE ALSO:
  - generator.go: Uses these for due-date advancement
  - mode.go: Term derivation between dates
*/
package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for dates throughout the engine.
const DateLayout = "2006-01-02"

// =============================================================================
// DATE - Day-granularity point on the calendar
// =============================================================================

// Date is a calendar day, normalized to midnight UTC.
type Date struct {
	t time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidInput, s)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

// =============================================================================
// ARITHMETIC - Exact days, clamped months/years
// =============================================================================

// AddDays shifts the date by exactly n calendar days. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths shifts the date by n months, preserving the day-of-month and
// clamping to the last valid day of the target month:
// Jan 31 + 1 month = Feb 28 (Feb 29 in leap years).
func (d Date) AddMonths(n int) Date {
	year, month, day := d.t.Date()

	total := int(month) - 1 + n
	targetYear := year + total/12
	targetMonth := total % 12
	if targetMonth < 0 {
		targetMonth += 12
		targetYear--
	}

	m := time.Month(targetMonth + 1)
	if last := daysInMonth(targetYear, m); day > last {
		day = last
	}
	return NewDate(targetYear, m, day)
}

// AddYears shifts the date by n years, preserving month and day.
// Feb 29 maps to Feb 28 when the target year is not a leap year.
func (d Date) AddYears(n int) Date {
	year, month, day := d.t.Date()
	targetYear := year + n
	if last := daysInMonth(targetYear, month); day > last {
		day = last
	}
	return NewDate(targetYear, month, day)
}

// DaysBetween returns the whole-day distance from one date to another.
// Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
