/*
mode.go - Preview/Actual resolution, relative labels, term summaries

PURPOSE:
  Decides how time is represented in a schedule and renders it.

  Actual mode: a real calendar start date exists (fixed date, or an
  upon-acceptance loan already accepted), so rows carry concrete dates.

  Preview mode: the start date is a future unknown ("when the borrower
  accepts"), so rows carry structured offsets rendered as phrases like
  "3 months after loan start".

TWO-STATE DECISION, NOT A STATE MACHINE:
  The mode is recomputed fresh on every call from the config and
  context. Nothing persists it; there is no transition to get wrong.

STRUCTURED OFFSETS:
  Every preview row keeps its DueOffset value next to the rendered
  label. Duration summaries and any other derived values read the
  struct, never the string - re-parsing rendered text is how the old
  implementations diverged.

SEE ALSO:
  - generator.go: Applies the resolved mode
  - types.go: DueOffset placement on InstallmentRow
*/
package schedule

import (
	"fmt"
	"strings"
)

// =============================================================================
// MODE - Preview vs Actual time representation
// =============================================================================

type Mode string

const (
	// ModePreview: no real start date; due times are offsets from a
	// not-yet-known "loan start" event.
	ModePreview Mode = "preview"
	// ModeActual: a concrete start date is known; due times are dates.
	ModeActual Mode = "actual"
)

// ResolveMode decides the time representation.
//
// Actual whenever the start date is fixed or already known; Preview only
// for an upon-acceptance loan that has not been accepted yet and is being
// previewed. A non-preview call on an unaccepted loan treats "now" as the
// start (the acceptance is happening).
func ResolveMode(cfg LoanConfig, ctx Context) Mode {
	if cfg.StartMode != StartUponAcceptance {
		return ModeActual
	}
	if ctx.HasRealStartDate || cfg.StartDate != nil {
		return ModeActual
	}
	if !ctx.Preview {
		return ModeActual
	}
	return ModePreview
}

// =============================================================================
// DUE OFFSET - Symbolic "after loan start" placement
// =============================================================================

// DueOffset places a due time relative to the loan start without knowing
// the start date. Components accumulate independently; they are only
// combined with a real date once one exists.
type DueOffset struct {
	Days   int `json:"days"`
	Months int `json:"months"`
	Years  int `json:"years"`
}

// OffsetFor converts a first-payment offset into a DueOffset.
func OffsetFor(o PaymentOffset) DueOffset {
	switch o.Unit {
	case OffsetMonths:
		return DueOffset{Months: o.Count}
	case OffsetYears:
		return DueOffset{Years: o.Count}
	default:
		return DueOffset{Days: o.Count}
	}
}

// IsZero reports a due time of exactly "on loan start".
func (o DueOffset) IsZero() bool {
	return o.Days == 0 && o.Months == 0 && o.Years == 0
}

// Advance accumulates `times` periods onto the offset symbolically.
func (o DueOffset) Advance(p PeriodSpec, times int) DueOffset {
	switch p.Unit {
	case PeriodWeeks:
		o.Days += 7 * p.Multiplier * times
	case PeriodMonths:
		o.Months += p.Multiplier * times
	case PeriodYears:
		o.Years += p.Multiplier * times
	default:
		o.Days += p.Multiplier * times
	}
	return o
}

// ApplyTo anchors the offset on a real date. Years and months first so
// day components never shift which month gets clamped.
func (o DueOffset) ApplyTo(d Date) Date {
	return d.AddYears(o.Years).AddMonths(o.Months).AddDays(o.Days)
}

// ApproxDays is the nominal day count of the offset, for interest
// periods with no real dates to diff.
func (o DueOffset) ApproxDays() int {
	return o.Days + o.Months*30 + o.Years*365
}

// Label renders the offset as the phrase shown in preview tables.
func (o DueOffset) Label() string {
	if o.IsZero() {
		return "On loan start"
	}
	var parts []string
	if o.Years > 0 {
		parts = append(parts, plural(o.Years, "year"))
	}
	if o.Months > 0 {
		parts = append(parts, plural(o.Months, "month"))
	}
	if o.Days > 0 {
		parts = append(parts, plural(o.Days, "day"))
	}
	return strings.Join(parts, " and ") + " after loan start"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// =============================================================================
// TERM - Overall loan duration summary
// =============================================================================

// Term is the duration from loan start to the final due date, in whole
// years and months, or in days when under a month.
type Term struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// TermBetween derives the term from two real dates.
func TermBetween(start, end Date) Term {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 1 {
		return Term{Days: DaysBetween(start, end)}
	}
	return Term{Years: months / 12, Months: months % 12}
}

// TermFromOffset derives the term from a structured offset, for preview
// schedules where no real dates exist.
func TermFromOffset(o DueOffset) Term {
	months := o.Years*12 + o.Months + o.Days/30
	if months < 1 {
		return Term{Days: o.Days}
	}
	return Term{Years: months / 12, Months: months % 12}
}

func (t Term) String() string {
	if t.Years == 0 && t.Months == 0 {
		return plural(t.Days, "day")
	}
	var parts []string
	if t.Years > 0 {
		parts = append(parts, plural(t.Years, "year"))
	}
	if t.Months > 0 {
		parts = append(parts, plural(t.Months, "month"))
	}
	return strings.Join(parts, " ")
}
