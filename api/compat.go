/*
compat.go - Legacy payment-frequency normalization

PURPOSE:
  The engine rejects unknown frequencies hard; this shim keeps old
  clients working. Agreements created before the frequency values were
  canonicalized carry spellings like "2weeks" or "month"; they are
  mapped here, at the boundary, so the core never has to guess.

FALLBACK:
  Input that maps to nothing defaults to monthly with a logged warning.
  That default exists ONLY here - storing the canonical value means the
  warning fires once per bad input, not on every schedule regeneration.

SEE ALSO:
  - schedule/frequency.go: The strict core resolver
*/
package api

import (
	"log"
	"strings"

	"github.com/lendtab/loan-engine/schedule"
)

// legacyFrequencies maps pre-canonicalization spellings to engine values.
var legacyFrequencies = map[string]schedule.Frequency{
	"week":        schedule.FreqWeekly,
	"1week":       schedule.FreqWeekly,
	"2weeks":      schedule.FreqBiweekly,
	"two_weeks":   schedule.FreqBiweekly,
	"fortnightly": schedule.FreqBiweekly,
	"4weeks":      schedule.FreqEvery4Weeks,
	"28days":      schedule.FreqEvery4Weeks,
	"month":       schedule.FreqMonthly,
	"1month":      schedule.FreqMonthly,
	"3months":     schedule.FreqQuarterly,
	"quarter":     schedule.FreqQuarterly,
	"year":        schedule.FreqYearly,
	"annual":      schedule.FreqYearly,
	"12months":    schedule.FreqYearly,
	"custom":      schedule.FreqCustomDays,
}

// ParseFrequency normalizes a wire frequency value. Canonical values
// pass through; legacy spellings are mapped; anything else falls back
// to monthly with a warning.
func ParseFrequency(s string) schedule.Frequency {
	normalized := strings.ToLower(strings.TrimSpace(s))

	switch schedule.Frequency(normalized) {
	case schedule.FreqWeekly, schedule.FreqBiweekly, schedule.FreqEvery4Weeks,
		schedule.FreqMonthly, schedule.FreqQuarterly, schedule.FreqYearly,
		schedule.FreqCustomDays:
		return schedule.Frequency(normalized)
	}

	if f, ok := legacyFrequencies[normalized]; ok {
		return f
	}

	log.Printf("WARN: unrecognized payment frequency %q, defaulting to monthly", s)
	return schedule.FreqMonthly
}
