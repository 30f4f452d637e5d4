package api

import (
	"testing"

	"github.com/lendtab/loan-engine/schedule"
)

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want schedule.Frequency
	}{
		// Canonical values pass through.
		{"weekly", schedule.FreqWeekly},
		{"biweekly", schedule.FreqBiweekly},
		{"every_4_weeks", schedule.FreqEvery4Weeks},
		{"monthly", schedule.FreqMonthly},
		{"quarterly", schedule.FreqQuarterly},
		{"yearly", schedule.FreqYearly},
		{"custom_days", schedule.FreqCustomDays},

		// Normalization.
		{"  Monthly ", schedule.FreqMonthly},
		{"YEARLY", schedule.FreqYearly},

		// Legacy spellings.
		{"week", schedule.FreqWeekly},
		{"2weeks", schedule.FreqBiweekly},
		{"fortnightly", schedule.FreqBiweekly},
		{"4weeks", schedule.FreqEvery4Weeks},
		{"28days", schedule.FreqEvery4Weeks},
		{"month", schedule.FreqMonthly},
		{"3months", schedule.FreqQuarterly},
		{"quarter", schedule.FreqQuarterly},
		{"annual", schedule.FreqYearly},
		{"12months", schedule.FreqYearly},
		{"custom", schedule.FreqCustomDays},

		// Unknown values fall back to monthly, never to an error.
		{"", schedule.FreqMonthly},
		{"lunar", schedule.FreqMonthly},
	}

	for _, tc := range cases {
		if got := ParseFrequency(tc.in); got != tc.want {
			t.Errorf("ParseFrequency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
