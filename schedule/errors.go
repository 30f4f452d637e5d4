/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All engine error types in one place. Callers branch with errors.Is;
  detail carriers wrap the sentinels so both forms work.

ERROR CATEGORIES:
  1. Config errors - Invalid loan parameters (fatal to the computation)
  2. Input errors  - Unparseable dates, bad arithmetic arguments
  3. Frequency errors - Unrecognized payment frequency

CONTRACT:
  A failed Generate returns (nil, err) - never a partially populated
  schedule. Rendering code treats a nil schedule as "show fallback",
  so no half-computed rows ever leak out.

USAGE:
  if errors.Is(err, schedule.ErrInvalidConfig) {
      // show graceful fallback, don't 500
  }

SEE ALSO:
  - generator.go: Validation that produces these
  - frequency.go: ErrUnknownFrequency
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfig is returned for loan parameters that can never
	// produce a schedule: non-positive principal, non-positive
	// installment count, negative rate or offsets.
	ErrInvalidConfig = errors.New("invalid loan config")

	// ErrInvalidInput is returned for unparseable dates and other
	// malformed primitive inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownFrequency is returned for a payment frequency the engine
	// does not recognize. The core never silently substitutes a default;
	// legacy spellings are mapped at the API boundary instead.
	ErrUnknownFrequency = errors.New("unknown payment frequency")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidConfigError reports which field of a LoanConfig failed validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid loan config: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an engine defect.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownFrequency)
}
