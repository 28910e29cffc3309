package forestsum

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedData is returned when a decode buffer is shorter than the
	// encoded form requires.
	ErrTruncatedData = errors.New("truncated data")

	// ErrInvalidFeatureLayout is returned when summaries disagree on shape:
	// mismatched feature counts or per-feature kinds across sets being
	// merged, or a bivariate summary placed in the last feature slot.
	ErrInvalidFeatureLayout = errors.New("invalid feature layout")
)

// ErrUnknownSummaryType indicates a type code that matches no registered
// summary kind, at construction or as a decode tag.
type ErrUnknownSummaryType struct {
	Code byte
}

func (e *ErrUnknownSummaryType) Error() string {
	return fmt.Sprintf("unknown summary type: %q", e.Code)
}

// IsUnknownSummaryType returns true if err is an ErrUnknownSummaryType.
func IsUnknownSummaryType(err error) bool {
	var ust *ErrUnknownSummaryType
	return errors.As(err, &ust)
}
