package chart

import "fmt"

// InsufficientDataError reports that a chart's preconditions are unmet:
// a numeric chart without a numeric column, or a grouped chart with fewer
// than two categories.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data to chart: %s", e.Reason)
}

func insufficient(format string, args ...any) error {
	return &InsufficientDataError{Reason: fmt.Sprintf(format, args...)}
}
