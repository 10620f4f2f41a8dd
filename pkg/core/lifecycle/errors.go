package lifecycle

import "fmt"

// PreconditionError reports an operation attempted in the wrong phase of the
// monthly cycle. It carries the gating reason so callers can surface it
// verbatim instead of a generic failure.
type PreconditionError struct {
	Op       string
	Required Status
	Actual   Status
	Reason   string
}

func (e *PreconditionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s: %s (current status %s)", e.Op, e.Reason, e.Actual)
	}
	return fmt.Sprintf("cannot %s: month status must be %s, is %s", e.Op, e.Required, e.Actual)
}
