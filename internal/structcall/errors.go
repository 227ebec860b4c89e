package structcall

import (
	"errors"
	"fmt"
)

const responseClipLimit = 800

// CallError indicates that all attempts for one role call were exhausted.
// It is the only error type this package returns to callers.
type CallError struct {
	Role         string
	LastResponse string // clipped sample of the last bad model output
	Err          error  // underlying cause (extraction, validation, or transport)
}

func (e *CallError) Error() string {
	return fmt.Sprintf("structured call failed for role=%s: %v", e.Role, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// IsCallError checks whether err is (or wraps) a CallError.
func IsCallError(err error) bool {
	var callErr *CallError
	return errors.As(err, &callErr)
}

// ValidationError indicates that extracted JSON failed schema or
// cross-field validation.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 1 {
		return "validation failed: " + e.Reasons[0]
	}
	return fmt.Sprintf("validation failed (%d problems): %s", len(e.Reasons), joinReasons(e.Reasons))
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += r
	}
	return out
}

func clip(text string) string {
	if len(text) <= responseClipLimit {
		return text
	}
	return text[:responseClipLimit] + "..."
}
