package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Classified error types. These exist to shape the message shown to the
// orchestrating model after retries are exhausted. Retry eligibility never
// depends on them.

// SearchTimeoutError marks a failure caused by an attempt or request timeout.
type SearchTimeoutError struct{ Err error }

// Error implements the error interface.
func (e *SearchTimeoutError) Error() string {
	return fmt.Sprintf("search timed out: %v", e.Err)
}

// Unwrap exposes the underlying failure.
func (e *SearchTimeoutError) Unwrap() error { return e.Err }

// RateLimitError marks a failure caused by provider rate limiting.
type RateLimitError struct{ Err error }

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

// Unwrap exposes the underlying failure.
func (e *RateLimitError) Unwrap() error { return e.Err }

// MCPConnectionError marks a failure reaching the tool server at all.
type MCPConnectionError struct{ Err error }

// Error implements the error interface.
func (e *MCPConnectionError) Error() string {
	return fmt.Sprintf("tool server connection failed: %v", e.Err)
}

// Unwrap exposes the underlying failure.
func (e *MCPConnectionError) Unwrap() error { return e.Err }

// ToolExecutionError is the catch-all classification for failures inside the
// tool itself.
type ToolExecutionError struct{ Err error }

// Error implements the error interface.
func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool execution failed: %v", e.Err)
}

// Unwrap exposes the underlying failure.
func (e *ToolExecutionError) Unwrap() error { return e.Err }

// Classify maps an arbitrary failure into one of the four advisory error
// categories by inspecting sentinel errors and message text. The input is
// wrapped, so errors.Is / errors.As still reach the original failure.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &SearchTimeoutError{Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "deadline"):
		return &SearchTimeoutError{Err: err}
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "429"):
		return &RateLimitError{Err: err}
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") || strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "unexpected eof"):
		return &MCPConnectionError{Err: err}
	default:
		return &ToolExecutionError{Err: err}
	}
}
