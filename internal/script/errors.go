package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when running code on a closed Runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a script outlives its deadline.
	ErrTimeout = errors.New("script execution timeout")
)
