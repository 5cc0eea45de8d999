package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // engines disagree on a result
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130 // SIGINT
)

// ConfigError reports invalid user input: flags, operands or bases.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps the failure of one engine on one request. The
// message is the cause's; Engine and Op are kept for logs and inspection.
type CalculationError struct {
	Engine string
	Op     string
	Cause  error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

func (e CalculationError) Unwrap() error { return e.Cause }

// ValidationError reports a request field rejected by the HTTP layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports that a result would exceed the engine's size limit.
// It is returned instead of attempting the allocation.
type MemoryError struct {
	Limit int // 64-bit words
	Cause error
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: result exceeds the limit of %d words (%d bytes): %v", e.Limit, e.Limit*8, e.Cause)
}

func (e MemoryError) Unwrap() error { return e.Cause }

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode classifies err into a process exit status. Timeouts win over
// cancellation when both appear in the chain.
func ExitCode(err error) int {
	var cfgErr ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
