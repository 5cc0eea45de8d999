package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used to highlight error
// messages. Implementations return empty strings when color is disabled.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

// HandleCalculationError prints a status line for an evaluation failure
// and returns the exit code chosen by ExitCode. A nil error prints nothing.
// duration is appended to the message when positive; colors may be nil.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = plainColors{}
	}
	elapsed := ""
	if duration > 0 {
		elapsed = " after " + duration.String()
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached%s.%s\n", colors.Red(), elapsed, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		var memErr MemoryError
		if errors.As(err, &memErr) {
			fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), memErr, colors.Reset())
			fmt.Fprintln(out, "Raise the limit with -max-words or GOMEMLIMIT.")
			break
		}
		fmt.Fprintf(out, "%sStatus: Failure. An error occurred%s: %v%s\n", colors.Red(), elapsed, err, colors.Reset())
	}
	return code
}
