package bigz

import (
	"errors"
	"strconv"
)

// Sentinel errors reported by bigz operations. Compare with errors.Is.
var (
	// ErrDivisionByZero is returned when a divisor or modulus is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrSizeLimit is returned when a result would need more words than the
	// Arith allows. It stands in for an allocation failure.
	ErrSizeLimit = errors.New("numeric size limit exceeded")
	// ErrSyntax is returned for malformed numeric text.
	ErrSyntax = errors.New("invalid syntax")
	// ErrBase is returned for a radix outside [2, 36].
	ErrBase = errors.New("base out of range")
	// ErrNegativeExponent is returned by Pow and ModExp for exponents below zero.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrNegativeValue is returned when an operation has no result for a
	// negative operand, such as Sqrt or ToWords.
	ErrNegativeValue = errors.New("negative value")
	// ErrNotInvertible is returned by ModInverse when no inverse exists.
	ErrNotInvertible = errors.New("value not invertible")
	// ErrInexact is returned by ExactDiv when the division leaves a remainder.
	ErrInexact = errors.New("inexact division")
	// ErrShortBuffer is returned by FormatInto when the buffer cannot hold the
	// text; the returned size is the size required.
	ErrShortBuffer = errors.New("buffer too small")
	// ErrDomain is returned for arguments outside an operation's domain.
	ErrDomain = errors.New("argument out of domain")
)

// NumError records a failed operation.
type NumError struct {
	Op    string // the failing operation (Add, DivMod, FromString, ...)
	Input string // the input text, for parse failures
	Err   error  // the reason, one of the sentinel errors
}

func (e *NumError) Error() string {
	if e.Input != "" {
		return "bigz." + e.Op + ": parsing " + strconv.Quote(e.Input) + ": " + e.Err.Error()
	}
	return "bigz." + e.Op + ": " + e.Err.Error()
}

func (e *NumError) Unwrap() error { return e.Err }

func opError(op string, err error) error {
	return &NumError{Op: op, Err: err}
}
