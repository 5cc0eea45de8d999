package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Errors reported while validating a request, before any arithmetic runs.
var (
	ErrUnknownOp     = errors.New("unknown operation")
	ErrArity         = errors.New("wrong number of operands")
	ErrOperand       = errors.New("invalid operand")
	ErrBase          = errors.New("base must be between 2 and 36")
	ErrUnknownEngine = errors.New("unknown engine")
)

// Request is one operation to evaluate.
type Request struct {
	// Op is the operation name, as listed in Ops.
	Op string
	// Operands are the operand texts in InputBase.
	Operands []string
	// InputBase is the radix of the operands. Zero means 10.
	InputBase int
	// OutputBase is the radix of the result. Zero means 10.
	OutputBase int
	// ForceSign prints a '+' before positive results.
	ForceSign bool
}

// Normalize returns r with default bases filled in and the operation name
// lowercased.
func (r Request) Normalize() Request {
	r.Op = strings.ToLower(strings.TrimSpace(r.Op))
	if r.InputBase == 0 {
		r.InputBase = 10
	}
	if r.OutputBase == 0 {
		r.OutputBase = 10
	}
	return r
}

// Validate checks the operation, the operand count and the bases.
func (r Request) Validate() (OpSpec, error) {
	r = r.Normalize()
	spec, ok := LookupOp(r.Op)
	if !ok {
		return OpSpec{}, fmt.Errorf("%w: %q", ErrUnknownOp, r.Op)
	}
	if len(r.Operands) != spec.Arity {
		return OpSpec{}, fmt.Errorf("%w: %s takes %d (%s), got %d", ErrArity, spec.Name, spec.Arity, spec.Usage, len(r.Operands))
	}
	for _, b := range []int{r.InputBase, r.OutputBase} {
		if b < 2 || b > 36 {
			return OpSpec{}, fmt.Errorf("%w: %d", ErrBase, b)
		}
	}
	return spec, nil
}

// String renders the request as it would be typed in the REPL.
func (r Request) String() string {
	return strings.TrimSpace(r.Op + " " + strings.Join(r.Operands, " "))
}

// runWithContext runs f and returns early with the context error when ctx is
// done first. f keeps running in the background until it returns.
func runWithContext(ctx context.Context, f func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := f()
		done <- outcome{text, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case o := <-done:
		return o.text, o.err
	}
}
