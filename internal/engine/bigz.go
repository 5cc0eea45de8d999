package engine

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/bigz"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

type bigzOp func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error)

func binary(f func(a *bigz.Arith, x, y *bigz.Int) (*bigz.Int, error)) bigzOp {
	return func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return f(a, x[0], x[1]) }
}

func fromInt(v int) *bigz.Int { return bigz.FromInt64(int64(v)) }

var bigzOps = map[string]bigzOp{
	"add":    binary((*bigz.Arith).Add),
	"sub":    binary((*bigz.Arith).Subtract),
	"mul":    binary((*bigz.Arith).Multiply),
	"div":    binary((*bigz.Arith).Div),
	"mod":    binary((*bigz.Arith).Mod),
	"rem":    binary((*bigz.Arith).Rem),
	"trunc":  binary((*bigz.Arith).Truncate),
	"floor":  binary((*bigz.Arith).Floor),
	"ceil":   binary((*bigz.Arith).Ceiling),
	"round":  binary((*bigz.Arith).Round),
	"gcd":    binary((*bigz.Arith).Gcd),
	"lcm":    binary((*bigz.Arith).Lcm),
	"pow":    binary((*bigz.Arith).Pow),
	"and":    binary((*bigz.Arith).And),
	"or":     binary((*bigz.Arith).Or),
	"xor":    binary((*bigz.Arith).Xor),
	"nand":   binary((*bigz.Arith).Nand),
	"nor":    binary((*bigz.Arith).Nor),
	"eqv":    binary((*bigz.Arith).Eqv),
	"andc1":  binary((*bigz.Arith).AndC1),
	"andc2":  binary((*bigz.Arith).AndC2),
	"orc1":   binary((*bigz.Arith).OrC1),
	"orc2":   binary((*bigz.Arith).OrC2),
	"modinv": binary((*bigz.Arith).ModInverse),

	"neg":     func(_ *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return x[0].Neg(), nil },
	"abs":     func(_ *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return x[0].Abs(), nil },
	"not":     func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return a.Not(x[0]) },
	"sqrt":    func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return a.Sqrt(x[0]) },
	"modexp":  func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return a.ModExp(x[0], x[1], x[2]) },
	"convert": func(_ *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) { return x[0], nil },

	"cmp": func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		return fromInt(a.Compare(x[0], x[1])), nil
	},
	"bitcount": func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		return fromInt(a.BitCount(x[0])), nil
	},
	"bitlen": func(_ *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		return fromInt(x[0].BitLen()), nil
	},
	"jacobi": func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		j, err := a.Jacobi(x[0], x[1])
		if err != nil {
			return nil, err
		}
		return fromInt(j), nil
	},
	"ash": func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		n, err := smallInt(x[1])
		if err != nil {
			return nil, err
		}
		return a.Ash(x[0], n)
	},
	"testbit": func(a *bigz.Arith, x []*bigz.Int) (*bigz.Int, error) {
		i, err := smallInt(x[1])
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: bit index %d is negative", ErrOperand, i)
		}
		return fromInt(int(a.TestBit(x[0], uint(i)))), nil
	},
}

// smallInt converts a shift count or bit index operand to an int.
func smallInt(x *bigz.Int) (int, error) {
	v, ok := x.Int64()
	if !ok {
		return 0, fmt.Errorf("%w: %v does not fit in a machine integer", ErrOperand, x)
	}
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOperand, err)
	}
	return n, nil
}

// BigzEvaluator evaluates requests with the native bigz engine.
type BigzEvaluator struct {
	arith *bigz.Arith
}

var _ Evaluator = (*BigzEvaluator)(nil)

// NewBigzEvaluator returns an evaluator whose Arith is configured by opts.
func NewBigzEvaluator(opts ...bigz.Option) *BigzEvaluator {
	return &BigzEvaluator{arith: bigz.New(opts...)}
}

// Name returns "bigz".
func (e *BigzEvaluator) Name() string { return "bigz" }

// Arith returns the arithmetic context used by the evaluator.
func (e *BigzEvaluator) Arith() *bigz.Arith { return e.arith }

// Evaluate computes req with bigz.
func (e *BigzEvaluator) Evaluate(ctx context.Context, req Request) (string, error) {
	spec, err := req.Validate()
	if err != nil {
		return "", err
	}
	req = req.Normalize()
	args := make([]*bigz.Int, len(req.Operands))
	for i, s := range req.Operands {
		if args[i], err = e.arith.FromString(s, req.InputBase, bigz.Strict); err != nil {
			return "", fmt.Errorf("%w %d: %w", ErrOperand, i+1, err)
		}
	}
	op := bigzOps[spec.Name]
	return runWithContext(ctx, func() (string, error) {
		z, err := op(e.arith, args)
		if errors.Is(err, bigz.ErrSizeLimit) {
			return "", apperrors.MemoryError{Limit: e.arith.MaxWords(), Cause: err}
		}
		if err != nil {
			return "", err
		}
		mode := bigz.SignNegative
		if req.ForceSign {
			mode = bigz.SignAlways
		}
		return e.arith.ToString(z, req.OutputBase, mode)
	})
}
