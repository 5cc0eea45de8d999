//go:build gmp

// The gmp evaluator needs libgmp at build and run time:
//   - Linux: sudo apt-get install libgmp-dev
//   - macOS: brew install gmp
// Build with: go build -tags=gmp ./...

package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigz"
)

func init() {
	registerEngine("gmp", func(maxWords int) Evaluator { return GMPEvaluator{maxWords: maxWords} })
}

type gmpOp func(x []*gmp.Int) (*gmp.Int, error)

func gmpBinary(f func(z, x, y *gmp.Int) *gmp.Int) gmpOp {
	return func(x []*gmp.Int) (*gmp.Int, error) { return f(new(gmp.Int), x[0], x[1]), nil }
}

func gmpDivisor(f func(z, x, y *gmp.Int) *gmp.Int) gmpOp {
	return func(x []*gmp.Int) (*gmp.Int, error) {
		if x[1].Sign() == 0 {
			return nil, bigz.ErrDivisionByZero
		}
		return f(new(gmp.Int), x[0], x[1]), nil
	}
}

// gmpFloorDivMod returns the floored quotient and remainder of x / y.
func gmpFloorDivMod(x, y *gmp.Int) (*gmp.Int, *gmp.Int, error) {
	if y.Sign() == 0 {
		return nil, nil, bigz.ErrDivisionByZero
	}
	q, r := new(gmp.Int).QuoRem(x, y, new(gmp.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, gmp.NewInt(1))
		r.Add(r, y)
	}
	return q, r, nil
}

// GMP arithmetic covers the operations below; the bit-level queries and the
// remaining number theory go through math/big.
var gmpOps = map[string]gmpOp{
	"add":   gmpBinary((*gmp.Int).Add),
	"sub":   gmpBinary((*gmp.Int).Sub),
	"mul":   gmpBinary((*gmp.Int).Mul),
	"and":   gmpBinary((*gmp.Int).And),
	"or":    gmpBinary((*gmp.Int).Or),
	"xor":   gmpBinary((*gmp.Int).Xor),
	"rem":   gmpDivisor((*gmp.Int).Rem),
	"trunc": gmpDivisor((*gmp.Int).Quo),

	"div": func(x []*gmp.Int) (*gmp.Int, error) {
		q, _, err := gmpFloorDivMod(x[0], x[1])
		return q, err
	},
	"floor": func(x []*gmp.Int) (*gmp.Int, error) {
		q, _, err := gmpFloorDivMod(x[0], x[1])
		return q, err
	},
	"mod": func(x []*gmp.Int) (*gmp.Int, error) {
		_, r, err := gmpFloorDivMod(x[0], x[1])
		return r, err
	},
	"neg": func(x []*gmp.Int) (*gmp.Int, error) { return new(gmp.Int).Neg(x[0]), nil },
	"abs": func(x []*gmp.Int) (*gmp.Int, error) { return new(gmp.Int).Abs(x[0]), nil },
	"not": func(x []*gmp.Int) (*gmp.Int, error) { return new(gmp.Int).Not(x[0]), nil },
	"pow": func(x []*gmp.Int) (*gmp.Int, error) {
		if x[1].Sign() < 0 {
			return nil, bigz.ErrNegativeExponent
		}
		return new(gmp.Int).Exp(x[0], x[1], nil), nil
	},
	"gcd": func(x []*gmp.Int) (*gmp.Int, error) {
		return new(gmp.Int).GCD(nil, nil, new(gmp.Int).Abs(x[0]), new(gmp.Int).Abs(x[1])), nil
	},
}

func gmpToBig(g *gmp.Int) *big.Int {
	z := new(big.Int).SetBytes(g.Bytes())
	if g.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

func bigToGmp(b *big.Int) *gmp.Int {
	z := new(gmp.Int).SetBytes(b.Bytes())
	if b.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

// GMPEvaluator evaluates requests with GMP through github.com/ncw/gmp.
// Results larger than maxWords 64-bit words are rejected before GMP runs;
// maxWords <= 0 removes the limit.
type GMPEvaluator struct {
	maxWords int
}

var _ Evaluator = GMPEvaluator{}

// Name returns "gmp".
func (GMPEvaluator) Name() string { return "gmp" }

// Evaluate computes req with GMP, falling back to math/big for the
// operations GMP does not cover here.
func (e GMPEvaluator) Evaluate(ctx context.Context, req Request) (string, error) {
	spec, err := req.Validate()
	if err != nil {
		return "", err
	}
	req = req.Normalize()
	args := make([]*big.Int, len(req.Operands))
	for i, s := range req.Operands {
		if args[i], err = parseBig(s, req.InputBase); err != nil {
			return "", fmt.Errorf("%w %d: %w", ErrOperand, i+1, err)
		}
	}
	if err := checkBigSize("gmp", spec.Name, args, e.maxWords); err != nil {
		return "", err
	}
	return runWithContext(ctx, func() (string, error) {
		var z *big.Int
		if op, ok := gmpOps[spec.Name]; ok {
			gx := make([]*gmp.Int, len(args))
			for i, a := range args {
				gx[i] = bigToGmp(a)
			}
			g, err := op(gx)
			if err != nil {
				return "", err
			}
			z = gmpToBig(g)
		} else {
			if z, err = stdlibOps[spec.Name](args); err != nil {
				return "", err
			}
		}
		return formatBig(z, req.OutputBase, req.ForceSign), nil
	})
}
