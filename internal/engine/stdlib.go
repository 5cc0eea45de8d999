package engine

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/agbru/bigcalc/internal/bigz"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// bigOp computes an operation with math/big. math/big reports domain
// failures through panics or nil results, so a bigOp checks the domain
// first and fails with the bigz errors.
type bigOp func(x []*big.Int) (*big.Int, error)

var bigOne = big.NewInt(1)

// floorDivMod returns the floored quotient and remainder of x / y; the
// remainder has the sign of y. big.Int.DivMod is Euclidean, so it cannot
// serve here.
func floorDivMod(x, y *big.Int) (*big.Int, *big.Int, error) {
	if y.Sign() == 0 {
		return nil, nil, bigz.ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, bigOne)
		r.Add(r, y)
	}
	return q, r, nil
}

func floorQuo(x []*big.Int) (*big.Int, error) {
	q, _, err := floorDivMod(x[0], x[1])
	return q, err
}

func ceilQuo(x []*big.Int) (*big.Int, error) {
	q, _, err := floorDivMod(new(big.Int).Neg(x[0]), x[1])
	if err != nil {
		return nil, err
	}
	return q.Neg(q), nil
}

func roundQuo(x []*big.Int) (*big.Int, error) {
	q, r, err := floorDivMod(x[0], x[1])
	if err != nil {
		return nil, err
	}
	twice := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
	switch c := twice.CmpAbs(x[1]); {
	case c > 0, c == 0 && q.Bit(0) == 1:
		q.Add(q, bigOne)
	}
	return q, nil
}

func bigModExp(b, e, m *big.Int) (*big.Int, error) {
	switch {
	case e.Sign() < 0:
		return nil, bigz.ErrNegativeExponent
	case e.Sign() == 0:
		switch {
		case m.Cmp(bigOne) == 0:
			return new(big.Int), nil
		case m.Sign() < 0:
			return new(big.Int).Add(m, bigOne), nil
		}
		return big.NewInt(1), nil
	case m.Sign() == 0:
		return nil, bigz.ErrDivisionByZero
	}
	mod := new(big.Int).Abs(m)
	r := new(big.Int).Exp(new(big.Int).Mod(b, mod), e, mod)
	if m.Sign() < 0 {
		_, r, _ = floorDivMod(r, m)
	}
	return r, nil
}

func bigBitCount(x *big.Int) int {
	if x.Sign() < 0 {
		x = new(big.Int).Not(x)
	}
	n := 0
	for _, w := range x.Bits() {
		n += bits.OnesCount(uint(w))
	}
	return n
}

func bigSmallInt(x *big.Int) (int, error) {
	if !x.IsInt64() {
		return 0, fmt.Errorf("%w: %v does not fit in a machine integer", ErrOperand, x)
	}
	v := x.Int64()
	if int64(int(v)) != v {
		return 0, fmt.Errorf("%w: %v does not fit in a machine integer", ErrOperand, x)
	}
	return int(v), nil
}

func bigWords(x *big.Int) uint64 { return uint64(x.BitLen()+63) / 64 }

// bigResultWords bounds the size in 64-bit words of the result of the
// named operation. ok is false when the bound overflows. Operations whose
// result cannot outgrow their operands report 0.
func bigResultWords(name string, x []*big.Int) (words uint64, ok bool) {
	switch name {
	case "mul", "lcm":
		return bigWords(x[0]) + bigWords(x[1]), true
	case "pow":
		if x[1].Sign() <= 0 || x[0].CmpAbs(bigOne) <= 0 {
			return 0, true
		}
		if !x[1].IsUint64() {
			return 0, false
		}
		hi, lo := bits.Mul64(uint64(x[0].BitLen()), x[1].Uint64())
		return lo/64 + 1, hi == 0
	case "ash":
		if x[0].Sign() == 0 || x[1].Sign() <= 0 || !x[1].IsInt64() {
			return 0, true
		}
		return bigWords(x[0]) + uint64(x[1].Int64())/64 + 1, true
	}
	return 0, true
}

// checkBigSize fails with a MemoryError when the result of the named
// operation may exceed maxWords. math/big has no allocation limit of its
// own, so this runs before the operation starts. maxWords <= 0 disables
// the check.
func checkBigSize(backend, name string, x []*big.Int, maxWords int) error {
	if maxWords <= 0 {
		return nil
	}
	if words, ok := bigResultWords(name, x); ok && words <= uint64(maxWords) {
		return nil
	}
	return apperrors.MemoryError{
		Limit: maxWords,
		Cause: fmt.Errorf("%s.%s: %w", backend, name, bigz.ErrSizeLimit),
	}
}

func not(x *big.Int) *big.Int { return new(big.Int).Not(x) }

var stdlibOps = map[string]bigOp{
	"add":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Add(x[0], x[1]), nil },
	"sub":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Sub(x[0], x[1]), nil },
	"mul":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Mul(x[0], x[1]), nil },
	"div":   floorQuo,
	"floor": floorQuo,
	"ceil":  ceilQuo,
	"round": roundQuo,
	"neg":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Neg(x[0]), nil },
	"abs":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Abs(x[0]), nil },
	"cmp":   func(x []*big.Int) (*big.Int, error) { return big.NewInt(int64(x[0].Cmp(x[1]))), nil },
	"not":   func(x []*big.Int) (*big.Int, error) { return not(x[0]), nil },
	"and":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).And(x[0], x[1]), nil },
	"or":    func(x []*big.Int) (*big.Int, error) { return new(big.Int).Or(x[0], x[1]), nil },
	"xor":   func(x []*big.Int) (*big.Int, error) { return new(big.Int).Xor(x[0], x[1]), nil },
	"nand":  func(x []*big.Int) (*big.Int, error) { return not(new(big.Int).And(x[0], x[1])), nil },
	"nor":   func(x []*big.Int) (*big.Int, error) { return not(new(big.Int).Or(x[0], x[1])), nil },
	"eqv":   func(x []*big.Int) (*big.Int, error) { return not(new(big.Int).Xor(x[0], x[1])), nil },
	"andc1": func(x []*big.Int) (*big.Int, error) { return new(big.Int).And(not(x[0]), x[1]), nil },
	"andc2": func(x []*big.Int) (*big.Int, error) { return new(big.Int).AndNot(x[0], x[1]), nil },
	"orc1":  func(x []*big.Int) (*big.Int, error) { return new(big.Int).Or(not(x[0]), x[1]), nil },
	"orc2":  func(x []*big.Int) (*big.Int, error) { return new(big.Int).Or(x[0], not(x[1])), nil },

	"bitcount": func(x []*big.Int) (*big.Int, error) { return big.NewInt(int64(bigBitCount(x[0]))), nil },
	"bitlen":   func(x []*big.Int) (*big.Int, error) { return big.NewInt(int64(x[0].BitLen())), nil },
	"convert":  func(x []*big.Int) (*big.Int, error) { return x[0], nil },
	"modexp":   func(x []*big.Int) (*big.Int, error) { return bigModExp(x[0], x[1], x[2]) },

	"mod": func(x []*big.Int) (*big.Int, error) {
		_, r, err := floorDivMod(x[0], x[1])
		return r, err
	},
	"rem": func(x []*big.Int) (*big.Int, error) {
		if x[1].Sign() == 0 {
			return nil, bigz.ErrDivisionByZero
		}
		return new(big.Int).Rem(x[0], x[1]), nil
	},
	"trunc": func(x []*big.Int) (*big.Int, error) {
		if x[1].Sign() == 0 {
			return nil, bigz.ErrDivisionByZero
		}
		return new(big.Int).Quo(x[0], x[1]), nil
	},
	"gcd": func(x []*big.Int) (*big.Int, error) {
		return new(big.Int).GCD(nil, nil, new(big.Int).Abs(x[0]), new(big.Int).Abs(x[1])), nil
	},
	"lcm": func(x []*big.Int) (*big.Int, error) {
		if x[0].Sign() == 0 || x[1].Sign() == 0 {
			return new(big.Int), nil
		}
		g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(x[0]), new(big.Int).Abs(x[1]))
		p := new(big.Int).Mul(x[0], x[1])
		return p.Abs(p).Quo(p, g), nil
	},
	"pow": func(x []*big.Int) (*big.Int, error) {
		if x[1].Sign() < 0 {
			return nil, bigz.ErrNegativeExponent
		}
		return new(big.Int).Exp(x[0], x[1], nil), nil
	},
	"sqrt": func(x []*big.Int) (*big.Int, error) {
		if x[0].Sign() < 0 {
			return nil, bigz.ErrNegativeValue
		}
		return new(big.Int).Sqrt(x[0]), nil
	},
	"modinv": func(x []*big.Int) (*big.Int, error) {
		if x[1].Sign() == 0 {
			return nil, bigz.ErrDivisionByZero
		}
		m := new(big.Int).Abs(x[1])
		if m.Cmp(bigOne) == 0 {
			return new(big.Int), nil
		}
		inv := new(big.Int).ModInverse(new(big.Int).Mod(x[0], m), m)
		if inv == nil {
			return nil, bigz.ErrNotInvertible
		}
		return inv, nil
	},
	"jacobi": func(x []*big.Int) (*big.Int, error) {
		if x[1].Sign() <= 0 || x[1].Bit(0) == 0 {
			return nil, bigz.ErrDomain
		}
		return big.NewInt(int64(big.Jacobi(x[0], x[1]))), nil
	},
	"ash": func(x []*big.Int) (*big.Int, error) {
		n, err := bigSmallInt(x[1])
		if err != nil {
			return nil, err
		}
		if n >= 0 {
			return new(big.Int).Lsh(x[0], uint(n)), nil
		}
		return new(big.Int).Rsh(x[0], uint(-n)), nil
	},
	"testbit": func(x []*big.Int) (*big.Int, error) {
		i, err := bigSmallInt(x[1])
		if err != nil {
			return nil, err
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: bit index %d is negative", ErrOperand, i)
		}
		return big.NewInt(int64(x[0].Bit(i))), nil
	},
}

// formatBig prints x in base with an optional forced '+'.
func formatBig(x *big.Int, base int, forceSign bool) string {
	s := x.Text(base)
	if forceSign && x.Sign() > 0 {
		return "+" + s
	}
	return s
}

// parseBig parses an operand with the same rules as bigz strict parsing:
// leading whitespace, an optional sign, then digits of base only.
func parseBig(s string, base int) (*big.Int, error) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}
	t := s[i:]
	digits := t
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	x, ok := new(big.Int).SetString(t, base)
	if !ok || digits == "" {
		return nil, fmt.Errorf("%q: invalid syntax", s)
	}
	return x, nil
}

// StdlibEvaluator evaluates requests with math/big. It is the reference
// against which the other backends are cross-checked.
type StdlibEvaluator struct {
	maxWords int
}

var _ Evaluator = StdlibEvaluator{}

// NewStdlibEvaluator returns the math/big evaluator with the default size
// limit of bigz.
func NewStdlibEvaluator() StdlibEvaluator {
	return StdlibEvaluator{maxWords: bigz.DefaultMaxWords}
}

// WithMaxWords returns a copy of e that rejects results larger than n
// words. n <= 0 removes the limit.
func (e StdlibEvaluator) WithMaxWords(n int) StdlibEvaluator {
	e.maxWords = n
	return e
}

// Name returns "stdlib".
func (StdlibEvaluator) Name() string { return "stdlib" }

// Evaluate computes req with math/big.
func (e StdlibEvaluator) Evaluate(ctx context.Context, req Request) (string, error) {
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
	if err := checkBigSize("stdlib", spec.Name, args, e.maxWords); err != nil {
		return "", err
	}
	op := stdlibOps[spec.Name]
	return runWithContext(ctx, func() (string, error) {
		z, err := op(args)
		if err != nil {
			return "", err
		}
		return formatBig(z, req.OutputBase, req.ForceSign), nil
	})
}
