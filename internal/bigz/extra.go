package bigz

import (
	"math"

	"github.com/agbru/bigcalc/internal/bn"
)

// SqrtRem returns s = floor(sqrt(x)) and r = x - s*s for a non-negative x.
func (a *Arith) SqrtRem(x *Int) (s, r *Int, err error) {
	if s, err = a.Sqrt(x); err != nil {
		return nil, nil, err
	}
	sq, err := a.Multiply(s, s)
	if err != nil {
		return nil, nil, err
	}
	r, err = a.Subtract(x, sq)
	return s, r, err
}

// DivisibleBy reports whether y divides x. Only 0 is divisible by 0.
func (a *Arith) DivisibleBy(x, y *Int) bool {
	if y.sign == Zero {
		return x.sign == Zero
	}
	_, r := a.digits.DivMod(x.mag, y.mag)
	return r.IsZero()
}

// ExactDiv returns x / y when y divides x, and ErrInexact otherwise.
func (a *Arith) ExactDiv(x, y *Int) (*Int, error) {
	q, r, err := a.quoRem("ExactDiv", x, y, ToZero)
	if err != nil {
		return nil, err
	}
	if r.sign != Zero {
		return nil, opError("ExactDiv", ErrInexact)
	}
	return q, nil
}

// ExtendedGcd returns g = Gcd(x, y) together with Bezout coefficients s and
// t such that x*s + y*t == g.
func (a *Arith) ExtendedGcd(x, y *Int) (g, s, t *Int, err error) {
	r0, r1 := x, y
	s0, s1 := intOne, &Int{}
	t0, t1 := &Int{}, intOne
	step := func(u, v, q *Int) (*Int, error) {
		p, err := a.Multiply(q, v)
		if err != nil {
			return nil, err
		}
		return a.Subtract(u, p)
	}
	for r1.sign != Zero {
		q, r, err := a.DivMod(r0, r1)
		if err != nil {
			return nil, nil, nil, err
		}
		ns, err := step(s0, s1, q)
		if err != nil {
			return nil, nil, nil, err
		}
		nt, err := step(t0, t1, q)
		if err != nil {
			return nil, nil, nil, err
		}
		r0, r1 = r1, r
		s0, s1 = s1, ns
		t0, t1 = t1, nt
	}
	if r0.sign == Negative {
		return r0.Neg(), s0.Neg(), t0.Neg(), nil
	}
	return r0, s0, t0, nil
}

// ModInverse returns the inverse of x modulo |m| in [0, |m|).
func (a *Arith) ModInverse(x, m *Int) (*Int, error) {
	if m.sign == Zero {
		return nil, opError("ModInverse", ErrDivisionByZero)
	}
	mod := m.Abs()
	g, s, _, err := a.ExtendedGcd(x, mod)
	if err != nil {
		return nil, err
	}
	if !g.IsOne() {
		return nil, opError("ModInverse", ErrNotInvertible)
	}
	return a.Mod(s, mod)
}

// Jacobi returns the Jacobi symbol (x/n) for an odd positive n.
func (a *Arith) Jacobi(x, n *Int) (int, error) {
	if n.sign != Positive || n.IsEven() {
		return 0, opError("Jacobi", ErrDomain)
	}
	u, err := a.Mod(x, n)
	if err != nil {
		return 0, err
	}
	v := n
	j := 1
	for u.sign != Zero {
		if tz := a.digits.TrailingZeros(u.mag); tz > 0 {
			u = makeInt(false, a.digits.Shr(u.mag, tz))
			if r := v.LowWord() & 7; tz%2 == 1 && (r == 3 || r == 5) {
				j = -j
			}
		}
		u, v = v, u
		if u.LowWord()&3 == 3 && v.LowWord()&3 == 3 {
			j = -j
		}
		if u, err = a.Mod(u, v); err != nil {
			return 0, err
		}
	}
	if v.IsOne() {
		return j, nil
	}
	return 0, nil
}

// TrailingZeros returns the number of consecutive zero bits at the bottom of
// |x|, or 0 when x is 0.
func (x *Int) TrailingZeros() uint {
	return bn.Default().TrailingZeros(x.mag)
}

// LowWord returns the least significant word of |x|.
func (x *Int) LowWord() bn.Word {
	if len(x.mag) == 0 {
		return 0
	}
	return x.mag[0]
}

// Float64 returns the float64 nearest to x, ties to even. Values too large
// for a float64 become ±Inf.
func (x *Int) Float64() float64 {
	n := x.BitLen()
	var f float64
	switch {
	case n == 0:
		return 0
	case n <= 64:
		f = float64(uint64(x.mag[0]))
	default:
		s := uint(n - 64)
		top := bn.Default().Shr(x.mag, s)
		w := uint64(top[0])
		// A sticky bit keeps the rounding of the top 64 bits honest.
		if bn.Default().TrailingZeros(x.mag) < s {
			w |= 1
		}
		f = math.Ldexp(float64(w), int(s))
	}
	if x.sign == Negative {
		return -f
	}
	return f
}

// Log2 returns floor(log2(|x|)) for a nonzero x.
func (a *Arith) Log2(x *Int) (int, error) {
	if x.sign == Zero {
		return 0, opError("Log2", ErrDomain)
	}
	return a.digits.BitLen(x.mag) - 1, nil
}
