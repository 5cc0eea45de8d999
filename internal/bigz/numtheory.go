package bigz

import (
	"math/bits"

	"github.com/agbru/bigcalc/internal/bn"
)

// Gcd returns the greatest common divisor of x and y, which is never
// negative. Gcd(0, y) is |y|.
func (a *Arith) Gcd(x, y *Int) (*Int, error) {
	u, v := x.Abs(), y.Abs()
	for v.sign != Zero {
		r, err := a.Mod(u, v)
		if err != nil {
			return nil, err
		}
		u, v = v, r
	}
	return u, nil
}

// Lcm returns the least common multiple of x and y, which is never
// negative. It is 0 when either operand is 0.
func (a *Arith) Lcm(x, y *Int) (*Int, error) {
	if x.sign == Zero || y.sign == Zero {
		return &Int{}, nil
	}
	g, err := a.Gcd(x, y)
	if err != nil {
		return nil, err
	}
	p, err := a.Multiply(x.Abs(), y.Abs())
	if err != nil {
		return nil, err
	}
	return a.Truncate(p, g)
}

// Pow returns x**e for a non-negative e.
func (a *Arith) Pow(x, e *Int) (*Int, error) {
	if e.sign == Negative {
		return nil, opError("Pow", ErrNegativeExponent)
	}
	n, ok := e.Uint64()
	switch {
	case e.sign == Zero:
		return intOne, nil
	case x.sign == Zero, x.IsOne():
		return x, nil
	case len(x.mag) == 1 && x.mag[0] == 1:
		// x == -1
		if e.IsEven() {
			return intOne, nil
		}
		return x, nil
	case !ok:
		return nil, opError("Pow", ErrSizeLimit)
	}
	// x**n has at least (BitLen(x)-1)*n+1 bits.
	if a.maxWords > 0 {
		hi, lo := bits.Mul64(uint64(x.BitLen()-1), n)
		if hi != 0 || lo/bn.WordBits >= uint64(a.maxWords) {
			return nil, opError("Pow", ErrSizeLimit)
		}
	}
	return a.pow(x, n)
}

// pow squares the base on the way down so no intermediate outgrows the
// result.
func (a *Arith) pow(x *Int, e uint64) (*Int, error) {
	switch e {
	case 0:
		return intOne, nil
	case 1:
		return x, nil
	}
	sq, err := a.Multiply(x, x)
	if err != nil {
		return nil, err
	}
	half, err := a.pow(sq, e/2)
	if err != nil {
		return nil, err
	}
	if e%2 == 1 {
		return a.Multiply(half, x)
	}
	return half, nil
}

// Sqrt returns floor(sqrt(x)) for a non-negative x.
func (a *Arith) Sqrt(x *Int) (*Int, error) {
	switch x.sign {
	case Negative:
		return nil, opError("Sqrt", ErrNegativeValue)
	case Zero:
		return x, nil
	}
	n := a.digits.BitLen(x.mag)
	// Newton's iteration from 2**ceil(n/2), which is at least sqrt(x), and
	// decreases monotonically to the answer.
	z := makeInt(false, bn.PowerOfTwo(uint(n+1)/2))
	for range n + 2 {
		q, _, err := a.divMod("Sqrt", x, z)
		if err != nil {
			return nil, err
		}
		if z.Cmp(q) <= 0 {
			break
		}
		s, err := a.Add(z, q)
		if err != nil {
			return nil, err
		}
		z = makeInt(false, a.digits.Shr(s.mag, 1))
	}
	return z, nil
}

// ModExp returns b**e mod m. The result has the sign of m, as with Mod.
//
// When e == 0 the result is 1 reduced into the range of m: 0 for m == 1,
// m + 1 for a negative m, and 1 otherwise (m == 0 included).
func (a *Arith) ModExp(b, e, m *Int) (*Int, error) {
	const op = "ModExp"
	switch {
	case e.sign == Negative:
		return nil, opError(op, ErrNegativeExponent)
	case e.sign == Zero:
		switch {
		case m.IsOne():
			return &Int{}, nil
		case m.sign == Negative:
			return a.inc(m)
		}
		return intOne, nil
	case m.sign == Zero:
		return nil, opError(op, ErrDivisionByZero)
	}

	mod := m.Abs()
	base, err := a.Mod(b, mod)
	if err != nil {
		return nil, err
	}
	r := intOne
	n := a.digits.BitLen(e.mag)
	for i := range n {
		if a.digits.Bit(e.mag, uint(i)) == 1 {
			if r, err = a.mulMod(r, base, mod); err != nil {
				return nil, err
			}
		}
		if i+1 < n {
			if base, err = a.mulMod(base, base, mod); err != nil {
				return nil, err
			}
		}
	}
	if m.sign == Negative {
		return a.Mod(r, m)
	}
	return r, nil
}

func (a *Arith) mulMod(x, y, m *Int) (*Int, error) {
	p, err := a.Multiply(x, y)
	if err != nil {
		return nil, err
	}
	return a.Mod(p, m)
}
