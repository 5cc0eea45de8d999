package bigz

import (
	"github.com/agbru/bigcalc/internal/bn"
)

// The logical operations view an Int as an infinite two's-complement bit
// string: a non-negative value has infinitely many leading zero bits and a
// negative value infinitely many leading one bits.

type bitOp int

const (
	opAnd bitOp = iota
	opOr
	opXor
)

func (o bitOp) name() string {
	switch o {
	case opAnd:
		return "And"
	case opOr:
		return "Or"
	}
	return "Xor"
}

func (o bitOp) apply(x, y bool) bool {
	switch o {
	case opAnd:
		return x && y
	case opOr:
		return x || y
	}
	return x != y
}

// pattern returns the low n words of the two's-complement form of x.
func (a *Arith) pattern(x *Int, n int) bn.Vector {
	if x.sign == Negative {
		return a.digits.Neg(x.mag, n)
	}
	return x.mag
}

func (a *Arith) bitwise(op bitOp, x, y *Int) (*Int, error) {
	// One extra word holds the sign bit of both operands.
	n := max(len(x.mag), len(y.mag)) + 1
	if err := a.reserve(op.name(), n); err != nil {
		return nil, err
	}
	px, py := a.pattern(x, n), a.pattern(y, n)
	var z bn.Vector
	switch op {
	case opAnd:
		z = a.digits.And(px, py)
	case opOr:
		z = a.digits.Or(px, py)
	default:
		z = a.digits.Xor(px, py)
	}
	if op.apply(x.sign == Negative, y.sign == Negative) {
		return makeInt(true, a.digits.Neg(z, n)), nil
	}
	return makeInt(false, z), nil
}

// And returns x & y.
func (a *Arith) And(x, y *Int) (*Int, error) { return a.bitwise(opAnd, x, y) }

// Or returns x | y.
func (a *Arith) Or(x, y *Int) (*Int, error) { return a.bitwise(opOr, x, y) }

// Xor returns x ^ y.
func (a *Arith) Xor(x, y *Int) (*Int, error) { return a.bitwise(opXor, x, y) }

// Not returns ^x, which equals -x - 1.
func (a *Arith) Not(x *Int) (*Int, error) {
	switch x.sign {
	case Zero:
		return FromInt64(-1), nil
	case Negative:
		return makeInt(false, a.digits.Sub(x.mag, vecOne)), nil
	}
	if err := a.reserve("Not", len(x.mag)+1); err != nil {
		return nil, err
	}
	return makeInt(true, a.digits.Add(x.mag, vecOne)), nil
}

func (a *Arith) notThen(f func(x, y *Int) (*Int, error), x, y *Int) (*Int, error) {
	z, err := f(x, y)
	if err != nil {
		return nil, err
	}
	return a.Not(z)
}

// Nand returns ^(x & y).
func (a *Arith) Nand(x, y *Int) (*Int, error) { return a.notThen(a.And, x, y) }

// Nor returns ^(x | y).
func (a *Arith) Nor(x, y *Int) (*Int, error) { return a.notThen(a.Or, x, y) }

// Eqv returns ^(x ^ y), the bitwise equivalence of x and y.
func (a *Arith) Eqv(x, y *Int) (*Int, error) { return a.notThen(a.Xor, x, y) }

// AndC1 returns ^x & y.
func (a *Arith) AndC1(x, y *Int) (*Int, error) {
	nx, err := a.Not(x)
	if err != nil {
		return nil, err
	}
	return a.And(nx, y)
}

// AndC2 returns x & ^y.
func (a *Arith) AndC2(x, y *Int) (*Int, error) {
	ny, err := a.Not(y)
	if err != nil {
		return nil, err
	}
	return a.And(x, ny)
}

// OrC1 returns ^x | y.
func (a *Arith) OrC1(x, y *Int) (*Int, error) {
	nx, err := a.Not(x)
	if err != nil {
		return nil, err
	}
	return a.Or(nx, y)
}

// OrC2 returns x | ^y.
func (a *Arith) OrC2(x, y *Int) (*Int, error) {
	ny, err := a.Not(y)
	if err != nil {
		return nil, err
	}
	return a.Or(x, ny)
}

// TestBit returns bit i of the two's-complement form of x. Bits past the
// length of a negative value are 1.
func (a *Arith) TestBit(x *Int, i uint) uint {
	switch x.sign {
	case Zero:
		return 0
	case Positive:
		return a.digits.Bit(x.mag, i)
	}
	// The pattern of -m is the complement of m-1.
	return 1 - a.digits.Bit(a.digits.Sub(x.mag, vecOne), i)
}

// BitCount returns the number of one bits of a non-negative x, or the number
// of zero bits of a negative x.
func (a *Arith) BitCount(x *Int) int {
	if x.sign == Negative {
		return a.digits.PopCount(a.digits.Sub(x.mag, vecOne))
	}
	return a.digits.PopCount(x.mag)
}

// Ash shifts x arithmetically: left by n bits when n > 0 and right by -n
// bits when n < 0. A right shift is the floored division by 2**-n, so
// negative values round toward negative infinity.
func (a *Arith) Ash(x *Int, n int) (*Int, error) {
	switch {
	case x.sign == Zero || n == 0:
		return x, nil
	case n > 0:
		s := uint(n)
		if err := a.reserve("Ash", len(x.mag)+int(s/bn.WordBits)+1); err != nil {
			return nil, err
		}
		if len(x.mag) == 1 && x.mag[0] == 1 {
			return makeInt(x.sign == Negative, bn.PowerOfTwo(s)), nil
		}
		return makeInt(x.sign == Negative, a.digits.Shl(x.mag, s)), nil
	}
	s := uint(-n)
	if x.sign == Positive {
		return makeInt(false, a.digits.Shr(x.mag, s)), nil
	}
	// floor(-m / 2**s) == -((m-1) >> s) - 1
	m := a.digits.Shr(a.digits.Sub(x.mag, vecOne), s)
	return makeInt(true, a.digits.Add(m, vecOne)), nil
}
