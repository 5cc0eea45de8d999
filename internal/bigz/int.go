package bigz

import (
	"strconv"

	"github.com/agbru/bigcalc/internal/bn"
)

// Sign is the sign tag of an Int.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "negative"
	case Zero:
		return "zero"
	case Positive:
		return "positive"
	}
	return "Sign(" + strconv.Itoa(int(s)) + ")"
}

// Int is an arbitrary-precision signed integer. The zero value is 0.
//
// The magnitude is normalized, and the sign is Zero exactly when the
// magnitude is empty. Values are never modified after construction, so an
// Int may be shared freely between goroutines.
type Int struct {
	sign Sign
	mag  bn.Vector
}

var (
	intOne = &Int{sign: Positive, mag: bn.Vector{1}}
	vecOne = bn.Vector{1}
)

// makeInt builds an Int from a magnitude, restoring the sign invariant.
func makeInt(neg bool, mag bn.Vector) *Int {
	mag = mag.Norm()
	switch {
	case len(mag) == 0:
		return &Int{}
	case neg:
		return &Int{sign: Negative, mag: mag}
	}
	return &Int{sign: Positive, mag: mag}
}

// FromInt64 returns the Int holding v.
func FromInt64(v int64) *Int {
	if v < 0 {
		// -v wraps for MinInt64, and uint64 of the wrapped value is 2**63.
		return makeInt(true, bn.FromUint64(uint64(-v)))
	}
	return makeInt(false, bn.FromUint64(uint64(v)))
}

// FromUint64 returns the Int holding v.
func FromUint64(v uint64) *Int {
	return makeInt(false, bn.FromUint64(v))
}

// Sign returns the sign of x.
func (x *Int) Sign() Sign { return x.sign }

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.sign == Zero }

// IsEven reports whether x is even. Zero is even.
func (x *Int) IsEven() bool { return len(x.mag) == 0 || x.mag[0]&1 == 0 }

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool { return !x.IsEven() }

// NumWords returns the number of significant words in the magnitude of x.
func (x *Int) NumWords() int { return len(x.mag) }

// BitLen returns the length of |x| in bits. The bit length of 0 is 0.
func (x *Int) BitLen() int { return bn.Default().BitLen(x.mag) }

// Copy returns an Int equal to x that shares no memory with it.
func (x *Int) Copy() *Int {
	return &Int{sign: x.sign, mag: x.mag.Clone()}
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	return &Int{sign: -x.sign, mag: x.mag}
}

// Abs returns |x|.
func (x *Int) Abs() *Int {
	if x.sign == Negative {
		return &Int{sign: Positive, mag: x.mag}
	}
	return x
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.sign < y.sign:
		return -1
	case x.sign > y.sign:
		return 1
	case x.sign == Zero:
		return 0
	}
	c := bn.Default().Cmp(x.mag, y.mag)
	if x.sign == Negative {
		return -c
	}
	return c
}

// CmpAbs compares |x| and |y| and returns -1, 0 or +1.
func (x *Int) CmpAbs(y *Int) int {
	return bn.Default().Cmp(x.mag, y.mag)
}

// Compare is the function form of x.Cmp(y), usable with slices.SortFunc.
func Compare(x, y *Int) int { return x.Cmp(y) }

// IsOne reports whether x == 1.
func (x *Int) IsOne() bool {
	return x.sign == Positive && len(x.mag) == 1 && x.mag[0] == 1
}
