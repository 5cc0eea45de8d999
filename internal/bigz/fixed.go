package bigz

import (
	"math"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/bn"
)

// ToInt64 returns x as an int64. Any x outside the int64 range, whatever
// its sign, saturates to MaxInt64. ClampInt64 is the sign-aware variant.
func (x *Int) ToInt64() int64 {
	if v, ok := x.Int64(); ok {
		return v
	}
	return math.MaxInt64
}

// ClampInt64 returns x clamped to the int64 range: values above MaxInt64
// become MaxInt64 and values below MinInt64 become MinInt64.
func (x *Int) ClampInt64() int64 {
	v, ok := x.Int64()
	switch {
	case ok:
		return v
	case x.sign == Negative:
		return math.MinInt64
	}
	return math.MaxInt64
}

// Int64 returns x as an int64 and reports whether the conversion was exact.
func (x *Int) Int64() (int64, bool) {
	switch {
	case x.sign == Zero:
		return 0, true
	case len(x.mag) > 1:
		return 0, false
	}
	m := uint64(x.mag[0])
	if x.sign == Negative {
		if m == 1<<63 {
			return math.MinInt64, true
		}
		v, err := safecast.Conv[int64](m)
		return -v, err == nil
	}
	v, err := safecast.Conv[int64](m)
	return v, err == nil
}

// ToUint64 returns the magnitude of x as a uint64. A magnitude of more
// than one word saturates to MaxUint64. ClampUint64 is the sign-aware
// variant.
func (x *Int) ToUint64() uint64 {
	switch {
	case x.sign == Zero:
		return 0
	case len(x.mag) > 1:
		return math.MaxUint64
	}
	return uint64(x.mag[0])
}

// ClampUint64 returns x clamped to the uint64 range: negative values
// become 0 and values above MaxUint64 become MaxUint64.
func (x *Int) ClampUint64() uint64 {
	v, ok := x.Uint64()
	switch {
	case ok:
		return v
	case x.sign == Negative:
		return 0
	}
	return math.MaxUint64
}

// Uint64 returns x as a uint64 and reports whether the conversion was exact.
func (x *Int) Uint64() (uint64, bool) {
	switch {
	case x.sign == Zero:
		return 0, true
	case x.sign == Negative || len(x.mag) > 1:
		return 0, false
	}
	return uint64(x.mag[0]), true
}

// FromWords returns the non-negative Int whose magnitude is a copy of v.
func (a *Arith) FromWords(v bn.Vector) (*Int, error) {
	v = v.Norm()
	if err := a.reserve("FromWords", len(v)); err != nil {
		return nil, err
	}
	return makeInt(false, v.Clone()), nil
}

// ToWords returns a copy of the magnitude of a non-negative x.
func (a *Arith) ToWords(x *Int) (bn.Vector, error) {
	if x.sign == Negative {
		return nil, opError("ToWords", ErrNegativeValue)
	}
	return x.mag.Clone(), nil
}
