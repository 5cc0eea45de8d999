package bigz

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"

	"github.com/agbru/bigcalc/internal/bn"
)

// toBig converts x to a *big.Int through its words, independent of the
// text conversions under test.
func toBig(x *Int) *big.Int {
	z := new(big.Int)
	for i := len(x.mag) - 1; i >= 0; i-- {
		z.Lsh(z, 64)
		z.Or(z, new(big.Int).SetUint64(uint64(x.mag[i])))
	}
	if x.sign == Negative {
		z.Neg(z)
	}
	return z
}

// fromBig converts b to an Int through its words.
func fromBig(b *big.Int) *Int {
	m := new(big.Int).Abs(b)
	mask := new(big.Int).SetUint64(^uint64(0))
	var mag bn.Vector
	for m.Sign() > 0 {
		mag = append(mag, bn.Word(new(big.Int).And(m, mask).Uint64()))
		m.Rsh(m, 64)
	}
	return makeInt(b.Sign() < 0, mag)
}

// fromWords builds a signed Int from generated words.
func fromWords(words []uint64, neg bool) *Int {
	mag := make(bn.Vector, len(words))
	for i, w := range words {
		mag[i] = bn.Word(w)
	}
	return makeInt(neg, mag)
}

func mustParse(t testing.TB, s string) *Int {
	t.Helper()
	z, err := Default().FromString(s, 10, Strict)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	return z
}

// checkInvariant fails when x breaks the sign-magnitude invariant.
func checkInvariant(t testing.TB, x *Int) {
	t.Helper()
	if len(x.mag) > 0 && x.mag[len(x.mag)-1] == 0 {
		t.Fatalf("magnitude not normalized: %v", x.mag)
	}
	if (x.sign == Zero) != (len(x.mag) == 0) {
		t.Fatalf("sign %v does not match magnitude %v", x.sign, x.mag)
	}
}

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 48
	return parameters
}
