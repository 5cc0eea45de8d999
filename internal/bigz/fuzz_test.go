package bigz

import (
	"math/big"
	"testing"
)

// FuzzFromStringVsBigInt checks strict parsing against big.Int.SetString for
// arbitrary text, and the text of every accepted value against big.Int.Text.
func FuzzFromStringVsBigInt(f *testing.F) {
	for _, seed := range []string{"0", "-1", "+42", "  123", "ff", "-zz", "1_000", "", "--1"} {
		f.Add(seed, 16)
		f.Add(seed, 36)
	}

	f.Fuzz(func(t *testing.T, s string, base int) {
		if base < MinBase || base > MaxBase || len(s) > 4096 {
			return
		}
		got, err := Default().FromString(s, base, Strict)

		trimmed := s
		for len(trimmed) > 0 && isSpace(trimmed[0]) {
			trimmed = trimmed[1:]
		}
		want, ok := parseBig(trimmed, base)
		if ok != (err == nil) {
			t.Fatalf("FromString(%q, %d) error = %v, big.Int accepted = %v", s, base, err, ok)
		}
		if !ok {
			return
		}
		checkInvariant(t, got)
		if toBig(got).Cmp(want) != 0 {
			t.Fatalf("FromString(%q, %d) = %v, want %v", s, base, toBig(got), want)
		}
		text, err := Default().ToString(got, base, SignNegative)
		if err != nil || text != want.Text(base) {
			t.Fatalf("ToString = %q, want %q", text, want.Text(base))
		}
	})
}

// parseBig accepts an optional sign followed by at least one digit of base.
func parseBig(s string, base int) (*big.Int, bool) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return nil, false
	}
	for i := 0; i < len(digits); i++ {
		if int(digitValue[digits[i]]) >= base {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, base)
}

// FuzzDivModIdentity checks x == q*y + r for floored division.
func FuzzDivModIdentity(f *testing.F) {
	f.Add([]byte{1, 2, 3}, []byte{7}, false, true)
	f.Add(make([]byte, 64), []byte{0, 1}, true, true)

	f.Fuzz(func(t *testing.T, xb, yb []byte, xn, yn bool) {
		x := new(big.Int).SetBytes(xb)
		y := new(big.Int).SetBytes(yb)
		if xn {
			x.Neg(x)
		}
		if yn {
			y.Neg(y)
		}
		if y.Sign() == 0 {
			return
		}
		q, r, err := Default().DivMod(fromBig(x), fromBig(y))
		if err != nil {
			t.Fatal(err)
		}
		back := new(big.Int).Mul(toBig(q), y)
		back.Add(back, toBig(r))
		if back.Cmp(x) != 0 {
			t.Fatalf("q*y + r = %v, want %v", back, x)
		}
		if r.Sign() != Zero && r.Sign() != Sign(y.Sign()) {
			t.Fatalf("remainder %v has the wrong sign for divisor %v", toBig(r), y)
		}
	})
}
