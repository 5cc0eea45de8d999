package bigz

import (
	"github.com/agbru/bigcalc/internal/bn"
)

// ParseMode controls how FromString treats a byte that is not a digit.
type ParseMode int

const (
	// Strict rejects the whole input when any byte after the sign is not a
	// digit of the base, or when there are no digits at all.
	Strict ParseMode = iota
	// UntilInvalid stops at the first non-digit and returns the value of the
	// digits read so far, which is 0 when there are none.
	UntilInvalid
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// FromString parses s in base. Leading whitespace and one optional '+' or
// '-' are accepted; digits above 9 may be either case.
func (a *Arith) FromString(s string, base int, mode ParseMode) (*Int, error) {
	z, _, err := a.parse(s, base, mode)
	return z, err
}

// ParsePrefix parses the longest valid prefix of s as FromString does in
// UntilInvalid mode and also returns the number of bytes consumed.
func (a *Arith) ParsePrefix(s string, base int) (*Int, int, error) {
	return a.parse(s, base, UntilInvalid)
}

func (a *Arith) parse(s string, base int, mode ParseMode) (*Int, int, error) {
	const op = "FromString"
	if !validBase(base) {
		return nil, 0, opError(op, ErrBase)
	}
	syntaxErr := func() error { return &NumError{Op: op, Input: s, Err: ErrSyntax} }

	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && int(digitValue[s[i]]) < base {
		i++
	}
	if i < len(s) && mode == Strict {
		return nil, 0, syntaxErr()
	}
	if i == start {
		if mode == Strict {
			return nil, 0, syntaxErr()
		}
		return &Int{}, i, nil
	}

	bitsNeeded := float64(i-start) * radixTable[base].log2
	if err := a.reserve(op, int(bitsNeeded/bn.WordBits)+1); err != nil {
		return nil, 0, err
	}
	return makeInt(neg, a.accumulate(s[start:i], base)), i, nil
}

// accumulate converts a run of valid digits, folding them into one word at a
// time before scaling the running value.
func (a *Arith) accumulate(digits string, base int) bn.Vector {
	rx := radixTable[base]
	b := bn.Word(base)
	var z bn.Vector
	var w, scale bn.Word = 0, 1
	for k := 0; k < len(digits); k++ {
		w = w*b + bn.Word(digitValue[digits[k]])
		scale *= b
		if scale == rx.value {
			z = a.digits.MulAddWord(z, scale, w)
			w, scale = 0, 1
		}
	}
	if scale > 1 {
		z = a.digits.MulAddWord(z, scale, w)
	}
	return z
}
