// This file provides the elementary word and word-vector operations.

package bn

import "math/bits"

// Word is a single digit of a magnitude.
type Word uint64

const (
	// WordBits is the number of bits in a Word.
	WordBits = 64
	// WordBytes is the number of bytes in a Word.
	WordBytes = WordBits / 8
	// MaxWord is the largest Word value.
	MaxWord = ^Word(0)
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Operations
// ─────────────────────────────────────────────────────────────────────────────

// mulWW returns the double-word product x*y as (hi, lo).
func mulWW(x, y Word) (hi, lo Word) {
	h, l := bits.Mul64(uint64(x), uint64(y))
	return Word(h), Word(l)
}

// divWW returns the quotient and remainder of (x1<<64 | x0) / y.
// x1 must be smaller than y.
func divWW(x1, x0, y Word) (q, r Word) {
	qq, rr := bits.Div64(uint64(x1), uint64(x0), uint64(y))
	return Word(qq), Word(rr)
}

// greaterThan reports whether the double word (x1, x2) > (y1, y2).
func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}

// nlz returns the number of leading zero bits in x.
func nlz(x Word) uint {
	return uint(bits.LeadingZeros64(uint64(x)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Vector Operations
// ─────────────────────────────────────────────────────────────────────────────
//
// The loops below iterate while i < len(z) and also check len(x) and len(y)
// so the compiler can drop the bounds checks in the body.

// addVV sets z = x + y over len(z) words and returns the carry.
func addVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add64(uint64(x[i]), uint64(y[i]), uint64(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return c
}

// subVV sets z = x - y over len(z) words and returns the borrow.
func subVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub64(uint64(x[i]), uint64(y[i]), uint64(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return c
}

// addVW sets z = x + y and returns the carry.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Add64(uint64(x[i]), uint64(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return c
}

// subVW sets z = x - y and returns the borrow.
func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Sub64(uint64(x[i]), uint64(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return c
}

// shlVU sets z = x << s for 0 <= s < WordBits and returns the bits shifted out.
// z and x may alias.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	s &= WordBits - 1
	ŝ := WordBits - s
	c = x[len(z)-1] >> ŝ
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return c
}

// shrVU sets z = x >> s for 0 <= s < WordBits and returns the bits shifted out.
// z and x may alias.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	s &= WordBits - 1
	ŝ := WordBits - s
	c = x[0] << ŝ
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return c
}

// mulAddVWW sets z = x*y + r and returns the high word.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := 0; i < len(z) && i < len(x); i++ {
		hi, lo := mulWW(x[i], y)
		l, cc := bits.Add64(uint64(lo), uint64(c), 0)
		z[i] = Word(l)
		c = hi + Word(cc)
	}
	return c
}

// addMulVVW sets z += x*y and returns the high word.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		hi, lo := mulWW(x[i], y)
		l, cc := bits.Add64(uint64(lo), uint64(z[i]), 0)
		hi += Word(cc)
		l, cc = bits.Add64(l, uint64(c), 0)
		hi += Word(cc)
		z[i] = Word(l)
		c = hi
	}
	return c
}

// divWVW sets z = (xn<<(64*len(x)) | x) / y and returns the remainder.
// xn must be smaller than y.
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y)
	}
	return r
}
