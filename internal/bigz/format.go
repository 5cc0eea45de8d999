package bigz

import (
	"github.com/agbru/bigcalc/internal/bn"
)

// SignMode controls the sign prefix of formatted text.
type SignMode int

const (
	// SignNegative writes '-' for negative values only.
	SignNegative SignMode = iota
	// SignAlways also writes '+' for positive values. Zero never gets a sign.
	SignAlways
)

// StringLen returns an upper bound on the length of the text of x in base,
// sign included. It returns 0 for an invalid base.
func StringLen(x *Int, base int) int {
	if !validBase(base) {
		return 0
	}
	return maxDigits(x.BitLen(), base) + 1
}

// maxDigits bounds the number of digits in base of a magnitude of bitLen
// bits.
func maxDigits(bitLen, base int) int {
	return int(float64(bitLen)/radixTable[base].log2) + 1
}

// ToString returns the text of x in base, with digits above 9 written as
// lowercase letters.
func (a *Arith) ToString(x *Int, base int, mode SignMode) (string, error) {
	b, err := a.appendText("ToString", nil, x, base, mode)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendString appends the text of x in base to dst and returns the
// extended buffer.
func (a *Arith) AppendString(dst []byte, x *Int, base int, mode SignMode) ([]byte, error) {
	return a.appendText("AppendString", dst, x, base, mode)
}

// FormatInto writes the text of x in base into buf and returns the number
// of bytes written. When buf is too small it writes nothing and returns the
// size required along with ErrShortBuffer.
func (a *Arith) FormatInto(buf []byte, x *Int, base int, mode SignMode) (int, error) {
	if n := StringLen(x, base); n > 0 && n <= len(buf) {
		text, err := a.appendText("FormatInto", buf[:0], x, base, mode)
		return len(text), err
	}
	var scratch [64]byte
	text, err := a.appendText("FormatInto", scratch[:0], x, base, mode)
	if err != nil {
		return 0, err
	}
	if len(text) > len(buf) {
		return len(text), opError("FormatInto", ErrShortBuffer)
	}
	return copy(buf, text), nil
}

func (a *Arith) appendText(op string, dst []byte, x *Int, base int, mode SignMode) ([]byte, error) {
	if !validBase(base) {
		return dst, opError(op, ErrBase)
	}
	switch {
	case x.sign == Negative:
		dst = append(dst, '-')
	case x.sign == Positive && mode == SignAlways:
		dst = append(dst, '+')
	}
	return a.appendDigits(dst, x.mag, base), nil
}

// appendDigits converts mag by repeated division by the largest power of
// base that fits in a word, so each division yields a full chunk of digits.
func (a *Arith) appendDigits(dst []byte, mag bn.Vector, base int) []byte {
	if len(mag) == 0 {
		return append(dst, '0')
	}
	rx := radixTable[base]
	b := bn.Word(base)
	s := make([]byte, maxDigits(a.digits.BitLen(mag), base)+rx.digits)
	i := len(s)
	q := mag
	for len(q) > 0 {
		var r bn.Word
		q, r = a.digits.DivWord(q, rx.value)
		q = q.Norm()
		if len(q) == 0 {
			for r > 0 {
				i--
				s[i] = digitChars[r%b]
				r /= b
			}
			break
		}
		// Inner chunks keep their leading zeros.
		for range rx.digits {
			i--
			s[i] = digitChars[r%b]
			r /= b
		}
	}
	return append(dst, s[i:]...)
}
