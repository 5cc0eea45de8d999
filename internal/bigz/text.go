package bigz

import (
	"fmt"
	"strings"
)

// String returns the decimal text of x.
func (x *Int) String() string {
	return x.Text(10)
}

// Text returns the text of x in base with lowercase letters. It panics if
// base is outside [MinBase, MaxBase].
func (x *Int) Text(base int) string {
	s, err := defaultArith.ToString(x, base, SignNegative)
	if err != nil {
		panic(err)
	}
	return s
}

// Format implements fmt.Formatter. It accepts the verbs 'b', 'o', 'd',
// 'x', 'X', 's' and 'v', the flags '+', '#', '-' and '0', and a width.
func (x *Int) Format(s fmt.State, ch rune) {
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}
	var base int
	switch ch {
	case 'b':
		base = 2
	case 'o', 'O':
		base = 8
	case 'd', 's', 'v':
		base = 10
	case 'x', 'X':
		base = 16
	default:
		fmt.Fprintf(s, "%%!%c(bigz.Int=%s)", ch, x.String())
		return
	}

	var sign string
	switch {
	case x.sign == Negative:
		sign = "-"
	case x.sign == Positive && s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}
	var prefix string
	if s.Flag('#') || ch == 'O' {
		switch ch {
		case 'b':
			prefix = "0b"
		case 'o':
			prefix = "0"
		case 'O':
			prefix = "0o"
		case 'x', 'X':
			prefix = "0x"
		}
	}
	digits := string(defaultArith.appendDigits(nil, x.mag, base))
	if ch == 'X' {
		digits = strings.ToUpper(digits)
		prefix = strings.ToUpper(prefix)
	}

	body := len(sign) + len(prefix) + len(digits)
	pad := 0
	if w, ok := s.Width(); ok && w > body {
		pad = w - body
	}
	switch {
	case s.Flag('-'):
		fmt.Fprint(s, sign, prefix, digits, strings.Repeat(" ", pad))
	case s.Flag('0'):
		fmt.Fprint(s, sign, prefix, strings.Repeat("0", pad), digits)
	default:
		fmt.Fprint(s, strings.Repeat(" ", pad), sign, prefix, digits)
	}
}

// MarshalText implements encoding.TextMarshaler using decimal text.
func (x *Int) MarshalText() ([]byte, error) {
	return defaultArith.AppendString(nil, x, 10, SignNegative)
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the decimal
// text produced by MarshalText.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := defaultArith.FromString(string(text), 10, Strict)
	if err != nil {
		return err
	}
	*x = *v
	return nil
}
