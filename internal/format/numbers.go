package format

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// groupSeparator is the thousands separator of printer's locale.
var groupSeparator = func() string {
	s := printer.Sprintf("%d", 1000)
	return strings.Trim(s, "10")
}()

// FormatCount formats an integer count with thousands separators,
// e.g. 1234567 becomes "1,234,567".
func FormatCount[T ~int | ~int64 | ~uint64](n T) string {
	return printer.Sprintf("%d", n)
}

// FormatNumberString inserts thousands separators into a decimal digit
// string. A leading sign is kept. Strings of any length are accepted.
//
// Parameters:
//   - s: The decimal digits, optionally signed.
//
// Returns:
//   - string: The grouped representation.
func FormatNumberString(s string) string {
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3*len(groupSeparator))
	b.WriteString(sign)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteString(groupSeparator)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens s to its first and last edge characters joined by
// "...", when s is longer than limit. A leading sign is not counted.
func TruncateDigits(s string, limit, edge int) (string, bool) {
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= limit || 2*edge >= len(s) {
		return sign + s, false
	}
	return sign + s[:edge] + "..." + s[len(s)-edge:], true
}

// FormatBytes renders a byte count with binary units, e.g. "1.5 MiB".
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}
