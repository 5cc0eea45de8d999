package metrics

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/agbru/bigcalc/internal/bigz"
)

// Indicators summarize one result and the speed at which it was produced.
type Indicators struct {
	ResultBits      int
	ResultDigits    int
	Duration        time.Duration
	BitsPerSecond   float64
	DigitsPerSecond float64
}

// Compute measures result, the text of a value in base, evaluated in d.
// It returns nil when result is not a number.
func Compute(result string, base int, d time.Duration) *Indicators {
	x, err := bigz.Default().FromString(result, base, bigz.Strict)
	if err != nil {
		return nil
	}
	ind := &Indicators{
		ResultBits:   x.BitLen(),
		ResultDigits: len(strings.TrimLeft(result, "+-")),
		Duration:     d,
	}
	if secs := d.Seconds(); secs > 0 {
		ind.BitsPerSecond = float64(ind.ResultBits) / secs
		ind.DigitsPerSecond = float64(ind.ResultDigits) / secs
	}
	return ind
}

// FormatBitsPerSecond renders a rate with SI prefixes, e.g. "1.5 Mb/s".
func FormatBitsPerSecond(v float64) string {
	return humanize.SIWithDigits(v, 1, "b/s")
}

// FormatDigitsPerSecond renders a rate with SI prefixes, e.g. "3.2 k/s".
func FormatDigitsPerSecond(v float64) string {
	return humanize.SIWithDigits(v, 1, "/s")
}
