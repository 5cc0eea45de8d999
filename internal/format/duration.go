package format

import (
	"strconv"
	"time"
)

var durationUnits = []struct {
	size   time.Duration
	suffix string
}{
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "µs"},
	{time.Nanosecond, "ns"},
}

// FormatExecutionDuration prints d with three significant digits in the
// largest unit below it ("1.25ms", "12.5µs", "842ns"). From one minute
// on, d is rounded to the second and printed by time.Duration.String.
func FormatExecutionDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d >= time.Minute {
		return d.Round(time.Second).String()
	}
	for _, u := range durationUnits {
		if d < u.size && u.size != time.Nanosecond {
			continue
		}
		whole := d / u.size
		prec := 0
		switch {
		case u.size == time.Nanosecond:
		case whole < 10:
			prec = 2
		case whole < 100:
			prec = 1
		}
		return strconv.FormatFloat(float64(d)/float64(u.size), 'f', prec, 64) + u.suffix
	}
	return d.String()
}
