package tui

// Series keeps the most recent samples of a gauge, oldest first.
type Series struct {
	samples []uint64
	limit   int
}

// NewSeries returns a series that keeps at most limit samples.
func NewSeries(limit int) *Series {
	return &Series{limit: max(limit, 1)}
}

// Push appends v, dropping the oldest sample when the series is full.
func (s *Series) Push(v uint64) {
	if len(s.samples) == s.limit {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:s.limit-1]
	}
	s.samples = append(s.samples, v)
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.samples) }

// Limit returns the maximum number of samples.
func (s *Series) Limit() int { return s.limit }

// Values returns the samples, oldest first. The slice must not be modified.
func (s *Series) Values() []uint64 { return s.samples }

// SetLimit changes the maximum number of samples, keeping the newest.
func (s *Series) SetLimit(limit int) {
	s.limit = max(limit, 1)
	if n := len(s.samples); n > s.limit {
		s.samples = append([]uint64(nil), s.samples[n-s.limit:]...)
	}
}

// Clear drops every sample.
func (s *Series) Clear() { s.samples = s.samples[:0] }

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// level scales v against peak into [0, steps-1].
func level(v, peak uint64, steps int) int {
	if peak == 0 || v == 0 {
		return 0
	}
	if v >= peak {
		return steps - 1
	}
	return int(float64(v) / float64(peak) * float64(steps-1))
}

// Sparkline renders one block character per value, scaled against peak.
func Sparkline(values []uint64, peak uint64) string {
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = sparkRunes[level(v, peak, len(sparkRunes))]
	}
	return string(out)
}

// brailleBits[row][col] is the dot of a braille cell, rows top to bottom.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// BrailleChart renders values as an area chart of rows lines and width
// cells. Every cell holds two samples and four dot rows; the newest sample
// is on the right and older samples that do not fit are dropped.
func BrailleChart(values []uint64, peak uint64, width, rows int) []string {
	if width <= 0 || rows <= 0 {
		return nil
	}
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, width)
		for c := range cells[r] {
			cells[r][c] = 0x2800
		}
	}

	dots := rows * 4
	cols := width * 2
	if len(values) > cols {
		values = values[len(values)-cols:]
	}
	offset := cols - len(values)
	for i, v := range values {
		x := offset + i
		height := level(v, peak, dots+1)
		for y := dots - height; y < dots; y++ {
			cells[y/4][x/2] |= brailleBits[y%4][x%2]
		}
	}

	lines := make([]string, rows)
	for r := range cells {
		lines[r] = string(cells[r])
	}
	return lines
}
