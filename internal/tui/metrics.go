package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// heapHistory is the number of heap samples kept for the sparkline.
const heapHistory = 120

// MetricsModel displays runtime memory, host usage and the indicators of
// the last result.
type MetricsModel struct {
	mem          metrics.MemorySnapshot
	numGoroutine int
	system       sysmon.Stats
	heap         *Series
	peakHeap     uint64
	indicators   *metrics.Indicators
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{heap: NewSeries(heapHistory)}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.heap.SetLimit(max(2*(w-4), 1))
}

// UpdateMemStats records a memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg.MemorySnapshot
	m.numGoroutine = msg.NumGoroutine
	m.system = msg.System
	m.peakHeap = max(m.peakHeap, msg.HeapAlloc)
	m.heap.Push(msg.HeapAlloc)
}

// UpdateIndicators stores the indicators of the last result.
func (m *MetricsModel) UpdateIndicators(ind *metrics.Indicators) {
	m.indicators = ind
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 10)
	rows := []string{
		formatMetricCol("Heap:", m.mem.String(), colWidth) +
			formatMetricCol("Peak:", format.FormatBytes(m.peakHeap), colWidth),
		formatMetricCol("GC cycles:", fmt.Sprintf("%d", m.mem.NumGC), colWidth) +
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol("CPU:", m.system.CPU(), colWidth) +
			formatMetricCol("System:", m.system.Memory(), colWidth),
	}
	if m.mem.Limit > 0 {
		rows = append(rows, formatMetricCol("Limit used:", fmt.Sprintf("%.1f%%", m.mem.LimitFraction()*100), colWidth))
	}
	if ind := m.indicators; ind != nil {
		rows = append(rows,
			formatMetricCol("Bits:", format.FormatCount(ind.ResultBits), colWidth)+
				formatMetricCol("Digits:", format.FormatCount(ind.ResultDigits), colWidth),
			formatMetricCol("Bits/s:", metrics.FormatBitsPerSecond(ind.BitsPerSecond), colWidth)+
				formatMetricCol("Digits/s:", metrics.FormatDigitsPerSecond(ind.DigitsPerSecond), colWidth),
		)
	}

	chartWidth := max(m.width-4, 1)
	if chartRows := m.height - 2 - len(rows) - 1; chartRows >= 2 {
		rows = append(rows, metricLabelStyle.Render(" Heap history"))
		for _, line := range BrailleChart(m.heap.Values(), m.peakHeap, chartWidth, chartRows) {
			rows = append(rows, " "+chartStyle.Render(line))
		}
	} else if m.heap.Len() > 0 {
		rows = append(rows, " "+chartStyle.Render(Sparkline(lastN(m.heap.Values(), chartWidth), m.peakHeap)))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(strings.Join(rows, "\n"))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

// lastN returns the newest n values.
func lastN(values []uint64, n int) []uint64 {
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}
