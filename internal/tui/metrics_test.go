package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	m := NewMetricsModel()

	m.UpdateMemStats(MemStatsMsg{
		MemorySnapshot: metrics.MemorySnapshot{HeapAlloc: 50 << 20, NumGC: 10},
		NumGoroutine:   8,
	})
	m.UpdateMemStats(MemStatsMsg{
		MemorySnapshot: metrics.MemorySnapshot{HeapAlloc: 20 << 20, NumGC: 11},
		NumGoroutine:   6,
	})

	if m.mem.HeapAlloc != 20<<20 {
		t.Errorf("HeapAlloc = %d, want %d", m.mem.HeapAlloc, 20<<20)
	}
	if m.peakHeap != 50<<20 {
		t.Errorf("peakHeap = %d, want %d", m.peakHeap, 50<<20)
	}
	if m.numGoroutine != 6 {
		t.Errorf("numGoroutine = %d, want 6", m.numGoroutine)
	}
	if m.heap.Len() != 2 {
		t.Errorf("heap samples = %d, want 2", m.heap.Len())
	}
}

func TestMetricsModel_HeapHistoryFollowsWidth(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(14, 10)
	for v := uint64(1); v <= 50; v++ {
		m.UpdateMemStats(MemStatsMsg{MemorySnapshot: metrics.MemorySnapshot{HeapAlloc: v}})
	}

	// Two samples per braille cell over width-4 cells.
	if m.heap.Len() != 20 {
		t.Errorf("heap samples = %d, want 20", m.heap.Len())
	}
	if got := lastN(m.heap.Values(), 5); len(got) != 5 || got[4] != 50 {
		t.Errorf("lastN = %v", got)
	}
}

func TestMetricsModel_View(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(60, 20)
	m.UpdateMemStats(MemStatsMsg{
		MemorySnapshot: metrics.MemorySnapshot{HeapAlloc: 3 << 20, NumGC: 4},
		NumGoroutine:   7,
		System:         sysmon.Stats{CPUPercent: 42, MemPercent: 50, MemUsed: 1 << 30, MemTotal: 2 << 30},
	})
	m.UpdateIndicators(metrics.Compute("1267650600228229401496703205376", 10, time.Millisecond))

	view := m.View()
	for _, want := range []string{"Heap:", "Peak:", "GC cycles:", "Goroutines:", "CPU:", "42.0%", "System:", "Bits:", "101", "Digits:", "31", "Heap history"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMetricsModel_View_Small(t *testing.T) {
	m := NewMetricsModel()
	m.SetSize(40, 6)
	m.UpdateMemStats(MemStatsMsg{MemorySnapshot: metrics.MemorySnapshot{HeapAlloc: 1 << 20}})

	view := m.View()
	if strings.Contains(view, "Heap history") {
		t.Error("small panel should fall back to the sparkline")
	}
	if strings.Contains(view, "Bits:") {
		t.Error("indicators shown before any result")
	}
}

func TestFormatMetricCol_Pads(t *testing.T) {
	cell := formatMetricCol("Heap:", "1 MiB", 30)
	if w := len([]rune(stripANSI(cell))); w < 30 {
		t.Errorf("cell width = %d, want at least 30", w)
	}
}

// stripANSI removes escape sequences so widths can be compared.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
