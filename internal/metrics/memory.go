// Package metrics measures the runtime and the results of evaluations for
// the dashboard and the HTTP health endpoint.
package metrics

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/agbru/bigcalc/internal/format"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by live objects
	HeapSys     uint64 // bytes obtained from the OS for the heap
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // allocated heap objects
	// Limit is the soft memory limit (GOMEMLIMIT), or 0 when unset.
	Limit uint64
}

// LimitFraction returns HeapAlloc as a fraction of Limit, or 0 without a
// limit.
func (s MemorySnapshot) LimitFraction() float64 {
	if s.Limit == 0 {
		return 0
	}
	return float64(s.HeapAlloc) / float64(s.Limit)
}

// String renders the heap usage, e.g. "12 MiB / 1.0 GiB".
func (s MemorySnapshot) String() string {
	if s.Limit == 0 {
		return format.FormatBytes(s.HeapAlloc)
	}
	return format.FormatBytes(s.HeapAlloc) + " / " + format.FormatBytes(s.Limit)
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snap := MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapSys:     m.HeapSys,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
	if limit := debug.SetMemoryLimit(-1); limit > 0 && limit != math.MaxInt64 {
		snap.Limit = uint64(limit)
	}
	return snap
}
