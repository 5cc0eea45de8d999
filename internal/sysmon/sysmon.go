// Package sysmon samples host-wide CPU and memory usage for the dashboard
// and the health endpoint.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/bigcalc/internal/format"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64
	MemTotal   uint64
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields stay zero on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
		s.MemTotal = vmem.Total
	}
	return s
}

// CPU renders the CPU usage, e.g. "12.5%".
func (s Stats) CPU() string {
	return fmt.Sprintf("%.1f%%", s.CPUPercent)
}

// Memory renders the memory usage, e.g. "3.1 GiB / 16 GiB (19%)". It
// returns "n/a" when the sample failed.
func (s Stats) Memory() string {
	if s.MemTotal == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%s / %s (%.0f%%)", format.FormatBytes(s.MemUsed), format.FormatBytes(s.MemTotal), s.MemPercent)
}
