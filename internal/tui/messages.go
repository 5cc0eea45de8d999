package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// ProgressMsg reports that an evaluator started or finished.
type ProgressMsg struct {
	orchestration.AggregatedProgress
	Total int
}

// EvalCompleteMsg carries the outcome of one submitted request.
type EvalCompleteMsg struct {
	Request  engine.Request
	Results  []orchestration.EvaluationResult
	Final    *orchestration.EvaluationResult
	Err      error
	ExitCode int
	// Generation identifies the submission; stale results are ignored.
	Generation uint64
}

// IndicatorsMsg carries the indicators computed for a final result.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
	Generation uint64
}

// MemStatsMsg carries a runtime memory sample and a host usage sample.
type MemStatsMsg struct {
	metrics.MemorySnapshot
	NumGoroutine int
	System       sysmon.Stats
}

// TickMsg drives the periodic memory sampling.
type TickMsg time.Time

// ContextCancelledMsg reports that the parent context ended.
type ContextCancelledMsg struct {
	Err error
}
