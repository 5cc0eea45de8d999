package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
)

// EvaluationResult encapsulates the outcome of one evaluator on one request.
// It serves as the shared domain type between orchestration and presentation layers.
type EvaluationResult struct {
	// Name is the evaluator name (e.g., "bigz").
	Name string
	// Result is the formatted result. It is empty if an error occurred.
	Result string
	// Digest is the xxhash of Result, used to compare evaluators cheaply.
	Digest uint64
	// Duration is the time taken by the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressUpdate reports a state change of one evaluator.
type ProgressUpdate struct {
	// EvaluatorIndex is the position of the evaluator in the run.
	EvaluatorIndex int
	// Name is the evaluator name.
	Name string
	// Value is 0 when the evaluator starts and 1 when it returns.
	Value float64
}

// ProgressReporter defines the interface for displaying evaluation progress.
// Implementations handle the visual representation of progress (spinners,
// status lines, etc.) while the orchestration layer coordinates evaluators.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from evaluators.
	//   - numEvaluators: The number of concurrent evaluators being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEvaluators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEvaluators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numEvaluators int, out io.Writer) {
	f(wg, progressChan, numEvaluators, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting evaluation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)

	// PresentResult displays the agreed result of req.
	PresentResult(result EvaluationResult, req engine.Request, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Presenter is everything AnalyzeComparisonResults needs from the
// presentation layer.
type Presenter interface {
	ResultPresenter
	ErrorHandler
}
