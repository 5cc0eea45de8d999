package orchestration

import "time"

// ProgressAggregator tracks which evaluators of a run are still busy. Both
// the CLI spinner and the TUI use it to avoid duplicating the bookkeeping.
type ProgressAggregator struct {
	names   []string
	running []bool
	done    int
	started time.Time
}

// NewProgressAggregator creates a new aggregator for the given number
// of evaluators. Returns nil if numEvaluators <= 0.
func NewProgressAggregator(numEvaluators int) *ProgressAggregator {
	if numEvaluators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		names:   make([]string, numEvaluators),
		running: make([]bool, numEvaluators),
		started: time.Now(),
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// EvaluatorIndex is the index of the evaluator that sent the update.
	EvaluatorIndex int
	// Name is the evaluator name.
	Name string
	// Finished reports whether this update marks the evaluator as done.
	Finished bool
	// Done is the number of evaluators that have returned.
	Done int
	// Fraction is Done over the number of evaluators.
	Fraction float64
}

// Update processes a single progress update and returns the aggregated
// state. Updates with an out-of-range index are ignored.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	i := update.EvaluatorIndex
	if i >= 0 && i < len(a.names) {
		a.names[i] = update.Name
		switch {
		case update.Value >= 1 && a.running[i]:
			a.running[i] = false
			a.done++
		case update.Value < 1 && !a.running[i]:
			a.running[i] = true
		}
	}
	return AggregatedProgress{
		EvaluatorIndex: i,
		Name:           update.Name,
		Finished:       update.Value >= 1,
		Done:           a.done,
		Fraction:       a.Fraction(),
	}
}

// Done returns the number of evaluators that have returned.
func (a *ProgressAggregator) Done() int {
	return a.done
}

// Fraction returns the share of evaluators that have returned.
func (a *ProgressAggregator) Fraction() float64 {
	return float64(a.done) / float64(len(a.names))
}

// Running returns the names of the evaluators still in progress, in run
// order.
func (a *ProgressAggregator) Running() []string {
	var names []string
	for i, r := range a.running {
		if r {
			names = append(names, a.names[i])
		}
	}
	return names
}

// Elapsed returns the time since the aggregator was created.
func (a *ProgressAggregator) Elapsed() time.Duration {
	return time.Since(a.started)
}

// NumEvaluators returns the number of evaluators being tracked.
func (a *ProgressAggregator) NumEvaluators() int {
	return len(a.names)
}

// IsMultiEvaluator returns true if tracking more than one evaluator.
func (a *ProgressAggregator) IsMultiEvaluator() bool {
	return len(a.names) > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
