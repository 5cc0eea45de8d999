package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

// useNoColor disables colors for the duration of the test.
func useNoColor(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

// useMockSpinner replaces the spinner constructor for the duration of the test.
func useMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestDisplayProgress(t *testing.T) {
	mock := useMockSpinner(t)

	progressChan := make(chan orchestration.ProgressUpdate, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 2, &bytes.Buffer{})

	progressChan <- orchestration.ProgressUpdate{EvaluatorIndex: 0, Name: "bigz", Value: 0}
	progressChan <- orchestration.ProgressUpdate{EvaluatorIndex: 1, Name: "stdlib", Value: 0}
	progressChan <- orchestration.ProgressUpdate{EvaluatorIndex: 0, Name: "bigz", Value: 1}
	close(progressChan)
	wg.Wait()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if !mock.started {
		t.Error("Spinner should have been started")
	}
	if !mock.stopped {
		t.Error("Spinner should have been stopped")
	}
	if !strings.Contains(mock.suffix, "1/2 engines done") {
		t.Errorf("Unexpected suffix %q", mock.suffix)
	}
	if !strings.Contains(mock.suffix, "waiting for stdlib") {
		t.Errorf("Suffix %q should name the running engine", mock.suffix)
	}
}

func TestDisplayProgress_NoEvaluators(t *testing.T) {
	mock := useMockSpinner(t)

	progressChan := make(chan orchestration.ProgressUpdate, 1)
	progressChan <- orchestration.ProgressUpdate{}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, progressChan, 0, &bytes.Buffer{})
	wg.Wait()

	if mock.started {
		t.Error("Spinner should not start without evaluators")
	}
	if len(progressChan) != 0 {
		t.Error("Channel should have been drained")
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		full     int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{1.5, 10, 10},
		{-0.5, 10, 0},
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, tt.length)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("progressBar(%v, %d) has %d full cells, want %d", tt.progress, tt.length, got, tt.full)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.length {
			t.Errorf("progressBar(%v, %d) has %d cells, want %d", tt.progress, tt.length, got, tt.length)
		}
	}
}

func TestProgressLine(t *testing.T) {
	t.Parallel()
	agg := orchestration.NewProgressAggregator(3)
	agg.Update(orchestration.ProgressUpdate{EvaluatorIndex: 0, Name: "bigz", Value: 1})

	line := progressLine(agg)
	if !strings.Contains(line, "1/3 engines done") {
		t.Errorf("progressLine() = %q, missing count", line)
	}
}
