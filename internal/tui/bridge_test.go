package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op
	reporter := &TUIProgressReporter{ref: ref}

	ch := make(chan orchestration.ProgressUpdate, 10)
	ch <- orchestration.ProgressUpdate{EvaluatorIndex: 0, Name: "bigz", Value: 0}
	ch <- orchestration.ProgressUpdate{EvaluatorIndex: 1, Name: "stdlib", Value: 0}
	ch <- orchestration.ProgressUpdate{EvaluatorIndex: 0, Name: "bigz", Value: 1}
	ch <- orchestration.ProgressUpdate{EvaluatorIndex: 1, Name: "stdlib", Value: 1}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 2, nil)
	wg.Wait()
}

func TestTUIProgressReporter_ZeroEvaluators(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan orchestration.ProgressUpdate, 5)
	ch <- orchestration.ProgressUpdate{EvaluatorIndex: 0, Value: 1}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestTUIProgressReporter_EmptyChannel(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan orchestration.ProgressUpdate)
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	// Should not panic
	ref.Send(ProgressMsg{Total: 1})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref.Send(ProgressMsg{Total: i})
		}(i)
	}
	wg.Wait()
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	presenter := &TUIResultPresenter{}

	tests := []struct {
		name  string
		input time.Duration
	}{
		{"zero", 0},
		{"microseconds", 500 * time.Microsecond},
		{"milliseconds", 42 * time.Millisecond},
		{"seconds", 2*time.Second + 500*time.Millisecond},
		{"minutes", 3 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if presenter.FormatDuration(tt.input) == "" {
				t.Errorf("expected non-empty duration format for %v", tt.input)
			}
		})
	}
}

func TestTUIResultPresenter_Records(t *testing.T) {
	presenter := &TUIResultPresenter{}
	results := []orchestration.EvaluationResult{
		{Name: "bigz", Result: "-84", Duration: time.Millisecond},
		{Name: "stdlib", Result: "-84", Duration: 2 * time.Millisecond},
	}

	presenter.PresentComparisonTable(results, nil)
	results[0].Name = "mutated"
	presenter.PresentResult(results[1], engine.Request{Op: "mul"}, orchestration.PresentationOptions{}, nil)

	if len(presenter.results) != 2 || presenter.results[0].Name != "bigz" {
		t.Errorf("comparison table not copied: %+v", presenter.results)
	}
	if presenter.final == nil || presenter.final.Name != "stdlib" {
		t.Errorf("final = %+v, want stdlib result", presenter.final)
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	presenter := &TUIResultPresenter{}

	exitCode := presenter.HandleError(context.DeadlineExceeded, 5*time.Second, nil)
	if exitCode != apperrors.ExitErrorTimeout {
		t.Errorf("expected exit code %d, got %d", apperrors.ExitErrorTimeout, exitCode)
	}
	if !errors.Is(presenter.err, context.DeadlineExceeded) {
		t.Errorf("error not recorded: %v", presenter.err)
	}

	exitCode = presenter.HandleError(errors.New("boom"), 0, nil)
	if exitCode != apperrors.ExitErrorGeneric {
		t.Errorf("expected exit code %d, got %d", apperrors.ExitErrorGeneric, exitCode)
	}
}
