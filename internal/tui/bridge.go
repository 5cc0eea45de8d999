package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// programRef lets evaluation goroutines reach the running program. The
// model is copied on every Update, so it keeps a pointer to this instead
// of the program itself. Send is a no-op until the program is attached.
type programRef struct {
	program atomic.Pointer[tea.Program]
}

func (r *programRef) SetProgram(p *tea.Program) { r.program.Store(p) }

func (r *programRef) Send(msg tea.Msg) {
	if p := r.program.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards evaluator start and finish events to the
// program as ProgressMsg.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numEvaluators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEvaluators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		t.ref.Send(ProgressMsg{AggregatedProgress: agg.Update(update), Total: numEvaluators})
	}
}

// TUIResultPresenter records what the orchestrator asks it to present. The
// model turns the record into a history entry once the evaluation ends.
type TUIResultPresenter struct {
	results []orchestration.EvaluationResult
	final   *orchestration.EvaluationResult
	err     error
}

var (
	_ orchestration.Presenter         = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
)

func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, _ io.Writer) {
	t.results = append([]orchestration.EvaluationResult(nil), results...)
}

func (t *TUIResultPresenter) PresentResult(result orchestration.EvaluationResult, _ engine.Request, _ orchestration.PresentationOptions, _ io.Writer) {
	t.final = &result
}

func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError keeps err for the history entry and classifies it.
func (t *TUIResultPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	t.err = err
	return apperrors.ExitCode(err)
}
