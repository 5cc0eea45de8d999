package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/engine/mocks"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// recordingPresenter records what AnalyzeComparisonResults hands it.
type recordingPresenter struct {
	tableRows []EvaluationResult
	presented *EvaluationResult
	handled   error
}

func (p *recordingPresenter) PresentComparisonTable(results []EvaluationResult, _ io.Writer) {
	p.tableRows = append([]EvaluationResult(nil), results...)
}

func (p *recordingPresenter) PresentResult(result EvaluationResult, _ engine.Request, _ PresentationOptions, _ io.Writer) {
	p.presented = &result
}

func (p *recordingPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	p.handled = err
	return apperrors.ExitErrorGeneric
}

func mockEvaluator(ctrl *gomock.Controller, name, result string, err error) *mocks.MockEvaluator {
	ev := mocks.NewMockEvaluator(ctrl)
	ev.EXPECT().Name().Return(name).AnyTimes()
	ev.EXPECT().Evaluate(gomock.Any(), gomock.Any()).Return(result, err).Times(1)
	return ev
}

var addReq = engine.Request{Op: "add", Operands: []string{"2", "3"}}

func TestExecuteEvaluations(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	evaluators := []engine.Evaluator{
		mockEvaluator(ctrl, "alpha", "5", nil),
		mockEvaluator(ctrl, "beta", "", errors.New("boom")),
		mockEvaluator(ctrl, "gamma", "5", nil),
	}
	results := ExecuteEvaluations(context.Background(), evaluators, addReq, NullProgressReporter{}, io.Discard)

	want := []EvaluationResult{
		{Name: "alpha", Result: "5", Digest: xxhash.Sum64String("5")},
		{Name: "beta"},
		{Name: "gamma", Result: "5", Digest: xxhash.Sum64String("5")},
	}
	opts := []cmp.Option{
		cmpopts.IgnoreFields(EvaluationResult{}, "Duration", "Err"),
	}
	if diff := cmp.Diff(want, results, opts...); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	var calcErr apperrors.CalculationError
	if !errors.As(results[1].Err, &calcErr) {
		t.Errorf("failed evaluation should be a CalculationError, got %T", results[1].Err)
	} else if calcErr.Engine != "beta" || calcErr.Op != addReq.Op {
		t.Errorf("CalculationError = {%q %q}, want {beta %q}", calcErr.Engine, calcErr.Op, addReq.Op)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
}

func TestExecuteEvaluationsPassesRequest(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	ev := mocks.NewMockEvaluator(ctrl)
	ev.EXPECT().Name().Return("bigz").AnyTimes()
	ev.EXPECT().Evaluate(gomock.Any(), addReq).Return("5", nil)

	results := ExecuteEvaluations(context.Background(), []engine.Evaluator{ev}, addReq, NullProgressReporter{}, io.Discard)
	if len(results) != 1 || results[0].Result != "5" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestExecuteEvaluationsProgress(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	evaluators := []engine.Evaluator{
		mockEvaluator(ctrl, "a", "1", nil),
		mockEvaluator(ctrl, "b", "1", nil),
	}

	var mu sync.Mutex
	var updates []ProgressUpdate
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		if n != 2 {
			t.Errorf("numEvaluators = %d, want 2", n)
		}
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})
	ExecuteEvaluations(context.Background(), evaluators, addReq, reporter, io.Discard)

	agg := NewProgressAggregator(2)
	for _, u := range updates {
		agg.Update(u)
	}
	if len(updates) != 4 {
		t.Errorf("got %d updates, want 4", len(updates))
	}
	if agg.Fraction() != 1 {
		t.Errorf("final fraction = %v, want 1", agg.Fraction())
	}
}

func TestExecuteEvaluationsCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evaluators := []engine.Evaluator{engine.NewBigzEvaluator(), engine.NewStdlibEvaluator()}
	results := ExecuteEvaluations(ctx, evaluators, addReq, NullProgressReporter{}, io.Discard)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Name, r.Err)
		}
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	digest := xxhash.Sum64String("42")

	t.Run("success picks the fastest valid result", func(t *testing.T) {
		t.Parallel()
		results := []EvaluationResult{
			{Name: "slow", Result: "42", Digest: digest, Duration: 3 * time.Millisecond},
			{Name: "broken", Err: errors.New("boom"), Duration: time.Millisecond},
			{Name: "fast", Result: "42", Digest: digest, Duration: 2 * time.Millisecond},
		}
		p := &recordingPresenter{}
		var out bytes.Buffer
		code := AnalyzeComparisonResults(results, addReq, PresentationOptions{}, p, &out)
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
		}
		if p.presented == nil || p.presented.Name != "fast" {
			t.Errorf("presented %+v, want fast", p.presented)
		}
		names := make([]string, len(p.tableRows))
		for i, r := range p.tableRows {
			names[i] = r.Name
		}
		if diff := cmp.Diff([]string{"fast", "slow", "broken"}, names); diff != "" {
			t.Errorf("table order (-want +got):\n%s", diff)
		}
		if !strings.Contains(out.String(), "Global Status: Success") {
			t.Errorf("missing success status: %q", out.String())
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		results := []EvaluationResult{
			{Name: "a", Result: "42", Digest: digest},
			{Name: "b", Result: "43", Digest: xxhash.Sum64String("43")},
		}
		p := &recordingPresenter{}
		var out bytes.Buffer
		if code := AnalyzeComparisonResults(results, addReq, PresentationOptions{}, p, &out); code != apperrors.ExitErrorMismatch {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
		}
		if p.presented != nil {
			t.Error("no result should be presented on mismatch")
		}
	})

	t.Run("all failed", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		results := []EvaluationResult{{Name: "a", Err: boom}, {Name: "b", Err: errors.New("other")}}
		p := &recordingPresenter{}
		code := AnalyzeComparisonResults(results, addReq, PresentationOptions{}, p, io.Discard)
		if code != apperrors.ExitErrorGeneric {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
		}
		if p.handled == nil {
			t.Error("HandleError should receive the first error")
		}
	})

	t.Run("quiet skips the table", func(t *testing.T) {
		t.Parallel()
		results := []EvaluationResult{{Name: "a", Result: "42", Digest: digest}}
		p := &recordingPresenter{}
		var out bytes.Buffer
		AnalyzeComparisonResults(results, addReq, PresentationOptions{Quiet: true}, p, &out)
		if p.tableRows != nil || out.Len() != 0 {
			t.Errorf("quiet mode printed %q", out.String())
		}
		if p.presented == nil {
			t.Error("quiet mode must still present the result")
		}
	})
}

func TestConsistent(t *testing.T) {
	t.Parallel()
	d := xxhash.Sum64String("7")
	tests := []struct {
		name    string
		results []EvaluationResult
		want    bool
	}{
		{"empty", nil, true},
		{"single", []EvaluationResult{{Result: "7", Digest: d}}, true},
		{"errors ignored", []EvaluationResult{{Result: "7", Digest: d}, {Err: errors.New("x")}}, true},
		{"agree", []EvaluationResult{{Result: "7", Digest: d}, {Result: "7", Digest: d}}, true},
		{"disagree", []EvaluationResult{{Result: "7", Digest: d}, {Result: "8", Digest: xxhash.Sum64String("8")}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Consistent(tt.results); got != tt.want {
				t.Errorf("Consistent() = %v, want %v", got, tt.want)
			}
		})
	}
}
