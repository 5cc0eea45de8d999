package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func TestCLIResultPresenter_PresentComparisonTable(t *testing.T) {
	useNoColor(t)
	results := []orchestration.EvaluationResult{
		{Name: "bigz", Result: "5", Digest: 0x1234, Duration: 1500 * time.Microsecond},
		{Name: "stdlib", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"--- Comparison Summary ---", "Engine", "Duration", "Status", "✅ Success", "0000000000001234", "❌ Failure (boom)", "< 1µs"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCLIResultPresenter_PresentResult(t *testing.T) {
	useNoColor(t)
	res := orchestration.EvaluationResult{Name: "bigz", Result: "1234567"}
	req := engine.Request{Op: "add", Operands: []string{"1234560", "7"}}

	var quiet bytes.Buffer
	CLIResultPresenter{}.PresentResult(res, req, orchestration.PresentationOptions{Quiet: true}, &quiet)
	if quiet.String() != "1234567\n" {
		t.Errorf("quiet output = %q", quiet.String())
	}

	var full bytes.Buffer
	CLIResultPresenter{}.PresentResult(res, req, orchestration.PresentationOptions{}, &full)
	if !strings.Contains(full.String(), "1,234,567") {
		t.Errorf("full output missing grouped value:\n%s", full.String())
	}
}

func TestCLIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}
	if got := p.FormatDuration(0); got != "< 1µs" {
		t.Errorf("FormatDuration(0) = %q", got)
	}
	if got := p.FormatDuration(time.Second); got == "" || got == "< 1µs" {
		t.Errorf("FormatDuration(1s) = %q", got)
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	useNoColor(t)
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"memory", apperrors.MemoryError{Limit: 4, Cause: errors.New("too big")}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); got != tt.code {
				t.Errorf("HandleError() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestCLIColorProvider(t *testing.T) {
	useNoColor(t)
	c := CLIColorProvider{}
	if c.Red() != "" || c.Yellow() != "" || c.Reset() != "" {
		t.Error("no-color theme should produce empty escapes")
	}
}
