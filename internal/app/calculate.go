package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// runCalculate orchestrates the execution of the one-shot evaluation.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	evaluators, err := orchestration.GetEvaluatorsToRun(a.Config.Engine, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	req := a.Config.ToRequest().Normalize()

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(evaluators, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteEvaluations(ctx, evaluators, req, progressReporter, progressOut)

	presOpts := orchestration.PresentationOptions{
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, req, presOpts, cli.CLIResultPresenter{}, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	return a.saveResultIfNeeded(results, out)
}

// saveResultIfNeeded writes the fastest successful result to the -o file.
// AnalyzeComparisonResults leaves it first in results.
func (a *Application) saveResultIfNeeded(results []orchestration.EvaluationResult, out io.Writer) int {
	if a.Config.OutputFile == "" || len(results) == 0 || results[0].Err != nil {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteResultToFile(results[0], a.Config.ToRequest(), a.Config.OutputFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		cli.DisplayFileSaved(out, a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}
