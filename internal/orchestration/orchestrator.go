package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each evaluator sends two updates, so the buffer never blocks.
const ProgressBufferMultiplier = 2

var tracer = otel.Tracer("github.com/agbru/bigcalc/internal/orchestration")

// ExecuteEvaluations evaluates req on every evaluator concurrently.
//
// It manages the lifecycle of the evaluation goroutines, collects their
// results in evaluator order and drives the progress display. An evaluator
// failure never cancels the others.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - evaluators: The evaluators to run.
//   - req: The request evaluated by each of them.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []EvaluationResult: One result per evaluator, in the same order.
func ExecuteEvaluations(ctx context.Context, evaluators []engine.Evaluator, req engine.Request, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	ctx, span := tracer.Start(ctx, "ExecuteEvaluations")
	defer span.End()
	span.SetAttributes(attribute.String("bigcalc.op", req.Op), attribute.Int("bigcalc.evaluators", len(evaluators)))

	var g errgroup.Group
	results := make([]EvaluationResult, len(evaluators))
	progressChan := make(chan ProgressUpdate, len(evaluators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(evaluators), out)

	for i, ev := range evaluators {
		g.Go(func() error {
			progressChan <- ProgressUpdate{EvaluatorIndex: i, Name: ev.Name(), Value: 0}
			results[i] = evaluate(ctx, ev, req)
			progressChan <- ProgressUpdate{EvaluatorIndex: i, Name: ev.Name(), Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func evaluate(ctx context.Context, ev engine.Evaluator, req engine.Request) EvaluationResult {
	ctx, span := tracer.Start(ctx, "Evaluate")
	defer span.End()
	span.SetAttributes(attribute.String("bigcalc.engine", ev.Name()), attribute.String("bigcalc.op", req.Op))

	start := time.Now()
	text, err := ev.Evaluate(ctx, req)
	res := EvaluationResult{Name: ev.Name(), Duration: time.Since(start)}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.IsContextError(err) {
			log.Debug().Err(err).Str("engine", ev.Name()).Msg("evaluation interrupted")
		} else {
			log.Debug().Err(err).Str("engine", ev.Name()).Str("request", req.String()).Msg("evaluation failed")
		}
		res.Err = apperrors.CalculationError{Engine: ev.Name(), Op: req.Op, Cause: err}
		return res
	}
	res.Result = text
	res.Digest = xxhash.Sum64String(text)
	span.SetAttributes(attribute.Int("bigcalc.result_len", len(text)))
	return res
}

// AnalyzeComparisonResults sorts the results, checks that all successful
// evaluators agree and presents the summary.
//
// Results are ordered with successes first, then by duration. Agreement is
// decided on the digests; a mismatch is reported as ExitErrorMismatch.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - req: The evaluated request.
//   - opts: Presentation options.
//   - presenter: The result presenter and error handler.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EvaluationResult, req engine.Request, opts PresentationOptions, presenter Presenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *EvaluationResult
	var firstError error
	var firstErrorDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError, firstErrorDuration = results[i].Err, results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	if !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if firstValid == nil {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the evaluation.\n")
		}
		return presenter.HandleError(firstError, firstErrorDuration, out)
	}

	if !Consistent(results) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the engines.\n")
		return apperrors.ExitErrorMismatch
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, req, opts, out)
	return apperrors.ExitSuccess
}

// Consistent reports whether every successful result has the same digest
// and text.
func Consistent(results []EvaluationResult) bool {
	var ref *EvaluationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if ref == nil {
			ref = r
			continue
		}
		if r.Digest != ref.Digest || r.Result != ref.Result {
			return false
		}
	}
	return true
}
