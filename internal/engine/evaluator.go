package engine

import "context"

//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks

// Evaluator computes a Request with one arithmetic backend and returns the
// result as text in the request's output base.
type Evaluator interface {
	// Name returns the backend name used for selection and reporting.
	Name() string
	// Evaluate validates and computes req. It returns ctx.Err() when the
	// context ends before the result is ready.
	Evaluate(ctx context.Context, req Request) (string, error)
}
