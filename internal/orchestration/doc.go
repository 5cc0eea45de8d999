// Package orchestration coordinates the concurrent evaluation of one request
// on several arithmetic engines and cross-checks their results. It decouples
// business logic from presentation via the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
