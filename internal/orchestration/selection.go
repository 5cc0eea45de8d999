package orchestration

import "github.com/agbru/bigcalc/internal/engine"

// GetEvaluatorsToRun resolves an engine selection. "all" returns every
// registered evaluator in alphabetical order; any other value names a single
// evaluator.
//
// Parameters:
//   - selection: "all" or an evaluator name.
//   - factory: The factory to retrieve evaluators from.
//
// Returns:
//   - []engine.Evaluator: The evaluators to run.
//   - error: engine.ErrUnknownEngine when the name is not registered.
func GetEvaluatorsToRun(selection string, factory engine.Factory) ([]engine.Evaluator, error) {
	if selection == "all" {
		names := factory.List()
		evaluators := make([]engine.Evaluator, 0, len(names))
		for _, name := range names {
			ev, err := factory.Get(name)
			if err != nil {
				return nil, err
			}
			evaluators = append(evaluators, ev)
		}
		return evaluators, nil
	}
	ev, err := factory.Get(selection)
	if err != nil {
		return nil, err
	}
	return []engine.Evaluator{ev}, nil
}
