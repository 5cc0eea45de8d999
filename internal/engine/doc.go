// Package engine evaluates integer operations on interchangeable arithmetic
// backends. Each backend is an Evaluator: the native bigz engine, the
// standard library's math/big, and GMP when built with the gmp tag. All
// evaluators share one operation table and the same floor-based division
// semantics, so their results can be cross-checked.
package engine
