// Package bigz implements arbitrary-precision signed integers in
// sign-magnitude form on top of the bn digit engine.
//
// An Int is immutable once an operation returns it. Operations live on an
// Arith, which owns the digit engine and the size limit; every operation
// that can allocate reports failure through its error result, so a zero
// result is never confused with a failed one:
//
//	z := bigz.Default()
//	x, _ := z.FromString("-ff", 16, bigz.Strict)
//	q, r, err := z.DivMod(x, bigz.FromInt64(7))
//
// Division comes in four rounding flavors (truncate, floor, ceiling and
// round-half-to-even). The logical operations treat an Int as an infinite
// two's-complement bit string, so negative values have infinitely many
// leading one bits.
package bigz
