// Package bn implements the digit engine underneath the bigz integers:
// fixed-capacity vectors of unsigned 64-bit words, least-significant word
// first, and the elementary operations over them (add with carry, subtract
// with borrow, multiply, single-word and multi-word division, shifts,
// per-word logic, population count and one's/two's complement).
//
// Vectors carry no sign. Results returned by the Engine are normalized
// (no leading zero words) unless the operation documents a fixed width,
// as Not and Neg do.
package bn
