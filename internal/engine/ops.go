package engine

import (
	"slices"
	"strings"
)

// OpSpec describes one operation of the table.
type OpSpec struct {
	// Name is the command-line and API name of the operation.
	Name string
	// Arity is the number of operands.
	Arity int
	// Usage names the operands, for help text.
	Usage string
	// Summary is a one-line description.
	Summary string
}

// Ops is the operation table shared by every evaluator.
var Ops = []OpSpec{
	{"add", 2, "a b", "a + b"},
	{"sub", 2, "a b", "a - b"},
	{"mul", 2, "a b", "a * b"},
	{"div", 2, "a b", "floored quotient of a / b"},
	{"mod", 2, "a b", "floored remainder, sign of b"},
	{"rem", 2, "a b", "truncated remainder, sign of a"},
	{"trunc", 2, "a b", "a / b rounded toward zero"},
	{"floor", 2, "a b", "a / b rounded toward negative infinity"},
	{"ceil", 2, "a b", "a / b rounded toward positive infinity"},
	{"round", 2, "a b", "a / b rounded to nearest, ties to even"},
	{"neg", 1, "a", "-a"},
	{"abs", 1, "a", "|a|"},
	{"cmp", 2, "a b", "-1, 0 or 1 as a is less than, equal to or greater than b"},
	{"gcd", 2, "a b", "greatest common divisor"},
	{"lcm", 2, "a b", "least common multiple"},
	{"pow", 2, "a e", "a ** e for e >= 0"},
	{"sqrt", 1, "a", "floor of the square root of a >= 0"},
	{"modexp", 3, "a e m", "a ** e mod m"},
	{"modinv", 2, "a m", "inverse of a modulo |m|"},
	{"jacobi", 2, "a n", "Jacobi symbol (a/n) for odd n > 0"},
	{"not", 1, "a", "bitwise complement, -a - 1"},
	{"and", 2, "a b", "a & b"},
	{"or", 2, "a b", "a | b"},
	{"xor", 2, "a b", "a ^ b"},
	{"nand", 2, "a b", "^(a & b)"},
	{"nor", 2, "a b", "^(a | b)"},
	{"eqv", 2, "a b", "^(a ^ b)"},
	{"andc1", 2, "a b", "^a & b"},
	{"andc2", 2, "a b", "a & ^b"},
	{"orc1", 2, "a b", "^a | b"},
	{"orc2", 2, "a b", "a | ^b"},
	{"ash", 2, "a n", "a shifted left by n bits, or right (flooring) for n < 0"},
	{"bitcount", 1, "a", "one bits of a >= 0, zero bits of a < 0"},
	{"testbit", 2, "a i", "bit i of the two's-complement form of a"},
	{"bitlen", 1, "a", "bit length of |a|"},
	{"convert", 1, "a", "a, re-printed in the output base"},
}

// LookupOp returns the specification of the named operation. Names are
// case-insensitive.
func LookupOp(name string) (OpSpec, bool) {
	name = strings.ToLower(name)
	i := slices.IndexFunc(Ops, func(op OpSpec) bool { return op.Name == name })
	if i < 0 {
		return OpSpec{}, false
	}
	return Ops[i], true
}

// OpNames returns the operation names in table order.
func OpNames() []string {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = op.Name
	}
	return names
}
