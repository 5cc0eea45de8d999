package bn

// Engine is the digit-level capability the bigz integers are built on.
// Implementations accept unnormalized operands, never modify them, and
// return fresh vectors that do not alias their inputs.
type Engine interface {
	// Cmp compares the magnitudes x and y and returns -1, 0 or +1.
	Cmp(x, y Vector) int
	// Add returns x + y.
	Add(x, y Vector) Vector
	// Sub returns x - y. It panics if y > x.
	Sub(x, y Vector) Vector
	// Mul returns x * y.
	Mul(x, y Vector) Vector
	// MulAddWord returns x*y + r.
	MulAddWord(x Vector, y, r Word) Vector
	// DivWord returns the quotient and remainder of x / y. It panics if y == 0.
	DivWord(x Vector, y Word) (Vector, Word)
	// DivMod returns the truncated quotient and remainder of x / y.
	// It panics if y is zero.
	DivMod(x, y Vector) (q, r Vector)
	// Shl returns x << s.
	Shl(x Vector, s uint) Vector
	// Shr returns x >> s.
	Shr(x Vector, s uint) Vector
	// And, Or, Xor and AndNot apply the operation word by word; the shorter
	// operand is extended with zero words.
	And(x, y Vector) Vector
	Or(x, y Vector) Vector
	Xor(x, y Vector) Vector
	AndNot(x, y Vector) Vector
	// Not returns the one's complement of x over exactly n words.
	Not(x Vector, n int) Vector
	// Neg returns the two's complement of x over exactly n words.
	Neg(x Vector, n int) Vector
	// PopCount returns the number of one bits in x.
	PopCount(x Vector) int
	// BitLen returns the length of x in bits.
	BitLen(x Vector) int
	// TrailingZeros returns the number of consecutive zero bits at the
	// bottom of x, or 0 when x is zero.
	TrailingZeros(x Vector) uint
	// Bit returns bit i of x.
	Bit(x Vector, i uint) uint
}

// Words is the pure-Go Engine over math/bits.
type Words struct{}

var _ Engine = Words{}

// Default returns the Engine used when none is configured.
func Default() Engine { return Words{} }

func (Words) Cmp(x, y Vector) int                   { return cmp(x.Norm(), y.Norm()) }
func (Words) Add(x, y Vector) Vector                { return add(x.Norm(), y.Norm()) }
func (Words) Sub(x, y Vector) Vector                { return sub(x.Norm(), y.Norm()) }
func (Words) Mul(x, y Vector) Vector                { return mul(x.Norm(), y.Norm()) }
func (Words) MulAddWord(x Vector, y, r Word) Vector { return mulAddWW(x.Norm(), y, r) }
func (Words) DivWord(x Vector, y Word) (Vector, Word) {
	return divW(x.Norm(), y)
}
func (Words) DivMod(x, y Vector) (Vector, Vector) { return divMod(x.Norm(), y.Norm()) }
func (Words) Shl(x Vector, s uint) Vector         { return shl(x.Norm(), s) }
func (Words) Shr(x Vector, s uint) Vector         { return shr(x.Norm(), s) }
func (Words) And(x, y Vector) Vector              { return and(x, y) }
func (Words) Or(x, y Vector) Vector               { return or(x, y) }
func (Words) Xor(x, y Vector) Vector              { return xor(x, y) }
func (Words) AndNot(x, y Vector) Vector           { return andNot(x, y) }
func (Words) Not(x Vector, n int) Vector          { return not(x, n) }
func (Words) Neg(x Vector, n int) Vector          { return neg(x, n) }
func (Words) PopCount(x Vector) int               { return popCount(x) }
func (Words) BitLen(x Vector) int                 { return bitLen(x) }
func (Words) TrailingZeros(x Vector) uint         { return trailingZeros(x) }
func (Words) Bit(x Vector, i uint) uint           { return bit(x, i) }
