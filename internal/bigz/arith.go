package bigz

import (
	"github.com/agbru/bigcalc/internal/bn"
)

// DefaultMaxWords is the size limit of an Arith created without
// WithMaxWords: 2**20 words, or 64 Mibit per magnitude.
const DefaultMaxWords = 1 << 20

// Arith performs operations on Ints. It holds the digit engine and the size
// limit that stands in for allocation failure. An Arith is safe for
// concurrent use.
type Arith struct {
	digits   bn.Engine
	maxWords int
}

// Option configures an Arith.
type Option func(*Arith)

// WithDigits selects the digit engine. A nil engine keeps the default.
func WithDigits(e bn.Engine) Option {
	return func(a *Arith) {
		if e != nil {
			a.digits = e
		}
	}
}

// WithMaxWords limits every result magnitude to n words. Operations whose
// result would be larger fail with ErrSizeLimit. n <= 0 removes the limit.
func WithMaxWords(n int) Option {
	return func(a *Arith) {
		a.maxWords = n
	}
}

// New returns an Arith configured by opts.
func New(opts ...Option) *Arith {
	a := &Arith{digits: bn.Default(), maxWords: DefaultMaxWords}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultArith = New()

// Default returns the shared Arith with the default engine and size limit.
func Default() *Arith { return defaultArith }

// MaxWords returns the size limit, or 0 when there is none.
func (a *Arith) MaxWords() int {
	if a.maxWords <= 0 {
		return 0
	}
	return a.maxWords
}

// Digits returns the digit engine.
func (a *Arith) Digits() bn.Engine { return a.digits }

// reserve fails when a result of the given size is not allowed.
func (a *Arith) reserve(op string, words int) error {
	if a.maxWords > 0 && words > a.maxWords {
		return opError(op, ErrSizeLimit)
	}
	return nil
}

// Create returns a zero Int whose magnitude has room for size words.
func (a *Arith) Create(size int) (*Int, error) {
	if size < 0 {
		return nil, opError("Create", ErrDomain)
	}
	if err := a.reserve("Create", size); err != nil {
		return nil, err
	}
	return &Int{mag: make(bn.Vector, 0, size)}, nil
}

// Negate returns -x.
func (a *Arith) Negate(x *Int) *Int { return x.Neg() }

// Abs returns |x|.
func (a *Arith) Abs(x *Int) *Int { return x.Abs() }

// Add returns x + y.
func (a *Arith) Add(x, y *Int) (*Int, error) {
	return a.add("Add", x, y)
}

// Subtract returns x - y.
func (a *Arith) Subtract(x, y *Int) (*Int, error) {
	if x == y {
		return &Int{}, nil
	}
	return a.add("Subtract", x, y.Neg())
}

func (a *Arith) add(op string, x, y *Int) (*Int, error) {
	switch {
	case y.sign == Zero:
		return x, nil
	case x.sign == Zero:
		return y, nil
	case x.sign == y.sign:
		if err := a.reserve(op, max(len(x.mag), len(y.mag))+1); err != nil {
			return nil, err
		}
		return makeInt(x.sign == Negative, a.digits.Add(x.mag, y.mag)), nil
	}
	switch a.digits.Cmp(x.mag, y.mag) {
	case 1:
		return makeInt(x.sign == Negative, a.digits.Sub(x.mag, y.mag)), nil
	case -1:
		return makeInt(y.sign == Negative, a.digits.Sub(y.mag, x.mag)), nil
	}
	return &Int{}, nil
}

// Multiply returns x * y.
func (a *Arith) Multiply(x, y *Int) (*Int, error) {
	if x.sign == Zero || y.sign == Zero {
		return &Int{}, nil
	}
	if err := a.reserve("Multiply", len(x.mag)+len(y.mag)); err != nil {
		return nil, err
	}
	return makeInt(x.sign != y.sign, a.digits.Mul(x.mag, y.mag)), nil
}

// Compare compares x and y with the engine of a and returns -1, 0 or +1.
func (a *Arith) Compare(x, y *Int) int {
	switch {
	case x.sign < y.sign:
		return -1
	case x.sign > y.sign:
		return 1
	case x.sign == Zero:
		return 0
	}
	c := a.digits.Cmp(x.mag, y.mag)
	if x.sign == Negative {
		return -c
	}
	return c
}

// inc returns x + 1.
func (a *Arith) inc(x *Int) (*Int, error) {
	return a.add("Add", x, intOne)
}
