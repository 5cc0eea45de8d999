package bn

import "math/bits"

// Vector is an unsigned magnitude stored little-endian: v[0] is the least
// significant word. A nil or empty Vector is zero.
type Vector []Word

// karatsubaThreshold is the operand length in words from which multiplication
// switches from the schoolbook method to Karatsuba.
const karatsubaThreshold = 40

// FromUint64 returns the Vector holding v.
func FromUint64(v uint64) Vector {
	if v == 0 {
		return nil
	}
	return Vector{Word(v)}
}

// Norm returns x without its leading zero words. It shares x's backing array.
func (x Vector) Norm() Vector {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// Len returns the number of significant words in x.
func (x Vector) Len() int {
	return len(x.Norm())
}

// IsZero reports whether x has no nonzero word.
func (x Vector) IsZero() bool {
	return len(x.Norm()) == 0
}

// Clone returns a normalized copy of x that does not share memory with x.
func (x Vector) Clone() Vector {
	x = x.Norm()
	if len(x) == 0 {
		return nil
	}
	z := make(Vector, len(x))
	copy(z, x)
	return z
}

// PowerOfTwo returns the Vector holding 2**n.
func PowerOfTwo(n uint) Vector {
	z := make(Vector, n/WordBits+1)
	z[n/WordBits] = 1 << (n % WordBits)
	return z
}

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic
// ─────────────────────────────────────────────────────────────────────────────

// cmp compares normalized x and y.
func cmp(x, y Vector) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func add(x, y Vector) Vector {
	if len(x) < len(y) {
		x, y = y, x
	}
	m, n := len(x), len(y)
	switch {
	case m == 0:
		return nil
	case n == 0:
		return x.Clone()
	}
	z := make(Vector, m+1)
	c := addVV(z[:n], x, y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c
	return z.Norm()
}

// sub returns x - y. It panics if y > x; callers order the operands.
func sub(x, y Vector) Vector {
	m, n := len(x), len(y)
	if m < n {
		panic("bn: subtraction underflow")
	}
	if n == 0 {
		return x.Clone()
	}
	z := make(Vector, m)
	c := subVV(z[:n], x, y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic("bn: subtraction underflow")
	}
	return z.Norm()
}

func mulAddWW(x Vector, y, r Word) Vector {
	m := len(x)
	if m == 0 || y == 0 {
		return FromUint64(uint64(r))
	}
	z := make(Vector, m+1)
	z[m] = mulAddVWW(z[:m], x, y, r)
	return z.Norm()
}

// basicMul sets z = x*y using the schoolbook method. len(z) must be
// len(x)+len(y).
func basicMul(z, x, y Vector) {
	clear(z)
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
}

func mul(x, y Vector) Vector {
	m, n := len(x), len(y)
	if m < n {
		x, y = y, x
		m, n = n, m
	}
	switch {
	case n == 0:
		return nil
	case n == 1:
		return mulAddWW(x, y[0], 0)
	case n < karatsubaThreshold:
		z := make(Vector, m+n)
		basicMul(z, x, y)
		return z.Norm()
	}
	return karatsuba(x, y)
}

// karatsuba multiplies normalized x and y, len(x) >= len(y) >= karatsubaThreshold.
func karatsuba(x, y Vector) Vector {
	h := len(x) / 2
	x0, x1 := x[:h].Norm(), x[h:]
	if len(y) <= h {
		return add(shlWords(mul(x1, y), h), mul(x0, y))
	}
	y0, y1 := y[:h].Norm(), y[h:]
	z0 := mul(x0, y0)
	z2 := mul(x1, y1)
	z1 := sub(sub(mul(add(x0, x1), add(y0, y1)), z0), z2)
	return add(add(shlWords(z2, 2*h), shlWords(z1, h)), z0)
}

// shlWords returns x shifted left by n whole words.
func shlWords(x Vector, n int) Vector {
	if len(x) == 0 {
		return nil
	}
	z := make(Vector, len(x)+n)
	copy(z[n:], x)
	return z
}

// ─────────────────────────────────────────────────────────────────────────────
// Division
// ─────────────────────────────────────────────────────────────────────────────

func divW(x Vector, y Word) (q Vector, r Word) {
	switch {
	case y == 0:
		panic("bn: division by zero")
	case y == 1:
		return x.Clone(), 0
	case len(x) == 0:
		return nil, 0
	}
	q = make(Vector, len(x))
	r = divWVW(q, 0, x, y)
	return q.Norm(), r
}

func divMod(u, v Vector) (q, r Vector) {
	if len(v) == 0 {
		panic("bn: division by zero")
	}
	if cmp(u, v) < 0 {
		return nil, u.Clone()
	}
	if len(v) == 1 {
		q, r1 := divW(u, v[0])
		return q, FromUint64(uint64(r1))
	}
	return divLarge(u, v)
}

// divLarge implements Knuth's algorithm D (TAOCP vol. 2, 4.3.1) for
// normalized u >= v with len(v) >= 2.
func divLarge(uIn, vIn Vector) (q, r Vector) {
	n := len(vIn)
	m := len(uIn) - n

	// Normalize so that the top bit of the divisor is set.
	shift := nlz(vIn[n-1])
	v := Acquire(n)
	defer Release(v)
	shlVU(v, vIn, shift)

	u := Acquire(len(uIn) + 1)
	defer Release(u)
	u[len(uIn)] = shlVU(u[:len(uIn)], uIn, shift)

	qhatv := Acquire(n + 1)
	defer Release(qhatv)

	q = make(Vector, m+1)
	vn1, vn2 := v[n-1], v[n-2]
	for j := m; j >= 0; j-- {
		qhat := MaxWord
		if ujn := u[j+n]; ujn != vn1 {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vn1)

			// qhat is at most two too large; the second word of v refines it.
			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prevRhat := rhat
				rhat += vn1
				if rhat < prevRhat {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		qhatv[n] = mulAddVWW(qhatv[:n], v, qhat, 0)
		if c := subVV(u[j:j+n+1], u[j:j+n+1], qhatv); c != 0 {
			c := addVV(u[j:j+n], u[j:j+n], v)
			u[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	r = make(Vector, n)
	shrVU(r, u[:n], shift)
	return q.Norm(), r.Norm()
}

// ─────────────────────────────────────────────────────────────────────────────
// Shifts
// ─────────────────────────────────────────────────────────────────────────────

func shl(x Vector, s uint) Vector {
	m := len(x)
	if m == 0 {
		return nil
	}
	if s == 0 {
		return x.Clone()
	}
	n := m + int(s/WordBits)
	z := make(Vector, n+1)
	z[n] = shlVU(z[n-m:n], x, s%WordBits)
	return z.Norm()
}

func shr(x Vector, s uint) Vector {
	m := len(x)
	if s/WordBits >= uint(m) {
		return nil
	}
	n := m - int(s/WordBits)
	z := make(Vector, n)
	shrVU(z, x[m-n:], s%WordBits)
	return z.Norm()
}

// ─────────────────────────────────────────────────────────────────────────────
// Per-word logic
// ─────────────────────────────────────────────────────────────────────────────

func and(x, y Vector) Vector {
	n := min(len(x), len(y))
	z := make(Vector, n)
	for i := range z {
		z[i] = x[i] & y[i]
	}
	return z.Norm()
}

func andNot(x, y Vector) Vector {
	z := make(Vector, len(x))
	copy(z, x)
	for i := 0; i < len(z) && i < len(y); i++ {
		z[i] &^= y[i]
	}
	return z.Norm()
}

func or(x, y Vector) Vector {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(Vector, len(x))
	copy(z, x)
	for i, w := range y {
		z[i] |= w
	}
	return z.Norm()
}

func xor(x, y Vector) Vector {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(Vector, len(x))
	copy(z, x)
	for i, w := range y {
		z[i] ^= w
	}
	return z.Norm()
}

// not returns the one's complement of x over exactly n words.
func not(x Vector, n int) Vector {
	z := make(Vector, n)
	for i := range z {
		if i < len(x) {
			z[i] = ^x[i]
		} else {
			z[i] = MaxWord
		}
	}
	return z
}

// neg returns the two's complement of x over exactly n words.
func neg(x Vector, n int) Vector {
	z := not(x, n)
	addVW(z, z, 1)
	return z
}

func popCount(x Vector) int {
	n := 0
	for _, w := range x {
		n += bits.OnesCount64(uint64(w))
	}
	return n
}

func bitLen(x Vector) int {
	x = x.Norm()
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*WordBits + bits.Len64(uint64(x[len(x)-1]))
}

func trailingZeros(x Vector) uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*WordBits + uint(bits.TrailingZeros64(uint64(w)))
		}
	}
	return 0
}

func bit(x Vector, i uint) uint {
	j := i / WordBits
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j]>>(i%WordBits)) & 1
}
