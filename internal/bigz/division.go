package bigz

// RoundingMode selects how a quotient is rounded to an integer.
type RoundingMode int

const (
	// ToZero truncates the quotient. The remainder has the sign of the dividend.
	ToZero RoundingMode = iota
	// ToNegativeInf rounds the quotient down. The remainder has the sign of
	// the divisor.
	ToNegativeInf
	// ToPositiveInf rounds the quotient up.
	ToPositiveInf
	// HalfEven rounds the quotient to the nearest integer, ties to even.
	HalfEven
)

func (m RoundingMode) String() string {
	switch m {
	case ToZero:
		return "truncate"
	case ToNegativeInf:
		return "floor"
	case ToPositiveInf:
		return "ceiling"
	case HalfEven:
		return "round"
	}
	return "RoundingMode(?)"
}

// DivMod returns the floored quotient and remainder of x / y, so that
// x == q*y + r with r == 0 or sign(r) == sign(y), and |r| < |y|.
func (a *Arith) DivMod(x, y *Int) (q, r *Int, err error) {
	return a.divMod("DivMod", x, y)
}

func (a *Arith) divMod(op string, x, y *Int) (q, r *Int, err error) {
	if y.sign == Zero {
		return nil, nil, opError(op, ErrDivisionByZero)
	}
	if x.sign == Zero {
		return &Int{}, &Int{}, nil
	}
	qm, rm := a.digits.DivMod(x.mag, y.mag)
	neg := x.sign != y.sign
	if neg && !rm.IsZero() {
		qm = a.digits.Add(qm, vecOne)
		rm = a.digits.Sub(y.mag, rm)
	}
	return makeInt(neg, qm), makeInt(y.sign == Negative, rm), nil
}

// QuoRem returns the quotient of x / y rounded by mode and the matching
// remainder x - q*y.
func (a *Arith) QuoRem(x, y *Int, mode RoundingMode) (q, r *Int, err error) {
	return a.quoRem("QuoRem", x, y, mode)
}

// quoRem is QuoRem reporting failures under op.
func (a *Arith) quoRem(op string, x, y *Int, mode RoundingMode) (q, r *Int, err error) {
	q, r, err = a.divMod(op, x, y)
	if err != nil || r.sign == Zero {
		return q, r, err
	}
	var up bool
	switch mode {
	case ToNegativeInf:
	case ToZero:
		up = x.sign != y.sign
	case ToPositiveInf:
		up = true
	case HalfEven:
		// q + r/y is the exact quotient with r/y in (0, 1).
		twice := a.digits.Shl(r.mag, 1)
		switch a.digits.Cmp(twice, y.mag) {
		case 1:
			up = true
		case 0:
			up = q.IsOdd()
		}
	default:
		return nil, nil, opError(op, ErrDomain)
	}
	if !up {
		return q, r, nil
	}
	if q, err = a.inc(q); err != nil {
		return nil, nil, err
	}
	if r, err = a.Subtract(r, y); err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

func (a *Arith) quo(op string, x, y *Int, mode RoundingMode) (*Int, error) {
	q, _, err := a.quoRem(op, x, y, mode)
	return q, err
}

// Div returns the floored quotient of x / y.
func (a *Arith) Div(x, y *Int) (*Int, error) { return a.quo("Div", x, y, ToNegativeInf) }

// Truncate returns x / y rounded toward zero.
func (a *Arith) Truncate(x, y *Int) (*Int, error) { return a.quo("Truncate", x, y, ToZero) }

// Floor returns x / y rounded toward negative infinity.
func (a *Arith) Floor(x, y *Int) (*Int, error) { return a.quo("Floor", x, y, ToNegativeInf) }

// Ceiling returns x / y rounded toward positive infinity.
func (a *Arith) Ceiling(x, y *Int) (*Int, error) { return a.quo("Ceiling", x, y, ToPositiveInf) }

// Round returns x / y rounded to the nearest integer. A quotient exactly
// halfway between two integers rounds to the even one.
func (a *Arith) Round(x, y *Int) (*Int, error) { return a.quo("Round", x, y, HalfEven) }

// Mod returns the floored remainder of x / y, which has the sign of y.
func (a *Arith) Mod(x, y *Int) (*Int, error) {
	_, r, err := a.divMod("Mod", x, y)
	return r, err
}

// Rem returns the truncated remainder of x / y, which has the sign of x.
func (a *Arith) Rem(x, y *Int) (*Int, error) {
	_, r, err := a.quoRem("Rem", x, y, ToZero)
	return r, err
}

// IsEven reports whether x is even.
func (a *Arith) IsEven(x *Int) bool { return x.IsEven() }

// IsOdd reports whether x is odd.
func (a *Arith) IsOdd(x *Int) bool { return x.IsOdd() }
