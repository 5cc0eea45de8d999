package bigz_test

import (
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigz"
)

// ExampleArith_QuoRem shows the four rounding modes on -7 / 2.
func ExampleArith_QuoRem() {
	z := bigz.Default()
	x, y := bigz.FromInt64(-7), bigz.FromInt64(2)
	for _, mode := range []bigz.RoundingMode{bigz.ToZero, bigz.ToNegativeInf, bigz.ToPositiveInf, bigz.HalfEven} {
		q, r, _ := z.QuoRem(x, y, mode)
		fmt.Printf("%-8s q=%v r=%v\n", mode, q, r)
	}
	// Output:
	// truncate q=-3 r=-1
	// floor    q=-4 r=1
	// ceiling  q=-3 r=-1
	// round    q=-4 r=1
}

// ExampleArith_FromString parses hexadecimal text and prints it in base 10.
func ExampleArith_FromString() {
	z := bigz.Default()
	x, err := z.FromString("-DEADBEEFCAFEBABE1234", 16, bigz.Strict)
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := z.ToString(x, 10, bigz.SignNegative)
	fmt.Println(s)

	_, err = z.FromString("12abc", 10, bigz.Strict)
	fmt.Println(errors.Is(err, bigz.ErrSyntax))
	// Output:
	// -1051570404360395033547316
	// true
}

// ExampleArith_ModExp computes a modular power with a negative modulus.
func ExampleArith_ModExp() {
	z := bigz.Default()
	r, _ := z.ModExp(bigz.FromInt64(4), bigz.FromInt64(13), bigz.FromInt64(-497))
	fmt.Println(r)
	// Output: -52
}
