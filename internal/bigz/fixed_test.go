package bigz

import (
	"errors"
	"math"
	"testing"

	"github.com/agbru/bigcalc/internal/bn"
)

func TestFixedRoundTrip(t *testing.T) {
	t.Parallel()
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64, -1 << 40} {
		x := FromInt64(v)
		checkInvariant(t, x)
		got, ok := x.Int64()
		if !ok || got != v {
			t.Errorf("Int64(FromInt64(%d)) = %d, %v", v, got, ok)
		}
	}
	for _, v := range []uint64{0, 1, math.MaxUint64} {
		got, ok := FromUint64(v).Uint64()
		if !ok || got != v {
			t.Errorf("Uint64(FromUint64(%d)) = %d, %v", v, got, ok)
		}
	}
}

func TestFixedSaturation(t *testing.T) {
	t.Parallel()
	huge := mustParse(t, "1000000000000000000000000000000")
	tests := []struct {
		name string
		x    *Int
		i64  int64
		u64  uint64
	}{
		{"far above", huge, math.MaxInt64, math.MaxUint64},
		{"far below", huge.Neg(), math.MaxInt64, math.MaxUint64},
		{"minus two to the seventy", mustParse(t, "-1180591620717411303424"), math.MaxInt64, math.MaxUint64},
		{"one past MaxInt64", FromUint64(1 << 63), math.MaxInt64, 1 << 63},
		{"MinInt64", FromInt64(math.MinInt64), math.MinInt64, 1 << 63},
		{"one below MinInt64", mustParse(t, "-9223372036854775809"), math.MaxInt64, 1<<63 + 1},
		{"negative", FromInt64(-3), -3, 3},
		{"zero", &Int{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.ToInt64(); got != tt.i64 {
				t.Errorf("ToInt64 = %d, want %d", got, tt.i64)
			}
			if got := tt.x.ToUint64(); got != tt.u64 {
				t.Errorf("ToUint64 = %d, want %d", got, tt.u64)
			}
		})
	}
	if _, ok := huge.Int64(); ok {
		t.Error("Int64 of a huge value must not be exact")
	}
	if _, ok := FromInt64(-1).Uint64(); ok {
		t.Error("Uint64 of -1 must not be exact")
	}
}

func TestFixedClamp(t *testing.T) {
	t.Parallel()
	huge := mustParse(t, "1000000000000000000000000000000")
	tests := []struct {
		name string
		x    *Int
		i64  int64
		u64  uint64
	}{
		{"far above", huge, math.MaxInt64, math.MaxUint64},
		{"far below", huge.Neg(), math.MinInt64, 0},
		{"one past MaxInt64", FromUint64(1 << 63), math.MaxInt64, 1 << 63},
		{"one below MinInt64", mustParse(t, "-9223372036854775809"), math.MinInt64, 0},
		{"negative", FromInt64(-3), -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.ClampInt64(); got != tt.i64 {
				t.Errorf("ClampInt64 = %d, want %d", got, tt.i64)
			}
			if got := tt.x.ClampUint64(); got != tt.u64 {
				t.Errorf("ClampUint64 = %d, want %d", got, tt.u64)
			}
		})
	}
}

func TestWords(t *testing.T) {
	t.Parallel()
	a := Default()
	x, err := a.FromWords(bn.Vector{1, 2, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, x)
	if x.String() != "36893488147419103233" {
		t.Errorf("FromWords = %v", x)
	}
	w, err := a.ToWords(x)
	if err != nil || len(w) != 2 || w[1] != 2 {
		t.Errorf("ToWords = %v, %v", w, err)
	}
	if _, err := a.ToWords(x.Neg()); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("ToWords of a negative value: got %v", err)
	}
	if _, err := New(WithMaxWords(1)).FromWords(bn.Vector{1, 2}); !errors.Is(err, ErrSizeLimit) {
		t.Errorf("FromWords past the limit: got %v", err)
	}
}
