// This file provides pooled scratch vectors for division and printing.

package bn

import (
	"math/bits"
	"sync"
)

// vectorPools pools scratch vectors by size class: 64, 256, 1K, 4K, 16K and
// 64K words. Larger requests are allocated directly.
var vectorPools = [...]sync.Pool{
	{New: func() any { return make(Vector, 64) }},
	{New: func() any { return make(Vector, 256) }},
	{New: func() any { return make(Vector, 1024) }},
	{New: func() any { return make(Vector, 4096) }},
	{New: func() any { return make(Vector, 16384) }},
	{New: func() any { return make(Vector, 65536) }},
}

// vectorSizes lists the capacity of each pool; size class i holds 4^(i+3) words.
var vectorSizes = [...]int{64, 256, 1024, 4096, 16384, 65536}

// poolIndex returns the pool serving size, or -1 if size is too large.
func poolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > vectorSizes[len(vectorSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Acquire returns a zeroed scratch vector of length size. Release it when
// done, preferably with defer:
//
//	v := bn.Acquire(n)
//	defer bn.Release(v)
func Acquire(size int) Vector {
	idx := poolIndex(size)
	if idx < 0 {
		return make(Vector, size)
	}
	v := vectorPools[idx].Get().(Vector)
	clear(v)
	return v[:size]
}

// Release returns a vector obtained from Acquire to its pool. Vectors whose
// capacity does not match a size class are left to the garbage collector.
// The caller must not use v afterwards.
func Release(v Vector) {
	if v == nil {
		return
	}
	c := cap(v)
	idx := poolIndex(c)
	if idx >= 0 && vectorSizes[idx] == c {
		vectorPools[idx].Put(v[:c]) //nolint:staticcheck // slices are pooled by value
	}
}
