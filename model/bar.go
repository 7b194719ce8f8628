package model

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrInvalid is returned for a Bar that breaks the test-case invariants.
var ErrInvalid = errors.New("invalid bar")

// Bar is one test case: N bar positions in A, of which at most K may be closed.
type Bar struct {
	N int
	K int64
	A []int64
}

// Process counts the integer positions that minimise the distance sum to
// the bars left open after closing at most K of them.
func (b Bar) Process() (interface{}, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	if !slices.IsSorted(b.A) {
		b.A = slices.Clone(b.A)
		b.Sort()
	}
	_, l, r, err := b.Window()
	if err != nil {
		return nil, err
	}
	return b.A[r] - b.A[l] + 1, nil
}

// Check validates N, K and the length of A.
func (b Bar) Check() error {
	switch {
	case b.N < 1:
		return fmt.Errorf("%w: n=%d", ErrInvalid, b.N)
	case b.K < 0:
		return fmt.Errorf("%w: k=%d", ErrInvalid, b.K)
	case len(b.A) != b.N:
		return fmt.Errorf("%w: n=%d but %d positions", ErrInvalid, b.N, len(b.A))
	}
	return nil
}

// Window returns the kept size sz and the sorted indices l and r bounding
// every achievable median interval. A must already be sorted.
func (b Bar) Window() (sz, l, r int, err error) {
	n := int64(b.N)
	k := b.removable()

	if k == 0 && n%2 != 0 {
		mid := b.N / 2
		return b.N, mid, mid, nil
	}

	rem := n - k
	size := rem
	if rem%2 != 0 {
		// keep one more bar, which needs at least one removal to give back
		if k < 1 {
			return 0, 0, 0, fmt.Errorf("%w: odd remainder %d with k=0", ErrInvalid, rem)
		}
		size = rem + 1
	}

	sz = int(size)
	l, r = sz/2-1, b.N-sz/2
	if l < 0 || r >= b.N || l > r {
		return 0, 0, 0, fmt.Errorf("%w: window [%d, %d] for n=%d", ErrInvalid, l, r, b.N)
	}
	return sz, l, r, nil
}

// removable caps K at N-1; at least one bar stays open.
func (b Bar) removable() int64 {
	if limit := int64(b.N) - 1; b.K > limit {
		return limit
	}
	return b.K
}

func (b *Bar) Sort() {
	slices.Sort(b.A)
}
