package model

import (
	"math/bits"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// MaxBruteBars bounds the subset enumeration done by Suitable.
const MaxBruteBars = 20

// Suitable enumerates every way of closing at most K bars and collects each
// integer position that minimises the distance sum to the open ones.
// It returns nil when N exceeds MaxBruteBars or the Bar is invalid.
func (b Bar) Suitable() mapset.Set[int64] {
	if b.Check() != nil || b.N > MaxBruteBars {
		return nil
	}

	found := mapset.NewThreadUnsafeSet[int64]()
	full := uint32(1)<<uint(b.N) - 1
	for mask := uint32(1); mask <= full; mask++ {
		if int64(b.N-bits.OnesCount32(mask)) > b.K {
			continue
		}
		kept := lo.Filter(b.A, func(_ int64, i int) bool {
			return mask&(1<<uint(i)) != 0
		})
		slices.Sort(kept)

		m := len(kept)
		low, high := kept[m/2], kept[m/2]
		if m%2 == 0 {
			low = kept[m/2-1]
		}
		for x := low; ; x++ {
			found.Add(x)
			if x == high {
				break
			}
		}
	}
	return found
}

// BruteCount is the cardinality of Suitable, or -1 when it cannot be computed.
func (b Bar) BruteCount() int {
	s := b.Suitable()
	if s == nil {
		return -1
	}
	return s.Cardinality()
}
