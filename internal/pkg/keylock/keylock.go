// Package keylock serialises work per key using a fixed set of striped mutexes.
//
// The persistence layer locks the keys of every aggregate touched by a unit of
// work around commit and post-commit hooks, so hooks for one aggregate run in
// the order its transactions committed.
package keylock

import (
	"hash/fnv"
	"slices"
	"sync"
)

const defaultStripes = 256

// Striped maps keys onto a fixed number of mutexes.
// Distinct keys may share a stripe; that only costs parallelism.
type Striped struct {
	stripes []sync.Mutex
}

// New returns a Striped lock with n stripes. n <= 0 selects the default.
func New(n int) *Striped {
	if n <= 0 {
		n = defaultStripes
	}
	return &Striped{stripes: make([]sync.Mutex, n)}
}

// Lock acquires the stripes covering keys in ascending stripe order and
// returns the function that releases them. Acquiring in a fixed order keeps
// two callers with overlapping key sets from deadlocking.
func (s *Striped) Lock(keys ...string) (unlock func()) {
	idx := s.indexes(keys)
	for _, i := range idx {
		s.stripes[i].Lock()
	}

	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			s.stripes[idx[j]].Unlock()
		}
	}
}

func (s *Striped) indexes(keys []string) []int {
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		h := fnv.New32a()
		_, _ = h.Write([]byte(k))
		idx = append(idx, int(h.Sum32()%uint32(len(s.stripes))))
	}
	slices.Sort(idx)
	return slices.Compact(idx)
}
