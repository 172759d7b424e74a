// Package store implements the stack's backing array generation: a
// fixed-size block of cells, its head-state word, and the forwarding
// pointer used to chain to a freshly migrated successor (spec.md §4.C).
package store

import (
	"sync/atomic"

	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/headstate"
)

// MinCapacity is the smallest capacity a store may be allocated with,
// including on shrink-eligible compaction (spec.md §4.C).
const MinCapacity = 1

// Store is an immutable-shape block: the cell array and capacity never
// change after New returns, only the cells' contents and the head word.
type Store struct {
	cells    []cellstate.Cell
	head     *headstate.Word
	next     atomic.Pointer[Store]
	claimed  atomic.Bool
	capacity uint32
}

// New allocates a Store with room for capacity items, initializing its
// head-state word to (epoch=0, index=0).
func New(capacity int) *Store {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if capacity > 1<<31-1 {
		panic("hatstack: capacity overflow beyond 2^31 slots")
	}
	s := &Store{
		cells:    make([]cellstate.Cell, capacity),
		head:     headstate.New(),
		capacity: uint32(capacity),
	}
	s.head.Init()
	return s
}

// Capacity returns the store's fixed cell count.
func (s *Store) Capacity() uint32 {
	return s.capacity
}

// Head returns the store's head-state word.
func (s *Store) Head() *headstate.Word {
	return s.head
}

// Cell returns a pointer to the cell at idx. The caller must ensure
// 0 <= idx < Capacity().
func (s *Store) Cell(idx uint32) *cellstate.Cell {
	return &s.cells[idx]
}

// Next returns the successor store, or nil if migration has not begun.
func (s *Store) Next() *Store {
	return s.next.Load()
}

// CASNext installs succ as the successor store if none is installed
// yet. It reports whether this call won the race; on loss, Next()
// already returns the winning successor.
func (s *Store) CASNext(succ *Store) bool {
	return s.next.CompareAndSwap(nil, succ)
}

// Claimed reports whether a view has claimed this store, which forbids
// further mutation: any operation observing Claimed() must help migrate
// then retry on the successor (spec.md §4.C).
func (s *Store) Claimed() bool {
	return s.claimed.Load()
}

// Claim sets the claimed flag, reporting whether this call set it (a
// competing claim from another concurrent View would make the second
// caller's Claim return false, but both see the store frozen).
func (s *Store) Claim() bool {
	return s.claimed.CompareAndSwap(false, true)
}

// GrowthCapacity computes the successor capacity given the current
// capacity, the live cell count at freeze time, and the compress
// threshold (spec.md §4.F step 2: "max(desired_growth, live_count /
// compress_threshold)"). desired_growth is the doubling policy; the
// compress term can only raise the result above the doubled capacity,
// so a successor is never smaller than twice its predecessor (clamped
// to MinCapacity), however sparse the predecessor is.
func GrowthCapacity(capacity uint32, liveCount uint32, compressThreshold uint32) int {
	doubled := int(capacity) * 2
	if doubled < MinCapacity {
		doubled = MinCapacity
	}
	if compressThreshold == 0 {
		return doubled
	}
	compressed := int(liveCount) / int(compressThreshold)
	if compressed < MinCapacity {
		compressed = MinCapacity
	}
	if compressed > doubled {
		return compressed
	}
	return doubled
}
