package engine

import (
	"github.com/google/uuid"

	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/headstate"
	"github.com/kolkov/hatstack/internal/store"
)

// helpMigrate drives cur's migration to completion (spec.md §4.F). It
// is safe to call redundantly from many goroutines at once: every step
// is a CAS or an idempotent re-derivation, so a helper that loses a
// race has simply done someone else's work for them and can move on to
// whatever step comes next.
func (s *Stack) helpMigrate(cur *store.Store) {
	w := cur.Head()
	val := w.Load()
	if !val.Moving {
		w.CAS(val, headstate.WithMoving(val))
		val = w.Load()
	}

	id := uuid.New()
	succ := s.ensureSuccessor(cur, val, id)
	liveCount := s.freezeAndCopy(cur, succ, val.Index)
	s.publish(cur, succ, id, liveCount)
}

// ensureSuccessor returns cur's successor, allocating and installing
// one if no helper has yet (spec.md §4.F step 2).
func (s *Stack) ensureSuccessor(cur *store.Store, frozenAt headstate.Value, id uuid.UUID) *store.Store {
	if existing := cur.Next(); existing != nil {
		return existing
	}

	live := s.countLive(cur, frozenAt.Index)
	capacity := store.GrowthCapacity(cur.Capacity(), live, s.cfg.CompressThreshold)
	candidate := store.New(capacity)

	if cur.CASNext(candidate) {
		s.logMigrationStart(id, cur.Capacity(), candidate.Capacity())
		return candidate
	}
	return cur.Next()
}

// countLive returns the number of cells in [0, bound) that are PUSHED
// and not yet POPPED, for sizing the successor store.
func (s *Stack) countLive(cur *store.Store, bound uint32) uint32 {
	var n uint32
	for idx := uint32(0); idx < bound; idx++ {
		rec := cur.Cell(idx).Load()
		if rec.Has(cellstate.Pushed) && !rec.Has(cellstate.Popped) {
			n++
		}
	}
	return n
}

// freezeAndCopy freezes every cell in [0, bound) of cur (ORing in
// Moving, spec.md §4.F step 3) and copies each live one into succ in
// ascending source-index order (step 4), marking each source cell
// Moved once it has been handled (step 5). It returns the number of
// cells copied.
//
// destIdx is computed identically by every concurrent helper: both
// freezing (via Cell.CASOrMoving) and the Pushed/Popped classification
// it exposes are idempotent, so two helpers racing through the same
// range always agree on which source cells are live and in what
// relative order, even though they never coordinate through a shared
// counter.
func (s *Stack) freezeAndCopy(cur, succ *store.Store, bound uint32) uint32 {
	var destIdx uint32
	for idx := uint32(0); idx < bound; idx++ {
		cell := cur.Cell(idx)
		frozen := cell.CASOrMoving()

		if frozen.Has(cellstate.Pushed) && !frozen.Has(cellstate.Popped) {
			succ.Cell(destIdx).CASInstallMigrated(frozen.Item)
			destIdx++
		}

		cell.CASMarkMoved(frozen)
	}

	s.publishSuccessorHead(succ, destIdx)
	return destIdx
}

// publishSuccessorHead advances succ's head-state from its initial
// (epoch=0, index=0) to (epoch=1, index=liveCount) once copying from
// the predecessor is complete, so the next push/pop on succ reserves
// from the correct cursor. The epoch starts at 1 because migrated cells
// carry valid_after 0: a pop whose snapshot epoch were still 0 would
// treat every migrated cell as a late push and skip it. Every helper
// computes the same liveCount, so redundant CAS attempts here are
// harmless.
func (s *Stack) publishSuccessorHead(succ *store.Store, liveCount uint32) {
	w := succ.Head()
	zero := headstate.Value{}
	w.CAS(zero, headstate.Value{Index: liveCount, Epoch: 1})
}

// publish advances the stack handle from cur to succ (spec.md §4.F
// step 6) and retires cur for eventual reclamation. Only the first
// caller's CAS matters; later helpers observe the handle already
// advanced and skip straight past, having done useful freezing/copying
// work regardless of who ultimately wins the publish.
func (s *Stack) publish(cur, succ *store.Store, id uuid.UUID, liveCount uint32) {
	if s.current.CompareAndSwap(cur, succ) {
		s.registry.Retire(cur)
		s.logMigrationDone(id, liveCount)
		s.registry.Scan()
	}
}
