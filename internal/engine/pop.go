package engine

import (
	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/headstate"
	"github.com/kolkov/hatstack/internal/store"
)

// Pop removes and returns the current top of the stack (spec.md §4.E).
// The second return value is true iff the stack was observed empty at
// the linearization point, in which case the first return value is nil.
//
// Pop scans backwards from the head index looking for the
// highest-indexed cell that is PUSHED and not yet POPPED, skipping
// cells that are empty, already POPPED, or stamped for a push whose
// epoch has raced ahead of the head-state snapshot this scan started
// from. This is spec.md §9's open question: a popper may run past a
// slot a slower pusher has reserved but not yet written. Every empty
// cell the scan passes over is tombstoned (scanAndClaim's CASMarkSkipped
// call) before the scan moves on, so that slower pusher detects the
// conflict on its own cell CAS and restarts, rather than the scan
// silently mutating only the head-state word while leaving the
// eventually-late write free to land behind it. Aside from that
// tombstoning, the scan does not mutate shared state otherwise; the
// single winning CAS at the end is Pop's linearization point.
func (s *Stack) Pop() (any, bool) {
	sl := s.slots.Acquire()
	defer s.slots.Release(sl)

	attempts := 0
	for {
		cur := s.loadProtected(sl)
		w := cur.Head()
		val := w.Load()

		if val.Moving || cur.Claimed() {
			if !val.Moving {
				w.CAS(val, headstate.WithMoving(val))
			}
			s.helpMigrate(cur)
			continue
		}
		if val.Index == 0 {
			return nil, true
		}

		item, found, restart := s.scanAndClaim(cur, w, val)
		if restart {
			attempts++
			s.backoff(attempts)
			continue
		}
		if found {
			return item, false
		}
		return nil, true
	}
}

// scanAndClaim performs one backwards scan from val.Index over cur's
// cells, attempting to claim the first live one it finds. restart is
// true when a concurrent mutator raced the scan and the whole Pop
// should reload the current store and retry from scratch.
//
// An empty cell the scan passes over is tombstoned with CASMarkSkipped
// before the scan continues past it (spec.md §4.E step 4): a pusher
// that reserved this slot but has not yet run its cell CAS will see the
// tombstone on its next attempt and restart instead of silently
// installing a live item at an index the scan — and the head-state CAS
// that follows it — has already moved past.
func (s *Stack) scanAndClaim(cur *store.Store, w *headstate.Word, val headstate.Value) (item any, found, restart bool) {
	scanIdx := val.Index
	for scanIdx > 0 {
		targetIdx := scanIdx - 1
		cell := cur.Cell(targetIdx)
		rec := cell.Load()

		switch {
		case rec == nil:
			if !cell.CASMarkSkipped(val.Epoch) {
				// A pusher's CASPush (or another pop's tombstone) beat
				// us to this cell; restart the whole pop rather than
				// risk reclassifying a half-applied cell locally.
				return nil, false, true
			}
			scanIdx = targetIdx
			continue
		case rec.Has(cellstate.Popped):
			scanIdx = targetIdx
			continue
		case rec.Has(cellstate.Pushed) && rec.ValidAfter.AtLeast(val.Epoch):
			// Stamped by a pusher whose assigned epoch already raced
			// past our head-state snapshot: not yet visible to this
			// pop's linearization order. Keep scanning down past it.
			scanIdx = targetIdx
			continue
		case rec.Has(cellstate.Pushed):
			popTo := headstate.Value{Index: targetIdx, Epoch: val.Epoch.Next(), Moving: val.Moving}
			if !w.CAS(val, popTo) {
				return nil, false, true
			}
			if cell.CASMarkPopped(rec) {
				return rec.Item, true, false
			}
			// Another popper's helper claimed the cell first; restart.
			return nil, false, true
		default:
			scanIdx = targetIdx
		}
	}
	return nil, false, false
}
