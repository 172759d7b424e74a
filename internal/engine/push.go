package engine

import (
	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/headstate"
)

// Push installs item as the new top of the stack (spec.md §4.D). It
// never fails, retrying until its head-state and cell CAS both
// succeed; in wait-free mode it backs off after RetryThreshold failed
// attempts rather than spinning unbounded.
func (s *Stack) Push(item any) {
	sl := s.slots.Acquire()
	defer s.slots.Release(sl)

	attempts := 0
	for {
		cur := s.loadProtected(sl)
		w := cur.Head()
		val := w.Load()

		if val.Moving || val.Index >= cur.Capacity() || cur.Claimed() {
			if !val.Moving {
				w.CAS(val, headstate.WithMoving(val))
			}
			s.helpMigrate(cur)
			continue
		}

		next := headstate.ReserveIndexForPush(val)
		if !w.CAS(val, next) {
			attempts++
			s.backoff(attempts)
			continue
		}

		cell := cur.Cell(val.Index)
		old := cell.Load()
		if !cellstate.RecordAllowsPush(old, next.Epoch) {
			// A faster popper or pusher already stamped a later epoch
			// on this cell (spec.md §9 open question resolution), or a
			// migration froze it: restart the whole operation from
			// head-state reservation.
			continue
		}
		if cell.CASPush(old, item, next.Epoch) {
			return
		}
		// Lost the cell CAS to a helper assigned the same slot under
		// wait-free helping (spec.md §4.D step 5); restart.
	}
}
