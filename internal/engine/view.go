package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/retire"
	"github.com/kolkov/hatstack/internal/store"
)

// View is a consistent snapshot of the stack at the instant it claimed
// its store (spec.md §4.G). It holds a hazard slot protecting that
// store for its entire lifetime, so the store cannot be reclaimed out
// from under a long-lived view even after migration has moved the
// stack handle past it.
type View struct {
	stack *Stack
	slot  *retire.Slot
	store *store.Store
	next  uint32
	id    uuid.UUID
}

// View claims a snapshot of the stack's current store. The claim sets
// the store's claimed flag (idempotently — a second concurrent View on
// the same store simply observes it already set) so that any
// subsequent Push or Pop notices it and migrates off the store instead
// of mutating it further; this view's snapshot therefore never
// observes the in-progress migration's effects, since the copy step
// only reads Item and the Pushed/Popped bits, which a claimed store's
// cells never change again.
func (s *Stack) View() *View {
	sl := s.slots.Acquire()
	cur := s.loadProtected(sl)
	cur.Claim()

	val := cur.Head().Load()
	id := uuid.New()
	s.cfg.Logger.Debug("hatstack: view claimed",
		zap.String("view_id", id.String()),
		zap.Uint32("claim_index", val.Index),
	)
	return &View{stack: s, slot: sl, store: cur, next: val.Index, id: id}
}

// Next returns the next item in LIFO (reverse push) order, or sets done
// true once the snapshot is exhausted. Cells that were already POPPED
// at claim time are skipped, per spec.md §4.G.
func (v *View) Next() (item any, done bool) {
	for v.next > 0 {
		v.next--
		rec := v.store.Cell(v.next).Load()
		if rec.Has(cellstate.Pushed) && !rec.Has(cellstate.Popped) {
			return rec.Item, false
		}
	}
	return nil, true
}

// Delete releases the view's hazard slot, allowing its claimed store to
// be reclaimed once migration moves the stack handle past it and no
// other view or hazard slot protects it.
func (v *View) Delete() {
	v.stack.cfg.Logger.Debug("hatstack: view released",
		zap.String("view_id", v.id.String()),
	)
	v.stack.slots.Release(v.slot)
}
