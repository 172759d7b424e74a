// Package cellstate implements the per-slot cell protocol: the atomic
// unit holding one stack element's payload, state flags, and validity
// epoch, and the legal state transitions between pushers, poppers, and
// migration helpers (spec.md §4.A).
//
// A cell's three fields change together as one atomic unit. Real
// hardware double-word CAS is not portably available from Go, and the
// payload must stay visible to the garbage collector, so the unit is
// realized as a CAS over a pointer to an immutable Record rather than
// a hand-packed machine word — the "two atomics with a generation
// counter" fallback spec.md §9 sanctions, specialized to a single
// pointer swap so all three fields still move atomically together.
package cellstate

import (
	"sync/atomic"

	"github.com/kolkov/hatstack/internal/epoch"
)

// State flags, bit-for-bit as specified in spec.md §6 (part of the
// external contract for any observer inspecting memory directly).
const (
	Pushed uint8 = 1 << iota // cell contains a valid item
	Popped                   // cell's item has been consumed
	Moving                   // cell is being migrated
	Moved                    // cell migration complete
)

// Record is an immutable snapshot of a cell's three fields.
type Record struct {
	Item       any
	Flags      uint8
	ValidAfter epoch.Epoch
}

// Has reports whether all of the given flags are set.
func (r *Record) Has(flags uint8) bool {
	return r != nil && r.Flags&flags == flags
}

// Cell is one slot of a store.
type Cell struct {
	rec atomic.Pointer[Record]
}

// Load reads the cell's current record. A nil return means the empty
// state: no item, no flags, valid_after implicitly 0.
func (c *Cell) Load() *Record {
	return c.rec.Load()
}

// CanPush reports whether a pusher assigned the given epoch may install
// a new item into this cell, per spec.md §4.A: writable only if the
// prior record's valid_after is strictly less than the assigned epoch
// and a migration has not frozen the cell (Moving not set).
func (c *Cell) CanPush(assigned epoch.Epoch) bool {
	return RecordAllowsPush(c.rec.Load(), assigned)
}

// RecordAllowsPush is CanPush against an already-loaded snapshot, so
// the caller can check-then-CAS against the same record without a
// second load racing a concurrent mutator (spec.md §4.D steps 4-5).
func RecordAllowsPush(rec *Record, assigned epoch.Epoch) bool {
	if rec == nil {
		return true
	}
	if rec.Flags&Moving != 0 {
		return false
	}
	return rec.ValidAfter.Before(assigned)
}

// CASPush installs (item, Pushed, assigned-1) provided the current
// record is still old. It does not check old's valid_after or flags
// itself; callers check old with RecordAllowsPush first. It reports
// success; on failure the caller must restart from head-state
// reservation (spec.md §4.D step 4/5).
func (c *Cell) CASPush(old *Record, item any, assigned epoch.Epoch) bool {
	next := &Record{Item: item, Flags: Pushed, ValidAfter: assigned - 1}
	return c.rec.CompareAndSwap(old, next)
}

// CASMarkSkipped installs a Popped tombstone into an empty cell a pop
// scan is passing over on its way to a lower index, stamping boundEpoch
// as its valid_after (spec.md §4.E step 4). This closes the race where
// a pusher has already reserved this slot via a head-state CAS but has
// not yet run its own cell CAS: once tombstoned, that pusher's
// CASPush sees a non-nil old record whose valid_after is at least its
// own assigned epoch, so RecordAllowsPush denies it and it restarts
// from head-state reservation instead of writing a live cell the scan
// has already moved past. It reports success; a losing caller must
// reread the cell, since a concurrent pusher or another pop's tombstone
// got there first.
func (c *Cell) CASMarkSkipped(boundEpoch epoch.Epoch) bool {
	return c.rec.CompareAndSwap(nil, &Record{Flags: Popped, ValidAfter: boundEpoch})
}

// CASMarkPopped adds Popped to old's flag set, keeping item and
// valid_after unchanged, per spec.md §4.A PUSHED -> PUSHED|POPPED.
func (c *Cell) CASMarkPopped(old *Record) bool {
	if old == nil || old.Flags&Popped != 0 {
		return false
	}
	next := &Record{Item: old.Item, Flags: old.Flags | Popped, ValidAfter: old.ValidAfter}
	return c.rec.CompareAndSwap(old, next)
}

// CASOrMoving ORs Moving into old's flags, called by any thread that
// observes the head-state's moving flag (spec.md §4.A "Any -> ...|MOVING").
// It loops internally so callers never need to retry on lost races
// against concurrent pushers/poppers touching the same cell.
func (c *Cell) CASOrMoving() *Record {
	for {
		old := c.rec.Load()
		if old.Has(Moving) {
			return old
		}
		var next *Record
		if old == nil {
			next = &Record{Flags: Moving}
		} else {
			next = &Record{Item: old.Item, Flags: old.Flags | Moving, ValidAfter: old.ValidAfter}
		}
		if c.rec.CompareAndSwap(old, next) {
			return next
		}
	}
}

// CASInstallMigrated installs item into an empty successor cell with
// valid_after 0, per spec.md §4.F step 4 ("CASing the destination cell
// from empty to (item, PUSHED, 0)"). It reports success; a losing
// helper should treat the loss as confirmation the destination is
// already populated, not as an error.
func (c *Cell) CASInstallMigrated(item any) bool {
	return c.rec.CompareAndSwap(nil, &Record{Item: item, Flags: Pushed, ValidAfter: 0})
}

// CASMarkMoved ORs Moved into old's flags. Called by the migrator once
// the cell's item has been copied into the successor (or confirmed
// empty), per spec.md §4.A "...|MOVING -> ...|MOVING|MOVED".
func (c *Cell) CASMarkMoved(old *Record) bool {
	if old.Has(Moved) {
		return true
	}
	var next *Record
	if old == nil {
		next = &Record{Flags: Moving | Moved}
	} else {
		next = &Record{Item: old.Item, Flags: old.Flags | Moved, ValidAfter: old.ValidAfter}
	}
	return c.rec.CompareAndSwap(old, next)
}
