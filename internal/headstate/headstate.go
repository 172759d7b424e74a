// Package headstate implements the stack's single source of truth for
// slot assignment: a 64-bit word encoding (moving-flag, epoch, index)
// that every push and pop CASes to reserve its slot.
//
// Bit layout (part of the module's external contract; a debugger or
// crash-dump reader inspecting a *Word's raw bits decodes it exactly
// this way):
//
//	bits 0..31   index  — next free slot in the current store
//	bits 32..62  epoch  — bumped on every successful push and pop
//	bit  63      moving — set once migration has begun; never cleared
//
// The reserved value allOnes (every bit set) designates "initializing":
// the first successful CAS away from it installs (epoch=0, index=0).
package headstate

import (
	"sync/atomic"

	"github.com/kolkov/hatstack/internal/epoch"
)

const (
	indexBits = 32
	epochBits = 31

	indexMask = uint64(1)<<indexBits - 1
	epochMask = uint64(1)<<epochBits - 1

	movingBit = uint64(1) << 63

	// allOnes is the sentinel published by the creator of a fresh store,
	// before Init installs (epoch=0, index=0).
	allOnes = ^uint64(0)
)

// Value is a decoded snapshot of a head-state word.
type Value struct {
	Index  uint32
	Epoch  epoch.Epoch
	Moving bool
}

func decodeRaw(raw uint64) Value {
	return Value{
		Index:  uint32(raw & indexMask),
		Epoch:  epoch.Epoch((raw >> indexBits) & epochMask),
		Moving: raw&movingBit != 0,
	}
}

func (v Value) encode() uint64 {
	raw := uint64(v.Index) & indexMask
	raw |= (uint64(v.Epoch) & epochMask) << indexBits
	if v.Moving {
		raw |= movingBit
	}
	return raw
}

// Word is the atomically-CASed head-state word. Construct one with New,
// which publishes the "initializing" sentinel; the zero Word instead
// holds the encoding of (epoch=0, index=0).
type Word struct {
	raw atomic.Uint64
}

// New returns a Word in the initializing state.
func New() *Word {
	w := &Word{}
	w.raw.Store(allOnes)
	return w
}

// Load reads the current value with acquire semantics.
func (w *Word) Load() Value {
	return decodeRaw(w.raw.Load())
}

// Initializing reports whether w is still the pre-init sentinel.
func (w *Word) Initializing() bool {
	return w.raw.Load() == allOnes
}

// Init installs (epoch=0, index=0) if the word is still the
// initializing sentinel. It reports whether this call performed the
// install (false means another goroutine already did).
func (w *Word) Init() bool {
	return w.raw.CompareAndSwap(allOnes, Value{}.encode())
}

// CAS attempts to swap the word from old to new, both expressed as
// decoded Values. It reports success.
func (w *Word) CAS(old, new Value) bool {
	return w.raw.CompareAndSwap(old.encode(), new.encode())
}

// ReserveIndexForPush computes the Value a pusher should CAS to from
// cur: index+1, epoch+1, moving preserved. The caller is responsible
// for checking cur.Moving and capacity before calling this.
func ReserveIndexForPush(cur Value) Value {
	return Value{Index: cur.Index + 1, Epoch: cur.Epoch.Next(), Moving: cur.Moving}
}

// ReserveIndexForPop computes the Value a popper should CAS to from
// cur: index-1, epoch+1, moving preserved. The caller must have already
// checked cur.Index > 0.
func ReserveIndexForPop(cur Value) Value {
	return Value{Index: cur.Index - 1, Epoch: cur.Epoch.Next(), Moving: cur.Moving}
}

// WithMoving returns cur with the moving flag set, epoch and index
// unchanged. Used by the first thread to decide migration is needed.
func WithMoving(cur Value) Value {
	return Value{Index: cur.Index, Epoch: cur.Epoch, Moving: true}
}
