package hatstack

import (
	"github.com/kolkov/hatstack/internal/cellstate"
	"github.com/kolkov/hatstack/internal/engine"
)

// Bit-for-bit cell state flags, exported so an external debugger or
// crash-dump reader can decode a cell's raw flags exactly as this
// module stamps them.
const (
	FlagPushed = cellstate.Pushed
	FlagPopped = cellstate.Popped
	FlagMoving = cellstate.Moving
	FlagMoved  = cellstate.Moved
)

// Stack is a concurrent, lock-free LIFO stack. The zero value is not
// usable; construct one with New.
type Stack struct {
	eng *engine.Stack
}

// New allocates and initializes a Stack with room for initialCapacity
// items before its first migration. initialCapacity is clamped to at
// least 1.
func New(initialCapacity int, opts ...Option) *Stack {
	cfg := engine.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Stack{eng: engine.New(initialCapacity, cfg)}
}

// Push installs item as the new top of the stack. Push never fails and
// never blocks indefinitely: under the default lock-free mode it
// retries until its CAS succeeds; under WithWaitFree it backs off after
// a bounded number of attempts instead of spinning.
func (s *Stack) Push(item any) {
	s.eng.Push(item)
}

// Pop removes and returns the current top of the stack. The second
// return value is true iff the stack was empty, in which case the first
// return value is nil.
func (s *Stack) Pop() (item any, empty bool) {
	return s.eng.Pop()
}

// View takes a consistent snapshot of the stack's contents. The
// returned View must be released with Delete once the caller is done
// iterating it.
func (s *Stack) View() *View {
	return &View{v: s.eng.View()}
}

// HelpShift returns the number of times any Push or Pop has escalated
// past its retry threshold under WithWaitFree mode. Exposed for
// diagnostics and for property tests asserting bounded backoff
// escalation under contention.
func (s *Stack) HelpShift() uint64 {
	return s.eng.HelpShift()
}

// Cleanup releases the stack's internal stores. The caller must
// guarantee no other goroutine is concurrently calling Push, Pop, or
// View; doing so anyway is undefined behavior.
func (s *Stack) Cleanup() {
	s.eng.Cleanup()
}

// Delete releases the stack, matching the distilled API's New/Delete
// pairing. It is equivalent to Cleanup; both exist because the
// distilled interface names both operations, and Go's garbage collector
// does not make either one optional the way it would for a type with no
// off-heap resources to release.
func (s *Stack) Delete() {
	s.eng.Cleanup()
}

// View is a consistent, point-in-time snapshot of a Stack's contents,
// iterable in reverse push (LIFO) order.
type View struct {
	v *engine.View
}

// Next returns the next item in the snapshot, or sets done true once
// the snapshot is exhausted.
func (v *View) Next() (item any, done bool) {
	return v.v.Next()
}

// Delete releases the view's hazard slot on its snapshot's underlying
// store, allowing it to be reclaimed once migration moves past it. The
// store stays claimed; Delete does not make it mutable again.
func (v *View) Delete() {
	v.v.Delete()
}
