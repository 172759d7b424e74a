// Package epoch implements the monotonically increasing ordering token
// stamped on every successful head-state transition.
//
// An Epoch orders push/pop operations against each other and against the
// validity of individual cells: a cell stamped valid_after e is only
// writable by pushers assigned an epoch strictly greater than e. Epochs
// are 31-bit values (they share a 64-bit head-state word with a 32-bit
// index and a moving flag; see internal/headstate), so overflow is
// treated as a fatal condition rather than a silent wraparound.
package epoch

// Epoch is a single store's logical clock. It only ever increases.
type Epoch uint32

// Max is the largest representable epoch before the head-state word's
// 31-bit epoch field would overflow into the moving-flag bit.
const Max Epoch = 1<<31 - 1

// Next returns the epoch following e, panicking if that would overflow
// the head-state word's epoch field (spec.md §7: epoch overflow beyond
// 2^31 is an unrecoverable condition).
func (e Epoch) Next() Epoch {
	if e >= Max {
		panic("hatstack: epoch overflow")
	}
	return e + 1
}

// Before reports whether e strictly precedes other, i.e. whether a cell
// stamped valid_after e may be pushed into by an operation assigned
// epoch other.
func (e Epoch) Before(other Epoch) bool {
	return e < other
}

// AtLeast reports whether e is greater than or equal to other.
func (e Epoch) AtLeast(other Epoch) bool {
	return e >= other
}
