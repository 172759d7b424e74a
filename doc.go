// Package hatstack provides the public API for a concurrent, lock-free
// LIFO stack safe for use by many goroutines at once, supporting push,
// pop, and consistent snapshot iteration without blocking writers.
//
// See doc.go (this file) for an overview and example_test.go for
// runnable examples; internal/engine carries the concurrency engine
// (push, pop, migration, views) over internal/headstate, internal/cellstate,
// and internal/store.
//
// # Basic usage
//
//	s := hatstack.New(16)
//	s.Push("first")
//	s.Push("second")
//	item, empty := s.Pop() // item == "second", empty == false
//
// # Snapshot views
//
// View takes a consistent snapshot of the stack's contents at the
// instant it is called, safe to iterate even while other goroutines
// concurrently push, pop, or trigger a migration:
//
//	v := s.View()
//	defer v.Delete()
//	for {
//		item, done := v.Next()
//		if done {
//			break
//		}
//		fmt.Println(item)
//	}
//
// # Wait-free push mode
//
// By default the stack is lock-free: every operation retries until it
// succeeds, with no bound on retries under pathological contention.
// WithWaitFree(true) switches to a bounded-help scheme where an
// operation that has retried past a threshold backs off with a
// randomized, exponentially growing delay instead of spinning forever.
//
// # MVP simplifications
//
// New allocates and initializes the stack in one call, folding the
// distilled "New then Init" two-step into Go's usual ready-to-use
// constructor idiom. Cleanup and concurrent misuse of the stack handle
// after Cleanup are explicitly undefined behavior: the caller must
// guarantee no other goroutine is still calling Push, Pop, or View.
package hatstack
