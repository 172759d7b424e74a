package retire

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/hatstack/internal/store"
)

// Registry holds retired stores until no hazard slot protects them
// anymore: a "store once under a monotonic key, scan occasionally"
// registry keyed by retirement sequence number.
type Registry struct {
	slots *Slots
	seq   atomic.Uint64
	mu    sync.Mutex
	live  map[uint64]*store.Store
}

// NewRegistry returns a Registry that checks liveness against slots.
func NewRegistry(slots *Slots) *Registry {
	return &Registry{slots: slots, live: make(map[uint64]*store.Store)}
}

// Retire records s as no longer reachable from the stack handle, to be
// freed once Scan observes no hazard slot protecting it. Retire never
// blocks and performs the actual free lazily on a later Scan, matching
// spec.md §3 invariant 6 ("never freed while a view holds it claimed")
// generalized to "while any operation holds it").
func (r *Registry) Retire(s *store.Store) {
	id := r.seq.Add(1)
	r.mu.Lock()
	r.live[id] = s
	r.mu.Unlock()
}

// Scan drops retired stores no hazard slot protects anymore. It is
// called from cold paths only (migration completion, explicit
// Cleanup), matching the registry's read-heavy/write-rare access
// pattern. It returns the number of stores reclaimed, useful for tests
// and diagnostics.
func (r *Registry) Scan() int {
	r.mu.Lock()
	candidates := make(map[uint64]*store.Store, len(r.live))
	for id, s := range r.live {
		candidates[id] = s
	}
	r.mu.Unlock()

	reclaimed := 0
	for id, s := range candidates {
		if r.slots.Protects(s) {
			continue
		}
		r.mu.Lock()
		delete(r.live, id)
		r.mu.Unlock()
		reclaimed++
	}
	return reclaimed
}

// Pending returns the number of retired stores still awaiting
// reclamation. Used by tests and diagnostics.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
