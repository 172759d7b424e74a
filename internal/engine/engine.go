// Package engine implements the stack's concurrency engine: the push
// and pop paths, non-blocking migration, and snapshot views, wired
// together over internal/headstate, internal/cellstate, and
// internal/store (spec.md §4).
package engine

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kolkov/hatstack/internal/retire"
	"github.com/kolkov/hatstack/internal/store"
)

// Default wait-free mode constants, named in spec.md §6.
const (
	DefaultBackoffIncrement = 50
	DefaultMaxBackoffLog    = 10
	DefaultRetryThreshold   = 7
)

// Config holds the init-time and compile-time-equivalent tunables of
// spec.md §6.
type Config struct {
	CompressThreshold uint32
	WaitFree          bool
	BackoffIncrement  int
	MaxBackoffLog     int
	RetryThreshold    int
	Logger            *zap.Logger
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		BackoffIncrement: DefaultBackoffIncrement,
		MaxBackoffLog:    DefaultMaxBackoffLog,
		RetryThreshold:   DefaultRetryThreshold,
		Logger:           zap.NewNop(),
	}
}

// Stack is the concurrency engine's stack handle (spec.md §3): an
// atomic pointer to the current store plus the init-time configuration
// and the safe-reclamation collaborators.
type Stack struct {
	current atomic.Pointer[store.Store]
	cfg     Config

	slots    *retire.Slots
	registry *retire.Registry

	helpShift atomic.Uint64 // wait-free mode: count of backoff escalations; backoff windows do not read it
}

// New allocates a Stack with the given initial capacity and config.
func New(initialCapacity int, cfg Config) *Stack {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.BackoffIncrement <= 0 {
		cfg.BackoffIncrement = DefaultBackoffIncrement
	}
	if cfg.MaxBackoffLog <= 0 {
		cfg.MaxBackoffLog = DefaultMaxBackoffLog
	}
	if cfg.RetryThreshold <= 0 {
		cfg.RetryThreshold = DefaultRetryThreshold
	}

	s := &Stack{cfg: cfg, slots: retire.NewSlots()}
	s.registry = retire.NewRegistry(s.slots)
	s.current.Store(store.New(initialCapacity))
	return s
}

// Cleanup releases the stack's stores. The caller guarantees no
// concurrent Push/Pop/View calls, per spec.md §7.
func (s *Stack) Cleanup() {
	s.registry.Scan()
	s.current.Store(nil)
}

// loadProtected loads the current store and registers it in sl, retrying
// until the protected pointer matches the freshly re-read current store
// (guards against a migration publishing a new current store between
// the two loads).
func (s *Stack) loadProtected(sl *retire.Slot) *store.Store {
	for {
		cur := s.current.Load()
		sl.Protect(cur)
		if s.current.Load() == cur {
			return cur
		}
	}
}

func (s *Stack) logMigrationStart(id uuid.UUID, from, to uint32) {
	s.cfg.Logger.Debug("hatstack: migration started",
		zap.String("migration_id", id.String()),
		zap.Uint32("from_capacity", from),
		zap.Uint32("to_capacity", to),
	)
}

func (s *Stack) logMigrationDone(id uuid.UUID, liveCount uint32) {
	s.cfg.Logger.Debug("hatstack: migration published",
		zap.String("migration_id", id.String()),
		zap.Uint32("live_count", liveCount),
	)
}
