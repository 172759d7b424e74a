package hatstack

import (
	"go.uber.org/zap"

	"github.com/kolkov/hatstack/internal/engine"
)

// Option configures a Stack at construction time.
type Option func(*engine.Config)

// WithCompressThreshold sets the live-count divisor of the successor
// capacity formula: a migration's successor gets the larger of twice the
// predecessor's capacity and liveCount/threshold. The successor is
// never smaller than twice the predecessor, so a sparse store is not
// shrunk. A threshold of 0 (the default) disables the liveCount term:
// successors always grow by doubling.
func WithCompressThreshold(threshold uint32) Option {
	return func(c *engine.Config) {
		c.CompressThreshold = threshold
	}
}

// WithWaitFree enables the bounded-help backoff scheme on Push and Pop.
func WithWaitFree(enabled bool) Option {
	return func(c *engine.Config) {
		c.WaitFree = enabled
	}
}

// WithBackoffIncrement sets the base microsecond window wait-free
// backoff escalates from. Defaults to engine.DefaultBackoffIncrement.
func WithBackoffIncrement(microseconds int) Option {
	return func(c *engine.Config) {
		c.BackoffIncrement = microseconds
	}
}

// WithMaxBackoffLog caps the number of doublings wait-free backoff's
// window grows through. Defaults to engine.DefaultMaxBackoffLog.
func WithMaxBackoffLog(doublings int) Option {
	return func(c *engine.Config) {
		c.MaxBackoffLog = doublings
	}
}

// WithRetryThreshold sets how many failed attempts an operation makes
// before wait-free mode starts backing off. Defaults to
// engine.DefaultRetryThreshold.
func WithRetryThreshold(attempts int) Option {
	return func(c *engine.Config) {
		c.RetryThreshold = attempts
	}
}

// WithLogger attaches a structured logger for the stack's cold paths:
// migration start/finish, view claims, and wait-free backoff
// escalation. The default is a no-op logger, keeping the hot path free
// of even a nil check against a disabled logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *engine.Config) {
		c.Logger = logger
	}
}
