package engine

import (
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// backoff implements spec.md §4.H's bounded-help scheme: in lock-free
// mode (the default) a failed CAS just yields the processor; once
// WaitFree is enabled and a single operation has reached RetryThreshold
// failed attempts, it bumps the shared help-shift counter, logs the
// escalation, and sleeps a randomized, exponentially growing (capped
// at MaxBackoffLog doublings) backoff before retrying. The window
// depends only on this operation's own attempt count. This converts unbounded spinning
// under contention into a bounded number of busy attempts per
// operation, at the cost of added latency once contention is high
// enough to trip the threshold.
func (s *Stack) backoff(attempts int) {
	if !s.cfg.WaitFree || attempts < s.cfg.RetryThreshold {
		runtime.Gosched()
		return
	}

	shift := attempts - s.cfg.RetryThreshold
	if shift > s.cfg.MaxBackoffLog {
		shift = s.cfg.MaxBackoffLog
	}
	s.helpShift.Add(1)
	s.cfg.Logger.Debug("hatstack: wait-free backoff escalated",
		zap.Int("attempts", attempts),
		zap.Int("shift", shift),
	)

	maxMicros := s.cfg.BackoffIncrement << uint(shift)
	wait := time.Duration(rand.Intn(maxMicros)+1) * time.Microsecond
	time.Sleep(wait)
}

// HelpShift returns the number of times any operation has escalated
// past RetryThreshold, for diagnostics and the property test in
// spec.md §8 boundary scenario 6 (bounded CAS attempts under wait-free
// mode).
func (s *Stack) HelpShift() uint64 {
	return s.helpShift.Load()
}
