// Package testutil provides deterministic helpers for tests: a
// fixed-step clock and a fixed id generator, so durations and run ids
// in recorded output are reproducible across runs.
package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a thread-safe time source that advances by a
// fixed step on every Now call. With the engine reading the clock at
// body start and end, every executed test reports a duration of
// exactly one step.
type DeterministicClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewDeterministicClock creates a clock starting at start, advancing
// by step per Now call.
func NewDeterministicClock(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{now: start, step: step}
}

// Now returns the current instant and advances the clock one step.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Reset rewinds the clock to start so a scenario can be re-run with
// identical timestamps.
func (c *DeterministicClock) Reset(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = start
}
