package mocks

import (
	"context"
	"sync"
	"time"
)

// FakeClock is a Clock whose Sleep advances virtual time immediately.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	Sleeps []time.Duration
}

// NewFakeClock returns a FakeClock starting at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sleeps = append(c.Sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return nil
}

// Advance moves virtual time forward without recording a sleep.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ManualTimer is a Timer fired explicitly by tests.
type ManualTimer struct {
	fired   bool
	Armed   []time.Duration
	Stopped bool
}

func (t *ManualTimer) Arm(d time.Duration) {
	t.Armed = append(t.Armed, d)
}

func (t *ManualTimer) Fired() bool {
	f := t.fired
	t.fired = false
	return f
}

func (t *ManualTimer) Stop() {
	t.Stopped = true
}

// Fire raises the timer flag.
func (t *ManualTimer) Fire() {
	t.fired = true
}
