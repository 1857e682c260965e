package utils

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a one-shot alarm that is re-armed by its owner after every firing.
// Firing only raises a flag; the owner observes it with Fired on its own goroutine.
type Timer interface {
	Arm(d time.Duration)
	// Fired reports whether the timer went off since the last call and clears the flag.
	// Several firings before an observation count as one.
	Fired() bool
	Stop()
}

// RecurringTimer implements Timer on top of time.AfterFunc.
type RecurringTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	fired atomic.Bool
}

// NewRecurringTimer returns an unarmed timer.
func NewRecurringTimer() *RecurringTimer {
	return &RecurringTimer{}
}

// Arm schedules the next firing d from now, replacing any pending one.
func (t *RecurringTimer) Arm(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, func() {
		t.fired.Store(true)
	})
}

func (t *RecurringTimer) Fired() bool {
	return t.fired.CompareAndSwap(true, false)
}

// Stop cancels a pending firing. An already raised flag is kept.
func (t *RecurringTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
