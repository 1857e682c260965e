package utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/benmeehan/camera-alarm-agent/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestRecurringTimer_FiresOnceAndClears(t *testing.T) {
	timer := utils.NewRecurringTimer()
	defer timer.Stop()

	assert.False(t, timer.Fired())

	timer.Arm(10 * time.Millisecond)
	assert.Eventually(t, timer.Fired, time.Second, 5*time.Millisecond)

	// consumed
	assert.False(t, timer.Fired())
}

func TestRecurringTimer_DoesNotRepeatUntilRearmed(t *testing.T) {
	timer := utils.NewRecurringTimer()
	defer timer.Stop()

	timer.Arm(5 * time.Millisecond)
	assert.Eventually(t, timer.Fired, time.Second, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.False(t, timer.Fired())

	timer.Arm(5 * time.Millisecond)
	assert.Eventually(t, timer.Fired, time.Second, 5*time.Millisecond)
}

func TestRecurringTimer_Stop(t *testing.T) {
	timer := utils.NewRecurringTimer()

	timer.Arm(20 * time.Millisecond)
	timer.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, timer.Fired())
}

func TestSystemClock_SleepCancelled(t *testing.T) {
	clock := utils.NewSystemClock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := clock.Sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSystemClock_Sleep(t *testing.T) {
	clock := utils.NewSystemClock()

	start := clock.Now()
	assert.NoError(t, clock.Sleep(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
