package inactivity

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_ExpiresAfterTimeout(t *testing.T) {
	var expired atomic.Int32
	m := NewMonitor(Config{Timeout: 20 * time.Millisecond}, func() { expired.Add(1) })
	m.Start()
	defer m.Stop()

	assert.Eventually(t, func() bool { return expired.Load() == 1 },
		time.Second, time.Millisecond)

	// Expiry fires once, not repeatedly.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), expired.Load())
}

func TestMonitor_ActivityResetsCountdown(t *testing.T) {
	var expired atomic.Int32
	m := NewMonitor(Config{Timeout: 60 * time.Millisecond}, func() { expired.Add(1) })
	m.Start()
	defer m.Stop()

	// Keep touching well inside the timeout; the countdown must never fire.
	for range 6 {
		time.Sleep(20 * time.Millisecond)
		m.Touch(SignalKeyPress)
	}
	assert.Equal(t, int32(0), expired.Load())

	// Let it run out after the final touch.
	assert.Eventually(t, func() bool { return expired.Load() == 1 },
		time.Second, time.Millisecond)
}

func TestMonitor_StopCancelsCountdown(t *testing.T) {
	var expired atomic.Int32
	m := NewMonitor(Config{Timeout: 20 * time.Millisecond}, func() { expired.Add(1) })
	m.Start()
	m.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), expired.Load())

	// Stop is idempotent, and Touch after Stop stays inert.
	m.Stop()
	m.Touch(SignalPointerMove)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), expired.Load())
}

func TestMonitor_RestartDoesNotStackCountdowns(t *testing.T) {
	var expired atomic.Int32
	m := NewMonitor(Config{Timeout: 30 * time.Millisecond}, func() { expired.Add(1) })
	m.Start()
	m.Start()
	m.Start()
	defer m.Stop()

	assert.Eventually(t, func() bool { return expired.Load() >= 1 },
		time.Second, time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), expired.Load())
}

func TestMonitor_WarningFiresBeforeExpiry(t *testing.T) {
	var warned, expired atomic.Int32
	m := NewMonitor(Config{Timeout: 60 * time.Millisecond, WarningGrace: 30 * time.Millisecond},
		func() { expired.Add(1) })
	m.OnWarning(func(remaining time.Duration) {
		assert.Equal(t, 30*time.Millisecond, remaining)
		// Warning precedes expiry.
		assert.Equal(t, int32(0), expired.Load())
		warned.Add(1)
	})
	m.Start()
	defer m.Stop()

	assert.Eventually(t, func() bool { return expired.Load() == 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, int32(1), warned.Load())
}

func TestMonitor_TouchCancelsPendingWarning(t *testing.T) {
	var warned atomic.Int32
	m := NewMonitor(Config{Timeout: 50 * time.Millisecond, WarningGrace: 30 * time.Millisecond},
		func() {})
	m.OnWarning(func(time.Duration) { warned.Add(1) })
	m.Start()
	defer m.Stop()

	for range 5 {
		time.Sleep(15 * time.Millisecond)
		m.Touch(SignalScroll)
	}
	assert.Equal(t, int32(0), warned.Load())
}

func TestNewMonitor_Defaults(t *testing.T) {
	m := NewMonitor(Config{}, nil)
	assert.Equal(t, DefaultTimeout, m.timeout)
	assert.Equal(t, DefaultWarningGrace, m.warningGrace)
}
