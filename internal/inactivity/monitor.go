package inactivity

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Signal identifies a user interaction that counts as activity.
type Signal string

const (
	SignalPointerPress Signal = "pointer_press"
	SignalPointerMove  Signal = "pointer_move"
	SignalKeyPress     Signal = "key_press"
	SignalScroll       Signal = "scroll"
	SignalTouchStart   Signal = "touch_start"
)

// DefaultTimeout is the allowed inactivity before forced logout.
const DefaultTimeout = 5 * time.Minute

// DefaultWarningGrace is how long before expiry the warning callback fires.
const DefaultWarningGrace = time.Minute

// Config holds monitor options. Zero values select the defaults; a
// WarningGrace at or above Timeout disables the warning.
type Config struct {
	Timeout      time.Duration
	WarningGrace time.Duration
}

// Monitor forces logout after a configurable idle period, limiting how long
// an unattended authenticated session stays live. It runs a single countdown:
// any activity cancels the pending countdown and starts a fresh one for the
// full timeout. A monitor belongs to one mounted protected view; Stop must be
// called on unmount or the timer leaks.
type Monitor struct {
	timeout      time.Duration
	warningGrace time.Duration
	onExpire     func()
	onWarning    func(remaining time.Duration)

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	warnTimer  *time.Timer
	stopped    bool
}

// NewMonitor creates a monitor that invokes onExpire when the countdown runs
// out. The monitor is inert until Start.
func NewMonitor(cfg Config, onExpire func()) *Monitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.WarningGrace == 0 {
		cfg.WarningGrace = DefaultWarningGrace
	}
	return &Monitor{
		timeout:      cfg.Timeout,
		warningGrace: cfg.WarningGrace,
		onExpire:     onExpire,
	}
}

// OnWarning registers a callback fired once per countdown when it enters the
// final grace window. Must be called before Start.
func (m *Monitor) OnWarning(fn func(remaining time.Duration)) {
	m.onWarning = fn
}

// Start arms the countdown. Starting an already-running monitor resets it,
// so overlapping mounts never stack a second countdown.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = false
	m.rearm()
}

// Touch records a user-interaction signal, cancelling the pending countdown
// and starting a new one for the full timeout.
func (m *Monitor) Touch(sig Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}

	log.Trace().Str("signal", string(sig)).Msg("activity observed")
	m.rearm()
}

// Stop tears the monitor down: the countdown is cancelled and no callback
// will fire afterwards. Idempotent.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.generation++
	m.cancelTimers()
}

// rearm assumes m.mu is held.
func (m *Monitor) rearm() {
	m.generation++
	gen := m.generation
	m.cancelTimers()

	m.timer = time.AfterFunc(m.timeout, func() { m.expire(gen) })

	if m.onWarning != nil && m.warningGrace > 0 && m.warningGrace < m.timeout {
		remaining := m.warningGrace
		m.warnTimer = time.AfterFunc(m.timeout-m.warningGrace, func() { m.warn(gen, remaining) })
	}
}

// cancelTimers assumes m.mu is held.
func (m *Monitor) cancelTimers() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.warnTimer != nil {
		m.warnTimer.Stop()
		m.warnTimer = nil
	}
}

func (m *Monitor) expire(gen uint64) {
	m.mu.Lock()
	// A timer that lost the race against Touch or Stop must not act: the
	// generation moved on.
	if m.stopped || gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.cancelTimers()
	m.mu.Unlock()

	log.Info().Dur("timeout", m.timeout).Msg("inactivity timeout reached, forcing logout")

	if m.onExpire != nil {
		m.onExpire()
	}
}

func (m *Monitor) warn(gen uint64, remaining time.Duration) {
	m.mu.Lock()
	if m.stopped || gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.onWarning(remaining)
}
