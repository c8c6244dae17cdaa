package rtos

import (
	"time"

	"gortos/port"
)

// TimerFunc is a software timer callback. It runs on the kernel's timer
// service task and must never block.
type TimerFunc func(tag any)

// TimerConfig holds the construction-time configuration of a Timer.
type TimerConfig struct {
	Callback TimerFunc
	Name     string
	// AutoReload restarts the timer with the same period after each
	// fire; otherwise one Start gives one fire.
	AutoReload bool
	// Tag is handed to the callback, distinguishing timers that share one.
	Tag any
}

// Timer wraps a kernel software timer.
type Timer struct {
	p   port.Port
	lc  lifecycle
	cfg TimerConfig
	h   port.TimerHandle

	store timerStorage
}

// NewTimer constructs a timer wrapper. The kernel timer is not created
// until Init.
func NewTimer(p port.Port, cfg TimerConfig) *Timer {
	return &Timer{p: p, cfg: cfg}
}

// Init creates the kernel timer, dormant. False means the kernel could
// not allocate it and Init may be retried.
func (t *Timer) Init() bool {
	t.lc.requireUnconfigured("Timer")
	if t.cfg.Callback == nil {
		fail("Timer callback is nil")
	}
	if t.cfg.Name == "" {
		fail("Timer name is empty")
	}
	h := t.createTimer(port.TimerConfig{
		Callback:   t.cfg.Callback,
		Name:       t.cfg.Name,
		AutoReload: t.cfg.AutoReload,
		Tag:        t.cfg.Tag,
	})
	if h == nil {
		return false
	}
	t.h = h
	t.lc.markReady()
	return true
}

// Handler exposes the raw kernel handle. Anything done through it
// bypasses the wrapper's lifecycle guarantees.
func (t *Timer) Handler() port.TimerHandle { return t.h }

// SetName renames the timer. Valid only before Init.
func (t *Timer) SetName(name string) bool {
	if name == "" {
		fail("Timer name is empty")
	}
	if !t.lc.mutable() {
		return false
	}
	t.cfg.Name = name
	return true
}

func (t *Timer) Name() string { return t.cfg.Name }

func (t *Timer) Tag() any { return t.cfg.Tag }

// Start arms the timer with the given period, replacing the period of
// an already-running timer. Safe from interrupt context.
func (t *Timer) Start(period time.Duration) bool {
	t.lc.requireReady(t.p, "Timer")
	ticks := t.p.TicksFromDuration(period)
	return dispatch(t.p, func() bool {
		t.p.TimerChangePeriod(t.h, ticks, 0)
		return t.p.TimerStart(t.h, 0)
	}, func() (bool, bool) {
		_, w1 := t.p.TimerChangePeriodFromISR(t.h, ticks)
		ok, w2 := t.p.TimerStartFromISR(t.h)
		return ok, w1 || w2
	})
}

// Stop disarms the timer. Safe from interrupt context.
func (t *Timer) Stop() bool {
	t.lc.requireReady(t.p, "Timer")
	return dispatch(t.p, func() bool {
		return t.p.TimerStop(t.h, 0)
	}, func() (bool, bool) {
		return t.p.TimerStopFromISR(t.h)
	})
}

// Restart rearms the timer from now with the given period, starting it
// if dormant. Safe from interrupt context.
func (t *Timer) Restart(period time.Duration) bool {
	t.lc.requireReady(t.p, "Timer")
	ticks := t.p.TicksFromDuration(period)
	return dispatch(t.p, func() bool {
		t.p.TimerChangePeriod(t.h, ticks, 0)
		return t.p.TimerReset(t.h, 0)
	}, func() (bool, bool) {
		_, w1 := t.p.TimerChangePeriodFromISR(t.h, ticks)
		ok, w2 := t.p.TimerResetFromISR(t.h)
		return ok, w1 || w2
	})
}

// IsActive reports whether the timer is armed.
func (t *Timer) IsActive() bool {
	t.lc.requireReady(t.p, "Timer")
	return t.p.TimerActive(t.h)
}

// Destroy deletes the kernel timer. The wrapper accepts no further
// operations.
func (t *Timer) Destroy() {
	t.lc.requireReady(t.p, "Timer")
	t.p.TimerDelete(t.h, 0)
	t.h = nil
	t.lc.markDestroyed()
}

// PendCall schedules fn to run once on the kernel's timer service task,
// outside interrupt context — the place for work too heavy for an
// interrupt handler. fn must never block. Safe from interrupt context,
// where it never blocks waiting for queue space.
func PendCall(p port.Port, fn func(arg any, n uint32), arg any, n uint32, wait time.Duration) bool {
	if fn == nil {
		fail("PendCall function is nil")
	}
	if !p.SchedulerRunning() {
		fail("PendCall used before the scheduler started")
	}
	return dispatch(p, func() bool {
		return p.PendCall(fn, arg, n, p.TicksFromDuration(wait))
	}, func() (bool, bool) {
		return p.PendCallFromISR(fn, arg, n)
	})
}
