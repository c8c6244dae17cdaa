package rtos

import (
	"time"

	"gortos/port"
)

// Counter is a counting semaphore bounded by a maximum count, starting
// at zero. Unlike Mutex, both Take and Give have interrupt-safe kernel
// variants, so every operation dispatches on the current context.
type Counter struct {
	p   port.Port
	lc  lifecycle
	max int
	h   port.SemaHandle

	store semaStorage
}

// NewCounter constructs a counter wrapper bounded by max. The kernel
// semaphore is not created until Init.
func NewCounter(p port.Port, max int) *Counter {
	return &Counter{p: p, max: max}
}

// Init creates the kernel semaphore. False means the kernel could not
// allocate it and Init may be retried.
func (c *Counter) Init() bool {
	c.lc.requireUnconfigured("Counter")
	if c.max <= 0 {
		fail("Counter maximum must be positive")
	}
	h := c.createCounter(c.max)
	if h == nil {
		return false
	}
	c.h = h
	c.lc.markReady()
	return true
}

// Handler exposes the raw kernel handle. Anything done through it
// bypasses the wrapper's lifecycle guarantees.
func (c *Counter) Handler() port.SemaHandle { return c.h }

func (c *Counter) Max() int { return c.max }

// Take decrements the count, waiting up to wait for it to become
// non-zero. Safe from interrupt context, where it never blocks.
func (c *Counter) Take(wait time.Duration) bool {
	c.lc.requireReady(c.p, "Counter")
	return dispatch(c.p, func() bool {
		return c.p.SemaTake(c.h, c.p.TicksFromDuration(wait))
	}, func() (bool, bool) {
		return c.p.SemaTakeFromISR(c.h)
	})
}

// Give increments the count. False means the maximum is already
// reached. Safe from interrupt context.
func (c *Counter) Give() bool {
	c.lc.requireReady(c.p, "Counter")
	return dispatch(c.p, func() bool {
		return c.p.SemaGive(c.h)
	}, func() (bool, bool) {
		return c.p.SemaGiveFromISR(c.h)
	})
}

// Reset drains the available counts one by one; the kernel has no
// atomic clear. The drain is bounded by the maximum count so it always
// terminates, but a Give racing it can leave a residual count behind.
func (c *Counter) Reset() bool {
	c.lc.requireReady(c.p, "Counter")
	return dispatch(c.p, func() bool {
		for i := 0; i < c.max; i++ {
			if !c.p.SemaTake(c.h, 0) {
				break
			}
		}
		return true
	}, func() (bool, bool) {
		var woken bool
		for i := 0; i < c.max; i++ {
			ok, w := c.p.SemaTakeFromISR(c.h)
			woken = woken || w
			if !ok {
				break
			}
		}
		return true, woken
	})
}

// Destroy deletes the kernel semaphore. The wrapper accepts no further
// operations.
func (c *Counter) Destroy() {
	c.lc.requireReady(c.p, "Counter")
	c.p.SemaDelete(c.h)
	c.h = nil
	c.lc.markDestroyed()
}
