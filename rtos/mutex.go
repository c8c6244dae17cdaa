package rtos

import (
	"time"

	"gortos/port"
)

// Mutex guards a shared resource. It is not reentrant: a task holding
// the lock blocks itself by locking again. Mutexes must never be used
// from interrupt context — a blocked interrupt handler cannot be
// rescheduled — so Lock and Unlock fail fast there instead of
// dispatching to an ISR variant.
type Mutex struct {
	p  port.Port
	lc lifecycle
	h  port.SemaHandle

	store semaStorage
}

// NewMutex constructs a mutex wrapper. The kernel mutex is not created
// until Init.
func NewMutex(p port.Port) *Mutex {
	return &Mutex{p: p}
}

// Init creates the kernel mutex. False means the kernel could not
// allocate it and Init may be retried.
func (m *Mutex) Init() bool {
	m.lc.requireUnconfigured("Mutex")
	h := m.createMutex()
	if h == nil {
		return false
	}
	m.h = h
	m.lc.markReady()
	return true
}

// Handler exposes the raw kernel handle. Anything done through it
// bypasses the wrapper's lifecycle guarantees.
func (m *Mutex) Handler() port.SemaHandle { return m.h }

// Lock acquires the mutex, waiting up to wait for the holder to release
// it. False means the wait elapsed.
func (m *Mutex) Lock(wait time.Duration) bool {
	m.lc.requireReady(m.p, "Mutex")
	if m.p.InISR() {
		fail("Mutex locked from interrupt context")
	}
	return m.p.SemaTake(m.h, m.p.TicksFromDuration(wait))
}

// Unlock releases the mutex.
func (m *Mutex) Unlock() bool {
	m.lc.requireReady(m.p, "Mutex")
	if m.p.InISR() {
		fail("Mutex unlocked from interrupt context")
	}
	return m.p.SemaGive(m.h)
}

// Destroy deletes the kernel mutex. The wrapper accepts no further
// operations.
func (m *Mutex) Destroy() {
	m.lc.requireReady(m.p, "Mutex")
	m.p.SemaDelete(m.h)
	m.h = nil
	m.lc.markDestroyed()
}
