// Package rtos wraps the kernel primitives behind package port — tasks,
// queues, mutexes, counting semaphores, and software timers — in a
// uniform two-phase lifecycle: construct and configure, Init to
// materialize the kernel object, then operate.
//
// Blocking operations select the interrupt-safe kernel call on their own
// when invoked from interrupt context and issue at most one deferred
// reschedule request per call, so application code never has to pick
// between the task and ISR call families.
package rtos

import "gortos/port"

// Core selects the execution core a task is pinned to.
type Core = port.Core

const (
	CoreNone = port.CoreNone
	Core0    = port.Core0
	Core1    = port.Core1
)

// Forever requests an unbounded wait.
const Forever = port.Forever

// dispatch runs taskFn, or isrFn when the current context is an
// interrupt. If the interrupt call woke a higher-priority task, exactly
// one deferred reschedule request is issued before returning.
func dispatch(p port.Port, taskFn func() bool, isrFn func() (ok, woken bool)) bool {
	if !p.InISR() {
		return taskFn()
	}
	ok, woken := isrFn()
	if woken {
		p.YieldFromISR()
	}
	return ok
}

// fail reports a programming error in the caller. These are ordering or
// context bugs, not runtime conditions, so they are fatal.
func fail(msg string) {
	panic("rtos: " + msg)
}
