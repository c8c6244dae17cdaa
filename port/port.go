// Package port defines the boundary between the primitive wrappers in
// package rtos and the underlying kernel.
//
// Exactly one Port implementation is compiled into a binary, selected by
// build tags: a simulated kernel on hosted builds, a stub on bare metal.
package port

import (
	"errors"
	"time"
)

var ErrNotImplemented = errors.New("not implemented")

// Ticks counts kernel scheduler ticks.
type Ticks uint64

// TicksForever is the tick value requesting an unbounded wait.
const TicksForever Ticks = ^Ticks(0)

// Forever is the wait duration requesting an unbounded wait.
const Forever time.Duration = -1

// Core selects the execution core a task is pinned to.
type Core int8

const (
	// CoreNone leaves placement to the kernel's default policy.
	CoreNone Core = iota
	Core0
	Core1
)

// TaskHandle is an opaque reference to a kernel task control block.
// Nil before creation and after deletion.
type TaskHandle any

// QueueHandle is an opaque reference to a kernel queue control block.
type QueueHandle any

// SemaHandle is an opaque reference to a kernel semaphore control block.
type SemaHandle any

// TimerHandle is an opaque reference to a kernel timer control block.
type TimerHandle any

// TaskConfig describes a task at creation time.
type TaskConfig struct {
	Func       func(arg any)
	Name       string
	Arg        any
	Priority   uint8
	StackWords uint32
	Core       Core
}

// TimerConfig describes a software timer at creation time.
type TimerConfig struct {
	Callback   func(tag any)
	Name       string
	AutoReload bool
	Tag        any
}

// TaskStatic is caller-owned storage for a statically allocated task.
type TaskStatic struct {
	Stack []uint64
	cb    any
}

// QueueStatic is caller-owned storage for a statically allocated queue.
type QueueStatic struct {
	Slots []any
	cb    any
}

// SemaStatic is caller-owned storage for a statically allocated semaphore.
type SemaStatic struct {
	cb any
}

// TimerStatic is caller-owned storage for a statically allocated timer.
type TimerStatic struct {
	cb any
}

// Tasks is the task and notification surface of the kernel.
type Tasks interface {
	TaskCreate(cfg TaskConfig) TaskHandle
	TaskCreateStatic(cfg TaskConfig, blk *TaskStatic) TaskHandle
	TaskDelete(h TaskHandle)
	TaskSelfDelete()
	TaskSuspend(h TaskHandle)
	TaskResume(h TaskHandle)
	TaskResumeFromISR(h TaskHandle) (woken bool)
	TaskSuspendAll()
	TaskResumeAll()

	// NotifyGive increments the task's notification count, waking it if
	// it is blocked in NotifyTake.
	NotifyGive(h TaskHandle) bool
	NotifyGiveFromISR(h TaskHandle) (woken bool)
	// NotifyTake blocks until the task's notification count is non-zero,
	// then consumes it. With clear set the count drops to zero, otherwise
	// it is decremented by one.
	NotifyTake(h TaskHandle, clear bool, wait Ticks) bool
}

// Queues is the message queue surface of the kernel.
//
// Items are copied by value in and out of kernel-owned storage.
type Queues interface {
	QueueCreate(capacity int) QueueHandle
	QueueCreateStatic(capacity int, blk *QueueStatic) QueueHandle
	QueueDelete(h QueueHandle)
	QueueSend(h QueueHandle, item any, wait Ticks) bool
	QueueSendFromISR(h QueueHandle, item any) (ok, woken bool)
	QueueReceive(h QueueHandle, wait Ticks) (any, bool)
	QueueReceiveFromISR(h QueueHandle) (item any, ok, woken bool)
	QueuePeek(h QueueHandle, wait Ticks) (any, bool)
	QueuePeekFromISR(h QueueHandle) (any, bool)
	QueueSpaces(h QueueHandle) int
	QueueReset(h QueueHandle) bool
}

// Semaphores is the counting semaphore and mutex surface of the kernel.
type Semaphores interface {
	SemaCreateCounting(max, initial int) SemaHandle
	SemaCreateCountingStatic(max, initial int, blk *SemaStatic) SemaHandle
	SemaCreateMutex() SemaHandle
	SemaCreateMutexStatic(blk *SemaStatic) SemaHandle
	SemaDelete(h SemaHandle)
	SemaTake(h SemaHandle, wait Ticks) bool
	SemaTakeFromISR(h SemaHandle) (ok, woken bool)
	SemaGive(h SemaHandle) bool
	SemaGiveFromISR(h SemaHandle) (ok, woken bool)
}

// Timers is the software timer surface of the kernel.
//
// Timer callbacks and pended functions run on the kernel's timer service
// task and must never block.
type Timers interface {
	TimerCreate(cfg TimerConfig) TimerHandle
	TimerCreateStatic(cfg TimerConfig, blk *TimerStatic) TimerHandle
	TimerDelete(h TimerHandle, wait Ticks) bool
	TimerStart(h TimerHandle, wait Ticks) bool
	TimerStartFromISR(h TimerHandle) (ok, woken bool)
	TimerStop(h TimerHandle, wait Ticks) bool
	TimerStopFromISR(h TimerHandle) (ok, woken bool)
	TimerReset(h TimerHandle, wait Ticks) bool
	TimerResetFromISR(h TimerHandle) (ok, woken bool)
	TimerChangePeriod(h TimerHandle, period Ticks, wait Ticks) bool
	TimerChangePeriodFromISR(h TimerHandle, period Ticks) (ok, woken bool)
	TimerActive(h TimerHandle) bool

	PendCall(fn func(arg any, n uint32), arg any, n uint32, wait Ticks) bool
	PendCallFromISR(fn func(arg any, n uint32), arg any, n uint32) (ok, woken bool)
}

// System is the scheduler query and control surface of the kernel.
type System interface {
	// InISR reports whether the current execution is an interrupt
	// service routine. Ports without interrupt context return false.
	InISR() bool
	// SchedulerRunning reports whether the kernel scheduler has started.
	SchedulerRunning() bool
	TickCount() Ticks
	// TicksFromDuration converts a wait duration to kernel ticks.
	// Negative durations map to TicksForever.
	TicksFromDuration(d time.Duration) Ticks
	DelayTicks(t Ticks)
	// DelayUntil blocks until *prev + increment ticks and advances *prev
	// by increment, independent of how late the caller is.
	DelayUntil(prev *Ticks, increment Ticks)
	Yield()
	// YieldFromISR requests a reschedule once the current interrupt
	// handler returns.
	YieldFromISR()
}

// Port is the only contact point between the primitive wrappers and the
// kernel.
type Port interface {
	Tasks
	Queues
	Semaphores
	Timers
	System
}
