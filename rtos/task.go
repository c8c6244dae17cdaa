package rtos

import (
	"time"

	"gortos/port"
)

// DefaultStackWords is the task stack size used when the configuration
// leaves it zero.
const DefaultStackWords = 1024

// TaskFunc is a task entry point. It receives the configured argument
// and normally contains an endless loop.
type TaskFunc func(arg any)

// TaskConfig holds the construction-time configuration of a Task.
// All fields except Func and Name are optional.
type TaskConfig struct {
	Func       TaskFunc
	Name       string
	Arg        any
	Priority   uint8
	StackWords uint32
	Core       Core
}

// Task wraps a kernel thread of execution.
//
// A panic escaping the task body is recovered and reported through
// SetPanicHandler instead of tearing the process down silently.
type Task struct {
	p   port.Port
	lc  lifecycle
	cfg TaskConfig
	h   port.TaskHandle

	// lastWake anchors SyncWait deadlines; owned by the task itself.
	lastWake port.Ticks

	store taskStorage
}

// NewTask constructs a task wrapper. The kernel task is not created
// until Init.
func NewTask(p port.Port, cfg TaskConfig) *Task {
	if cfg.StackWords == 0 {
		cfg.StackWords = DefaultStackWords
	}
	return &Task{p: p, cfg: cfg}
}

// Init creates the kernel task. False means the kernel could not
// allocate it; the wrapper stays configurable and Init may be retried.
func (t *Task) Init() bool {
	t.lc.requireUnconfigured("Task")
	if t.cfg.Func == nil {
		fail("Task entry function is nil")
	}
	if t.cfg.Name == "" {
		fail("Task name is empty")
	}
	// The kernel may begin running the task before Init returns. Hold the
	// body until the wrapper is fully initialized so the task can call its
	// own methods from the first instruction.
	release := make(chan struct{})
	entry := t.entry()
	h := t.createTask(port.TaskConfig{
		Func: func(arg any) {
			<-release
			entry(arg)
		},
		Name: t.cfg.Name,
		Arg:        t.cfg.Arg,
		Priority:   t.cfg.Priority,
		StackWords: t.cfg.StackWords,
		Core:       t.cfg.Core,
	})
	if h == nil {
		return false
	}
	t.h = h
	t.lc.markReady()
	close(release)
	return true
}

func (t *Task) entry() func(any) {
	fn := t.cfg.Func
	name := t.cfg.Name
	return func(arg any) {
		defer func() {
			if v := recover(); v != nil {
				triggerPanic(PanicInfo{Task: name, Value: v})
			}
		}()
		fn(arg)
	}
}

// Handler exposes the raw kernel handle. Anything done through it
// bypasses the wrapper's lifecycle guarantees.
func (t *Task) Handler() port.TaskHandle { return t.h }

// SetName renames the task. Valid only before Init.
func (t *Task) SetName(name string) bool {
	if name == "" {
		fail("Task name is empty")
	}
	if !t.lc.mutable() {
		return false
	}
	t.cfg.Name = name
	return true
}

func (t *Task) Name() string { return t.cfg.Name }

// SetFunc replaces the entry point. Valid only before Init.
func (t *Task) SetFunc(fn TaskFunc) bool {
	if fn == nil {
		fail("Task entry function is nil")
	}
	if !t.lc.mutable() {
		return false
	}
	t.cfg.Func = fn
	return true
}

func (t *Task) Func() TaskFunc { return t.cfg.Func }

// SetArg replaces the argument passed at launch. Valid only before Init.
func (t *Task) SetArg(arg any) bool {
	if !t.lc.mutable() {
		return false
	}
	t.cfg.Arg = arg
	return true
}

func (t *Task) Arg() any { return t.cfg.Arg }

// Stop suspends the task until Start.
func (t *Task) Stop() bool {
	t.lc.requireReady(t.p, "Task")
	t.p.TaskSuspend(t.h)
	return true
}

// Start resumes a stopped task. Safe from interrupt context.
func (t *Task) Start() bool {
	t.lc.requireReady(t.p, "Task")
	return dispatch(t.p, func() bool {
		t.p.TaskResume(t.h)
		return true
	}, func() (bool, bool) {
		woken := t.p.TaskResumeFromISR(t.h)
		return true, woken
	})
}

// EmitSignal wakes the task if it is blocked in WaitSignal: a one-slot
// rendezvous in the shape of a binary semaphore, but built on the
// kernel's lighter notification mechanism. Safe from interrupt context.
func (t *Task) EmitSignal() bool {
	t.lc.requireReady(t.p, "Task")
	return dispatch(t.p, func() bool {
		return t.p.NotifyGive(t.h)
	}, func() (bool, bool) {
		woken := t.p.NotifyGiveFromISR(t.h)
		return true, woken
	})
}

// WaitSignal blocks until EmitSignal is called or the wait elapses.
// Must be called from the task's own body.
func (t *Task) WaitSignal(wait time.Duration) bool {
	t.lc.requireReady(t.p, "Task")
	return t.p.NotifyTake(t.h, true, t.p.TicksFromDuration(wait))
}

// SyncWaitInit anchors the fixed-rate deadline used by SyncWait.
// Call once from the task body before entering its loop.
func (t *Task) SyncWaitInit() {
	t.lc.requireReady(t.p, "Task")
	t.lastWake = t.p.TickCount()
}

// SyncWait blocks until the last wake time plus period. Deadlines
// advance from the previous deadline, not from now, so the loop rate
// does not drift with per-iteration execution time.
func (t *Task) SyncWait(period time.Duration) {
	t.lc.requireReady(t.p, "Task")
	t.p.DelayUntil(&t.lastWake, t.p.TicksFromDuration(period))
}

// SyncTicks returns the raw tick value SyncWait deadlines advance from.
func (t *Task) SyncTicks() port.Ticks { return t.lastWake }

// Destroy deletes the kernel task. The wrapper accepts no further
// operations.
func (t *Task) Destroy() {
	t.lc.requireReady(t.p, "Task")
	t.p.TaskDelete(t.h)
	t.h = nil
	t.lc.markDestroyed()
}
