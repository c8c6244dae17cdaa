package rtos

import (
	"sync"
	"sync/atomic"
)

// PanicInfo contains details about a panic recovered in a task body.
type PanicInfo struct {
	Task  string
	Value any
	Stack []byte
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task body has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide handler for panics recovered
// in task bodies.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
