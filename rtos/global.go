package rtos

import (
	"time"

	"gortos/port"
)

// Delay blocks the calling task for the duration.
func Delay(p port.Port, d time.Duration) {
	p.DelayTicks(p.TicksFromDuration(d))
}

// Yield hands the processor to another runnable task.
func Yield(p port.Port) {
	p.Yield()
}

// SelfDelete terminates the calling task. It does not touch any Task
// wrapper that may refer to it.
func SelfDelete(p port.Port) {
	p.TaskSelfDelete()
}

// SuspendAll stops the scheduler from switching tasks until ResumeAll.
func SuspendAll(p port.Port) {
	p.TaskSuspendAll()
}

// ResumeAll releases a SuspendAll.
func ResumeAll(p port.Port) {
	p.TaskResumeAll()
}

// TickCount returns the raw kernel tick count.
func TickCount(p port.Port) port.Ticks {
	return p.TickCount()
}
