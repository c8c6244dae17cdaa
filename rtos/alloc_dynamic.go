//go:build !gortos_static

package rtos

import "gortos/port"

// Static reports whether kernel object storage is embedded in the
// wrapper at construction time. This build allocates from the kernel
// heap at Init; build with the gortos_static tag to embed storage
// instead. The choice is system-wide: one strategy per binary.
const Static = false

type taskStorage struct{}

func (t *Task) createTask(cfg port.TaskConfig) port.TaskHandle {
	return t.p.TaskCreate(cfg)
}

type queueStorage struct{}

func (q *Queue[T]) createQueue(capacity int) port.QueueHandle {
	return q.p.QueueCreate(capacity)
}

type semaStorage struct{}

func (c *Counter) createCounter(max int) port.SemaHandle {
	return c.p.SemaCreateCounting(max, 0)
}

func (m *Mutex) createMutex() port.SemaHandle {
	return m.p.SemaCreateMutex()
}

type timerStorage struct{}

func (t *Timer) createTimer(cfg port.TimerConfig) port.TimerHandle {
	return t.p.TimerCreate(cfg)
}
