//go:build gortos_static

package rtos

import "gortos/port"

// Static reports whether kernel object storage is embedded in the
// wrapper at construction time. This build owns all object storage in
// the wrappers; the kernel performs no allocation at Init. The tag
// takes precedence over the default dynamic strategy and applies to
// every primitive in the binary.
const Static = true

type taskStorage struct {
	blk port.TaskStatic
}

func (t *Task) createTask(cfg port.TaskConfig) port.TaskHandle {
	if len(t.store.blk.Stack) < int(cfg.StackWords) {
		t.store.blk.Stack = make([]uint64, cfg.StackWords)
	}
	return t.p.TaskCreateStatic(cfg, &t.store.blk)
}

type queueStorage struct {
	blk port.QueueStatic
}

func (q *Queue[T]) createQueue(capacity int) port.QueueHandle {
	if len(q.store.blk.Slots) < capacity {
		q.store.blk.Slots = make([]any, capacity)
	}
	return q.p.QueueCreateStatic(capacity, &q.store.blk)
}

type semaStorage struct {
	blk port.SemaStatic
}

func (c *Counter) createCounter(max int) port.SemaHandle {
	return c.p.SemaCreateCountingStatic(max, 0, &c.store.blk)
}

func (m *Mutex) createMutex() port.SemaHandle {
	return m.p.SemaCreateMutexStatic(&m.store.blk)
}

type timerStorage struct {
	blk port.TimerStatic
}

func (t *Timer) createTimer(cfg port.TimerConfig) port.TimerHandle {
	return t.p.TimerCreateStatic(cfg, &t.store.blk)
}
