package rtos

import (
	"time"

	"gortos/port"
)

// Queue is a bounded FIFO of values of type T. Items are copied by
// value into kernel storage on Send and back into caller storage on
// Receive and Peek; no ownership moves across the queue.
type Queue[T any] struct {
	p        port.Port
	lc       lifecycle
	capacity int
	h        port.QueueHandle

	store queueStorage
}

// NewQueue constructs a queue wrapper holding up to capacity items.
// The kernel queue is not created until Init.
func NewQueue[T any](p port.Port, capacity int) *Queue[T] {
	return &Queue[T]{p: p, capacity: capacity}
}

// SetCapacity resizes the queue. Valid only before Init.
func (q *Queue[T]) SetCapacity(capacity int) bool {
	if capacity <= 0 {
		fail("Queue capacity must be positive")
	}
	if !q.lc.mutable() {
		return false
	}
	q.capacity = capacity
	return true
}

func (q *Queue[T]) Capacity() int { return q.capacity }

// Init creates the kernel queue. False means the kernel could not
// allocate it; the wrapper stays configurable and Init may be retried.
func (q *Queue[T]) Init() bool {
	q.lc.requireUnconfigured("Queue")
	if q.capacity <= 0 {
		fail("Queue capacity must be positive")
	}
	h := q.createQueue(q.capacity)
	if h == nil {
		return false
	}
	q.h = h
	q.lc.markReady()
	return true
}

// Handler exposes the raw kernel handle. Anything done through it
// bypasses the wrapper's lifecycle guarantees.
func (q *Queue[T]) Handler() port.QueueHandle { return q.h }

// Send copies v into the queue, waiting up to wait for free space.
// Safe from interrupt context, where it never blocks.
func (q *Queue[T]) Send(v T, wait time.Duration) bool {
	q.lc.requireReady(q.p, "Queue")
	return dispatch(q.p, func() bool {
		return q.p.QueueSend(q.h, v, q.p.TicksFromDuration(wait))
	}, func() (bool, bool) {
		return q.p.QueueSendFromISR(q.h, v)
	})
}

// Receive copies the oldest item into *out, waiting up to wait for one
// to arrive. Safe from interrupt context, where it never blocks.
func (q *Queue[T]) Receive(out *T, wait time.Duration) bool {
	q.lc.requireReady(q.p, "Queue")
	return dispatch(q.p, func() bool {
		raw, ok := q.p.QueueReceive(q.h, q.p.TicksFromDuration(wait))
		if !ok {
			return false
		}
		*out = raw.(T)
		return true
	}, func() (bool, bool) {
		raw, ok, woken := q.p.QueueReceiveFromISR(q.h)
		if ok {
			*out = raw.(T)
		}
		return ok, woken
	})
}

// Peek copies the oldest item into *out without removing it, waiting up
// to wait for one to arrive. Safe from interrupt context, where it
// never blocks.
func (q *Queue[T]) Peek(out *T, wait time.Duration) bool {
	q.lc.requireReady(q.p, "Queue")
	return dispatch(q.p, func() bool {
		raw, ok := q.p.QueuePeek(q.h, q.p.TicksFromDuration(wait))
		if !ok {
			return false
		}
		*out = raw.(T)
		return true
	}, func() (bool, bool) {
		raw, ok := q.p.QueuePeekFromISR(q.h)
		if ok {
			*out = raw.(T)
		}
		return ok, false
	})
}

// IsEmpty reports whether no items are pending.
func (q *Queue[T]) IsEmpty() bool {
	q.lc.requireReady(q.p, "Queue")
	return q.p.QueueSpaces(q.h) == q.capacity
}

// FreeSpace returns the number of unoccupied slots.
func (q *Queue[T]) FreeSpace() int {
	q.lc.requireReady(q.p, "Queue")
	return q.p.QueueSpaces(q.h)
}

// Reset discards all pending items.
func (q *Queue[T]) Reset() bool {
	q.lc.requireReady(q.p, "Queue")
	return q.p.QueueReset(q.h)
}

// Destroy deletes the kernel queue. The wrapper accepts no further
// operations.
func (q *Queue[T]) Destroy() {
	q.lc.requireReady(q.p, "Queue")
	q.p.QueueDelete(q.h)
	q.h = nil
	q.lc.markDestroyed()
}
