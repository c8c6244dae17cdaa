//go:build !tinygo

package port

import "sync"

// hostQueue is a bounded ring buffer with blocking send/receive.
// Items are copied by value into the slot array, so value types never
// alias caller storage.
type hostQueue struct {
	p *HostPort

	mu    sync.Mutex
	slots []any
	capq  int
	head  int
	count int
	items gate
	space gate
}

func (p *HostPort) newHostQueue(capacity int, slots []any) *hostQueue {
	return &hostQueue{
		p:     p,
		slots: slots,
		capq:  capacity,
		items: newGate(),
		space: newGate(),
	}
}

func (p *HostPort) QueueCreate(capacity int) QueueHandle {
	if capacity <= 0 {
		return nil
	}
	return p.newHostQueue(capacity, make([]any, capacity))
}

func (p *HostPort) QueueCreateStatic(capacity int, blk *QueueStatic) QueueHandle {
	if capacity <= 0 || blk == nil || len(blk.Slots) < capacity {
		return nil
	}
	q := p.newHostQueue(capacity, blk.Slots[:capacity])
	blk.cb = q
	return q
}

func (p *HostPort) QueueDelete(h QueueHandle) {
	q := h.(*hostQueue)
	q.mu.Lock()
	q.count = 0
	q.capq = 0
	q.items.broadcast()
	q.space.broadcast()
	q.mu.Unlock()
}

func (p *HostPort) QueueSend(h QueueHandle, item any, wait Ticks) bool {
	q := h.(*hostQueue)
	deadline, forever := p.waitDeadline(wait)
	q.mu.Lock()
	for q.count >= q.capq {
		if q.capq == 0 {
			q.mu.Unlock()
			return false
		}
		ch := q.space.watch()
		q.mu.Unlock()
		if !await(ch, deadline, forever) {
			q.mu.Lock()
			q.space.unwatch()
			q.mu.Unlock()
			return false
		}
		q.mu.Lock()
	}
	q.push(item)
	q.items.broadcast()
	q.mu.Unlock()
	return true
}

func (p *HostPort) QueueSendFromISR(h QueueHandle, item any) (ok, woken bool) {
	q := h.(*hostQueue)
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count >= q.capq {
		return false, false
	}
	q.push(item)
	return true, q.items.broadcast()
}

func (p *HostPort) QueueReceive(h QueueHandle, wait Ticks) (any, bool) {
	q := h.(*hostQueue)
	deadline, forever := p.waitDeadline(wait)
	q.mu.Lock()
	for q.count == 0 {
		if q.capq == 0 {
			q.mu.Unlock()
			return nil, false
		}
		ch := q.items.watch()
		q.mu.Unlock()
		if !await(ch, deadline, forever) {
			q.mu.Lock()
			q.items.unwatch()
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Lock()
	}
	item := q.pop()
	q.space.broadcast()
	q.mu.Unlock()
	return item, true
}

func (p *HostPort) QueueReceiveFromISR(h QueueHandle) (item any, ok, woken bool) {
	q := h.(*hostQueue)
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return nil, false, false
	}
	item = q.pop()
	return item, true, q.space.broadcast()
}

func (p *HostPort) QueuePeek(h QueueHandle, wait Ticks) (any, bool) {
	q := h.(*hostQueue)
	deadline, forever := p.waitDeadline(wait)
	q.mu.Lock()
	for q.count == 0 {
		if q.capq == 0 {
			q.mu.Unlock()
			return nil, false
		}
		ch := q.items.watch()
		q.mu.Unlock()
		if !await(ch, deadline, forever) {
			q.mu.Lock()
			q.items.unwatch()
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Lock()
	}
	item := q.slots[q.head]
	q.mu.Unlock()
	return item, true
}

func (p *HostPort) QueuePeekFromISR(h QueueHandle) (any, bool) {
	q := h.(*hostQueue)
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return nil, false
	}
	return q.slots[q.head], true
}

func (p *HostPort) QueueSpaces(h QueueHandle) int {
	q := h.(*hostQueue)
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capq - q.count
}

func (p *HostPort) QueueReset(h QueueHandle) bool {
	q := h.(*hostQueue)
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capq == 0 {
		return false
	}
	for i := range q.slots {
		q.slots[i] = nil
	}
	q.head = 0
	q.count = 0
	q.space.broadcast()
	return true
}

// push and pop require q.mu held and a slot/item available.
func (q *hostQueue) push(item any) {
	q.slots[(q.head+q.count)%q.capq] = item
	q.count++
}

func (q *hostQueue) pop() any {
	item := q.slots[q.head]
	q.slots[q.head] = nil
	q.head = (q.head + 1) % q.capq
	q.count--
	return item
}
