//go:build !tinygo

package port

import "sync"

// hostSema is a counting semaphore. A mutex is the max=1, initial=1
// special case; a second take from the holder blocks, so it is
// non-reentrant by construction.
type hostSema struct {
	p *HostPort

	mu      sync.Mutex
	count   int
	max     int
	avail   gate
	deleted bool
}

func (p *HostPort) newHostSema(max, initial int) *hostSema {
	return &hostSema{p: p, count: initial, max: max, avail: newGate()}
}

func (p *HostPort) SemaCreateCounting(max, initial int) SemaHandle {
	if max <= 0 || initial < 0 || initial > max {
		return nil
	}
	return p.newHostSema(max, initial)
}

func (p *HostPort) SemaCreateCountingStatic(max, initial int, blk *SemaStatic) SemaHandle {
	if blk == nil {
		return nil
	}
	h := p.SemaCreateCounting(max, initial)
	if h != nil {
		blk.cb = h
	}
	return h
}

func (p *HostPort) SemaCreateMutex() SemaHandle {
	return p.newHostSema(1, 1)
}

func (p *HostPort) SemaCreateMutexStatic(blk *SemaStatic) SemaHandle {
	if blk == nil {
		return nil
	}
	h := p.SemaCreateMutex()
	blk.cb = h
	return h
}

func (p *HostPort) SemaDelete(h SemaHandle) {
	s := h.(*hostSema)
	s.mu.Lock()
	s.deleted = true
	s.avail.broadcast()
	s.mu.Unlock()
}

func (p *HostPort) SemaTake(h SemaHandle, wait Ticks) bool {
	s := h.(*hostSema)
	deadline, forever := p.waitDeadline(wait)
	s.mu.Lock()
	for s.count == 0 {
		if s.deleted {
			s.mu.Unlock()
			return false
		}
		ch := s.avail.watch()
		s.mu.Unlock()
		if !await(ch, deadline, forever) {
			s.mu.Lock()
			s.avail.unwatch()
			s.mu.Unlock()
			return false
		}
		s.mu.Lock()
	}
	s.count--
	s.mu.Unlock()
	return true
}

func (p *HostPort) SemaTakeFromISR(h SemaHandle) (ok, woken bool) {
	s := h.(*hostSema)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted || s.count == 0 {
		return false, false
	}
	s.count--
	return true, false
}

func (p *HostPort) SemaGive(h SemaHandle) bool {
	s := h.(*hostSema)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted || s.count >= s.max {
		return false
	}
	s.count++
	s.avail.broadcast()
	return true
}

func (p *HostPort) SemaGiveFromISR(h SemaHandle) (ok, woken bool) {
	s := h.(*hostSema)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleted || s.count >= s.max {
		return false, false
	}
	s.count++
	return true, s.avail.broadcast()
}
