//go:build !tinygo

package port

import (
	"runtime"
	"sync"
)

// hostTask backs one kernel task with a goroutine.
//
// Suspension is cooperative: a suspended task parks the next time it
// passes through one of its own blocking calls (NotifyTake), and a task
// blocked there does not return while suspended. Forcible preemption of
// a running goroutine is not possible on the host.
type hostTask struct {
	p *HostPort

	mu        sync.Mutex
	name      string
	priority  uint8
	core      Core
	notify    uint32
	avail     gate
	suspended bool
	resume    gate
	deleted   bool
}

func (p *HostPort) TaskCreate(cfg TaskConfig) TaskHandle {
	if cfg.Func == nil || cfg.Name == "" {
		return nil
	}
	t := &hostTask{
		p:        p,
		name:     cfg.Name,
		priority: cfg.Priority,
		core:     cfg.Core,
		avail:    newGate(),
		resume:   newGate(),
	}
	if p.trace != nil {
		p.trace.Debug().Str("task", cfg.Name).Uint8("priority", cfg.Priority).
			Int8("core", int8(cfg.Core)).Msg("task created")
	}
	go cfg.Func(cfg.Arg)
	return t
}

// TaskCreateStatic behaves like TaskCreate; the caller-owned stack block
// is recorded but goroutine stacks are managed by the runtime.
func (p *HostPort) TaskCreateStatic(cfg TaskConfig, blk *TaskStatic) TaskHandle {
	if blk == nil || len(blk.Stack) == 0 {
		return nil
	}
	h := p.TaskCreate(cfg)
	if h != nil {
		blk.cb = h
	}
	return h
}

func (p *HostPort) TaskDelete(h TaskHandle) {
	t := h.(*hostTask)
	t.mu.Lock()
	t.deleted = true
	t.avail.broadcast()
	t.resume.broadcast()
	t.mu.Unlock()
	if p.trace != nil {
		p.trace.Debug().Str("task", t.name).Msg("task deleted")
	}
}

// TaskSelfDelete terminates the calling goroutine.
func (p *HostPort) TaskSelfDelete() {
	runtime.Goexit()
}

func (p *HostPort) TaskSuspend(h TaskHandle) {
	t := h.(*hostTask)
	t.mu.Lock()
	t.suspended = true
	t.mu.Unlock()
}

func (p *HostPort) TaskResume(h TaskHandle) {
	t := h.(*hostTask)
	t.mu.Lock()
	t.suspended = false
	t.resume.broadcast()
	t.mu.Unlock()
}

func (p *HostPort) TaskResumeFromISR(h TaskHandle) (woken bool) {
	t := h.(*hostTask)
	t.mu.Lock()
	t.suspended = false
	woken = t.resume.broadcast()
	t.mu.Unlock()
	return woken
}

// TaskSuspendAll stalls every task parked at a kernel blocking point.
// Tasks that are runnable keep running until they next block, as with a
// cooperative scheduler lock.
func (p *HostPort) TaskSuspendAll() {
	p.pauseMu.Lock()
	p.paused = true
	p.pauseMu.Unlock()
}

func (p *HostPort) TaskResumeAll() {
	p.pauseMu.Lock()
	p.paused = false
	p.pauseGate.broadcast()
	p.pauseMu.Unlock()
}

// blockWhilePaused parks the caller while the scheduler lock is held.
func (p *HostPort) blockWhilePaused() {
	for {
		p.pauseMu.Lock()
		if !p.paused {
			p.pauseMu.Unlock()
			return
		}
		ch := p.pauseGate.watch()
		p.pauseMu.Unlock()
		<-ch
	}
}

func (p *HostPort) NotifyGive(h TaskHandle) bool {
	t := h.(*hostTask)
	t.mu.Lock()
	if t.deleted {
		t.mu.Unlock()
		return false
	}
	t.notify++
	t.avail.broadcast()
	t.mu.Unlock()
	return true
}

func (p *HostPort) NotifyGiveFromISR(h TaskHandle) (woken bool) {
	t := h.(*hostTask)
	t.mu.Lock()
	if t.deleted {
		t.mu.Unlock()
		return false
	}
	t.notify++
	woken = t.avail.broadcast()
	t.mu.Unlock()
	return woken
}

func (p *HostPort) NotifyTake(h TaskHandle, clear bool, wait Ticks) bool {
	t := h.(*hostTask)
	deadline, forever := p.waitDeadline(wait)
	t.mu.Lock()
	for {
		if t.deleted {
			t.mu.Unlock()
			runtime.Goexit()
		}
		if t.notify > 0 && !t.suspended {
			if clear {
				t.notify = 0
			} else {
				t.notify--
			}
			t.mu.Unlock()
			p.blockWhilePaused()
			return true
		}
		g := &t.avail
		if t.suspended {
			g = &t.resume
		}
		ch := g.watch()
		t.mu.Unlock()
		if !await(ch, deadline, forever) {
			t.mu.Lock()
			g.unwatch()
			t.mu.Unlock()
			return false
		}
		t.mu.Lock()
	}
}
