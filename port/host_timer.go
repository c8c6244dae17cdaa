//go:build !tinygo

package port

import (
	"sync"
	"time"
)

// hostTimer schedules its callback on the port's service goroutine so
// callbacks always observe task context, as with a kernel timer task.
//
// gen invalidates in-flight fires after a stop or period change.
type hostTimer struct {
	p *HostPort

	mu      sync.Mutex
	cfg     TimerConfig
	period  time.Duration
	active  bool
	gen     uint32
	timer   *time.Timer
	deleted bool
}

func (p *HostPort) TimerCreate(cfg TimerConfig) TimerHandle {
	if cfg.Callback == nil || cfg.Name == "" {
		return nil
	}
	return &hostTimer{p: p, cfg: cfg, period: p.tick}
}

func (p *HostPort) TimerCreateStatic(cfg TimerConfig, blk *TimerStatic) TimerHandle {
	if blk == nil {
		return nil
	}
	h := p.TimerCreate(cfg)
	if h != nil {
		blk.cb = h
	}
	return h
}

func (p *HostPort) TimerDelete(h TimerHandle, wait Ticks) bool {
	t := h.(*hostTimer)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleted = true
	t.stopLocked()
	return true
}

func (p *HostPort) TimerStart(h TimerHandle, wait Ticks) bool {
	return h.(*hostTimer).start()
}

func (p *HostPort) TimerStartFromISR(h TimerHandle) (ok, woken bool) {
	return h.(*hostTimer).start(), false
}

func (p *HostPort) TimerStop(h TimerHandle, wait Ticks) bool {
	t := h.(*hostTimer)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleted {
		return false
	}
	t.stopLocked()
	return true
}

func (p *HostPort) TimerStopFromISR(h TimerHandle) (ok, woken bool) {
	return p.TimerStop(h, 0), false
}

// TimerReset restarts the timer from now with its current period,
// starting it if dormant.
func (p *HostPort) TimerReset(h TimerHandle, wait Ticks) bool {
	return h.(*hostTimer).start()
}

func (p *HostPort) TimerResetFromISR(h TimerHandle) (ok, woken bool) {
	return h.(*hostTimer).start(), false
}

// TimerChangePeriod sets a new period and restarts the timer with it,
// starting it if dormant.
func (p *HostPort) TimerChangePeriod(h TimerHandle, period Ticks, wait Ticks) bool {
	t := h.(*hostTimer)
	if period == 0 || period == TicksForever {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleted {
		return false
	}
	t.period = time.Duration(period) * p.tick
	t.startLocked()
	return true
}

func (p *HostPort) TimerChangePeriodFromISR(h TimerHandle, period Ticks) (ok, woken bool) {
	return p.TimerChangePeriod(h, period, 0), false
}

func (p *HostPort) TimerActive(h TimerHandle) bool {
	t := h.(*hostTimer)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (p *HostPort) PendCall(fn func(arg any, n uint32), arg any, n uint32, wait Ticks) bool {
	if fn == nil {
		return false
	}
	deadline, forever := p.waitDeadline(wait)
	call := func() { fn(arg, n) }
	if forever {
		p.pend <- call
		return true
	}
	d := time.Until(deadline)
	if d <= 0 {
		select {
		case p.pend <- call:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case p.pend <- call:
		return true
	case <-t.C:
		return false
	}
}

func (p *HostPort) PendCallFromISR(fn func(arg any, n uint32), arg any, n uint32) (ok, woken bool) {
	if fn == nil {
		return false, false
	}
	select {
	case p.pend <- func() { fn(arg, n) }:
		return true, true
	default:
		return false, false
	}
}

func (t *hostTimer) start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deleted {
		return false
	}
	t.startLocked()
	return true
}

func (t *hostTimer) startLocked() {
	t.stopLocked()
	t.active = true
	gen := t.gen
	t.timer = time.AfterFunc(t.period, func() { t.fire(gen) })
}

func (t *hostTimer) stopLocked() {
	t.gen++
	t.active = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *hostTimer) fire(gen uint32) {
	t.mu.Lock()
	if t.deleted || !t.active || gen != t.gen {
		t.mu.Unlock()
		return
	}
	cb := t.cfg.Callback
	tag := t.cfg.Tag
	if t.cfg.AutoReload {
		t.timer = time.AfterFunc(t.period, func() { t.fire(gen) })
	} else {
		t.active = false
		t.timer = nil
	}
	t.mu.Unlock()

	t.p.pend <- func() { cb(tag) }
}
