//go:build !tinygo

package port

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HostConfig tunes the simulated kernel.
type HostConfig struct {
	// TickPeriod is the duration of one kernel tick (default 1ms).
	TickPeriod time.Duration
	// Trace receives kernel-level trace events when non-nil.
	Trace *zerolog.Logger
}

// HostPort is a simulated kernel for hosted builds.
//
// Tasks run as goroutines, queues and semaphores block on in-process
// wait lists, and timer callbacks run on a dedicated service goroutine.
// Interrupt context is simulated: RunInISR marks a window during which
// InISR reports true and deferred reschedule requests are counted.
type HostPort struct {
	tick  time.Duration
	epoch time.Time
	trace *zerolog.Logger

	isr      atomic.Bool
	yieldReq atomic.Uint64

	pauseMu   sync.Mutex
	paused    bool
	pauseGate gate

	pend chan func()
}

// New returns the port implementation for this platform.
func New() Port {
	return NewHost(HostConfig{})
}

// NewHost creates a simulated kernel.
func NewHost(cfg HostConfig) *HostPort {
	tick := cfg.TickPeriod
	if tick <= 0 {
		tick = time.Millisecond
	}
	p := &HostPort{
		tick:      tick,
		epoch:     time.Now(),
		trace:     cfg.Trace,
		pauseGate: newGate(),
		pend:      make(chan func(), pendSlots),
	}
	go p.serviceLoop()
	return p
}

const pendSlots = 32

// serviceLoop runs timer callbacks and pended functions in task context.
func (p *HostPort) serviceLoop() {
	for fn := range p.pend {
		fn()
	}
}

func (p *HostPort) InISR() bool { return p.isr.Load() }

// SchedulerRunning always reports true on the host: the Go runtime
// scheduler is the kernel scheduler here.
func (p *HostPort) SchedulerRunning() bool { return true }

func (p *HostPort) TickCount() Ticks {
	return Ticks(time.Since(p.epoch) / p.tick)
}

func (p *HostPort) TicksFromDuration(d time.Duration) Ticks {
	if d < 0 {
		return TicksForever
	}
	return Ticks((d + p.tick - 1) / p.tick)
}

func (p *HostPort) DelayTicks(t Ticks) {
	if t == TicksForever {
		select {}
	}
	time.Sleep(time.Duration(t) * p.tick)
}

func (p *HostPort) DelayUntil(prev *Ticks, increment Ticks) {
	target := *prev + increment
	now := p.TickCount()
	if target > now {
		time.Sleep(time.Duration(target-now) * p.tick)
	}
	*prev = target
}

func (p *HostPort) Yield() { runtime.Gosched() }

func (p *HostPort) YieldFromISR() {
	p.yieldReq.Add(1)
	runtime.Gosched()
}

// RunInISR executes fn inside a simulated interrupt window. The window
// is global: every InISR query during fn reports true, so callers must
// not overlap windows with task-context port calls they want classified
// as such.
func (p *HostPort) RunInISR(fn func()) {
	p.isr.Store(true)
	defer p.isr.Store(false)
	fn()
}

// YieldRequests returns the number of deferred reschedule requests
// issued so far. Test hook.
func (p *HostPort) YieldRequests() uint64 {
	return p.yieldReq.Load()
}

// waitDeadline converts a tick-granular wait into an absolute deadline.
func (p *HostPort) waitDeadline(wait Ticks) (deadline time.Time, forever bool) {
	if wait == TicksForever {
		return time.Time{}, true
	}
	return time.Now().Add(time.Duration(wait) * p.tick), false
}

// gate wakes all current waiters at once. All methods must be called
// with the owning structure's lock held.
type gate struct {
	ch       chan struct{}
	watchers int
}

func newGate() gate {
	return gate{ch: make(chan struct{})}
}

func (g *gate) watch() <-chan struct{} {
	g.watchers++
	return g.ch
}

func (g *gate) unwatch() {
	if g.watchers > 0 {
		g.watchers--
	}
}

// broadcast wakes all waiters and reports whether any were present.
func (g *gate) broadcast() bool {
	woke := g.watchers > 0
	g.watchers = 0
	close(g.ch)
	g.ch = make(chan struct{})
	return woke
}

// await blocks on a gate channel until it is signaled or the deadline
// passes. A deadline already in the past does not block.
func await(ch <-chan struct{}, deadline time.Time, forever bool) bool {
	if forever {
		<-ch
		return true
	}
	d := time.Until(deadline)
	if d <= 0 {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	}
}
