//go:build !tinygo

package port

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func newTestPort() *HostPort {
	return NewHost(HostConfig{TickPeriod: time.Millisecond})
}

func TestTicksFromDurationRoundsUp(t *testing.T) {
	p := newTestPort()

	cases := []struct {
		d    time.Duration
		want Ticks
	}{
		{0, 0},
		{time.Microsecond, 1},
		{time.Millisecond, 1},
		{time.Millisecond + 1, 2},
		{10 * time.Millisecond, 10},
		{-time.Millisecond, TicksForever},
		{Forever, TicksForever},
	}
	for _, c := range cases {
		if got := p.TicksFromDuration(c.d); got != c.want {
			t.Fatalf("TicksFromDuration(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestQueueFIFOAndWraparound(t *testing.T) {
	p := newTestPort()

	const slots = 4
	h := p.QueueCreate(slots)
	if h == nil {
		t.Fatalf("QueueCreate() = nil, want handle")
	}

	// Cycle through the ring several times so head wraps.
	next := 0
	for round := 0; round < 3; round++ {
		for i := 0; i < slots; i++ {
			if ok := p.QueueSend(h, next+i, 0); !ok {
				t.Fatalf("QueueSend() ok = false at item %d, want true", next+i)
			}
		}
		if ok := p.QueueSend(h, -1, 0); ok {
			t.Fatalf("QueueSend() ok = true when full, want false")
		}
		for i := 0; i < slots; i++ {
			item, ok := p.QueueReceive(h, 0)
			if !ok {
				t.Fatalf("QueueReceive() ok = false at item %d, want true", next+i)
			}
			if item != next+i {
				t.Fatalf("QueueReceive() = %v, want %d", item, next+i)
			}
		}
		next += slots
	}
}

func TestQueueReceiveTimeout(t *testing.T) {
	p := newTestPort()
	h := p.QueueCreate(1)

	start := time.Now()
	if _, ok := p.QueueReceive(h, 20); ok {
		t.Fatalf("QueueReceive() ok = true on empty queue, want false")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("QueueReceive() returned after %v, want ~20ms wait", elapsed)
	}
}

func TestQueueSendWakesBlockedReceiver(t *testing.T) {
	p := newTestPort()
	h := p.QueueCreate(1)

	got := make(chan any, 1)
	go func() {
		item, ok := p.QueueReceive(h, TicksForever)
		if !ok {
			close(got)
			return
		}
		got <- item
	}()

	time.Sleep(10 * time.Millisecond)
	if ok := p.QueueSend(h, "ping", 0); !ok {
		t.Fatalf("QueueSend() ok = false, want true")
	}

	select {
	case item := <-got:
		if item != "ping" {
			t.Fatalf("receiver got %v, want %q", item, "ping")
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked receiver never woke")
	}
}

func TestQueueSendFromISRFullQueue(t *testing.T) {
	p := newTestPort()
	h := p.QueueCreate(1)

	ok, woken := p.QueueSendFromISR(h, 1)
	if !ok || woken {
		t.Fatalf("QueueSendFromISR() = (%t, %t), want (true, false)", ok, woken)
	}
	ok, _ = p.QueueSendFromISR(h, 2)
	if ok {
		t.Fatalf("QueueSendFromISR() ok = true when full, want false")
	}
}

func TestQueueISRSendReportsWokenReceiver(t *testing.T) {
	p := newTestPort()
	h := p.QueueCreate(1)

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		p.QueueReceive(h, TicksForever)
		close(done)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	ok, woken := p.QueueSendFromISR(h, 1)
	if !ok {
		t.Fatalf("QueueSendFromISR() ok = false, want true")
	}
	if !woken {
		t.Fatalf("QueueSendFromISR() woken = false with a blocked receiver, want true")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("receiver never woke")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 1_000
		total     = producers * perProd
	)

	p := newTestPort()
	h := p.QueueCreate(8)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				if ok := p.QueueSend(h, producerID*perProd+i, TicksForever); !ok {
					t.Errorf("QueueSend() ok = false, want true")
					return
				}
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		item, ok := p.QueueReceive(h, TicksForever)
		if !ok {
			t.Fatalf("QueueReceive() ok = false at item %d, want true", i)
		}
		id := item.(int)
		if seen[id] {
			t.Fatalf("QueueReceive() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

func TestSemaCountingBounds(t *testing.T) {
	p := newTestPort()
	h := p.SemaCreateCounting(2, 0)
	if h == nil {
		t.Fatalf("SemaCreateCounting() = nil, want handle")
	}

	if ok := p.SemaTake(h, 0); ok {
		t.Fatalf("SemaTake() ok = true at count 0, want false")
	}
	if ok := p.SemaGive(h); !ok {
		t.Fatalf("SemaGive() ok = false, want true")
	}
	if ok := p.SemaGive(h); !ok {
		t.Fatalf("SemaGive() ok = false, want true")
	}
	if ok := p.SemaGive(h); ok {
		t.Fatalf("SemaGive() ok = true at max, want false")
	}
	for i := 0; i < 2; i++ {
		if ok := p.SemaTake(h, 0); !ok {
			t.Fatalf("SemaTake() ok = false at take %d, want true", i)
		}
	}
}

func TestSemaCreateCountingRejectsBadArgs(t *testing.T) {
	p := newTestPort()

	if h := p.SemaCreateCounting(0, 0); h != nil {
		t.Fatalf("SemaCreateCounting(0, 0) = %v, want nil", h)
	}
	if h := p.SemaCreateCounting(2, 3); h != nil {
		t.Fatalf("SemaCreateCounting(2, 3) = %v, want nil", h)
	}
	if h := p.SemaCreateCounting(2, -1); h != nil {
		t.Fatalf("SemaCreateCounting(2, -1) = %v, want nil", h)
	}
}

func TestMutexBlocksSecondTaker(t *testing.T) {
	p := newTestPort()
	h := p.SemaCreateMutex()

	if ok := p.SemaTake(h, 0); !ok {
		t.Fatalf("SemaTake() ok = false on fresh mutex, want true")
	}
	if ok := p.SemaTake(h, 5); ok {
		t.Fatalf("SemaTake() ok = true on held mutex, want false")
	}
	if ok := p.SemaGive(h); !ok {
		t.Fatalf("SemaGive() ok = false, want true")
	}
	if ok := p.SemaTake(h, 0); !ok {
		t.Fatalf("SemaTake() ok = false after release, want true")
	}
}

func TestNotifyTakeClearAndDecrement(t *testing.T) {
	p := newTestPort()
	parked := make(chan struct{})
	h := p.TaskCreate(TaskConfig{Name: "notify", Func: func(any) { <-parked }})
	defer close(parked)

	for i := 0; i < 3; i++ {
		if ok := p.NotifyGive(h); !ok {
			t.Fatalf("NotifyGive() ok = false, want true")
		}
	}

	// clear=false consumes one pending notification at a time.
	if ok := p.NotifyTake(h, false, 0); !ok {
		t.Fatalf("NotifyTake(clear=false) ok = false, want true")
	}
	if ok := p.NotifyTake(h, false, 0); !ok {
		t.Fatalf("NotifyTake(clear=false) ok = false, want true")
	}

	p.NotifyGive(h)
	// clear=true consumes everything that is pending.
	if ok := p.NotifyTake(h, true, 0); !ok {
		t.Fatalf("NotifyTake(clear=true) ok = false, want true")
	}
	if ok := p.NotifyTake(h, false, 0); ok {
		t.Fatalf("NotifyTake() ok = true after clear, want false")
	}
}

func TestRunInISRWindow(t *testing.T) {
	p := newTestPort()

	if p.InISR() {
		t.Fatalf("InISR() = true outside interrupt window, want false")
	}
	p.RunInISR(func() {
		if !p.InISR() {
			t.Errorf("InISR() = false inside interrupt window, want true")
		}
	})
	if p.InISR() {
		t.Fatalf("InISR() = true after interrupt window, want false")
	}
}

func TestYieldFromISRCounts(t *testing.T) {
	p := newTestPort()

	before := p.YieldRequests()
	p.RunInISR(func() {
		p.YieldFromISR()
		p.YieldFromISR()
	})
	if got := p.YieldRequests() - before; got != 2 {
		t.Fatalf("YieldRequests() delta = %d, want 2", got)
	}
}

func TestDelayUntilKeepsCadence(t *testing.T) {
	p := newTestPort()

	prev := p.TickCount()
	start := time.Now()
	for i := 0; i < 3; i++ {
		p.DelayUntil(&prev, 10)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("three 10-tick periods elapsed in %v, want >= 25ms", elapsed)
	}
}

func TestTimerPendCallOrdering(t *testing.T) {
	p := newTestPort()

	got := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		ok, _ := p.PendCallFromISR(func(any, uint32) { got <- i }, nil, 0)
		if !ok {
			t.Fatalf("PendCallFromISR() ok = false at call %d, want true", i)
		}
	}
	for want := 0; want < 3; want++ {
		select {
		case v := <-got:
			if v != want {
				t.Fatalf("pended call ran out of order: got %d, want %d", v, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("pended call %d never ran", want)
		}
	}
}

func TestTimerCreateValidation(t *testing.T) {
	p := newTestPort()

	if h := p.TimerCreate(TimerConfig{Name: "noop"}); h != nil {
		t.Fatalf("TimerCreate() without callback = %v, want nil", h)
	}
	if h := p.TimerCreate(TimerConfig{Callback: func(any) {}}); h != nil {
		t.Fatalf("TimerCreate() without name = %v, want nil", h)
	}
}

func TestQueueStaticUsesCallerSlots(t *testing.T) {
	p := newTestPort()

	blk := &QueueStatic{Slots: make([]any, 4)}
	h := p.QueueCreateStatic(4, blk)
	if h == nil {
		t.Fatalf("QueueCreateStatic() = nil, want handle")
	}
	p.QueueSend(h, 42, 0)
	found := false
	for _, s := range blk.Slots {
		if s == 42 {
			found = true
		}
	}
	if !found {
		t.Fatalf("item not stored in caller-owned slots")
	}

	if h := p.QueueCreateStatic(4, &QueueStatic{Slots: make([]any, 2)}); h != nil {
		t.Fatalf("QueueCreateStatic() with short slot array = %v, want nil", h)
	}
}
