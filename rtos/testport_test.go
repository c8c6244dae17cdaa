package rtos

import (
	"testing"
	"time"

	"gortos/port"
)

// fakePort scripts the kernel boundary for dispatch and lifecycle
// tests. It embeds a nil port.Port, so any call a test did not stub
// panics — which is exactly the signal wanted when asserting that a
// code path is never taken.
type fakePort struct {
	port.Port

	isr    bool
	yields int

	failCreate bool

	isrSends    int
	isrReceives int
	sendOK      bool
	sendWoken   bool
	recvItem    any
	recvOK      bool
	recvWoken   bool

	semaCount int
	semaMax   int
	takeWoken bool

	taskName   string
	notifies   int
	notifWoken bool

	timerActive  bool
	timerPeriods []port.Ticks
	timerStarts  int
	timerWoken   bool
}

func (f *fakePort) InISR() bool            { return f.isr }
func (f *fakePort) YieldFromISR()          { f.yields++ }
func (f *fakePort) SchedulerRunning() bool { return true }

func (f *fakePort) TicksFromDuration(d time.Duration) port.Ticks {
	if d < 0 {
		return port.TicksForever
	}
	return port.Ticks(d / time.Millisecond)
}

type fakeHandle struct{ kind string }

func (f *fakePort) QueueCreate(capacity int) port.QueueHandle {
	if f.failCreate {
		return nil
	}
	return &fakeHandle{kind: "queue"}
}

func (f *fakePort) QueueSendFromISR(h port.QueueHandle, item any) (bool, bool) {
	f.isrSends++
	return f.sendOK, f.sendWoken
}

func (f *fakePort) QueueReceiveFromISR(h port.QueueHandle) (any, bool, bool) {
	f.isrReceives++
	return f.recvItem, f.recvOK, f.recvWoken
}

func (f *fakePort) QueuePeekFromISR(h port.QueueHandle) (any, bool) {
	return f.recvItem, f.recvOK
}

func (f *fakePort) SemaCreateCounting(max, initial int) port.SemaHandle {
	if f.failCreate {
		return nil
	}
	f.semaMax = max
	f.semaCount = initial
	return &fakeHandle{kind: "sema"}
}

func (f *fakePort) SemaCreateMutex() port.SemaHandle {
	if f.failCreate {
		return nil
	}
	return &fakeHandle{kind: "mutex"}
}

func (f *fakePort) SemaTakeFromISR(h port.SemaHandle) (bool, bool) {
	if f.semaCount == 0 {
		return false, false
	}
	f.semaCount--
	return true, f.takeWoken
}

func (f *fakePort) SemaGiveFromISR(h port.SemaHandle) (bool, bool) {
	if f.semaCount >= f.semaMax {
		return false, false
	}
	f.semaCount++
	return true, f.takeWoken
}

func (f *fakePort) TaskCreate(cfg port.TaskConfig) port.TaskHandle {
	if f.failCreate {
		return nil
	}
	f.taskName = cfg.Name
	return &fakeHandle{kind: "task"}
}

func (f *fakePort) NotifyGiveFromISR(h port.TaskHandle) bool {
	f.notifies++
	return f.notifWoken
}

func (f *fakePort) TimerCreate(cfg port.TimerConfig) port.TimerHandle {
	if f.failCreate {
		return nil
	}
	return &fakeHandle{kind: "timer"}
}

func (f *fakePort) TimerChangePeriodFromISR(h port.TimerHandle, period port.Ticks) (bool, bool) {
	f.timerPeriods = append(f.timerPeriods, period)
	return true, f.timerWoken
}

func (f *fakePort) TimerStartFromISR(h port.TimerHandle) (bool, bool) {
	f.timerStarts++
	f.timerActive = true
	return true, false
}

func (f *fakePort) TimerChangePeriod(h port.TimerHandle, period, wait port.Ticks) bool {
	f.timerPeriods = append(f.timerPeriods, period)
	return true
}

func (f *fakePort) TimerStart(h port.TimerHandle, wait port.Ticks) bool {
	f.timerStarts++
	f.timerActive = true
	return true
}

func (f *fakePort) TimerActive(h port.TimerHandle) bool { return f.timerActive }

func (f *fakePort) QueueDelete(h port.QueueHandle) {}
func (f *fakePort) SemaDelete(h port.SemaHandle)   {}
func (f *fakePort) TaskDelete(h port.TaskHandle)   {}

func (f *fakePort) TimerDelete(h port.TimerHandle, wait port.Ticks) bool { return true }

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic, got none", what)
		}
	}()
	fn()
}
