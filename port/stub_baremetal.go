//go:build tinygo

package port

import "time"

// stubPort is a placeholder for targets without a kernel port yet.
// Every call fails definitively; InISR is constant false, so all
// interrupt branches in the wrappers are dead code on this build.
type stubPort struct{}

// New returns the port implementation for this platform.
func New() Port {
	return stubPort{}
}

func (stubPort) TaskCreate(cfg TaskConfig) TaskHandle { return nil }
func (stubPort) TaskCreateStatic(cfg TaskConfig, blk *TaskStatic) TaskHandle { return nil }
func (stubPort) TaskDelete(h TaskHandle) {}
func (stubPort) TaskSelfDelete() {}
func (stubPort) TaskSuspend(h TaskHandle) {}
func (stubPort) TaskResume(h TaskHandle) {}
func (stubPort) TaskResumeFromISR(h TaskHandle) bool { return false }
func (stubPort) TaskSuspendAll() {}
func (stubPort) TaskResumeAll() {}
func (stubPort) NotifyGive(h TaskHandle) bool { return false }
func (stubPort) NotifyGiveFromISR(h TaskHandle) bool { return false }
func (stubPort) NotifyTake(h TaskHandle, clear bool, wait Ticks) bool { return false }

func (stubPort) QueueCreate(capacity int) QueueHandle { return nil }
func (stubPort) QueueCreateStatic(capacity int, blk *QueueStatic) QueueHandle { return nil }
func (stubPort) QueueDelete(h QueueHandle) {}
func (stubPort) QueueSend(h QueueHandle, item any, wait Ticks) bool { return false }
func (stubPort) QueueSendFromISR(h QueueHandle, item any) (bool, bool) { return false, false }
func (stubPort) QueueReceive(h QueueHandle, wait Ticks) (any, bool) { return nil, false }
func (stubPort) QueueReceiveFromISR(h QueueHandle) (any, bool, bool) { return nil, false, false }
func (stubPort) QueuePeek(h QueueHandle, wait Ticks) (any, bool) { return nil, false }
func (stubPort) QueuePeekFromISR(h QueueHandle) (any, bool) { return nil, false }
func (stubPort) QueueSpaces(h QueueHandle) int { return 0 }
func (stubPort) QueueReset(h QueueHandle) bool { return false }

func (stubPort) SemaCreateCounting(max, initial int) SemaHandle { return nil }
func (stubPort) SemaCreateCountingStatic(max, initial int, blk *SemaStatic) SemaHandle { return nil }
func (stubPort) SemaCreateMutex() SemaHandle { return nil }
func (stubPort) SemaCreateMutexStatic(blk *SemaStatic) SemaHandle { return nil }
func (stubPort) SemaDelete(h SemaHandle) {}
func (stubPort) SemaTake(h SemaHandle, wait Ticks) bool { return false }
func (stubPort) SemaTakeFromISR(h SemaHandle) (bool, bool) { return false, false }
func (stubPort) SemaGive(h SemaHandle) bool { return false }
func (stubPort) SemaGiveFromISR(h SemaHandle) (bool, bool) { return false, false }

func (stubPort) TimerCreate(cfg TimerConfig) TimerHandle { return nil }
func (stubPort) TimerCreateStatic(cfg TimerConfig, blk *TimerStatic) TimerHandle { return nil }
func (stubPort) TimerDelete(h TimerHandle, wait Ticks) bool { return false }
func (stubPort) TimerStart(h TimerHandle, wait Ticks) bool { return false }
func (stubPort) TimerStartFromISR(h TimerHandle) (bool, bool) { return false, false }
func (stubPort) TimerStop(h TimerHandle, wait Ticks) bool { return false }
func (stubPort) TimerStopFromISR(h TimerHandle) (bool, bool) { return false, false }
func (stubPort) TimerReset(h TimerHandle, wait Ticks) bool { return false }
func (stubPort) TimerResetFromISR(h TimerHandle) (bool, bool) { return false, false }
func (stubPort) TimerChangePeriod(h TimerHandle, period, wait Ticks) bool { return false }
func (stubPort) TimerChangePeriodFromISR(h TimerHandle, period Ticks) (bool, bool) {
	return false, false
}
func (stubPort) TimerActive(h TimerHandle) bool { return false }

func (stubPort) PendCall(fn func(arg any, n uint32), arg any, n uint32, wait Ticks) bool {
	return false
}
func (stubPort) PendCallFromISR(fn func(arg any, n uint32), arg any, n uint32) (bool, bool) {
	return false, false
}

func (stubPort) InISR() bool { return false }
func (stubPort) SchedulerRunning() bool { return false }
func (stubPort) TickCount() Ticks { return 0 }
func (stubPort) TicksFromDuration(d time.Duration) Ticks { return 0 }
func (stubPort) DelayTicks(t Ticks) {}
func (stubPort) DelayUntil(prev *Ticks, increment Ticks) {}
func (stubPort) Yield() {}
func (stubPort) YieldFromISR() {}
