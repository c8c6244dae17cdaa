package rtos

import "gortos/port"

type state uint8

const (
	stateUnconfigured state = iota
	stateReady
	stateDestroyed
)

// lifecycle is the state machine every primitive embeds. Configuration
// is mutable only before Init succeeds; operations require Ready; a
// destroyed primitive accepts nothing.
type lifecycle struct {
	st state
}

func (l *lifecycle) mutable() bool { return l.st == stateUnconfigured }

func (l *lifecycle) markReady()     { l.st = stateReady }
func (l *lifecycle) markDestroyed() { l.st = stateDestroyed }

// requireUnconfigured guards Init.
func (l *lifecycle) requireUnconfigured(what string) {
	switch l.st {
	case stateReady:
		fail(what + " initialized twice")
	case stateDestroyed:
		fail(what + " used after Destroy")
	}
}

// requireReady guards operations that need a materialized kernel object
// and a running scheduler.
func (l *lifecycle) requireReady(p port.Port, what string) {
	switch l.st {
	case stateUnconfigured:
		fail(what + " used before Init")
	case stateDestroyed:
		fail(what + " used after Destroy")
	}
	if !p.SchedulerRunning() {
		fail(what + " used before the scheduler started")
	}
}
