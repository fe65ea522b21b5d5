package game

import (
	"time"

	"github.com/coder/quartz"
)

// SleepFunc is the sleep collaborator's shape: it runs fn after the
// given duration. clockSleep builds one from a quartz.Clock. The Hand
// does not take a SleepFunc; it schedules its delays directly on its
// injected quartz.Clock (see afterDelay in hand.go).
type SleepFunc func(d time.Duration, fn func())

// clockSleep adapts a quartz.Clock into a SleepFunc via AfterFunc, the
// same primitive the teacher's server package injects into its own
// timeout paths.
func clockSleep(clock quartz.Clock) SleepFunc {
	return func(d time.Duration, fn func()) {
		clock.AfterFunc(d, fn)
	}
}

// interStreetDelay is the fixed ~1s pause the concurrency model calls
// for after dealing hole cards, after each community-card deal, and
// after each pot award.
const interStreetDelay = time.Second

// actorTimer drives the per-actor countdown described in §4.7: it
// ticks once a second via the injected clock and, on reaching zero,
// invokes onExpire. Any call to cancel before expiry stops the timer
// without firing onExpire.
type actorTimer struct {
	clock     quartz.Clock
	remaining int
	onExpire  func()
	timer     *quartz.Timer
	cancelled bool
}

// newActorTimer assumes seconds > 0; startTimerForActive never
// constructs one otherwise (TimeLimit <= 0 disables the timer
// entirely), so there's no zero-second case to special-case here.
func newActorTimer(clock quartz.Clock, seconds int, onExpire func()) *actorTimer {
	t := &actorTimer{clock: clock, remaining: seconds, onExpire: onExpire}
	t.schedule()
	return t
}

func (t *actorTimer) schedule() {
	t.timer = t.clock.AfterFunc(time.Second, t.tick)
}

func (t *actorTimer) tick() {
	if t.cancelled {
		return
	}
	t.remaining--
	if t.remaining <= 0 {
		t.onExpire()
		return
	}
	t.schedule()
}

// cancel stops the timer; safe to call after it has already expired.
func (t *actorTimer) cancel() {
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
