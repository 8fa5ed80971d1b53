package driver

import "time"

// Timer is a cancelable scheduled task handle.
type Timer interface {
	// Stop cancels the task. It reports whether the call prevented the
	// task from running.
	Stop() bool
}

// Clock schedules deferred work. It exists so tests can drive the
// driver deterministically with a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
