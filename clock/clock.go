// SPDX-License-Identifier: EPL-2.0

// Package clock abstracts the monotonic time source used for playback
// bookkeeping, so elapsed-time math can be driven by hand in tests.
package clock

import "time"

// Clock reports monotonic time and schedules callbacks.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports false when the
	// callback already ran or was stopped.
	Stop() bool
}

// System is the process clock. time.Now carries a monotonic reading, so
// differences between two Now calls are immune to wall-clock changes.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Seconds converts a float second count to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
