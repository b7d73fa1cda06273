// SPDX-License-Identifier: EPL-2.0

package clock

import (
	"reflect"
	"testing"
	"time"
)

func TestManual_Advance(t *testing.T) {
	t.Parallel()

	start := time.Unix(100, 0)
	m := NewManual(start)

	var fired []string
	m.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	m.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	m.AfterFunc(time.Second, func() { fired = append(fired, "never") })

	m.Advance(50 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired %v before any deadline", fired)
	}

	m.Advance(250 * time.Millisecond)
	if want := []string{"early", "late"}; !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
	if got := m.Now().Sub(start); got != 300*time.Millisecond {
		t.Errorf("elapsed = %v, want 300ms", got)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
}

func TestManual_Stop(t *testing.T) {
	t.Parallel()

	m := NewManual(time.Unix(0, 0))
	calls := 0
	timer := m.AfterFunc(time.Second, func() { calls++ })

	if !timer.Stop() {
		t.Error("Stop() = false for a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true")
	}

	m.Advance(2 * time.Second)
	if calls != 0 {
		t.Errorf("stopped timer fired %d times", calls)
	}

	fired := m.AfterFunc(0, func() { calls++ })
	m.Advance(0)
	if calls != 1 {
		t.Errorf("zero-delay timer fired %d times, want 1", calls)
	}
	if fired.Stop() {
		t.Error("Stop() = true after the callback ran")
	}
}

func TestManual_CallbackCanReschedule(t *testing.T) {
	t.Parallel()

	m := NewManual(time.Unix(0, 0))
	calls := 0
	m.AfterFunc(time.Second, func() {
		calls++
		m.AfterFunc(time.Second, func() { calls++ })
	})

	m.Advance(time.Second)
	if calls != 1 || m.Pending() != 1 {
		t.Fatalf("calls = %d, pending = %d; want 1, 1", calls, m.Pending())
	}
	m.Advance(time.Second)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSystem(t *testing.T) {
	t.Parallel()

	var c Clock = System{}
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("System.AfterFunc never fired")
	}

	if c.Now().IsZero() {
		t.Error("Now() is zero")
	}
}

func TestSeconds(t *testing.T) {
	t.Parallel()

	tests := map[float64]time.Duration{
		0:     0,
		1:     time.Second,
		0.25:  250 * time.Millisecond,
		1.5:   1500 * time.Millisecond,
		-0.5:  -500 * time.Millisecond,
		0.001: time.Millisecond,
	}

	for in, want := range tests {
		if got := Seconds(in); got != want {
			t.Errorf("Seconds(%v) = %v, want %v", in, got, want)
		}
	}
}
