// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func newTestSelector(duration float64) *Selector {
	s := NewSelector(0.5)
	s.Reset(duration)
	return s
}

func TestSelector_Reset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration float64
		want     Window
	}{
		{name: "normal clip", duration: 2, want: Window{0, 2}},
		{name: "clip shorter than minimum", duration: 0.2, want: Window{0, 0.2}},
		{name: "negative duration", duration: -1, want: Window{}},
		{name: "nan duration", duration: math.NaN(), want: Window{}},
		{name: "infinite duration", duration: math.Inf(1), want: Window{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSelector(0.5)
			if got := s.Reset(tt.duration); got != tt.want {
				t.Errorf("Reset(%v) = %+v, want %+v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestSelector_DefaultMinSegment(t *testing.T) {
	t.Parallel()

	for _, m := range []float64{0, -1, math.NaN()} {
		if got := NewSelector(m).MinSegment(); got != DefaultMinSegment {
			t.Errorf("NewSelector(%v).MinSegment() = %v, want %v", m, got, DefaultMinSegment)
		}
	}
}

func TestSelector_SetStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		t    float64
		want Window
	}{
		{name: "inside window", t: 0.7, want: Window{0.7, 2}},
		{name: "past end minus minimum", t: 1.8, want: Window{1.5, 2}},
		{name: "beyond duration", t: 9, want: Window{1.5, 2}},
		{name: "negative", t: -3, want: Window{0, 2}},
		{name: "exactly at limit", t: 1.5, want: Window{1.5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSelector(2)
			got := s.SetStart(tt.t)
			if !near(got.Start, tt.want.Start) || !near(got.End, tt.want.End) {
				t.Errorf("SetStart(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestSelector_SetEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start float64
		t     float64
		want  Window
	}{
		{name: "inside window", start: 0, t: 1.2, want: Window{0, 1.2}},
		{name: "before start plus minimum", start: 1, t: 1.1, want: Window{1, 1.5}},
		{name: "beyond duration", start: 0, t: 5, want: Window{0, 2}},
		{name: "negative", start: 0, t: -1, want: Window{0, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSelector(2)
			s.SetStart(tt.start)
			got := s.SetEnd(tt.t)
			if !near(got.Start, tt.want.Start) || !near(got.End, tt.want.End) {
				t.Errorf("SetEnd(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestSelector_SetWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end float64
		want       Window
	}{
		{name: "valid pair", start: 0.5, end: 1.5, want: Window{0.5, 1.5}},
		{name: "swapped pair", start: 1.5, end: 0.5, want: Window{1.5, 2}},
		{name: "too short", start: 1, end: 1.2, want: Window{1, 1.5}},
		{name: "too short at tail", start: 1.9, end: 2, want: Window{1.5, 2}},
		{name: "out of range", start: -1, end: 10, want: Window{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSelector(2)
			got := s.SetWindow(tt.start, tt.end)
			if !near(got.Start, tt.want.Start) || !near(got.End, tt.want.End) {
				t.Errorf("SetWindow(%v, %v) = %+v, want %+v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestSelector_NaNIgnored(t *testing.T) {
	t.Parallel()

	s := newTestSelector(2)
	s.SetWindow(0.5, 1.5)

	calls := 0
	s.OnChange(func(Window) { calls++ })

	s.SetStart(math.NaN())
	s.SetEnd(math.NaN())
	s.SetWindow(math.NaN(), 1)

	if got := s.Window(); got != (Window{0.5, 1.5}) {
		t.Errorf("Window() = %+v, want {0.5 1.5}", got)
	}
	if calls != 0 {
		t.Errorf("OnChange fired %d times, want 0", calls)
	}
}

func TestSelector_OnChangeOnlyOnMove(t *testing.T) {
	t.Parallel()

	s := newTestSelector(2)

	var seen []Window
	s.OnChange(func(w Window) { seen = append(seen, w) })

	s.SetStart(0)   // no move
	s.SetStart(0.4) // move
	s.SetStart(0.4) // no move
	s.SetEnd(3)     // already at duration
	s.SetEnd(1.0)   // move

	if len(seen) != 2 {
		t.Fatalf("OnChange fired %d times, want 2: %+v", len(seen), seen)
	}
	if seen[1] != (Window{0.4, 1.0}) {
		t.Errorf("last change = %+v, want {0.4 1}", seen[1])
	}
}

func TestSelector_InvariantHolds(t *testing.T) {
	t.Parallel()

	const duration = 3.0
	rng := rand.New(rand.NewSource(7))
	s := newTestSelector(duration)

	for i := range 5000 {
		a := rng.Float64()*8 - 2
		b := rng.Float64()*8 - 2

		switch rng.Intn(3) {
		case 0:
			s.SetStart(a)
		case 1:
			s.SetEnd(a)
		default:
			s.SetWindow(a, b)
		}

		w := s.Window()
		if w.Start < 0 || w.Start+s.MinSegment() > w.End+eps || w.End > duration {
			t.Fatalf("step %d: window %+v violates bounds over %v", i, w, duration)
		}
	}
}

func TestSelector_ShortClipSelectedWhole(t *testing.T) {
	t.Parallel()

	s := newTestSelector(0.3)

	for _, w := range []Window{s.SetStart(0.1), s.SetEnd(0.1), s.SetWindow(0.1, 0.2)} {
		if w != (Window{0, 0.3}) {
			t.Errorf("window = %+v, want {0 0.3}", w)
		}
	}
}
