// SPDX-License-Identifier: EPL-2.0

package editor

import "math"

// DefaultMinSegment is the shortest window, in seconds, a Selector allows.
const DefaultMinSegment = 0.5

// Window is a [Start, End) range in seconds.
type Window struct {
	Start float64
	End   float64
}

// Duration of the window in seconds.
func (w Window) Duration() float64 { return w.End - w.Start }

// Selector owns the trim window over a clip of a known duration.
//
// Every setter clamps instead of failing. With a clip at least MinSegment
// long the window always satisfies
//
//	0 <= Start, Start+MinSegment <= End, End <= duration
//
// A clip shorter than MinSegment can only be selected whole.
type Selector struct {
	duration   float64
	minSegment float64
	win        Window
	onChange   func(Window)
}

// NewSelector returns a Selector over an empty clip. A non-positive
// minSegment selects DefaultMinSegment.
func NewSelector(minSegment float64) *Selector {
	if !(minSegment > 0) {
		minSegment = DefaultMinSegment
	}
	return &Selector{minSegment: minSegment}
}

// OnChange registers f to run after every mutation that moves a bound.
func (s *Selector) OnChange(f func(Window)) { s.onChange = f }

func (s *Selector) Window() Window      { return s.win }
func (s *Selector) Duration() float64   { return s.duration }
func (s *Selector) MinSegment() float64 { return s.minSegment }

// Reset selects the whole of a clip of the given duration.
func (s *Selector) Reset(duration float64) Window {
	if !(duration > 0) || math.IsInf(duration, 1) {
		duration = 0
	}
	s.duration = duration
	return s.set(Window{Start: 0, End: duration})
}

// SetStart moves the start bound. It is pinned at End-MinSegment when moved
// past it; End never moves.
func (s *Selector) SetStart(t float64) Window {
	if math.IsNaN(t) {
		return s.win
	}

	t = clamp(t, 0, s.duration)
	t = min(t, s.win.End-s.minSegment)
	t = max(t, 0)

	return s.set(Window{Start: t, End: s.win.End})
}

// SetEnd moves the end bound. It is pinned at Start+MinSegment when moved
// before it; Start never moves.
func (s *Selector) SetEnd(t float64) Window {
	if math.IsNaN(t) {
		return s.win
	}

	t = clamp(t, 0, s.duration)
	t = max(t, s.win.Start+s.minSegment)
	t = min(t, s.duration)

	return s.set(Window{Start: s.win.Start, End: t})
}

// SetWindow replaces both bounds at once and validates them as a pair, so no
// intermediate window is ever observable. When the pair is too short the end
// is pushed out; when that overflows the clip the window is pinned to the
// clip's tail.
func (s *Selector) SetWindow(start, end float64) Window {
	if math.IsNaN(start) || math.IsNaN(end) {
		return s.win
	}

	start = clamp(start, 0, s.duration)
	end = clamp(end, 0, s.duration)

	if end < start+s.minSegment {
		end = start + s.minSegment
	}
	if end > s.duration {
		end = s.duration
		start = max(0, s.duration-s.minSegment)
	}

	return s.set(Window{Start: start, End: end})
}

func (s *Selector) set(w Window) Window {
	if w == s.win {
		return w
	}
	s.win = w
	if s.onChange != nil {
		s.onChange(w)
	}
	return w
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
