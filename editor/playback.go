// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"math"
	"sync"
	"time"

	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/clock"
	"github.com/ik5/audseg/output"
	"github.com/sirupsen/logrus"
)

// State of the playback engine.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent view of the engine.
type Snapshot struct {
	State State
	// Offset is the accumulated time into Window at the last Play or Pause.
	Offset float64
	// Position is Offset plus the time played since, capped at the window.
	Position float64
	// Scheduled is how much audio the current or last run was started with.
	Scheduled float64
	Window    Window
}

// Engine plays one window of a Buffer at a time.
//
// Operations never fail: calls that make no sense in the current state are
// ignored. Elapsed time is read from the injected clock only when a run
// starts or pauses. The end of a run is detected by a clock timer tagged
// with a generation number; bumping the generation on every transition
// makes a late timer from an earlier run a no-op.
type Engine struct {
	mu     sync.Mutex
	clock  clock.Clock
	device output.Device
	log    logrus.FieldLogger

	buf       *audio.Buffer
	state     State
	offset    float64
	started   time.Time
	scheduled float64
	window    Window

	gen   uint64
	voice output.Voice
	timer clock.Timer

	onComplete func()
}

// NewEngine returns a Stopped engine with no buffer.
func NewEngine(c clock.Clock, device output.Device, log logrus.FieldLogger) *Engine {
	if c == nil {
		c = clock.System{}
	}
	if log == nil {
		log = discardLogger()
	}
	return &Engine{clock: c, device: device, log: log}
}

// OnComplete registers f to run, outside the engine lock, whenever a run
// ends because its scheduled duration elapsed.
func (e *Engine) OnComplete(f func()) {
	e.mu.Lock()
	e.onComplete = f
	e.mu.Unlock()
}

// Load swaps in a new buffer and stops playback.
func (e *Engine) Load(buf *audio.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.halt()
	e.buf = buf
	e.state = Stopped
	e.offset = 0
	e.scheduled = 0
	e.window = Window{}
}

// Play starts or resumes playback of w.
//
// A paused run of the same window resumes from its offset; a different
// window starts from its beginning. An offset at or past the end of the
// window wraps to the start. Play while Playing is ignored.
func (e *Engine) Play(w Window) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Playing || e.buf == nil {
		return
	}

	e.halt()

	if w != e.window {
		e.window = w
		e.offset = 0
	}

	dur := w.Duration()
	startOffset := e.offset
	if startOffset >= dur {
		startOffset = 0
	}
	remaining := dur - startOffset
	if !(remaining > 0) {
		e.state = Stopped
		e.offset = 0
		return
	}

	rate := float64(e.buf.SampleRate())
	from := int(math.Floor((w.Start + startOffset) * rate))
	to := min(int(math.Floor(w.End*rate)), e.buf.Frames())

	voice, err := e.device.Play(e.buf.Slice(from, to))
	if err != nil {
		e.log.WithError(err).Warn("playback device refused to start")
		e.state = Stopped
		e.offset = 0
		return
	}

	e.gen++
	gen := e.gen
	e.voice = voice
	e.offset = startOffset
	e.scheduled = remaining
	e.started = e.clock.Now()
	e.state = Playing
	e.timer = e.clock.AfterFunc(clock.Seconds(remaining), func() { e.complete(gen) })

	e.log.WithFields(logrus.Fields{
		"start":     w.Start + startOffset,
		"remaining": remaining,
	}).Debug("playback started")
}

// Pause halts a running playback and keeps its position.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Playing {
		return
	}

	e.offset += e.clock.Now().Sub(e.started).Seconds()
	e.halt()
	e.state = Paused

	e.log.WithField("offset", e.offset).Debug("playback paused")
}

// Stop halts playback and rewinds to the start of the window.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stop()
}

// Invalidate reports that the window changed. Anything but a stopped engine
// is stopped, so the next Play starts at the beginning of the new window.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Stopped {
		e.stop()
	}
}

// Close stops playback and drops the buffer.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stop()
	e.buf = nil
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Offset() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.offset
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.offset
	if e.state == Playing {
		pos += e.clock.Now().Sub(e.started).Seconds()
	}
	pos = min(pos, max(0, e.window.Duration()))

	return Snapshot{
		State:     e.state,
		Offset:    e.offset,
		Position:  pos,
		Scheduled: e.scheduled,
		Window:    e.window,
	}
}

// complete handles the end-of-run timer of generation gen.
func (e *Engine) complete(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.state != Playing {
		e.mu.Unlock()
		return
	}
	e.stop()
	cb := e.onComplete
	e.mu.Unlock()

	e.log.Debug("playback completed")
	if cb != nil {
		cb()
	}
}

func (e *Engine) stop() {
	e.halt()
	e.state = Stopped
	e.offset = 0
}

// halt silences the active voice and disarms its timer. The generation bump
// orphans a timer callback that is already waiting on the lock.
func (e *Engine) halt() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.voice != nil {
		if err := e.voice.Stop(); err != nil {
			e.log.WithError(err).Warn("stopping playback voice")
		}
		e.voice = nil
	}
}
