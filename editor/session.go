// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audseg/analysis"
	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/clock"
	"github.com/ik5/audseg/formats/wav"
	"github.com/ik5/audseg/output"
	"github.com/sirupsen/logrus"
)

// BufferDecoder turns a payload into a Buffer. *audio.Registry implements it.
type BufferDecoder interface {
	DecodeBuffer(ctx context.Context, data []byte, mimeType string) (*audio.Buffer, error)
}

// formatResolver is the optional part of a BufferDecoder that names the
// format a payload decodes as.
type formatResolver interface {
	Resolve(mimeType string, data []byte) (string, audio.Decoder, error)
}

// Analyzer judges an encoded clip. *analysis.Client implements it.
type Analyzer interface {
	AnalyzeAudio(ctx context.Context, data []byte, mimeType string) (*analysis.Verdict, error)
}

// Observer is told about the slow or external steps of a session.
// Implementations must be safe for concurrent use.
type Observer interface {
	// DecodeFinished reports a Load. format is the registered format the
	// payload resolved to, or "unknown".
	DecodeFinished(format string, took time.Duration, err error)
	Exported(bytes int)
	AnalysisFinished(took time.Duration, err error)
}

// Options for NewSession. Only Decoder is required.
type Options struct {
	Decoder BufferDecoder
	// MinSegment defaults to DefaultMinSegment.
	MinSegment float64
	// Clock defaults to clock.System.
	Clock clock.Clock
	// Device defaults to output.Null.
	Device   output.Device
	Logger   logrus.FieldLogger
	Observer Observer
}

// Segment is an exported window. An empty Data means the window selected no
// frames.
type Segment struct {
	Data     []byte
	MimeType string
	Window   Window
}

func (s Segment) Empty() bool { return len(s.Data) == 0 }

// Status is what a view needs to draw a session.
type Status struct {
	Loaded     bool
	Duration   float64
	SampleRate int
	Channels   int
	Playback   Snapshot
	Window     Window
}

// Session is one editing session over one clip at a time.
//
// The device is acquired by the caller and handed over to the session;
// Close releases it. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu     sync.Mutex
	dec    BufferDecoder
	device output.Device
	log    logrus.FieldLogger
	obs    Observer

	sel    *Selector
	engine *Engine
	buf    *audio.Buffer
	closed bool
}

func NewSession(opts Options) *Session {
	id := uuid.NewString()

	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	log = log.WithField("session", id)

	device := opts.Device
	if device == nil {
		device = output.NewNull()
	}

	s := &Session{
		ID:     id,
		dec:    opts.Decoder,
		device: device,
		log:    log,
		obs:    opts.Observer,
		sel:    NewSelector(opts.MinSegment),
		engine: NewEngine(opts.Clock, device, log),
	}
	s.sel.OnChange(func(Window) { s.engine.Invalidate() })

	return s
}

// Load decodes data and makes it the current clip, selecting all of it.
// On failure the previous clip, window and playback state are untouched.
func (s *Session) Load(ctx context.Context, data []byte, mimeType string) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	started := time.Now()
	buf, err := s.dec.DecodeBuffer(ctx, data, mimeType)
	if s.obs != nil {
		s.obs.DecodeFinished(s.formatOf(data, mimeType, err), time.Since(started), err)
	}
	if err != nil {
		s.log.WithError(err).WithField("mime_type", mimeType).Warn("decode failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.engine.Load(buf)
	s.buf = buf
	s.sel.Reset(buf.Duration())

	s.log.WithFields(logrus.Fields{
		"sample_rate": buf.SampleRate(),
		"channels":    buf.Channels(),
		"duration":    buf.Duration(),
	}).Info("clip loaded")

	return nil
}

// formatOf names the format data was decoded as, the same way the decoder
// picked it.
func (s *Session) formatOf(data []byte, mimeType string, err error) string {
	var de *audio.DecodeError
	if errors.As(err, &de) && de.Format != "" {
		return de.Format
	}

	var format string
	if r, ok := s.dec.(formatResolver); ok {
		format, _, _ = r.Resolve(mimeType, data)
	} else {
		format = audio.Sniff(data)
	}
	if format == "" {
		return "unknown"
	}
	return format
}

// Buffer returns the current clip, or nil.
func (s *Session) Buffer() *audio.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

func (s *Session) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Window()
}

func (s *Session) MinSegment() float64 { return s.sel.MinSegment() }

// SetStart, SetEnd, SetWindow and ResetWindow clamp like their Selector
// counterparts and return the resulting window. Without a clip they return
// the zero Window.
func (s *Session) SetStart(t float64) Window {
	return s.edit(func() Window { return s.sel.SetStart(t) })
}

func (s *Session) SetEnd(t float64) Window {
	return s.edit(func() Window { return s.sel.SetEnd(t) })
}

func (s *Session) SetWindow(start, end float64) Window {
	return s.edit(func() Window { return s.sel.SetWindow(start, end) })
}

// ResetWindow selects the whole clip again.
func (s *Session) ResetWindow() Window {
	return s.edit(func() Window { return s.sel.Reset(s.sel.Duration()) })
}

func (s *Session) edit(f func() Window) Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil || s.closed {
		return Window{}
	}
	return f()
}

// Play plays the current window. It does nothing without a clip.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf == nil || s.closed {
		return
	}
	s.engine.Play(s.sel.Window())
}

func (s *Session) Pause() { s.engine.Pause() }
func (s *Session) Stop()  { s.engine.Stop() }

// TogglePlay pauses a playing session and plays any other.
func (s *Session) TogglePlay() {
	if s.engine.State() == Playing {
		s.Pause()
		return
	}
	s.Play()
}

// OnPlaybackComplete registers f to run when playback reaches the end of
// the window on its own.
func (s *Session) OnPlaybackComplete(f func()) { s.engine.OnComplete(f) }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Playback: s.engine.Snapshot(),
		Window:   s.sel.Window(),
	}
	if s.buf != nil {
		st.Loaded = true
		st.Duration = s.buf.Duration()
		st.SampleRate = s.buf.SampleRate()
		st.Channels = s.buf.Channels()
	}
	return st
}

// Export stops playback and encodes the current window as 16-bit WAV.
// A window that selects no frames gives an empty Segment and no error.
func (s *Session) Export() (Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Segment{}, ErrClosed
	}
	if s.buf == nil {
		return Segment{}, ErrNoBuffer
	}

	s.engine.Stop()

	w := s.sel.Window()
	data, err := wav.EncodeSegment(s.buf, w.Start, w.End)
	if err != nil {
		s.log.WithError(err).Error("encoding segment")
		return Segment{}, err
	}

	if s.obs != nil {
		s.obs.Exported(len(data))
	}
	s.log.WithFields(logrus.Fields{
		"start": w.Start,
		"end":   w.End,
		"bytes": len(data),
	}).Info("segment exported")

	return Segment{Data: data, MimeType: wav.MimeType, Window: w}, nil
}

// Analyze exports the current window and submits it to a. The session is
// not locked while the request is in flight.
func (s *Session) Analyze(ctx context.Context, a Analyzer) (*analysis.Verdict, error) {
	seg, err := s.Export()
	if err != nil {
		return nil, err
	}
	if seg.Empty() {
		return nil, ErrEmptySegment
	}

	started := time.Now()
	v, err := a.AnalyzeAudio(ctx, seg.Data, seg.MimeType)
	if s.obs != nil {
		s.obs.AnalysisFinished(time.Since(started), err)
	}
	if err != nil {
		s.log.WithError(err).Warn("analysis failed")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"sentiment":  v.Sentiment,
		"confidence": v.Confidence,
	}).Info("analysis finished")

	return v, nil
}

// Close stops playback and releases the device. Later calls are no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.engine.Close()
	s.buf = nil

	return s.device.Close()
}
