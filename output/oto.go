// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audseg/audio"
	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("output device closed")

// Options configure an Oto device.
type Options struct {
	SampleRate int
	Channels   int
	// BufferSize is the device latency; zero lets oto choose.
	BufferSize time.Duration
	Logger     logrus.FieldLogger
}

// Oto plays through the platform audio stack using oto.
//
// oto allows a single context per process and cannot change format once
// created, so the device is opened at a fixed rate and channel count and
// every source is converted to it on the fly.
type Oto struct {
	mu     sync.Mutex
	ctx    *oto.Context
	opts   Options
	voices map[*otoVoice]struct{}
	closed bool
	log    logrus.FieldLogger
}

// NewOto opens the device and blocks until it is ready.
func NewOto(opts Options) (*Oto, error) {
	if opts.SampleRate <= 0 || opts.Channels < 1 {
		return nil, fmt.Errorf("invalid device format %d Hz x %d channels", opts.SampleRate, opts.Channels)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: opts.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	log.WithFields(logrus.Fields{
		"sample_rate": opts.SampleRate,
		"channels":    opts.Channels,
	}).Debug("audio output initialized")

	return &Oto{
		ctx:    ctx,
		opts:   opts,
		voices: make(map[*otoVoice]struct{}),
		log:    log,
	}, nil
}

func (o *Oto) Play(src audio.Source) (Voice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrClosed
	}

	conv := audio.Convert(src, o.opts.SampleRate, o.opts.Channels)
	player := o.ctx.NewPlayer(newPCMReader(conv))
	player.Play()

	v := &otoVoice{device: o, player: player, src: conv}
	o.voices[v] = struct{}{}
	return v, nil
}

// Close stops every voice and suspends the context. oto offers no way to
// destroy a context, so the process keeps it until exit.
func (o *Oto) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	voices := make([]*otoVoice, 0, len(o.voices))
	for v := range o.voices {
		voices = append(voices, v)
	}
	o.mu.Unlock()

	var errs []error
	for _, v := range voices {
		errs = append(errs, v.Stop())
	}
	if err := o.ctx.Suspend(); err != nil {
		errs = append(errs, fmt.Errorf("suspending oto context: %w", err))
	}
	return errors.Join(errs...)
}

func (o *Oto) forget(v *otoVoice) {
	o.mu.Lock()
	delete(o.voices, v)
	o.mu.Unlock()
}

type otoVoice struct {
	once   sync.Once
	device *Oto
	player *oto.Player
	src    audio.Source
}

func (v *otoVoice) Stop() error {
	var err error
	v.once.Do(func() {
		v.player.Pause()
		err = errors.Join(v.player.Close(), v.src.Close())
		v.device.forget(v)
	})
	return err
}
