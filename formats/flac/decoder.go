// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/audseg/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// MimeTypes lists the mime types served by Decoder.
var MimeTypes = []string{"audio/flac", "audio/x-flac"}

// frameReader is the subset of flac.Stream used by source.
type frameReader interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	dec        frameReader
	sampleRate int
	channels   int
	scale      float32

	// samples of the current frame, interleaved, and the read position
	pending []float32
	pos     int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) Close() error {
	if err := s.dec.Close(); err != nil {
		return fmt.Errorf("flac close: %w", err)
	}
	return nil
}

// fill decodes the next FLAC frame into pending.
func (s *source) fill() error {
	f, err := s.dec.ParseNext()
	if err != nil {
		return err
	}
	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%w: frame has %d channels, stream has %d", ErrCorruptFrame, len(f.Subframes), s.channels)
	}

	block := len(f.Subframes[0].Samples)
	if cap(s.pending) < block*s.channels {
		s.pending = make([]float32, block*s.channels)
	}
	s.pending = s.pending[:block*s.channels]
	s.pos = 0

	for c, sub := range f.Subframes {
		if len(sub.Samples) != block {
			return fmt.Errorf("%w: ragged subframes", ErrCorruptFrame)
		}
		for i, v := range sub.Samples {
			s.pending[i*s.channels+c] = float32(v) / s.scale
		}
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	n := 0

	for n < want {
		if s.pos >= len(s.pending) {
			if err := s.fill(); err != nil {
				if err == io.EOF {
					return n, io.EOF
				}
				return n, fmt.Errorf("flac read: %w", err)
			}
			continue
		}

		c := copy(dst[n:want], s.pending[s.pos:])
		s.pos += c
		n += c
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac stream info: %w", err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		stream.Close()
		return nil, audio.ErrInvalidFormat
	}
	if info.BitsPerSample < 4 || info.BitsPerSample > 32 {
		stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      float32(uint64(1) << (info.BitsPerSample - 1)),
	}, nil
}
