// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/audseg/audio"
	"github.com/jfreymuth/oggvorbis"
)

// MimeTypes lists the mime types served by Decoder.
var MimeTypes = []string{"audio/ogg", "audio/vorbis", "application/ogg", "audio/x-vorbis+ogg"}

// oggReader is the subset of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of float32 values decoded, i.e. frames
	// times channels.
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// Keep reads frame aligned so a frame never straddles two calls.
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("vorbis read: %w", err)
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg vorbis header: %w", err)
	}
	if dec.Channels() < 1 || dec.SampleRate() <= 0 {
		return nil, audio.ErrInvalidFormat
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
