// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audseg/audio"
)

// go-mp3 always produces interleaved 16-bit stereo.
const channels = 2

// MimeTypes lists the mime types served by Decoder.
var MimeTypes = []string{"audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg-3"}

// mp3Reader is the subset of gomp3.Decoder used by source.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	odd        []byte // carries a split sample between reads
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	pre := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(s.buf[pre:])
	n += pre
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("mp3 read: %w", err)
	}

	samples := n / 2
	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
	}

	for i := range samples {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768.0
	}

	if err == io.EOF {
		return samples, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3 header: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
