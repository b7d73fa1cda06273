// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMReader is the read side of the go-audio container decoders
// (wav.Decoder, aiff.Decoder).
type PCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource adapts a go-audio integer PCM reader to a float Source.
type IntSource struct {
	dec       PCMReader
	format    *goaudio.Format
	bitDepth  int
	unsigned8 bool
	scale     float32
	intBuf    *goaudio.IntBuffer
	exhausted bool
}

// NewIntSource wraps dec. unsigned8 marks 8-bit data stored as unsigned
// bytes (WAV) rather than signed (AIFF).
func NewIntSource(dec PCMReader, format *goaudio.Format, bitDepth int, unsigned8 bool) (*IntSource, error) {
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrInvalidFormat
	}

	var scale float32
	switch bitDepth {
	case 8:
		scale = 128
	case 16:
		scale = 32768
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	return &IntSource{
		dec:       dec,
		format:    format,
		bitDepth:  bitDepth,
		unsigned8: unsigned8 && bitDepth == 8,
		scale:     scale,
	}, nil
}

func (s *IntSource) SampleRate() int { return s.format.SampleRate }
func (s *IntSource) Channels() int   { return s.format.NumChannels }
func (s *IntSource) BitDepth() int   { return s.bitDepth }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.exhausted {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}

	for i := range n {
		v := s.intBuf.Data[i]
		if s.unsigned8 {
			v -= 128
		}
		dst[i] = float32(v) / s.scale
	}

	// The go-audio decoders report a short read with a nil error at the
	// end of the data chunk.
	if n == 0 || n < len(dst) || err != nil {
		s.exhausted = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}
