// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads Collect tolerates
// before giving up on a source.
const maxEmptyReads = 100

// Buffer is a fully decoded, planar audio clip. It is never modified after
// construction, so it can be read from several goroutines at once.
type Buffer struct {
	sampleRate int
	data       [][]float32
}

// NewBuffer wraps planar sample data. data[c] holds every sample of channel c.
// The slices are not copied; callers hand over ownership.
// Use Validate to check the result.
func NewBuffer(sampleRate int, data [][]float32) *Buffer {
	return &Buffer{sampleRate: sampleRate, data: data}
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }

// Frames returns the number of frames (one sample per channel).
func (b *Buffer) Frames() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.sampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the samples of channel ch. The slice must not be modified.
func (b *Buffer) Channel(ch int) []float32 { return b.data[ch] }

// Validate reports ErrInvalidFormat for a missing rate or channel, and a
// descriptive error when channel lengths differ.
func (b *Buffer) Validate() error {
	if b == nil || b.sampleRate <= 0 || len(b.data) == 0 {
		return ErrInvalidFormat
	}
	frames := len(b.data[0])
	for c := 1; c < len(b.data); c++ {
		if len(b.data[c]) != frames {
			return fmt.Errorf("channel %d has %d frames, channel 0 has %d", c, len(b.data[c]), frames)
		}
	}
	return nil
}

// Slice returns a Source that streams frames [startFrame, endFrame)
// interleaved. Bounds are clamped to the buffer.
func (b *Buffer) Slice(startFrame, endFrame int) Source {
	frames := b.Frames()
	startFrame = max(0, min(startFrame, frames))
	endFrame = max(startFrame, min(endFrame, frames))

	return &bufferSource{buf: b, pos: startFrame, end: endFrame}
}

type bufferSource struct {
	buf *Buffer
	pos int
	end int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return len(s.buf.data) }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.data)
	if s.pos >= s.end {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := min(len(dst)/channels, s.end-s.pos)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.end {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// Collect drains src into a Buffer, de-interleaving as it goes.
// A trailing partial frame is dropped. The context is checked between reads.
func Collect(ctx context.Context, src Source) (*Buffer, error) {
	channels := src.Channels()
	rate := src.SampleRate()
	if channels < 1 || rate <= 0 {
		return nil, ErrInvalidFormat
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}
	chunk := make([]float32, size)

	data := make([][]float32, channels)
	idx := 0
	empty := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.ReadSamples(chunk)
		for i := range n {
			c := idx % channels
			data[c] = append(data[c], chunk[i])
			idx++
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	frames := idx / channels
	if frames == 0 {
		return nil, ErrEmptyStream
	}
	for c := range data {
		data[c] = data[c][:frames]
	}

	return &Buffer{sampleRate: rate, data: data}, nil
}
