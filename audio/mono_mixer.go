// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages every frame of src down to one channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixer source: %w", err)
	}
	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / channels
	inv := 1 / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			dst[f] = (m.tmp[2*f] + m.tmp[2*f+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float32
			for _, v := range m.tmp[f*channels : (f+1)*channels] {
				sum += v
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}

// Spreader copies a mono source onto every output channel.
type Spreader struct {
	src      Source
	channels int
	tmp      []float32
}

func NewSpreader(src Source, channels int) *Spreader {
	return &Spreader{src: src, channels: channels, tmp: make([]float32, 4096)}
}

func (s *Spreader) SampleRate() int { return s.src.SampleRate() }
func (s *Spreader) Channels() int   { return s.channels }
func (s *Spreader) BufSize() int    { return s.src.BufSize() }

func (s *Spreader) Close() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("closing spreader source: %w", err)
	}
	return nil
}

func (s *Spreader) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / s.channels
	if cap(s.tmp) < frames {
		s.tmp = make([]float32, frames)
	}
	s.tmp = s.tmp[:frames]

	n, err := s.src.ReadSamples(s.tmp)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.tmp[f]
		}
	}

	return n * s.channels, err
}

// Remix adapts src to the given channel count. Matching layouts pass
// through; anything else is folded to mono first and spread back out.
func Remix(src Source, channels int) Source {
	if src.Channels() == channels {
		return src
	}

	var mono Source = src
	if src.Channels() != 1 {
		mono = NewMonoMixer(src)
	}
	if channels == 1 {
		return mono
	}
	return NewSpreader(mono, channels)
}

// Convert adapts src to a device format. Channel reduction happens before
// resampling so the interpolator processes fewer channels.
func Convert(src Source, sampleRate, channels int) Source {
	if channels < src.Channels() {
		src = Remix(src, channels)
	}
	if src.SampleRate() != sampleRate {
		src = NewResampler(src, sampleRate)
	}
	return Remix(src, channels)
}
