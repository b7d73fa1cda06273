// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds sources and fixtures shared by the package tests.
// It does not import the audio package so audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of a sample given its frame index and channel.
type Waveform func(frame int, channel int) float32

// MockSource generates totalFrames frames of a waveform and implements
// audio.Source.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	bufSize     int
	waveform    Waveform

	// Chunk, when > 0, caps the number of frames returned per read.
	Chunk int
	// Closed records whether Close was called.
	Closed bool
}

// NewMockSource creates a source producing totalFrames frames per channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		bufSize:     4096,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, Constant(0))
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, Sine(sampleRate, frequency))
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, Constant(value))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.Chunk > 0 {
		frames = min(frames, m.Chunk)
	}

	for f := range frames {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// Constant is a flat waveform.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Sine is a sine wave at frequency Hz, identical on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Ramp encodes the frame index and channel in the sample value so tests can
// tell exactly which frame ended up where: frame/scale + channel/10.
func Ramp(scale float32) Waveform {
	return func(frame int, channel int) float32 {
		return float32(frame)/scale + float32(channel)/10
	}
}

// Planar renders a waveform into per-channel slices.
func Planar(channels, frames int, w Waveform) [][]float32 {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = w(f, c)
		}
	}
	return data
}
