// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audseg/internal/audiotest"
)

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewSilentSource(44100, 2, 10))
	if m.SampleRate() != 44100 || m.Channels() != 1 || m.BufSize() != 4096 {
		t.Errorf("got %d Hz, %d ch, buf %d", m.SampleRate(), m.Channels(), m.BufSize())
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
	}{
		{name: "mono passthrough", channels: 1},
		{name: "stereo", channels: 2},
		{name: "surround", channels: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Ramp adds channel/10, so the average lifts every frame by
			// (channels-1)/20.
			src := audiotest.NewMockSource(8000, tt.channels, 100, audiotest.Ramp(1000))
			got := drain(t, NewMonoMixer(src), 32)
			if len(got) != 100 {
				t.Fatalf("read %d samples, want 100", len(got))
			}

			lift := float64(tt.channels-1) / 20
			for f, v := range got {
				want := float64(f)/1000 + lift
				if math.Abs(float64(v)-want) > 1e-5 {
					t.Fatalf("frame %d = %v, want %v", f, v, want)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_ClosesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed {
		t.Error("source not closed")
	}
}

func TestSpreader(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 10, audiotest.Ramp(10))
	s := NewSpreader(src, 3)

	if s.Channels() != 3 || s.SampleRate() != 8000 {
		t.Errorf("got %d Hz, %d ch", s.SampleRate(), s.Channels())
	}
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(4) error = %v, want ErrInvalidDstSize", err)
	}

	got := drain(t, s, 9)
	if len(got) != 30 {
		t.Fatalf("read %d samples, want 30", len(got))
	}
	for f := range 10 {
		want := float32(f) / 10
		for c := range 3 {
			if got[f*3+c] != want {
				t.Errorf("frame %d channel %d = %v, want %v", f, c, got[f*3+c], want)
			}
		}
	}
}

func TestRemix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		wantType string
	}{
		{name: "same layout", from: 2, to: 2, wantType: "source"},
		{name: "down to mono", from: 2, to: 1, wantType: "mixer"},
		{name: "mono up", from: 1, to: 2, wantType: "spreader"},
		{name: "surround to stereo", from: 6, to: 2, wantType: "spreader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(8000, tt.from, 50, 0.25)
			out := Remix(src, tt.to)

			var got string
			switch out.(type) {
			case *audiotest.MockSource:
				got = "source"
			case *MonoMixer:
				got = "mixer"
			case *Spreader:
				got = "spreader"
			}
			if got != tt.wantType {
				t.Errorf("Remix(%d -> %d) built a %s, want %s", tt.from, tt.to, got, tt.wantType)
			}
			if out.Channels() != tt.to {
				t.Errorf("Channels() = %d, want %d", out.Channels(), tt.to)
			}

			samples := drain(t, out, 4*tt.to)
			if len(samples) != 50*tt.to {
				t.Fatalf("read %d samples, want %d", len(samples), 50*tt.to)
			}
			for i, v := range samples {
				if v != 0.25 {
					t.Fatalf("sample %d = %v, want 0.25", i, v)
				}
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rate, ch     int
		toRate, toCh int
	}{
		{name: "passthrough", rate: 48000, ch: 2, toRate: 48000, toCh: 2},
		{name: "resample only", rate: 44100, ch: 2, toRate: 48000, toCh: 2},
		{name: "mono clip on stereo device", rate: 22050, ch: 1, toRate: 48000, toCh: 2},
		{name: "surround on stereo device", rate: 48000, ch: 6, toRate: 44100, toCh: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			frames := tt.rate / 10
			out := Convert(audiotest.NewConstantSource(tt.rate, tt.ch, frames, 0.5), tt.toRate, tt.toCh)
			if out.SampleRate() != tt.toRate || out.Channels() != tt.toCh {
				t.Fatalf("Convert() = %d Hz, %d ch; want %d, %d", out.SampleRate(), out.Channels(), tt.toRate, tt.toCh)
			}

			samples := drain(t, out, 256*tt.toCh)
			gotFrames := len(samples) / tt.toCh
			wantFrames := tt.toRate / 10
			if gotFrames < wantFrames-3 || gotFrames > wantFrames+3 {
				t.Errorf("got %d frames, want about %d", gotFrames, wantFrames)
			}
			for i, v := range samples {
				if math.Abs(float64(v)-0.5) > 1e-3 {
					t.Fatalf("sample %d = %v, want 0.5", i, v)
				}
			}
		})
	}
}

func TestConvert_EOFOnEmptySource(t *testing.T) {
	t.Parallel()

	out := Convert(audiotest.NewSilentSource(44100, 2, 0), 48000, 2)
	if n, err := out.ReadSamples(make([]float32, 64)); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, EOF)", n, err)
	}
}
