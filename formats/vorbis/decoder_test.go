// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeOgg hands out interleaved floats the way oggvorbis.Reader does.
type fakeOgg struct {
	channels int
	data     []float32
	err      error
	asked    []int
}

func (f *fakeOgg) SampleRate() int { return 48000 }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	f.asked = append(f.asked, len(p))
	if len(f.data) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_FrameAlignedReads(t *testing.T) {
	t.Parallel()

	dec := &fakeOgg{channels: 2, data: []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}}
	s := &source{dec: dec, sampleRate: 48000, channels: 2}

	dst := make([]float32, 5)
	n, err := s.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 || dec.asked[0] != 4 {
		t.Errorf("read %d of %d requested, want 4 of 4", n, dec.asked[0])
	}

	n, err = s.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Errorf("second read = (%d, %v), want (2, nil)", n, err)
	}
	if dst[0] != 0.3 || dst[1] != -0.3 {
		t.Errorf("last frame = %v", dst[:2])
	}

	if n, err := s.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("at end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_TooSmallDst(t *testing.T) {
	t.Parallel()

	dec := &fakeOgg{channels: 2, data: []float32{1, 1}}
	s := &source{dec: dec, sampleRate: 48000, channels: 2}

	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = (%d, %v), want (0, nil)", n, err)
	}
	if len(dec.asked) != 0 {
		t.Error("decoder called for a dst smaller than a frame")
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	s := &source{dec: &fakeOgg{channels: 1, err: boom}, sampleRate: 48000, channels: 1}

	if _, err := s.ReadSamples(make([]float32, 8)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	for _, ch := range []int{1, 2, 3, 6} {
		s := &source{channels: ch}
		if s.BufSize()%ch != 0 {
			t.Errorf("BufSize() = %d, not a multiple of %d", s.BufSize(), ch)
		}
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really")))
	if err == nil {
		t.Fatal("Decode() accepted a broken stream")
	}
	if !strings.HasPrefix(err.Error(), "ogg vorbis header: ") {
		t.Errorf("Decode() error = %q, want %q prefix", err, "ogg vorbis header: ")
	}
}
