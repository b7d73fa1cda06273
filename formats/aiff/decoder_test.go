// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audseg/audio"
)

// fixture encodes ints as a 16-bit AIFF file with go-audio's encoder.
func fixture(t *testing.T, rate, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, rate, 16, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return out
}

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	in := []int{-32768, 32767, 0, 16384, -16384, 100}
	data := fixture(t, 44100, 2, in)

	if got := audio.Sniff(data); got != "aiff" {
		t.Errorf("Sniff() = %q, want aiff", got)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("format = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	buf, err := audio.Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if buf.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", buf.Frames())
	}
	for i, v := range in {
		if got, want := buf.Channel(i%2)[i/2], float32(v)/32768; got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF\x00\x00\x00\x00WAVEfmt ")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("error = %v, want ErrNotAiffFile", err)
	}
}
