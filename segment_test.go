// SPDX-License-Identifier: EPL-2.0

package audseg

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/formats/wav"
)

func TestNewRegistry_Formats(t *testing.T) {
	t.Parallel()

	got := NewRegistry().Formats()
	want := []string{"aiff", "flac", "mp3", "vorbis", "wav"}

	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRegistry_MimeAliases(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	tests := map[string]string{
		"audio/wav":                "wav",
		"audio/x-wav":              "wav",
		"audio/vnd.wave":           "wav",
		"audio/mpeg":               "mp3",
		"audio/mp3":                "mp3",
		"audio/ogg; codecs=vorbis": "vorbis",
		"application/ogg":          "vorbis",
		"audio/aiff":               "aiff",
		"audio/x-aiff":             "aiff",
		"audio/flac":               "flac",
		"AUDIO/X-FLAC":             "flac",
	}

	for mime, want := range tests {
		format, _, err := r.Resolve(mime, nil)
		if err != nil || format != want {
			t.Errorf("Resolve(%q) = (%q, %v), want %q", mime, format, err, want)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	var clip bytes.Buffer
	if err := wav.WriteWAV16(&clip, 8000, 1, []int16{1, 2, 3}); err != nil {
		t.Fatalf("WriteWAV16: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		mime string
		want string
	}{
		{"sniffed", clip.Bytes(), "", "wav"},
		{"mime without magic", []byte{0, 1, 2, 3}, "audio/flac", "flac"},
		{"mime wins", clip.Bytes(), "audio/mpeg", "mp3"},
		{"unclaimed", []byte("hello, world"), "text/plain", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Format(tt.data, tt.mime); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_Garbage(t *testing.T) {
	t.Parallel()

	_, err := Decode(context.Background(), []byte("hello, world"), "application/octet-stream")

	var de *audio.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *audio.DecodeError", err)
	}
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_TruncatedWav(t *testing.T) {
	t.Parallel()

	_, err := Decode(context.Background(), []byte("RIFF\x24\x00\x00\x00WAVE"), "audio/wav")

	var de *audio.DecodeError
	if !errors.As(err, &de) || de.Format != "wav" {
		t.Fatalf("err = %v, want wav *audio.DecodeError", err)
	}
}
