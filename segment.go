// SPDX-License-Identifier: EPL-2.0

package audseg

import (
	"context"

	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/formats/aiff"
	"github.com/ik5/audseg/formats/flac"
	"github.com/ik5/audseg/formats/mp3"
	"github.com/ik5/audseg/formats/vorbis"
	"github.com/ik5/audseg/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder and its mime
// types.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, wav.MimeTypes...)
	r.Register("aiff", aiff.Decoder{}, aiff.MimeTypes...)
	r.Register("mp3", mp3.Decoder{}, mp3.MimeTypes...)
	r.Register("vorbis", vorbis.Decoder{}, vorbis.MimeTypes...)
	r.Register("flac", flac.Decoder{}, flac.MimeTypes...)
	return r
}

var defaultRegistry = NewRegistry()

// Decode turns a whole clip into a Buffer. mimeType may be empty, in which
// case the container is sniffed. Failures are *audio.DecodeError.
func Decode(ctx context.Context, data []byte, mimeType string) (*audio.Buffer, error) {
	return defaultRegistry.DecodeBuffer(ctx, data, mimeType)
}

// Format names the bundled format data decodes as, resolving mimeType first
// and sniffing otherwise. It returns "" when no decoder claims data.
func Format(data []byte, mimeType string) string {
	format, _, err := defaultRegistry.Resolve(mimeType, data)
	if err != nil {
		return ""
	}
	return format
}

// ExportSegment decodes data and encodes the [start, end) window, in
// seconds, as 16-bit PCM WAV. A window that selects no frames yields
// (nil, nil).
func ExportSegment(ctx context.Context, data []byte, mimeType string, start, end float64) ([]byte, error) {
	buf, err := Decode(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	return wav.EncodeSegment(buf, start, end)
}
