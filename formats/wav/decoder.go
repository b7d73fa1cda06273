// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audseg/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// MimeTypes lists the mime types served by Decoder.
var MimeTypes = []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave"}

// Decoder reads integer PCM WAV (8, 16, 24 or 32 bit) with any chunk
// layout, using go-audio's RIFF parser.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("wav input: %w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	src, err := audio.NewIntSource(dec, dec.Format(), int(dec.BitDepth), true)
	if err != nil {
		return nil, fmt.Errorf("wav source: %w", err)
	}
	return src, nil
}
