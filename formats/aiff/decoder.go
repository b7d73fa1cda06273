// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audseg/audio"
)

// MimeTypes lists the mime types served by Decoder.
var MimeTypes = []string{"audio/aiff", "audio/x-aiff"}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("aiff input: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	src, err := audio.NewIntSource(dec, format, int(dec.BitDepth), false)
	if err != nil {
		return nil, fmt.Errorf("aiff source: %w", err)
	}
	return src, nil
}
