// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/utils"
)

// MimeType is the mime type of every stream this package produces.
const MimeType = "audio/wav"

// FrameRange converts a [start, end) window in seconds to frame indices of
// buf: both bounds are floored and clamped to [0, buf.Frames()]. A NaN bound
// selects nothing. count <= 0 means the window selects nothing.
func FrameRange(buf *audio.Buffer, start, end float64) (startFrame, endFrame, count int) {
	if math.IsNaN(start) || math.IsNaN(end) {
		return 0, 0, 0
	}
	rate := float64(buf.SampleRate())
	frames := float64(buf.Frames())
	startFrame = int(math.Floor(min(max(start*rate, 0), frames)))
	endFrame = int(math.Floor(min(max(end*rate, 0), frames)))
	return startFrame, endFrame, endFrame - startFrame
}

// EncodeSegment serializes the [start, end) window of buf as a canonical
// 16-bit PCM WAV stream.
//
// The output depends only on buf and the window, so repeated calls return
// identical bytes. A window that selects no frames yields (nil, nil); callers
// must check for an empty result. A malformed buffer yields *EncodeError and
// no bytes.
func EncodeSegment(buf *audio.Buffer, start, end float64) ([]byte, error) {
	if buf == nil || buf.Channels() < 1 {
		return nil, &EncodeError{Err: ErrInvalidChannels}
	}
	if buf.SampleRate() <= 0 {
		return nil, &EncodeError{Err: ErrInvalidSampleRate}
	}
	if err := buf.Validate(); err != nil {
		return nil, &EncodeError{Err: err}
	}

	startFrame, endFrame, count := FrameRange(buf, start, end)
	if count <= 0 {
		return nil, nil
	}

	channels := buf.Channels()
	dataSize := count * channels * 2
	if uint64(dataSize)+36 > math.MaxUint32 {
		return nil, &EncodeError{Err: fmt.Errorf("segment of %d bytes exceeds the RIFF size limit", dataSize)}
	}

	out := make([]byte, HeaderSize+dataSize)
	putHeader(out, buf.SampleRate(), channels, uint32(dataSize))

	planes := make([][]float32, channels)
	for c := range planes {
		planes[c] = buf.Channel(c)[startFrame:endFrame]
	}

	off := HeaderSize
	for f := range count {
		for c := range channels {
			binary.LittleEndian.PutUint16(out[off:], uint16(utils.Float32ToInt16(planes[c][f])))
			off += 2
		}
	}

	return out, nil
}
