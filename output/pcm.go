// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"io"

	"github.com/ik5/audseg/audio"
	"github.com/ik5/audseg/utils"
)

// pcmReader renders a float Source as signed 16-bit little-endian bytes,
// the sample format the device is opened with.
type pcmReader struct {
	src     audio.Source
	floats  []float32
	bytes   []byte
	pending []byte
	err     error
}

func newPCMReader(src audio.Source) *pcmReader {
	size := 2048 - 2048%src.Channels()
	return &pcmReader{
		src:    src,
		floats: make([]float32, size),
		bytes:  make([]byte, size*2),
	}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	empty := 0
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}

		n, err := r.src.ReadSamples(r.floats)
		r.err = err
		for i, v := range r.floats[:n] {
			binary.LittleEndian.PutUint16(r.bytes[i*2:], uint16(utils.Float32ToInt16(v)))
		}
		r.pending = r.bytes[:n*2]

		if n == 0 && err == nil {
			empty++
			if empty > 100 {
				return 0, io.ErrNoProgress
			}
		}
	}

	c := copy(p, r.pending)
	r.pending = r.pending[c:]
	return c, nil
}
