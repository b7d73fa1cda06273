// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
)

// Seekable returns r as an io.ReadSeeker, buffering it in memory when r
// cannot seek. The go-audio container parsers need random access.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
