// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidChannels     = errors.New("channel count must be at least 1")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
)

// EncodeError reports a buffer that cannot be serialized. It points at a
// broken invariant upstream, not a transient condition.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("wav encode: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }
