// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedFormat means no registered decoder accepts the payload.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrEmptyStream means the payload decoded to zero frames.
	ErrEmptyStream = errors.New("audio stream has no frames")

	// ErrInvalidFormat means a source reported a non-positive sample rate
	// or channel count.
	ErrInvalidFormat = errors.New("invalid sample rate or channel count")
)

// DecodeError reports a payload that could not be turned into a Buffer.
// Retrying the same bytes will fail the same way.
type DecodeError struct {
	Format   string
	MimeType string
	Err      error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Format != "":
		return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
	case e.MimeType != "":
		return fmt.Sprintf("decode %q: %v", e.MimeType, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }
