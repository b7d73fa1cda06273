// SPDX-License-Identifier: EPL-2.0

package editor

import "errors"

var (
	// ErrNoBuffer is returned by operations that need a loaded clip.
	ErrNoBuffer = errors.New("no audio loaded")
	// ErrEmptySegment is returned when the window selects no frames.
	ErrEmptySegment = errors.New("selected segment is empty")
	ErrClosed       = errors.New("session closed")
)
