// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrUnsupportedBitDepth indicates a STREAMINFO sample size outside 4-32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrCorruptFrame indicates a frame whose channel layout disagrees with
	// the stream header.
	ErrCorruptFrame = errors.New("corrupt FLAC frame")
)
