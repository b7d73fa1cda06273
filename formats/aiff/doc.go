// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// Container parsing is done by github.com/go-audio/aiff. Signed integer PCM
// at 8, 16, 24 or 32 bits is supported, mono or multi-channel, at any sample
// rate. Samples are returned as float32 in [-1.0, 1.0):
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not FORM/AIFF
//	}
//
// The go-audio parser needs random access; non-seekable readers are
// buffered in memory first.
package aiff
