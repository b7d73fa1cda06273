// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC streams via github.com/mewkiz/flac.
//
// Frames are decoded one at a time and handed out interleaved, scaled by
// the stream's bit depth into [-1.0, 1.0).
//
//	src, err := flac.Decoder{}.Decode(file)
package flac
