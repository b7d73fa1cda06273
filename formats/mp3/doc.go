// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio via github.com/hajimehoshi/go-mp3.
//
// go-mp3 always yields 16-bit stereo, so every Source from this package
// reports two channels, even for mono files (both channels then carry the
// same signal). The sample rate is taken from the stream.
//
//	src, err := mp3.Decoder{}.Decode(file)
package mp3
