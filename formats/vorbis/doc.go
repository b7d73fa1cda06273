// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams via github.com/jfreymuth/oggvorbis.
//
// Channel layout and sample rate are reported as found in the stream
// headers; samples are already float32 so no scaling takes place.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//
// Ogg Opus is not handled here: browsers that record "audio/ogg;
// codecs=opus" need a different decoder.
package vorbis
