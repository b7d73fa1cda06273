// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding and sample plumbing shared by the
// editor, the encoders and the playback devices.
//
// # Sources
//
// Every decoder produces a Source, a pull stream of interleaved float32
// samples nominally in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames.
// A read may return data together with io.EOF.
//
// # Decoding
//
// A Registry maps format keys ("wav", "mp3", "vorbis", "flac", "aiff") and
// mime types to decoders. DecodeBuffer picks a decoder from the declared
// mime type, falls back to sniffing the payload, and collects the whole
// stream into a Buffer:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, wav.MimeTypes...)
//	buf, err := reg.DecodeBuffer(ctx, data, "audio/wav")
//
// Failures are reported as *DecodeError; cancellation is returned as the
// context error.
//
// # Buffers
//
// A Buffer holds planar samples and is never modified once built. Slice
// streams a frame range of it as a Source, which is how playback and
// export read a trim window.
//
// # Device conversion
//
// Convert adapts a Source to a device format. MonoMixer averages channels,
// Spreader copies mono onto several channels and Resampler changes the
// rate with cubic interpolation:
//
//	out := audio.Convert(buf.Slice(from, to), 48000, 2)
package audio
