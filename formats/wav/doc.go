// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files and encodes trimmed segments as WAV.
//
// # Decoding
//
// Decoder accepts integer PCM WAV at 8, 16, 24 or 32 bits, mono or
// multi-channel, at any sample rate. Chunk parsing is done by
// github.com/go-audio/wav, so files with LIST or fact chunks before the data
// chunk decode fine. Samples come out as float32 in [-1.0, 1.0):
//
//	src, err := wav.Decoder{}.Decode(file)
//
// # Encoding a segment
//
// EncodeSegment turns a window of a decoded audio.Buffer into a canonical
// 44-byte-header, 16-bit PCM stream:
//
//	data, err := wav.EncodeSegment(buf, 1.5, 2.0)
//	if err == nil && len(data) == 0 {
//	    // the window selected no frames
//	}
//
// Each sample is clamped to [-1, 1], scaled by 32768 when negative and 32767
// otherwise, and truncated. Output is byte-identical for identical input.
//
// # Writing raw PCM
//
// WriteWAV16 wraps already-converted interleaved int16 samples:
//
//	wav.WriteWAV16(file, 16000, 1, samples)
//
// # Errors
//
//   - ErrNotWavFile: the input is not RIFF/WAVE
//   - ErrUnsupportedEncoding: float or compressed WAV
//   - ErrUnsupportedBitDepth: anything but 8/16/24/32 bit
//   - *EncodeError: a buffer with no channels, no sample rate or ragged
//     channels was passed to the encoder
package wav
