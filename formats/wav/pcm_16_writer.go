// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the length of the canonical RIFF/WAVE header.
const HeaderSize = 44

// putHeader writes a canonical 16-bit PCM header describing dataSize bytes
// of sample data into dst[:HeaderSize].
func putHeader(dst []byte, sampleRate, channels int, dataSize uint32) {
	const bitsPerSample = 16
	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	// RIFF header (12 bytes)
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+dataSize)
	copy(dst[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(dst[20:22], formatPCM)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], byteRate)
	binary.LittleEndian.PutUint16(dst[32:34], blockAlign)
	binary.LittleEndian.PutUint16(dst[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], dataSize)
}

// WriteWAV16 writes interleaved 16-bit PCM samples as a WAV stream.
// len(samples) must be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return &EncodeError{Err: ErrInvalidChannels}
	}
	if sampleRate <= 0 {
		return &EncodeError{Err: ErrInvalidSampleRate}
	}
	if len(samples)%channels != 0 {
		return &EncodeError{Err: fmt.Errorf("%d samples do not fill %d-channel frames", len(samples), channels)}
	}

	header := make([]byte, HeaderSize)
	putHeader(header, sampleRate, channels, uint32(len(samples)*2))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)
	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}
