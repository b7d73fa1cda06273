// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"strings"
)

// NormalizeMimeType lower-cases a mime type and drops any parameters,
// so "Audio/Ogg; codecs=vorbis" becomes "audio/ogg".
func NormalizeMimeType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// Sniff guesses a format key from magic bytes. Returns "" when unknown.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav"
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(data, []byte("OggS")):
		return "vorbis"
	case bytes.HasPrefix(data, []byte("fLaC")):
		return "flac"
	case bytes.HasPrefix(data, []byte("ID3")):
		return "mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 && data[1]&0x06 != 0:
		// MPEG frame sync with a non-zero layer; layer 0 is ADTS AAC
		return "mp3"
	}
	return ""
}
