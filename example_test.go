// SPDX-License-Identifier: EPL-2.0

package audseg_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ik5/audseg"
	"github.com/ik5/audseg/formats/wav"
)

// Example_exportSegment cuts the middle second out of a two second clip.
func Example_exportSegment() {
	clip := new(bytes.Buffer)
	_ = wav.WriteWAV16(clip, 8000, 1, make([]int16, 16000))

	out, err := audseg.ExportSegment(context.Background(), clip.Bytes(), "audio/wav", 0.5, 1.5)
	if err != nil {
		fmt.Println("export failed:", err)
		return
	}

	fmt.Printf("%d bytes, data chunk %d bytes\n", len(out), binary.LittleEndian.Uint32(out[40:44]))
	// Output: 16044 bytes, data chunk 16000 bytes
}

// Example_decode shows the container being sniffed when no mime type is
// given.
func Example_decode() {
	clip := new(bytes.Buffer)
	_ = wav.WriteWAV16(clip, 44100, 2, make([]int16, 2*44100))

	buf, err := audseg.Decode(context.Background(), clip.Bytes(), "")
	if err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %.1fs\n", buf.SampleRate(), buf.Channels(), buf.Duration())
	// Output: 44100 Hz, 2 channels, 1.0s
}

// Example_emptyWindow shows that a window past the end of the clip is not an
// error.
func Example_emptyWindow() {
	clip := new(bytes.Buffer)
	_ = wav.WriteWAV16(clip, 8000, 1, make([]int16, 800))

	out, err := audseg.ExportSegment(context.Background(), clip.Bytes(), "audio/wav", 5, 6)
	fmt.Println(len(out), err)
	// Output: 0 <nil>
}
