// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples, nominally in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "vorbis") and mime types
// to decoders.
type Registry struct {
	codecs map[string]Decoder
	mimes  map[string]string

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mimes:  make(map[string]string),
		mtx:    &sync.RWMutex{},
	}
}

// Register adds d under format and binds every given mime type to it.
// Registering the same format twice replaces the decoder.
func (r *Registry) Register(format string, d Decoder, mimeTypes ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, m := range mimeTypes {
		r.mimes[NormalizeMimeType(m)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Resolve picks the decoder for a payload. A known mime type wins; otherwise
// the leading bytes of data are sniffed.
func (r *Registry) Resolve(mimeType string, data []byte) (string, Decoder, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if format, ok := r.mimes[NormalizeMimeType(mimeType)]; ok {
		if d, ok := r.codecs[format]; ok {
			return format, d, nil
		}
	}

	if format := Sniff(data); format != "" {
		if d, ok := r.codecs[format]; ok {
			return format, d, nil
		}
	}

	return "", nil, ErrUnsupportedFormat
}

// DecodeBuffer decodes a whole in-memory payload into a Buffer.
// Failures other than context cancellation are reported as *DecodeError.
func (r *Registry) DecodeBuffer(ctx context.Context, data []byte, mimeType string) (*Buffer, error) {
	format, dec, err := r.Resolve(mimeType, data)
	if err != nil {
		return nil, &DecodeError{MimeType: mimeType, Err: err}
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: format, MimeType: mimeType, Err: err}
	}
	defer src.Close()

	buf, err := Collect(ctx, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("decoding %s: %w", format, ctxErr)
		}
		return nil, &DecodeError{Format: format, MimeType: mimeType, Err: err}
	}

	return buf, nil
}
