// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audseg/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs ahead of the interpolator when downsampling.
//
// It only feeds playback devices whose rate differs from the clip;
// exports always use the decoded rate.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float32
	have   [4]bool // slot holds a source frame, not a held copy
	primed bool
	single bool // the source had exactly one frame

	pos    float64 // fractional position between window[1] and window[2]
	srcBuf []float32
	eof    bool

	lowPass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		srcBuf:   make([]float32, channels),
		lowPass:  ratio > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one frame from src into dst, running the low-pass filter.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	got := n == r.channels
	if got {
		if r.lowPass {
			for c := range r.channels {
				r.state[c] = r.alpha*r.srcBuf[c] + (1-r.alpha)*r.state[c]
				dst[c] = r.state[c]
			}
		} else {
			copy(dst, r.srcBuf)
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("resampler read: %w", err)
	}
	return got, nil
}

// prime fills the interpolation window. The first frame doubles as t-1
// and seeds the filter state so the output does not ramp up from silence.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.srcBuf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("resampler read: %w", err)
	}
	r.eof = err == io.EOF
	if n != r.channels {
		return io.EOF
	}
	copy(r.state, r.srcBuf)
	copy(r.window[0], r.srcBuf)
	copy(r.window[1], r.srcBuf)
	r.have[0], r.have[1] = true, true

	for i := 2; i < len(r.window); i++ {
		if r.eof {
			break
		}
		got, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		r.have[i] = got
	}

	// A clip shorter than the window holds its last frame. Held slots only
	// feed the interpolator; output stops at the last source frame, except
	// that a one-frame clip plays for one source frame period.
	for i := 2; i < len(r.window); i++ {
		if !r.have[i] {
			copy(r.window[i], r.window[i-1])
		}
	}
	r.single = !r.have[2]

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	if r.eof && !r.have[3] {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.have[0], r.have[1], r.have[2] = r.have[1], r.have[2], r.have[3]

	if r.eof {
		r.have[3] = false
		return nil
	}

	got, err := r.readFrame(r.window[3])
	if err != nil {
		return err
	}
	r.have[3] = got
	return nil
}

// ReadSamples produces dst samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	want := len(dst) / r.channels

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.have[1] || (!r.have[2] && !r.single) {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			y0 := r.window[1][c]
			if r.have[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.have[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
