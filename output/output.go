// SPDX-License-Identifier: EPL-2.0

package output

import (
	"sync"

	"github.com/ik5/audseg/audio"
)

// Device is an opened audio output. It is acquired once per editor session
// and released with Close.
type Device interface {
	// Play starts rendering src and returns at once. The device owns src
	// until the returned Voice is stopped.
	Play(src audio.Source) (Voice, error)

	// Close releases the device. Voices still playing are stopped.
	Close() error
}

// Voice is one source being rendered by a Device.
type Voice interface {
	// Stop silences the voice and closes its source. It is safe to call
	// more than once.
	Stop() error
}

// Null is a Device that accepts every source and renders nothing. It backs
// headless sessions and the --no-audio flag.
type Null struct {
	mu     sync.Mutex
	played int
}

// NewNull returns a ready Null device.
func NewNull() *Null { return &Null{} }

func (n *Null) Play(src audio.Source) (Voice, error) {
	n.mu.Lock()
	n.played++
	n.mu.Unlock()

	return &nullVoice{src: src}, nil
}

// Played reports how many voices were started.
func (n *Null) Played() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.played
}

func (n *Null) Close() error { return nil }

type nullVoice struct {
	once sync.Once
	src  audio.Source
}

func (v *nullVoice) Stop() error {
	var err error
	v.once.Do(func() { err = v.src.Close() })
	return err
}
