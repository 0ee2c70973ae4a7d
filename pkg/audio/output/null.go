// ABOUTME: Null audio output for headless runs and tests
// ABOUTME: Discards audio while counting the frames written
package output

import (
	"fmt"
	"sync"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Null discards everything written to it
type Null struct {
	mu     sync.Mutex
	format audio.Format
	frames int64
	ready  bool
}

// NewNull creates a new null output
func NewNull() Output {
	return &Null{}
}

// Open records the format and marks the output ready
func (n *Null) Open(f audio.Format) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.format = f
	n.ready = true
	return nil
}

// Write counts the list's frames and drops the audio
func (n *Null) Write(l *abl.List) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.ready {
		return fmt.Errorf("output not initialized")
	}
	if len(l.Buffers) == 0 {
		return nil
	}
	frames, _ := abl.NumFrames(l, n.format)
	n.frames += int64(frames)
	return nil
}

// Close marks the output closed
func (n *Null) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ready = false
	return nil
}

// Frames reports the total frames written since Open.
func (n *Null) Frames() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.frames
}
