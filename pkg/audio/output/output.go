// ABOUTME: Audio output interface and backend registry
// ABOUTME: Common interface for audio playback backends
package output

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output device for the given format
	Open(f audio.Format) error

	// Write queues one interleaved buffer list for playback. The list
	// may be freed as soon as Write returns.
	Write(l *abl.List) error

	// Close releases output resources
	Close() error
}

// VolumeController is implemented by outputs with software volume
type VolumeController interface {
	SetVolume(volume int)
	GetVolume() int
	SetMuted(muted bool)
	IsMuted() bool
}

// New creates the named output backend.
func New(name string) (Output, error) {
	switch name {
	case "oto":
		return NewOto(), nil
	case "malgo":
		return NewMalgo(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown output backend: %s (available: oto, malgo, portaudio, null)", name)
	}
}
