//go:build !portaudio

// ABOUTME: Stub PortAudio implementation for builds without CGO
// ABOUTME: Returns errors when PortAudio is not available
package output

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// PortAudio stub when built without portaudio tag
type PortAudio struct{}

// NewPortAudio creates a stub that returns errors
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open returns an error indicating PortAudio is not available
func (p *PortAudio) Open(f audio.Format) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Write returns an error indicating PortAudio is not available
func (p *PortAudio) Write(l *abl.List) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Close is a no-op for the stub
func (p *PortAudio) Close() error {
	return nil
}
