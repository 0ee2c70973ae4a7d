// ABOUTME: Encoder interface and codec dispatch
// ABOUTME: Maps codec names to encoder constructors
package encode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Encoder serializes buffer lists into encoded audio bytes
type Encoder interface {
	// Encode converts one interleaved buffer list to wire bytes. The
	// list is read, never modified or freed.
	Encode(l *abl.List) ([]byte, error)

	// Input reports the list layout Encode expects
	Input() audio.Format

	// Close releases encoder resources
	Close() error
}

// New creates an encoder for the format's codec.
func New(format audio.Format) (Encoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "opus":
		return NewOpus(format)
	case "ulaw", "alaw":
		return NewG711(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}
