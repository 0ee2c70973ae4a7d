// ABOUTME: Decoder interface and codec dispatch
// ABOUTME: Maps codec names to decoder constructors
package decode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Decoder decodes encoded audio chunks into buffer lists
type Decoder interface {
	// Decode converts one chunk of encoded audio into an owned,
	// interleaved buffer list released by the caller via Free
	Decode(data []byte) (*abl.List, error)

	// Output reports the layout of the lists Decode produces
	Output() audio.Format

	// Close releases decoder resources
	Close() error
}

// New creates a decoder for the format's codec.
func New(format audio.Format) (Decoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "opus":
		return NewOpus(format)
	case "mp3":
		return NewMP3(format)
	case "flac":
		return NewFLAC(format)
	case "ulaw", "alaw":
		return NewG711(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}
