// ABOUTME: PCM audio encoder
// ABOUTME: Serializes buffer lists to raw 16-bit or 24-bit PCM bytes
package encode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// PCMEncoder serializes PCM buffer lists
type PCMEncoder struct {
	in audio.Format
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (Encoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	in := format
	in.Interleaved = true
	in.BytesPerFrame = format.Channels * format.BitDepth / 8
	return &PCMEncoder{in: in}, nil
}

// Encode copies the list's recorded byte range to wire bytes
func (e *PCMEncoder) Encode(l *abl.List) ([]byte, error) {
	if len(l.Buffers) != 1 {
		return nil, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := l.Buffers[0]
	if b.ByteSize <= 0 {
		return nil, nil
	}
	output := make([]byte, b.ByteSize)
	copy(output, b.Data[:b.ByteSize])
	return output, nil
}

// Input reports the list layout Encode expects
func (e *PCMEncoder) Input() audio.Format {
	return e.in
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
