// ABOUTME: PCM audio decoder
// ABOUTME: Wraps raw 16-bit and 24-bit PCM chunks into buffer lists
package decode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// PCMDecoder wraps raw PCM chunks
type PCMDecoder struct {
	out audio.Format
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	out := format
	out.Interleaved = true
	out.BytesPerFrame = format.Channels * format.BitDepth / 8
	return &PCMDecoder{out: out}, nil
}

// Decode copies whole frames of raw PCM into a fresh buffer list. A
// trailing partial frame is dropped.
func (d *PCMDecoder) Decode(data []byte) (*abl.List, error) {
	frames := len(data) / d.out.BytesPerFrame
	l, err := abl.Alloc(d.out, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	if frames > 0 {
		copy(l.Buffers[0].Data, data[:frames*d.out.BytesPerFrame])
	}
	return l, nil
}

// Output reports the layout of decoded lists
func (d *PCMDecoder) Output() audio.Format {
	return d.out
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
