// ABOUTME: G.711 audio encoder
// ABOUTME: Compresses 16-bit buffer lists into mu-law or A-law bytes
package encode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/zaf/g711"
)

// G711Encoder compresses 16-bit audio to mu-law or A-law. Every
// decoded sample becomes one output byte.
type G711Encoder struct {
	compress func([]byte) []byte
	in       audio.Format
}

// NewG711 creates an encoder for the "ulaw" or "alaw" codec
func NewG711(format audio.Format) (Encoder, error) {
	var compress func([]byte) []byte
	switch format.Codec {
	case "ulaw":
		compress = g711.EncodeUlaw
	case "alaw":
		compress = g711.EncodeAlaw
	default:
		return nil, fmt.Errorf("invalid codec for G.711 encoder: %s", format.Codec)
	}

	return &G711Encoder{
		compress: compress,
		in:       audio.PCM16(format.SampleRate, format.Channels, true),
	}, nil
}

// Encode compresses one buffer list
func (e *G711Encoder) Encode(l *abl.List) ([]byte, error) {
	if len(l.Buffers) != 1 {
		return nil, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := l.Buffers[0]
	if b.ByteSize <= 0 {
		return nil, nil
	}
	return e.compress(b.Data[:b.ByteSize]), nil
}

// Input reports the list layout Encode expects
func (e *G711Encoder) Input() audio.Format {
	return e.in
}

// Close releases resources
func (e *G711Encoder) Close() error {
	return nil
}
