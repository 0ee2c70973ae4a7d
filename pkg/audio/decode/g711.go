// ABOUTME: G.711 audio decoder
// ABOUTME: Expands mu-law and A-law chunks into 16-bit buffer lists
package decode

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/zaf/g711"
)

// G711Decoder expands mu-law or A-law telephony audio. Every input
// byte becomes one 16-bit sample.
type G711Decoder struct {
	expand func([]byte) []byte
	out    audio.Format
}

// NewG711 creates a decoder for the "ulaw" or "alaw" codec
func NewG711(format audio.Format) (Decoder, error) {
	var expand func([]byte) []byte
	switch format.Codec {
	case "ulaw":
		expand = g711.DecodeUlaw
	case "alaw":
		expand = g711.DecodeAlaw
	default:
		return nil, fmt.Errorf("invalid codec for G.711 decoder: %s", format.Codec)
	}

	return &G711Decoder{
		expand: expand,
		out:    audio.PCM16(format.SampleRate, format.Channels, true),
	}, nil
}

// Decode expands one chunk into a buffer list
func (d *G711Decoder) Decode(data []byte) (*abl.List, error) {
	pcm := d.expand(data)
	frames := len(pcm) / d.out.BytesPerFrame
	l, err := abl.Alloc(d.out, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	if frames > 0 {
		copy(l.Buffers[0].Data, pcm[:frames*d.out.BytesPerFrame])
	}
	return l, nil
}

// Output reports the layout of decoded lists
func (d *G711Decoder) Output() audio.Format {
	return d.out
}

// Close releases decoder resources
func (d *G711Decoder) Close() error {
	return nil
}
