// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets into 16-bit buffer lists
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"gopkg.in/hraban/opus.v2"
)

// maxOpusFrames is the largest frame count one Opus packet can carry
// (120 ms at 48 kHz).
const maxOpusFrames = 5760

// OpusDecoder decodes Opus packets
type OpusDecoder struct {
	decoder *opus.Decoder
	out     audio.Format
	pcm16   []int16
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder{
		decoder: dec,
		out:     audio.PCM16(format.SampleRate, format.Channels, true),
		pcm16:   make([]int16, maxOpusFrames*format.Channels),
	}, nil
}

// Decode converts one Opus packet into a buffer list
func (d *OpusDecoder) Decode(data []byte) (*abl.List, error) {
	n, err := d.decoder.Decode(data, d.pcm16)
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}

	l, err := abl.Alloc(d.out, n)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d frames: %w", n, err)
	}
	dst := l.Buffers[0].Data
	for i, s := range d.pcm16[:n*d.out.Channels] {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(s))
	}
	return l, nil
}

// Output reports the layout of decoded lists
func (d *OpusDecoder) Output() audio.Format {
	return d.out
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
