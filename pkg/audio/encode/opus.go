// ABOUTME: Opus audio encoder
// ABOUTME: Encodes 16-bit buffer lists into Opus packets
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"gopkg.in/hraban/opus.v2"
)

// maxPacketSize bounds one encoded Opus packet.
const maxPacketSize = 4000

// OpusEncoder encodes Opus audio
type OpusEncoder struct {
	encoder   *opus.Encoder
	in        audio.Format
	frameSize int
}

// NewOpus creates a new Opus encoder. Input lists must carry whole
// 20 ms frames at the format's sample rate.
func NewOpus(format audio.Format) (Encoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus encoder: %s", format.Codec)
	}

	encoder, err := opus.NewEncoder(format.SampleRate, format.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	return &OpusEncoder{
		encoder:   encoder,
		in:        audio.PCM16(format.SampleRate, format.Channels, true),
		frameSize: format.SampleRate / 50, // 20ms frame
	}, nil
}

// Encode converts one buffer list to an Opus packet
func (e *OpusEncoder) Encode(l *abl.List) ([]byte, error) {
	if len(l.Buffers) != 1 {
		return nil, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := l.Buffers[0]
	n := b.ByteSize / 2
	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		pcm[i] = int16(binary.LittleEndian.Uint16(b.Data[i*2:]))
	}

	data := make([]byte, maxPacketSize)
	written, err := e.encoder.Encode(pcm, data)
	if err != nil {
		return nil, fmt.Errorf("opus encode error: %w", err)
	}
	return data[:written], nil
}

// Input reports the list layout Encode expects
func (e *OpusEncoder) Input() audio.Format {
	return e.in
}

// FrameSize reports the frames per packet the encoder works in.
func (e *OpusEncoder) FrameSize() int {
	return e.frameSize
}

// SetBitrate adjusts the target bitrate in bits per second.
func (e *OpusEncoder) SetBitrate(bps int) error {
	if err := e.encoder.SetBitrate(bps); err != nil {
		return fmt.Errorf("failed to set bitrate: %w", err)
	}
	return nil
}

// Close releases resources
func (e *OpusEncoder) Close() error {
	return nil
}
