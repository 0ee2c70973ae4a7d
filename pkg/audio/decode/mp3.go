// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes complete MP3 streams into 16-bit stereo buffer lists
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MP3 audio. Each Decode call takes a complete
// stream; the library always emits 16-bit stereo at the stream's rate.
type MP3Decoder struct {
	out audio.Format
}

// NewMP3 creates a new MP3 decoder
func NewMP3(format audio.Format) (Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}

	return &MP3Decoder{out: audio.PCM16(format.SampleRate, 2, true)}, nil
}

// Decode converts a complete MP3 stream into a buffer list
func (d *MP3Decoder) Decode(data []byte) (*abl.List, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	d.out.SampleRate = dec.SampleRate()

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

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

// Output reports the stream layout; the sample rate reflects the most
// recently decoded stream.
func (d *MP3Decoder) Output() audio.Format {
	return d.out
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
