// ABOUTME: Test tone generator rendering sine waves into buffer lists
// ABOUTME: Default source when no audio file is given
package engine

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Tone amplitude relative to full scale
const toneAmplitude = 0.5

// Tone generates a sine wave at a fixed frequency.
type Tone struct {
	format    audio.Format
	frequency float64

	mu    sync.Mutex
	index uint64 // frames rendered since start
}

// NewTone creates a sine generator rendering in the given format.
func NewTone(f audio.Format, frequency float64) (*Tone, error) {
	if !f.Interleaved {
		return nil, fmt.Errorf("expected interleaved format")
	}
	if f.BitDepth != 16 && f.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", f.BitDepth)
	}
	if frequency <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %v", frequency)
	}
	return &Tone{format: f, frequency: frequency}, nil
}

// Render fills l with the next frames of the wave. A tone never runs
// dry; the count returned is only limited by the list's capacity.
func (t *Tone) Render(l *abl.List, frames int) (int, error) {
	if len(l.Buffers) != 1 {
		return 0, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := &l.Buffers[0]
	if max := b.ByteSize / t.format.BytesPerFrame; frames > max {
		frames = max
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	width := t.format.BytesPerSample()
	for i := 0; i < frames; i++ {
		at := float64(t.index+uint64(i)) / float64(t.format.SampleRate)
		sample := math.Sin(2*math.Pi*t.frequency*at) * toneAmplitude

		off := i * t.format.BytesPerFrame
		for ch := 0; ch < t.format.Channels; ch++ {
			pos := off + ch*width
			if t.format.BitDepth == 24 {
				v := audio.SampleTo24Bit(int32(sample * float64(audio.Max24Bit)))
				b.Data[pos], b.Data[pos+1], b.Data[pos+2] = v[0], v[1], v[2]
			} else {
				v := int16(sample * 32767.0)
				binary.LittleEndian.PutUint16(b.Data[pos:], uint16(v))
			}
		}
	}
	t.index += uint64(frames)

	return frames, nil
}

// Format reports the layout Render produces.
func (t *Tone) Format() audio.Format {
	return t.format
}

// Metadata returns title, artist, album
func (t *Tone) Metadata() (string, string, string) {
	return "Test Tone", "Cadence", "Reference Tones"
}

// Close is a no-op for a generated source
func (t *Tone) Close() error {
	return nil
}
