// ABOUTME: Bit depth conversion wrapper around a source
// ABOUTME: Rewrites 16-bit renders as 24-bit and back, sample by sample
package engine

import (
	"encoding/binary"
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Converted renders an inner source at a different bit depth.
type Converted struct {
	src    Source
	native audio.Format
	format audio.Format

	scratch       *abl.List // render list in the inner source's format
	scratchFrames int
}

// NewConverted wraps src so it renders at the given bit depth.
func NewConverted(src Source, bitDepth int) (*Converted, error) {
	native := src.Format()
	if !native.Interleaved {
		return nil, fmt.Errorf("expected interleaved format")
	}
	if native.BitDepth != 16 && native.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", native.BitDepth)
	}
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", bitDepth)
	}

	format := native
	format.BitDepth = bitDepth
	format.BytesPerFrame = format.Channels * bitDepth / 8
	return &Converted{src: src, native: native, format: format}, nil
}

// Render renders the inner source into a scratch list and converts
// every sample to the target depth.
func (c *Converted) Render(l *abl.List, frames int) (int, error) {
	if len(l.Buffers) != 1 {
		return 0, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := &l.Buffers[0]
	if max := b.ByteSize / c.format.BytesPerFrame; frames > max {
		frames = max
	}

	if err := c.grow(frames); err != nil {
		return 0, err
	}
	c.scratch.SetFrames(c.native, frames)

	n, err := c.src.Render(c.scratch, frames)
	if n <= 0 {
		return n, err
	}

	src := c.scratch.Buffers[0].Data
	samples := n * c.native.Channels
	if c.native.BitDepth == 16 {
		// widen 16 -> 24
		for i := 0; i < samples; i++ {
			s := audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(src[i*2:])))
			v := audio.SampleTo24Bit(s)
			b.Data[i*3], b.Data[i*3+1], b.Data[i*3+2] = v[0], v[1], v[2]
		}
	} else {
		// narrow 24 -> 16
		for i := 0; i < samples; i++ {
			s := audio.SampleFrom24Bit([3]byte{src[i*3], src[i*3+1], src[i*3+2]})
			binary.LittleEndian.PutUint16(b.Data[i*2:], uint16(audio.SampleToInt16(s)))
		}
	}

	return n, err
}

func (c *Converted) grow(frames int) error {
	if c.scratch != nil && c.scratchFrames >= frames {
		return nil
	}
	if c.scratch != nil {
		c.scratch.Free()
	}
	l, err := abl.Alloc(c.native, frames)
	if err != nil {
		return fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	c.scratch = l
	c.scratchFrames = frames
	return nil
}

// Format reports the converted layout.
func (c *Converted) Format() audio.Format {
	return c.format
}

// Metadata returns title, artist, album
func (c *Converted) Metadata() (string, string, string) {
	return c.src.Metadata()
}

// Close frees the scratch list and closes the inner source.
func (c *Converted) Close() error {
	if c.scratch != nil {
		c.scratch.Free()
		c.scratch = nil
	}
	return c.src.Close()
}

// Conform wraps src with whatever conversion stages it needs to render
// in the target format. Rate conversion runs at 16 bits, so the stages
// are ordered to put 16-bit data in front of the resampler.
func Conform(src Source, target audio.Format) (Source, error) {
	if !target.Interleaved {
		return nil, fmt.Errorf("expected interleaved format")
	}

	f := src.Format()
	if f.Channels != target.Channels {
		return nil, fmt.Errorf("channel count mismatch: source %d, output %d", f.Channels, target.Channels)
	}

	if f.SampleRate != target.SampleRate {
		if f.BitDepth != 16 {
			c, err := NewConverted(src, 16)
			if err != nil {
				return nil, err
			}
			src = c
		}
		r, err := NewResampled(src, target.SampleRate)
		if err != nil {
			return nil, err
		}
		src = r
		f = src.Format()
	}

	if f.BitDepth != target.BitDepth {
		c, err := NewConverted(src, target.BitDepth)
		if err != nil {
			return nil, err
		}
		src = c
	}

	return src, nil
}
