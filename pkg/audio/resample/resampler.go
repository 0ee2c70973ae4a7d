// ABOUTME: Sample rate conversion for audio buffer lists
// ABOUTME: Wraps a streaming polyphase resampler behind a List in, List out API
package resample

import (
	"encoding/binary"
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	resampler "github.com/tphakala/go-audio-resampler"
)

// Resampler converts interleaved 16-bit buffer lists between sample
// rates. Process and Flush on one instance must be serialized.
type Resampler struct {
	in  audio.Format
	out audio.Format
	r   *resampler.Resampler // nil when input and output rates match
}

// New creates a resampler from the input format to the given output
// rate. When the rates already match, Process degrades to a deep copy.
func New(in audio.Format, outputRate int) (*Resampler, error) {
	if !in.Interleaved {
		return nil, fmt.Errorf("expected interleaved input format")
	}
	if in.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", in.BitDepth)
	}

	out := in
	out.SampleRate = outputRate

	rs := &Resampler{in: in, out: out}
	if in.SampleRate == outputRate {
		return rs, nil
	}

	r, err := resampler.New(&resampler.Config{
		InputRate:  float64(in.SampleRate),
		OutputRate: float64(outputRate),
		Channels:   in.Channels,
		Quality:    resampler.QualitySpec{Preset: resampler.QualityMedium},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}
	rs.r = r
	return rs, nil
}

// Input returns the format Process expects.
func (r *Resampler) Input() audio.Format {
	return r.in
}

// Output returns the format of the lists Process produces.
func (r *Resampler) Output() audio.Format {
	return r.out
}

// Process converts one buffer list and returns a freshly allocated list
// at the output rate. The input list is not modified and remains owned
// by the caller. A streaming resampler buffers internally, so the
// output may hold fewer or more frames than the input.
func (r *Resampler) Process(l *abl.List) (*abl.List, error) {
	if len(l.Buffers) != 1 {
		return nil, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	if r.r == nil {
		return abl.Copy(l)
	}

	b := l.Buffers[0]
	samples := b.ByteSize / 2
	floats := make([]float64, samples)
	for i := 0; i < samples; i++ {
		s := int16(binary.LittleEndian.Uint16(b.Data[i*2:]))
		floats[i] = float64(s) / 32768.0
	}

	converted, err := r.r.Process(floats)
	if err != nil {
		return nil, fmt.Errorf("resample failed: %w", err)
	}
	return r.toList(converted)
}

// Flush drains samples still buffered inside the resampler. For a
// same-rate passthrough the result is an empty list.
func (r *Resampler) Flush() (*abl.List, error) {
	if r.r == nil {
		return abl.Alloc(r.out, 0)
	}

	remaining, err := r.r.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush failed: %w", err)
	}
	return r.toList(remaining)
}

func (r *Resampler) toList(samples []float64) (*abl.List, error) {
	frames := len(samples) / r.out.Channels
	out, err := abl.Alloc(r.out, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	if frames == 0 {
		return out, nil
	}

	data := out.Buffers[0].Data
	for i := 0; i < frames*r.out.Channels; i++ {
		s := samples[i] * 32768.0
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(s)))
	}
	return out, nil
}
