// ABOUTME: Sample rate conversion wrapper around a source
// ABOUTME: Buffers resampler output so Render delivers exact frame counts
package engine

import (
	"fmt"
	"io"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/resample"
)

// Resampled renders an inner 16-bit source at a different sample rate.
// The streaming resampler produces uneven chunk sizes, so converted
// bytes queue up internally until a full render's worth is ready.
type Resampled struct {
	src    Source
	native audio.Format
	format audio.Format
	rs     *resample.Resampler

	scratch       *abl.List // render list in the inner source's format
	scratchFrames int
	queued        []byte
	eof           bool
}

// NewResampled wraps src so it renders at outputRate.
func NewResampled(src Source, outputRate int) (*Resampled, error) {
	native := src.Format()
	rs, err := resample.New(native, outputRate)
	if err != nil {
		return nil, err
	}
	return &Resampled{
		src:    src,
		native: native,
		format: rs.Output(),
		rs:     rs,
	}, nil
}

// Render delivers exactly frames frames while the inner source keeps
// producing, pulling it as often as needed to fill the queue.
func (r *Resampled) Render(l *abl.List, frames int) (int, error) {
	if len(l.Buffers) != 1 {
		return 0, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := &l.Buffers[0]
	if max := b.ByteSize / r.format.BytesPerFrame; frames > max {
		frames = max
	}
	need := frames * r.format.BytesPerFrame

	for len(r.queued) < need && !r.eof {
		if err := r.pull(frames); err != nil {
			return 0, err
		}
	}

	deliver := need
	if deliver > len(r.queued) {
		deliver = len(r.queued)
	}
	copy(b.Data[:deliver], r.queued[:deliver])
	rest := copy(r.queued, r.queued[deliver:])
	r.queued = r.queued[:rest]

	rendered := deliver / r.format.BytesPerFrame
	if rendered == 0 && r.eof {
		return 0, io.EOF
	}
	return rendered, nil
}

// pull renders one chunk from the inner source through the resampler
// and appends the converted bytes to the queue.
func (r *Resampled) pull(chunkFrames int) error {
	if err := r.grow(chunkFrames); err != nil {
		return err
	}
	r.scratch.SetFrames(r.native, chunkFrames)

	n, err := r.src.Render(r.scratch, chunkFrames)
	if err == io.EOF || (err == nil && n == 0) {
		tail, flushErr := r.rs.Flush()
		if flushErr != nil {
			return flushErr
		}
		r.append(tail)
		tail.Free()
		r.eof = true
		return nil
	}
	if err != nil {
		return err
	}

	r.scratch.SetFrames(r.native, n)
	out, err := r.rs.Process(r.scratch)
	if err != nil {
		return err
	}
	r.append(out)
	out.Free()
	return nil
}

func (r *Resampled) append(l *abl.List) {
	b := l.Buffers[0]
	if b.ByteSize > 0 {
		r.queued = append(r.queued, b.Data[:b.ByteSize]...)
	}
}

func (r *Resampled) grow(frames int) error {
	if r.scratch != nil && r.scratchFrames >= frames {
		return nil
	}
	if r.scratch != nil {
		r.scratch.Free()
	}
	l, err := abl.Alloc(r.native, frames)
	if err != nil {
		return fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	r.scratch = l
	r.scratchFrames = frames
	return nil
}

// Format reports the layout at the converted rate.
func (r *Resampled) Format() audio.Format {
	return r.format
}

// Metadata returns title, artist, album
func (r *Resampled) Metadata() (string, string, string) {
	return r.src.Metadata()
}

// Close frees the scratch list and closes the inner source.
func (r *Resampled) Close() error {
	if r.scratch != nil {
		r.scratch.Free()
		r.scratch = nil
	}
	return r.src.Close()
}
