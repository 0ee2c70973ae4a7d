// ABOUTME: Render host mixing registered sources into an output backend
// ABOUTME: Ticker-paced loop reusing one owned list per cycle
package engine

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/output"
	"github.com/google/uuid"
)

// Config carries the settings an Engine starts from.
type Config struct {
	Format        audio.Format
	FrameDuration time.Duration // render cycle length, 20ms when zero
	Output        output.Output
	Allocator     abl.Allocator // DefaultAllocator when nil
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Cycles    uint64
	Frames    uint64
	Underruns uint64 // cycles where a source rendered short
	Sources   int
}

// Engine pulls audio from registered sources, mixes it into one buffer
// list per cycle, and writes the mix to the output backend. Sources
// must render in the engine's format; wrap mismatched sources with
// Conform first.
type Engine struct {
	format audio.Format
	frames int // frames per render cycle
	period time.Duration
	out    output.Output
	alloc  abl.Allocator

	mu      sync.RWMutex
	sources map[string]Source

	statsMu sync.Mutex
	stats   Stats
}

// New creates an engine from the config.
func New(cfg Config) (*Engine, error) {
	f := cfg.Format
	if !f.Interleaved {
		return nil, fmt.Errorf("expected interleaved format")
	}
	if f.BitDepth != 16 && f.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", f.BitDepth)
	}
	if cfg.Output == nil {
		return nil, fmt.Errorf("output is required")
	}

	period := cfg.FrameDuration
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	frames := int(int64(f.SampleRate) * int64(period) / int64(time.Second))
	if frames <= 0 {
		return nil, fmt.Errorf("frame duration %v too short at %d Hz", period, f.SampleRate)
	}

	alloc := cfg.Allocator
	if alloc == nil {
		alloc = abl.DefaultAllocator
	}

	return &Engine{
		format:  f,
		frames:  frames,
		period:  period,
		out:     cfg.Output,
		alloc:   alloc,
		sources: make(map[string]Source),
	}, nil
}

// Format reports the engine's render format.
func (e *Engine) Format() audio.Format {
	return e.format
}

// FramesPerCycle reports how many frames one render cycle covers.
func (e *Engine) FramesPerCycle() int {
	return e.frames
}

// AddSource registers a source and returns its id. The source must
// render in the engine's format.
func (e *Engine) AddSource(src Source) (string, error) {
	f := src.Format()
	if f.SampleRate != e.format.SampleRate || f.Channels != e.format.Channels ||
		f.BitDepth != e.format.BitDepth || !f.Interleaved {
		return "", fmt.Errorf("source format %d Hz/%d ch/%d-bit does not match engine %d Hz/%d ch/%d-bit",
			f.SampleRate, f.Channels, f.BitDepth,
			e.format.SampleRate, e.format.Channels, e.format.BitDepth)
	}

	id := uuid.New().String()
	e.mu.Lock()
	e.sources[id] = src
	e.mu.Unlock()

	title, artist, _ := src.Metadata()
	log.Printf("Engine: added source %s (%s - %s)", id, artist, title)
	return id, nil
}

// RemoveSource unregisters a source without closing it.
func (e *Engine) RemoveSource(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sources[id]; !ok {
		return fmt.Errorf("unknown source: %s", id)
	}
	delete(e.sources, id)
	log.Printf("Engine: removed source %s", id)
	return nil
}

// Run opens the output and renders until ctx is cancelled. The two
// lists it allocates up front are reused for every cycle.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.out.Open(e.format); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer e.out.Close()

	mix, err := abl.AllocIn(e.alloc, e.format, e.frames)
	if err != nil {
		return fmt.Errorf("failed to allocate mix list: %w", err)
	}
	defer mix.Free()

	scratch, err := abl.AllocIn(e.alloc, e.format, e.frames)
	if err != nil {
		return fmt.Errorf("failed to allocate scratch list: %w", err)
	}
	defer scratch.Free()

	log.Printf("Engine starting: %d Hz, %d channels, %d-bit, %d frames per cycle",
		e.format.SampleRate, e.format.Channels, e.format.BitDepth, e.frames)

	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Engine stopping")
			return nil
		case <-ticker.C:
			if err := e.renderCycle(mix, scratch); err != nil {
				return err
			}
		}
	}
}

// renderCycle mixes every source's render into mix and writes it out.
// Sources that report io.EOF are closed and dropped.
func (e *Engine) renderCycle(mix, scratch *abl.List) error {
	mix.SetFrames(e.format, e.frames)
	mix.Silence()

	e.mu.RLock()
	ids := make([]string, 0, len(e.sources))
	srcs := make([]Source, 0, len(e.sources))
	for id, s := range e.sources {
		ids = append(ids, id)
		srcs = append(srcs, s)
	}
	e.mu.RUnlock()

	var underruns uint64
	for i, src := range srcs {
		scratch.SetFrames(e.format, e.frames)
		n, err := src.Render(scratch, e.frames)
		if err == io.EOF {
			log.Printf("Source %s finished", ids[i])
			e.mu.Lock()
			delete(e.sources, ids[i])
			e.mu.Unlock()
			if cerr := src.Close(); cerr != nil {
				log.Printf("Error closing source %s: %v", ids[i], cerr)
			}
			continue
		}
		if err != nil {
			log.Printf("Source %s render failed: %v", ids[i], err)
			continue
		}
		if n < e.frames {
			underruns++
		}
		if n > 0 {
			accumulate(mix, scratch, n, e.format)
		}
	}

	if err := e.out.Write(mix); err != nil {
		return fmt.Errorf("output write failed: %w", err)
	}

	e.statsMu.Lock()
	e.stats.Cycles++
	e.stats.Frames += uint64(e.frames)
	e.stats.Underruns += underruns
	e.statsMu.Unlock()
	return nil
}

// accumulate adds the first frames frames of src into dst with
// clipping protection.
func accumulate(dst, src *abl.List, frames int, f audio.Format) {
	d := dst.Buffers[0].Data
	s := src.Buffers[0].Data
	samples := frames * f.Channels

	if f.BitDepth == 24 {
		for i := 0; i < samples; i++ {
			sum := audio.SampleFrom24Bit([3]byte{d[i*3], d[i*3+1], d[i*3+2]}) +
				audio.SampleFrom24Bit([3]byte{s[i*3], s[i*3+1], s[i*3+2]})
			if sum > audio.Max24Bit {
				sum = audio.Max24Bit
			} else if sum < audio.Min24Bit {
				sum = audio.Min24Bit
			}
			v := audio.SampleTo24Bit(sum)
			d[i*3], d[i*3+1], d[i*3+2] = v[0], v[1], v[2]
		}
		return
	}

	for i := 0; i < samples; i++ {
		sum := int32(int16(binary.LittleEndian.Uint16(d[i*2:]))) +
			int32(int16(binary.LittleEndian.Uint16(s[i*2:])))
		if sum > 32767 {
			sum = 32767
		} else if sum < -32768 {
			sum = -32768
		}
		binary.LittleEndian.PutUint16(d[i*2:], uint16(int16(sum)))
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	st := e.stats
	e.statsMu.Unlock()

	e.mu.RLock()
	st.Sources = len(e.sources)
	e.mu.RUnlock()
	return st
}
