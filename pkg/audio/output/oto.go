// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM with software volume control using oto library
package output

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using oto library
type Oto struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() Output {
	ctx, cancel := context.WithCancel(context.Background())

	return &Oto{
		ctx:    ctx,
		cancel: cancel,
		volume: 100,
		muted:  false,
	}
}

// Open initializes the output device
func (o *Oto) Open(f audio.Format) error {
	// oto only supports 16-bit output
	if f.BitDepth != 16 {
		log.Printf("Warning: oto only supports 16-bit output, ignoring requested bitDepth=%d", f.BitDepth)
	}

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.format.SampleRate == f.SampleRate && o.format.Channels == f.Channels {
		log.Printf("Audio output already initialized with same format, reusing context")
		return nil
	}

	// If format changed, we can't reinitialize oto (it only allows one context per process)
	// Log a warning but continue using the existing context
	if o.otoCtx != nil {
		log.Printf("Warning: format change detected (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			o.format.SampleRate, o.format.Channels, f.SampleRate, f.Channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.format = f

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", f.SampleRate, f.Channels)

	return nil
}

// Write streams one buffer list to the player (blocks until consumed)
func (o *Oto) Write(l *abl.List) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}
	if len(l.Buffers) != 1 {
		return fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := l.Buffers[0]
	if b.ByteSize <= 0 {
		return nil
	}

	// The pipe write returns only after the player has consumed the
	// bytes, so the list can be freed immediately afterwards.
	data := applyVolume(b.Data[:b.ByteSize], 16, o.volume, o.muted)
	if _, err := o.pipeWriter.Write(data); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	o.cancel()
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	return o.muted
}

// applyVolume scales interleaved samples with clipping protection. The
// input bytes are never modified; at unity gain they pass through
// unscaled. Depths other than 16 and 24 bits pass through untouched.
func applyVolume(data []byte, bitDepth, volume int, muted bool) []byte {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return data
	}

	result := make([]byte, len(data))
	switch bitDepth {
	case 16:
		for i := 0; i+1 < len(data); i += 2 {
			sample := int16(binary.LittleEndian.Uint16(data[i:]))
			scaled := int64(float64(sample) * multiplier)
			if scaled > 32767 {
				scaled = 32767
			} else if scaled < -32768 {
				scaled = -32768
			}
			binary.LittleEndian.PutUint16(result[i:], uint16(int16(scaled)))
		}
	case 24:
		for i := 0; i+2 < len(data); i += 3 {
			sample := audio.SampleFrom24Bit([3]byte{data[i], data[i+1], data[i+2]})
			scaled := int64(float64(sample) * multiplier)
			if scaled > audio.Max24Bit {
				scaled = audio.Max24Bit
			} else if scaled < audio.Min24Bit {
				scaled = audio.Min24Bit
			}
			b := audio.SampleTo24Bit(int32(scaled))
			result[i], result[i+1], result[i+2] = b[0], b[1], b[2]
		}
	default:
		copy(result, data)
	}
	return result
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
