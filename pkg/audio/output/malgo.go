// ABOUTME: Malgo-based audio output implementation with 24-bit support
// ABOUTME: Uses miniaudio library via malgo for hi-res callback playback
package output

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/gen2brain/malgo"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	ctx      context.Context
	cancel   context.CancelFunc
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	format   audio.Format
	volume   int
	muted    bool
	ready    bool

	// Ring buffer for callback-based playback
	ring *RingBuffer
	mu   sync.Mutex
}

// RingBuffer provides a thread-safe circular byte buffer between the
// writer and the device callback.
type RingBuffer struct {
	buffer   []byte
	readPos  int
	writePos int
	size     int
	count    int // bytes currently in buffer
	mu       sync.Mutex
}

// NewRingBuffer creates a ring buffer with the given capacity in bytes
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		buffer: make([]byte, capacity),
		size:   capacity,
	}
}

// Write adds bytes to the ring buffer
func (rb *RingBuffer) Write(data []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	written := 0
	for i := 0; i < len(data) && rb.count < rb.size; i++ {
		rb.buffer[rb.writePos] = data[i]
		rb.writePos = (rb.writePos + 1) % rb.size
		rb.count++
		written++
	}
	return written
}

// Read retrieves bytes from the ring buffer, zero-filling on underrun
func (rb *RingBuffer) Read(data []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	read := 0
	for i := 0; i < len(data) && rb.count > 0; i++ {
		data[i] = rb.buffer[rb.readPos]
		rb.readPos = (rb.readPos + 1) % rb.size
		rb.count--
		read++
	}

	for i := read; i < len(data); i++ {
		data[i] = 0
	}

	return read
}

// Available returns the number of bytes available to read
func (rb *RingBuffer) Available() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Free returns the number of free bytes in the buffer
func (rb *RingBuffer) Free() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size - rb.count
}

// NewMalgo creates a new Malgo output
func NewMalgo() Output {
	ctx, cancel := context.WithCancel(context.Background())

	return &Malgo{
		ctx:    ctx,
		cancel: cancel,
		volume: 100,
		muted:  false,
	}
}

// Open initializes the output device with the given format
func (m *Malgo) Open(f audio.Format) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// If already initialized with same format, reuse
	if m.device != nil && m.format.SampleRate == f.SampleRate && m.format.Channels == f.Channels && m.format.BitDepth == f.BitDepth {
		log.Printf("Audio output already initialized with same format, reusing device")
		return nil
	}

	// If format changed, reinitialize
	if m.device != nil {
		log.Printf("Format change detected (%dHz/%dch/%dbit -> %dHz/%dch/%dbit), reinitializing device",
			m.format.SampleRate, m.format.Channels, m.format.BitDepth, f.SampleRate, f.Channels, f.BitDepth)
		if err := m.closeDevice(); err != nil {
			return fmt.Errorf("failed to close old device: %w", err)
		}
	}

	// Create malgo context if needed
	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	format, err := malgoFormat(f)
	if err != nil {
		return err
	}

	// Ring buffer sized for 500ms of audio
	m.ring = NewRingBuffer((f.SampleRate * f.BytesPerFrame * 500) / 1000)

	// Configure device
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = format
	deviceConfig.Playback.Channels = uint32(f.Channels)
	deviceConfig.SampleRate = uint32(f.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutputSample, pInputSamples []byte, frameCount uint32) {
		m.ring.Read(pOutputSample)
	}

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: onSamples,
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.format = f
	m.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d-bit (malgo/%s)",
		f.SampleRate, f.Channels, f.BitDepth, formatName(format))

	return nil
}

// Write queues one buffer list for playback
func (m *Malgo) Write(l *abl.List) error {
	if !m.ready {
		return fmt.Errorf("output not initialized")
	}
	if len(l.Buffers) != 1 {
		return fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	b := l.Buffers[0]
	if b.ByteSize <= 0 {
		return nil
	}
	data := applyVolume(b.Data[:b.ByteSize], m.format.BitDepth, m.volume, m.muted)

	written := 0
	for written < len(data) {
		n := m.ring.Write(data[written:])
		written += n

		if n == 0 {
			// Buffer is full; the callback drains it continuously, so
			// dropping the remainder throttles the writer naturally.
			break
		}
	}

	return nil
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.closeDevice(); err != nil {
		return err
	}

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}

	m.cancel()
	return nil
}

// closeDevice stops and uninitializes the device (must hold m.mu)
func (m *Malgo) closeDevice() error {
	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
		m.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (m *Malgo) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (m *Malgo) SetMuted(muted bool) {
	m.muted = muted
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (m *Malgo) GetVolume() int {
	return m.volume
}

// IsMuted returns mute state
func (m *Malgo) IsMuted() bool {
	return m.muted
}

// malgoFormat maps a format's sample encoding to the malgo type
func malgoFormat(f audio.Format) (malgo.FormatType, error) {
	switch {
	case f.Codec == "pcm-float" && f.BitDepth == 32:
		return malgo.FormatF32, nil
	case f.BitDepth == 16:
		return malgo.FormatS16, nil
	case f.BitDepth == 24:
		return malgo.FormatS24, nil
	case f.BitDepth == 32:
		return malgo.FormatS32, nil
	default:
		return malgo.FormatUnknown, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24, 32)", f.BitDepth)
	}
}

// formatName returns human-readable format name
func formatName(format malgo.FormatType) string {
	switch format {
	case malgo.FormatS16:
		return "S16"
	case malgo.FormatS24:
		return "S24"
	case malgo.FormatS32:
		return "S32"
	case malgo.FormatF32:
		return "F32"
	default:
		return fmt.Sprintf("Unknown(%d)", format)
	}
}
