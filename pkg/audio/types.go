// ABOUTME: Audio type definitions
// ABOUTME: Defines the stream format descriptor and sample conversion helpers
package audio

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes audio stream format and buffer layout
type Format struct {
	Codec         string // "pcm", "pcm-float", "opus", "mp3", "flac", "ulaw", "alaw"
	SampleRate    int
	Channels      int // channels per frame
	BitDepth      int // bits per channel sample
	BytesPerFrame int // frame stride in bytes, across all channels
	Interleaved   bool
	CodecHeader   []byte // For FLAC, Opus, etc.
}

// BufferCount returns how many channel buffers a container for this
// format holds: one per channel when non-interleaved, otherwise one.
func (f Format) BufferCount() int {
	if f.Interleaved {
		return 1
	}
	return f.Channels
}

// ChannelsPerBuffer returns how many channels each buffer carries:
// all of them when interleaved, otherwise one.
func (f Format) ChannelsPerBuffer() int {
	if f.Interleaved {
		return f.Channels
	}
	return 1
}

// BytesPerSample returns the byte width of a single channel sample.
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// PCM16 builds a 16-bit integer PCM format descriptor.
func PCM16(sampleRate, channels int, interleaved bool) Format {
	return Format{
		Codec:         "pcm",
		SampleRate:    sampleRate,
		Channels:      channels,
		BitDepth:      16,
		BytesPerFrame: channels * 2,
		Interleaved:   interleaved,
	}
}

// PCM24 builds a 24-bit integer PCM format descriptor.
func PCM24(sampleRate, channels int, interleaved bool) Format {
	return Format{
		Codec:         "pcm",
		SampleRate:    sampleRate,
		Channels:      channels,
		BitDepth:      24,
		BytesPerFrame: channels * 3,
		Interleaved:   interleaved,
	}
}

// Float32 builds a 32-bit floating point PCM format descriptor.
func Float32(sampleRate, channels int, interleaved bool) Format {
	return Format{
		Codec:         "pcm-float",
		SampleRate:    sampleRate,
		Channels:      channels,
		BitDepth:      32,
		BytesPerFrame: channels * 4,
		Interleaved:   interleaved,
	}
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	// Left-shift to position 16-bit value in upper bits
	return int32(sample) << 8
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	// Take lower 24 bits, pack little-endian
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	// Reconstruct 24-bit value and sign-extend to 32-bit
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF // Set upper 8 bits to 1 for negative values
	}
	return val
}
