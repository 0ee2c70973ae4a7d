// ABOUTME: Tests for audio types
// ABOUTME: Tests format layout helpers and sample conversion functions
package audio

import "testing"

func TestBufferCount(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected int
	}{
		{"interleaved stereo", PCM16(48000, 2, true), 1},
		{"non-interleaved stereo", PCM16(48000, 2, false), 2},
		{"interleaved mono", PCM16(48000, 1, true), 1},
		{"non-interleaved mono", PCM16(48000, 1, false), 1},
		{"non-interleaved 5.1", PCM24(96000, 6, false), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.format.BufferCount()
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestChannelsPerBuffer(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected int
	}{
		{"interleaved stereo", PCM16(48000, 2, true), 2},
		{"non-interleaved stereo", PCM16(48000, 2, false), 1},
		{"interleaved 5.1", PCM24(96000, 6, true), 6},
		{"non-interleaved 5.1", PCM24(96000, 6, false), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.format.ChannelsPerBuffer()
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestFormatConstructors(t *testing.T) {
	tests := []struct {
		name              string
		format            Format
		wantCodec         string
		wantBitDepth      int
		wantBytesPerFrame int
	}{
		{"PCM16 stereo", PCM16(48000, 2, true), "pcm", 16, 4},
		{"PCM16 mono", PCM16(8000, 1, true), "pcm", 16, 2},
		{"PCM24 stereo", PCM24(192000, 2, false), "pcm", 24, 6},
		{"Float32 stereo", Float32(48000, 2, true), "pcm-float", 32, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.format.Codec != tt.wantCodec {
				t.Errorf("expected codec %q, got %q", tt.wantCodec, tt.format.Codec)
			}
			if tt.format.BitDepth != tt.wantBitDepth {
				t.Errorf("expected bit depth %d, got %d", tt.wantBitDepth, tt.format.BitDepth)
			}
			if tt.format.BytesPerFrame != tt.wantBytesPerFrame {
				t.Errorf("expected %d bytes per frame, got %d", tt.wantBytesPerFrame, tt.format.BytesPerFrame)
			}
		})
	}
}

func TestBytesPerSample(t *testing.T) {
	if got := PCM16(48000, 2, true).BytesPerSample(); got != 2 {
		t.Errorf("expected 2 bytes per sample, got %d", got)
	}
	if got := PCM24(48000, 2, true).BytesPerSample(); got != 3 {
		t.Errorf("expected 3 bytes per sample, got %d", got)
	}
	if got := Float32(48000, 2, true).BytesPerSample(); got != 4 {
		t.Errorf("expected 4 bytes per sample, got %d", got)
	}
}

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected int32
	}{
		{"zero", 0, 0},
		{"positive", 100, 100 << 8},
		{"negative", -100, -100 << 8},
		{"max", 32767, 32767 << 8},
		{"min", -32768, -32768 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected int16
	}{
		{"zero", 0, 0},
		{"positive", 100 << 8, 100},
		{"negative", -100 << 8, -100},
		{"24bit positive", 1000000, 3906}, // 1000000 >> 8 = 3906
		{"24bit negative", -1000000, -3907},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleTo24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    int32
		expected [3]byte
	}{
		{"zero", 0, [3]byte{0, 0, 0}},
		{"positive", 0x123456, [3]byte{0x56, 0x34, 0x12}},
		{"negative", -256, [3]byte{0x00, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleTo24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestSampleFrom24Bit(t *testing.T) {
	tests := []struct {
		name     string
		input    [3]byte
		expected int32
	}{
		{"zero", [3]byte{0, 0, 0}, 0},
		{"positive", [3]byte{0x56, 0x34, 0x12}, 0x123456},
		{"negative", [3]byte{0x00, 0xFF, 0xFF}, -256},
		{"max positive", [3]byte{0xFF, 0xFF, 0x7F}, Max24Bit},
		{"max negative", [3]byte{0x00, 0x00, 0x80}, Min24Bit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFrom24Bit(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTrip16Bit(t *testing.T) {
	// Test that 16-bit samples survive round-trip conversion
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32768}

	for _, original := range samples {
		sample32 := SampleFromInt16(original)
		result := SampleToInt16(sample32)
		if result != original {
			t.Errorf("round-trip failed: %d -> %d -> %d", original, sample32, result)
		}
	}
}

func TestRoundTrip24Bit(t *testing.T) {
	// Test that 24-bit samples survive round-trip conversion
	samples := []int32{0, 100000, -100000, Max24Bit, Min24Bit}

	for _, original := range samples {
		bytes := SampleTo24Bit(original)
		result := SampleFrom24Bit(bytes)
		// Mask to 24-bit for comparison
		expected := original & 0xFFFFFF
		if expected&0x800000 != 0 {
			expected |= ^0xFFFFFF
		}
		if result != expected {
			t.Errorf("round-trip failed: %d -> %v -> %d (expected %d)", original, bytes, result, expected)
		}
	}
}
