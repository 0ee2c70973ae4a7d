// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backend registry, null sink, ring buffer, and volume scaling
package output

import (
	"testing"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

func TestImplementsOutput(t *testing.T) {
	var _ Output = (*Null)(nil)
	var _ Output = (*Oto)(nil)
	var _ Output = (*Malgo)(nil)
	var _ Output = (*PortAudio)(nil)
}

func TestImplementsVolumeController(t *testing.T) {
	var _ VolumeController = (*Oto)(nil)
	var _ VolumeController = (*Malgo)(nil)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{
			name:    "null backend",
			backend: "null",
			wantErr: false,
		},
		{
			name:    "oto backend",
			backend: "oto",
			wantErr: false,
		},
		{
			name:    "malgo backend",
			backend: "malgo",
			wantErr: false,
		},
		{
			name:    "portaudio backend",
			backend: "portaudio",
			wantErr: false,
		},
		{
			name:    "unknown backend",
			backend: "pulse",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if out == nil {
				t.Fatal("New returned nil output")
			}
		})
	}
}

func TestNew_UnknownBackendError(t *testing.T) {
	_, err := New("jack")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expected := "unknown output backend: jack (available: oto, malgo, portaudio, null)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestNullCountsFrames(t *testing.T) {
	out := NewNull()
	format := audio.PCM16(48000, 2, true)
	if err := out.Open(format); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer out.Close()

	l, err := abl.Alloc(format, 480)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	defer l.Free()

	for i := 0; i < 3; i++ {
		if err := out.Write(l); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	null := out.(*Null)
	if null.Frames() != 1440 {
		t.Errorf("expected 1440 frames, got %d", null.Frames())
	}
}

func TestNullWriteBeforeOpen(t *testing.T) {
	out := NewNull()

	l, err := abl.Alloc(audio.PCM16(48000, 2, true), 10)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	defer l.Free()

	err = out.Write(l)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "output not initialized" {
		t.Errorf("expected %q, got %q", "output not initialized", err.Error())
	}
}

func TestNullEmptyList(t *testing.T) {
	out := NewNull()
	if err := out.Open(audio.PCM16(48000, 2, true)); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer out.Close()

	if err := out.Write(&abl.List{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if out.(*Null).Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", out.(*Null).Frames())
	}
}

func TestRingBufferWriteRead(t *testing.T) {
	rb := NewRingBuffer(16)

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n := rb.Write(data)
	if n != 8 {
		t.Fatalf("expected 8 bytes written, got %d", n)
	}
	if rb.Available() != 8 {
		t.Errorf("expected 8 available, got %d", rb.Available())
	}
	if rb.Free() != 8 {
		t.Errorf("expected 8 free, got %d", rb.Free())
	}

	out := make([]byte, 8)
	n = rb.Read(out)
	if n != 8 {
		t.Fatalf("expected 8 bytes read, got %d", n)
	}
	for i := range data {
		if out[i] != data[i] {
			t.Errorf("byte %d: expected %d, got %d", i, data[i], out[i])
		}
	}
	if rb.Available() != 0 {
		t.Errorf("expected 0 available, got %d", rb.Available())
	}
}

func TestRingBufferUnderrunZeroFills(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Write([]byte{9, 9})

	out := make([]byte, 6)
	for i := range out {
		out[i] = 0xFF
	}
	rb.Read(out)

	if out[0] != 9 || out[1] != 9 {
		t.Errorf("expected leading bytes 9 9, got %d %d", out[0], out[1])
	}
	for i := 2; i < 6; i++ {
		if out[i] != 0 {
			t.Errorf("byte %d: expected zero fill, got %d", i, out[i])
		}
	}
}

func TestRingBufferWrapAround(t *testing.T) {
	rb := NewRingBuffer(8)

	rb.Write([]byte{1, 2, 3, 4, 5, 6})
	out := make([]byte, 4)
	rb.Read(out)

	// Write past the end of the underlying slice
	n := rb.Write([]byte{10, 11, 12, 13, 14})
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	out = make([]byte, 7)
	n = rb.Read(out)
	if n != 7 {
		t.Fatalf("expected 7 bytes read, got %d", n)
	}
	expected := []byte{5, 6, 10, 11, 12, 13, 14}
	for i := range expected {
		if out[i] != expected[i] {
			t.Errorf("byte %d: expected %d, got %d", i, expected[i], out[i])
		}
	}
}

func TestRingBufferFullDropsExcess(t *testing.T) {
	rb := NewRingBuffer(4)

	n := rb.Write([]byte{1, 2, 3, 4, 5, 6})
	if n != 4 {
		t.Fatalf("expected 4 bytes written, got %d", n)
	}
	if rb.Free() != 0 {
		t.Errorf("expected 0 free, got %d", rb.Free())
	}

	n = rb.Write([]byte{7})
	if n != 0 {
		t.Errorf("expected 0 bytes written to full buffer, got %d", n)
	}
}

func TestGetVolumeMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		volume   int
		muted    bool
		expected float64
	}{
		{
			name:     "full volume",
			volume:   100,
			muted:    false,
			expected: 1.0,
		},
		{
			name:     "half volume",
			volume:   50,
			muted:    false,
			expected: 0.5,
		},
		{
			name:     "zero volume",
			volume:   0,
			muted:    false,
			expected: 0.0,
		},
		{
			name:     "muted overrides volume",
			volume:   100,
			muted:    true,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getVolumeMultiplier(tt.volume, tt.muted)
			if got != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestApplyVolumeUnityPassesThrough(t *testing.T) {
	data := []byte{0x00, 0x10, 0x00, 0x20}
	got := applyVolume(data, 16, 100, false)
	if &got[0] != &data[0] {
		t.Error("expected unity volume to return the input slice unchanged")
	}
}

func TestApplyVolume16Bit(t *testing.T) {
	// Two samples: 1000 and -1000
	data := []byte{0xE8, 0x03, 0x18, 0xFC}
	got := applyVolume(data, 16, 50, false)

	s0 := int16(got[0]) | int16(got[1])<<8
	s1 := int16(got[2]) | int16(got[3])<<8
	if s0 != 500 {
		t.Errorf("expected 500, got %d", s0)
	}
	if s1 != -500 {
		t.Errorf("expected -500, got %d", s1)
	}

	// Input untouched
	if data[0] != 0xE8 || data[1] != 0x03 {
		t.Error("expected input to be unchanged")
	}
}

func TestApplyVolumeMuteSilences(t *testing.T) {
	data := []byte{0xE8, 0x03, 0x18, 0xFC}
	got := applyVolume(data, 16, 100, true)
	for i, b := range got {
		if b != 0 {
			t.Errorf("byte %d: expected 0, got %d", i, b)
		}
	}
}

func TestApplyVolume24Bit(t *testing.T) {
	// One sample: 1000 as 24-bit little-endian
	data := []byte{0xE8, 0x03, 0x00}
	got := applyVolume(data, 24, 50, false)

	sample := audio.SampleFrom24Bit([3]byte{got[0], got[1], got[2]})
	if sample != 500 {
		t.Errorf("expected 500, got %d", sample)
	}
}

func TestPortAudioStub(t *testing.T) {
	out := NewPortAudio()
	if out == nil {
		t.Fatal("NewPortAudio returned nil")
	}
}
