// ABOUTME: Tests for sample rate conversion of buffer lists
// ABOUTME: Verifies passthrough, format validation, and silence preservation
package resample

import (
	"testing"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		format     audio.Format
		outputRate int
		wantErr    bool
	}{
		{
			name:       "upsample 44100 to 48000",
			format:     audio.PCM16(44100, 2, true),
			outputRate: 48000,
			wantErr:    false,
		},
		{
			name:       "downsample 48000 to 44100",
			format:     audio.PCM16(48000, 2, true),
			outputRate: 44100,
			wantErr:    false,
		},
		{
			name:       "same rate passthrough",
			format:     audio.PCM16(48000, 2, true),
			outputRate: 48000,
			wantErr:    false,
		},
		{
			name:       "mono",
			format:     audio.PCM16(44100, 1, true),
			outputRate: 48000,
			wantErr:    false,
		},
		{
			name:       "planar input rejected",
			format:     audio.PCM16(44100, 2, false),
			outputRate: 48000,
			wantErr:    true,
		},
		{
			name:       "24-bit rejected",
			format:     audio.PCM24(44100, 2, true),
			outputRate: 48000,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.format, tt.outputRate)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if r.Output().SampleRate != tt.outputRate {
				t.Errorf("expected output rate %d, got %d", tt.outputRate, r.Output().SampleRate)
			}
			if r.Output().Channels != tt.format.Channels {
				t.Errorf("expected %d channels, got %d", tt.format.Channels, r.Output().Channels)
			}
			if r.Input() != tt.format {
				t.Error("expected input format to be preserved")
			}
		})
	}
}

func TestNew_BitDepthError(t *testing.T) {
	_, err := New(audio.PCM24(44100, 2, true), 48000)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expected := "unsupported bit depth: 24 (supported: 16)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestSameRatePassthroughCopies(t *testing.T) {
	format := audio.PCM16(48000, 2, true)
	r, err := New(format, 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	src, err := abl.Alloc(format, 100)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	defer src.Free()
	for i := range src.Buffers[0].Data {
		src.Buffers[0].Data[i] = byte(i % 251)
	}

	dst, err := r.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Free()

	frames, channels := abl.NumFrames(dst, format)
	if frames != 100 {
		t.Errorf("expected 100 frames, got %d", frames)
	}
	if channels != 2 {
		t.Errorf("expected 2 channels, got %d", channels)
	}
	for i := range src.Buffers[0].Data {
		if dst.Buffers[0].Data[i] != src.Buffers[0].Data[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, src.Buffers[0].Data[i], dst.Buffers[0].Data[i])
		}
	}

	// Output storage must be independent of the input
	src.Buffers[0].Data[0] ^= 0xFF
	if dst.Buffers[0].Data[0] == src.Buffers[0].Data[0] {
		t.Error("expected output to have independent storage")
	}
}

func TestPassthroughFlushIsEmpty(t *testing.T) {
	r, err := New(audio.PCM16(48000, 2, true), 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l, err := r.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	defer l.Free()

	if len(l.Buffers) != 1 {
		t.Fatalf("expected 1 buffer, got %d", len(l.Buffers))
	}
	if l.Buffers[0].ByteSize != 0 {
		t.Errorf("expected empty buffer, got %d bytes", l.Buffers[0].ByteSize)
	}
}

func TestProcessRejectsPlanarList(t *testing.T) {
	r, err := New(audio.PCM16(44100, 2, true), 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	planar, err := abl.Alloc(audio.PCM16(44100, 2, false), 10)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	defer planar.Free()

	_, err = r.Process(planar)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expected := "expected interleaved input, got 2 buffers"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestResampleSilenceStaysSilent(t *testing.T) {
	format := audio.PCM16(44100, 2, true)
	r, err := New(format, 48000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	src, err := abl.Alloc(format, 4096)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	defer src.Free()
	src.Silence()

	out, err := r.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer out.Free()

	tail, err := r.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	defer tail.Free()

	total := 0
	for _, l := range []*abl.List{out, tail} {
		frames, channels := abl.NumFrames(l, r.Output())
		if channels != 2 {
			t.Errorf("expected 2 channels, got %d", channels)
		}
		total += frames
		for i := 0; i < l.Buffers[0].ByteSize; i++ {
			if l.Buffers[0].Data[i] != 0 {
				t.Fatalf("byte %d: expected silence, got %d", i, l.Buffers[0].Data[i])
			}
		}
	}

	// 4096 frames at 44100 -> 48000 is roughly 4458 frames; allow the
	// filter pipeline a generous margin either way.
	expected := 4096 * 48000 / 44100
	if total < expected-512 || total > expected+512 {
		t.Errorf("expected about %d total frames, got %d", expected, total)
	}
}
