// ABOUTME: Unit tests for G.711 encoder
// ABOUTME: Tests mu-law and A-law compression and decoder round trips
package encode

import (
	"testing"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/decode"
)

func TestNewG711(t *testing.T) {
	tests := []struct {
		name        string
		codec       string
		wantErr     bool
		errContains string
	}{
		{name: "mu-law", codec: "ulaw", wantErr: false},
		{name: "A-law", codec: "alaw", wantErr: false},
		{name: "invalid codec", codec: "opus", wantErr: true, errContains: "invalid codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := audio.Format{
				Codec:      tt.codec,
				SampleRate: 8000,
				Channels:   1,
				BitDepth:   16,
			}

			encoder, err := NewG711(format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewG711() expected error, got nil")
				} else if tt.errContains != "" && !contains(err.Error(), tt.errContains) {
					t.Errorf("NewG711() error = %v, want error containing %v", err, tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("NewG711() unexpected error = %v", err)
				}
				if encoder == nil {
					t.Errorf("NewG711() returned nil encoder")
				}
			}
		})
	}
}

func TestG711Encode(t *testing.T) {
	format := audio.Format{
		Codec:      "ulaw",
		SampleRate: 8000,
		Channels:   1,
		BitDepth:   16,
	}

	encoder, err := NewG711(format)
	if err != nil {
		t.Fatalf("NewG711() failed: %v", err)
	}
	defer encoder.Close()

	// 160 16-bit samples compress to 160 bytes
	l, err := abl.Alloc(encoder.Input(), 160)
	if err != nil {
		t.Fatalf("failed to allocate list: %v", err)
	}
	defer l.Free()
	l.Silence()

	output, err := encoder.Encode(l)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if len(output) != 160 {
		t.Errorf("expected 160 bytes, got %d", len(output))
	}
}

func TestG711_RoundTripShape(t *testing.T) {
	format := audio.Format{
		Codec:      "alaw",
		SampleRate: 8000,
		Channels:   1,
		BitDepth:   16,
	}

	encoder, err := NewG711(format)
	if err != nil {
		t.Fatalf("NewG711() failed: %v", err)
	}
	decoder, err := decode.NewG711(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	l, err := abl.Alloc(encoder.Input(), 80)
	if err != nil {
		t.Fatalf("failed to allocate list: %v", err)
	}
	defer l.Free()
	l.Silence()

	wire, err := encoder.Encode(l)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	back, err := decoder.Decode(wire)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	defer back.Free()

	frames, channels := abl.NumFrames(back, decoder.Output())
	if frames != 80 {
		t.Errorf("expected 80 frames after round trip, got %d", frames)
	}
	if channels != 1 {
		t.Errorf("expected 1 channel after round trip, got %d", channels)
	}
}
