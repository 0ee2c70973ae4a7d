// ABOUTME: File playback source decoding MP3 and FLAC files
// ABOUTME: Preloads the whole stream into one buffer list and loops it
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/decode"
)

// File plays a decoded audio file from memory, looping at the end.
type File struct {
	format audio.Format
	pcm    *abl.List // entire decoded stream, owned until Close
	size   int       // playable bytes in the stream

	title  string
	artist string
	album  string

	mu  sync.Mutex
	pos int // byte offset of the next frame to render
}

// NewFile decodes the file at path completely and returns a source
// playing it at the file's native format.
func NewFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	var codec string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		codec = "mp3"
	case ".flac":
		codec = "flac"
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac)", ext)
	}

	dec, err := decode.New(audio.Format{Codec: codec, SampleRate: 44100, Channels: 2, BitDepth: 16})
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	pcm, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	format := dec.Output()

	filename := filepath.Base(path)
	title := strings.TrimSuffix(filename, filepath.Ext(filename))

	frames, channels := abl.NumFrames(pcm, format)
	log.Printf("Loaded %s: %s (%d Hz, %d channels, %d-bit, %d frames)",
		strings.ToUpper(codec), title, format.SampleRate, channels, format.BitDepth, frames)

	return &File{
		format: format,
		pcm:    pcm,
		size:   pcm.Buffers[0].ByteSize,
		title:  title,
		artist: "Unknown Artist",
		album:  "Unknown Album",
	}, nil
}

// Render copies the next frames out of the decoded stream, wrapping
// back to the start when it reaches the end.
func (s *File) Render(l *abl.List, frames int) (int, error) {
	if len(l.Buffers) != 1 {
		return 0, fmt.Errorf("expected interleaved input, got %d buffers", len(l.Buffers))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pcm == nil {
		return 0, fmt.Errorf("source closed")
	}
	if s.size == 0 {
		return 0, nil
	}

	b := &l.Buffers[0]
	if max := b.ByteSize / s.format.BytesPerFrame; frames > max {
		frames = max
	}

	src := s.pcm.Buffers[0].Data
	need := frames * s.format.BytesPerFrame
	written := 0
	for written < need {
		n := copy(b.Data[written:need], src[s.pos:s.size])
		written += n
		s.pos += n
		if s.pos >= s.size {
			s.pos = 0
		}
	}

	return frames, nil
}

// Format reports the file's native stream layout.
func (s *File) Format() audio.Format {
	return s.format
}

// Metadata returns title, artist, album
func (s *File) Metadata() (string, string, string) {
	return s.title, s.artist, s.album
}

// Close frees the decoded stream.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pcm != nil {
		s.pcm.Free()
		s.pcm = nil
	}
	return nil
}
