// ABOUTME: Audio source abstraction rendering into buffer lists
// ABOUTME: Dispatches file paths to decoders or falls back to a test tone
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
)

// Source renders PCM audio into buffer lists. Render fills the first
// min(frames, capacity) frames of l and returns how many it produced;
// a short count means the source is running dry and (0, io.EOF) means
// it is finished. Sources render interleaved PCM in their Format.
type Source interface {
	Render(l *abl.List, frames int) (int, error)

	// Format reports the interleaved PCM layout Render produces
	Format() audio.Format

	// Metadata returns title, artist, album
	Metadata() (title, artist, album string)

	// Close releases the source's resources
	Close() error
}

// NewSource creates a source from a file path. An empty path returns a
// test tone at the given format; otherwise the extension picks the
// decoder and the source plays at the file's native format.
func NewSource(path string, f audio.Format) (Source, error) {
	if path == "" {
		return NewTone(f, 440.0)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".flac":
		return NewFile(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac)", ext)
	}
}
