// ABOUTME: Container operations over buffer lists: silence, offset, resize
// ABOUTME: Frame and channel queries derived from format and buffer metadata
package abl

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
)

// Silence zeroes every buffer's recorded byte range. Buffers with nil
// data or a non-positive recorded size are skipped.
func (l *List) Silence() {
	for _, b := range l.Buffers {
		if b.Data == nil || b.ByteSize <= 0 {
			continue
		}
		region := b.Data[:b.ByteSize]
		for i := range region {
			region[i] = 0
		}
	}
}

// Offset returns a borrowed view over l advanced by the given number of
// frames. Each buffer's data is sliced forward by frames times the frame
// stride and its recorded size reduced to match. The view shares storage
// with l and must not be freed. Panics when the offset exceeds any
// buffer's recorded size.
func Offset(l *List, f audio.Format, frames int) *List {
	off := frames * f.BytesPerFrame
	view := &List{Buffers: make([]Buffer, len(l.Buffers))}
	for i, b := range l.Buffers {
		if off > b.ByteSize {
			panic(fmt.Sprintf("abl: offset of %d bytes exceeds buffer %d recorded size %d", off, i, b.ByteSize))
		}
		next := Buffer{Channels: b.Channels, ByteSize: b.ByteSize - off}
		if b.Data != nil {
			next.Data = b.Data[off:]
		}
		view.Buffers[i] = next
	}
	return view
}

// SetFrames rewrites every buffer's recorded size to frames times the
// frame stride, without touching the underlying storage. Panics when the
// new size exceeds a non-nil buffer's capacity.
func (l *List) SetFrames(f audio.Format, frames int) {
	size := frames * f.BytesPerFrame
	for i := range l.Buffers {
		b := &l.Buffers[i]
		if b.Data != nil && size > len(b.Data) {
			panic(fmt.Sprintf("abl: %d bytes requested for buffer %d with capacity %d", size, i, len(b.Data)))
		}
		b.ByteSize = size
	}
}

// NumChannels reports the channel count carried by l: the buffer count
// for a non-interleaved layout, otherwise the first buffer's channel
// field. The list must hold at least one buffer.
func NumChannels(l *List, f audio.Format) int {
	if !f.Interleaved {
		return len(l.Buffers)
	}
	return l.Buffers[0].Channels
}

// NumFrames reports the frame count held by l along with its channel
// count. Frames are derived from the first buffer's recorded size divided
// by the per-frame byte cost of all channels. A zero sample width or
// channel count, or an empty list, is a caller contract violation and
// panics.
func NumFrames(l *List, f audio.Format) (frames, channels int) {
	channels = NumChannels(l, f)
	frames = l.Buffers[0].ByteSize / (f.BytesPerSample() * channels)
	return frames, channels
}
