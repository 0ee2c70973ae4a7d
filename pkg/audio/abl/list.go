// ABOUTME: Buffer list container and its lifecycle operations
// ABOUTME: Allocation, deep copy, and release of channel buffer storage
package abl

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
)

// Buffer is one channel buffer: a raw byte region plus layout metadata.
// ByteSize is recorded as given and may be zero or negative for an
// empty buffer, in which case Data is nil and no storage is attached.
// For buffers carrying data, ByteSize never exceeds len(Data).
type Buffer struct {
	Channels int    // logical channels carried by this buffer
	ByteSize int    // recorded data length in bytes
	Data     []byte // nil when the buffer has no storage
}

// List is an ordered collection of channel buffers holding one
// frame-aligned block of audio. A list either owns its storage (built
// by Alloc or Copy, released exactly once via Free) or borrows it
// (built by InitInPlace, NewView, or Offset, never released here).
//
// Lists are not safe for concurrent use; independent lists share no
// state and need no coordination.
type List struct {
	Buffers []Buffer

	owner Allocator // nil for borrowed views and freed lists
}

// Owned reports whether the list currently owns its storage. Borrowed
// views and already-freed lists report false.
func (l *List) Owned() bool {
	return l != nil && l.owner != nil
}

// Alloc builds a list for frames frames of f using DefaultAllocator.
func Alloc(f audio.Format, frames int) (*List, error) {
	return AllocIn(DefaultAllocator, f, frames)
}

// AllocIn builds a list sized for frames frames of f, drawing storage
// from a. The layout flag picks the shape: one buffer per channel when
// non-interleaved, one buffer carrying every channel otherwise. Each
// buffer gets BytesPerFrame × frames bytes; when that size is zero or
// negative the buffer records it as given and carries no storage.
//
// Buffer contents are unspecified: pooling allocators recycle dirty
// memory. Call Silence for zeroed buffers.
//
// On allocator failure every buffer allocated so far is returned to a
// and the error is reported; partial allocations never leak.
func AllocIn(a Allocator, f audio.Format, frames int) (*List, error) {
	count := f.BufferCount()
	channels := f.ChannelsPerBuffer()
	size := f.BytesPerFrame * frames

	l := &List{
		Buffers: make([]Buffer, count),
		owner:   a,
	}
	for i := range l.Buffers {
		if size > 0 {
			data, err := a.Alloc(size)
			if err != nil {
				releaseBuffers(a, l.Buffers[:i])
				return nil, fmt.Errorf("failed to allocate buffer %d of %d (%d bytes): %w", i, count, size, err)
			}
			l.Buffers[i].Data = data
		}
		l.Buffers[i].ByteSize = size
		l.Buffers[i].Channels = channels
	}
	return l, nil
}

// Copy deep-copies src using DefaultAllocator.
func Copy(src *List) (*List, error) {
	return CopyIn(DefaultAllocator, src)
}

// CopyIn builds an independently owned deep copy of src, drawing
// storage from a. Buffer count, byte sizes, and channel counts carry
// over; contents are duplicated byte for byte. Buffers without storage
// copy as metadata only. The source is never modified.
//
// On allocator failure every buffer allocated for the copy is returned
// to a and the error is reported.
func CopyIn(a Allocator, src *List) (*List, error) {
	l := &List{
		Buffers: make([]Buffer, len(src.Buffers)),
		owner:   a,
	}
	for i := range src.Buffers {
		sb := &src.Buffers[i]
		l.Buffers[i].ByteSize = sb.ByteSize
		l.Buffers[i].Channels = sb.Channels
		if sb.Data == nil || sb.ByteSize <= 0 {
			continue
		}
		data, err := a.Alloc(sb.ByteSize)
		if err != nil {
			releaseBuffers(a, l.Buffers[:i])
			return nil, fmt.Errorf("failed to copy buffer %d of %d (%d bytes): %w", i, len(src.Buffers), sb.ByteSize, err)
		}
		copy(data, sb.Data[:sb.ByteSize])
		l.Buffers[i].Data = data
	}
	return l, nil
}

// Free returns every buffer's storage to the owning allocator and drops
// the list's references. Buffers without storage are skipped. Calling
// Free on a borrowed view or a list that was already freed is a no-op.
func (l *List) Free() {
	if l == nil || l.owner == nil {
		return
	}
	a := l.owner
	l.owner = nil
	releaseBuffers(a, l.Buffers)
	l.Buffers = nil
}

// releaseBuffers hands every non-nil Data slice in buffers back to a.
func releaseBuffers(a Allocator, buffers []Buffer) {
	for i := range buffers {
		if buffers[i].Data != nil {
			a.Free(buffers[i].Data)
			buffers[i].Data = nil
		}
	}
}
