// ABOUTME: Borrowed view initialization over caller-owned storage
// ABOUTME: Populates descriptor slots pointing into an external data region
package abl

import (
	"fmt"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
)

// InitInPlace populates l as a borrowed view over caller-owned data,
// without allocating or taking ownership. The caller supplies the
// descriptor slots; slots must hold at least BufferCount(f) entries, and
// violating that is a caller contract violation that panics. The data
// region is split evenly across the buffers: each buffer records
// len(data)/count bytes and points at its offset within data. Bytes left
// over by the integer division are not covered by any buffer.
//
// A view is never released through this package; Free on it is a no-op
// and ownership of data stays with the caller.
func InitInPlace(l *List, slots []Buffer, f audio.Format, data []byte) {
	count := f.BufferCount()
	if len(slots) < count {
		panic(fmt.Sprintf("abl: %d descriptor slots supplied, need %d", len(slots), count))
	}
	channels := f.ChannelsPerBuffer()
	per := len(data) / count

	l.owner = nil
	l.Buffers = slots[:count]
	for i := 0; i < count; i++ {
		l.Buffers[i] = Buffer{
			Channels: channels,
			ByteSize: per,
			Data:     data[i*per : (i+1)*per],
		}
	}
}

// NewView builds a borrowed view over data, allocating the descriptor
// slots on the Go heap. Like InitInPlace it never takes ownership of
// data and the result must not be freed through this package.
func NewView(f audio.Format, data []byte) *List {
	l := &List{}
	InitInPlace(l, make([]Buffer, f.BufferCount()), f, data)
	return l
}
