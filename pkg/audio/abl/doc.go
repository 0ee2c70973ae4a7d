// ABOUTME: Package documentation for the buffer list container
// ABOUTME: Describes ownership, layout rules, and allocator wiring
/*
Package abl implements the multi-channel audio buffer list that Cadence
components hand to each other: decoders fill one, the engine mixes into
one, outputs drain one.

A List holds one Buffer per channel for non-interleaved formats, or a
single Buffer carrying every channel for interleaved formats. The layout
is decided by the audio.Format passed at construction and the same
Format must accompany later queries.

Lists come in two flavors. Owned lists are produced by Alloc and Copy,
carry a reference to the Allocator that produced them, and must be
released exactly once with Free:

	f := audio.PCM16(48000, 2, false)
	l, err := abl.Alloc(f, 512)
	if err != nil {
		return err
	}
	defer l.Free()
	l.Silence()

Views are produced by InitInPlace and NewView over caller-owned storage.
They borrow, never own; Free on a view is a no-op:

	v := abl.NewView(f, pcm)
	frames, channels := abl.NumFrames(v, f)

Storage comes from an Allocator. The default is the Go heap; a
PoolAllocator recycles buffers across render cycles, and a
LimitAllocator enforces a byte budget and makes allocation failure a
recoverable error:

	pool := abl.NewPoolAllocator(32)
	l, err := abl.AllocIn(abl.NewLimitAllocator(pool, 1<<20), f, 512)
	if errors.Is(err, abl.ErrBudgetExceeded) {
		// shed load
	}

Freshly allocated storage has unspecified contents; call Silence before
mixing into a buffer for the first time.

All List operations are synchronous and unsynchronized. Allocators are
safe for concurrent use; the Lists they hand out are not.
*/
package abl
