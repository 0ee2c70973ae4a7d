// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for PCM, Opus, MP3, FLAC, G.711
// Package decode turns encoded audio chunks into buffer lists.
//
// Supports: PCM (16-bit and 24-bit), Opus, MP3, FLAC, G.711 (mu-law
// and A-law)
//
// All decoders implement the Decoder interface and produce owned,
// interleaved lists; Output reports the exact layout.
//
// Example:
//
//	decoder, err := decode.New(format)
//	l, err := decoder.Decode(chunk)
//	defer l.Free()
package decode
