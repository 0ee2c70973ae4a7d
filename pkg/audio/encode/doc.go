// ABOUTME: Audio encoder package for serializing buffer lists
// ABOUTME: Provides Encoder interface and implementations for PCM, Opus, G.711
// Package encode serializes buffer lists into encoded audio bytes.
//
// Supports: PCM (16-bit and 24-bit), Opus, G.711 (mu-law and A-law)
//
// All encoders accept owned or borrowed interleaved lists; Input
// reports the expected layout.
//
// Example:
//
//	encoder, err := encode.New(format)
//	data, err := encoder.Encode(l)
package encode
