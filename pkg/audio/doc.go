// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines the Format descriptor and sample conversion functions
// Package audio provides fundamental audio types and utilities for the
// Cadence engine.
//
// This package defines the format descriptor used throughout the library:
//   - Format: Describes sample encoding and buffer layout (codec, sample
//     rate, channels, bit depth, frame stride, interleaving)
//
// It also provides utilities for converting between different sample widths:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	format := audio.PCM16(48000, 2, true)
//
//	// A non-interleaved variant splits each channel into its own buffer
//	planar := audio.PCM24(192000, 2, false)
//
//	// Convert 16-bit sample to 24-bit range
//	sample24 := audio.SampleFromInt16(sample16)
package audio
