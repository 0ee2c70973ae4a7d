// ABOUTME: FLAC audio decoder
// ABOUTME: Parses FLAC streams frame by frame into buffer lists
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/mewkiz/flac"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct {
	header []byte
	out    audio.Format
}

// NewFLAC creates a new FLAC decoder. A codec header carried by the
// format is prepended to every chunk, so a stream header delivered out
// of band works with per-chunk frame data.
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	out := format
	out.Codec = "pcm"
	out.Interleaved = true
	out.BytesPerFrame = format.Channels * format.BitDepth / 8
	return &FLACDecoder{header: format.CodecHeader, out: out}, nil
}

// Decode parses a FLAC stream and converts every audio frame. The
// stream's own sample rate, channel count, and bit depth override the
// declared format.
func (d *FLACDecoder) Decode(data []byte) (*abl.List, error) {
	var r io.Reader = bytes.NewReader(data)
	if len(d.header) > 0 {
		r = io.MultiReader(bytes.NewReader(d.header), bytes.NewReader(data))
	}

	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}
	defer stream.Close()

	d.out.SampleRate = int(stream.Info.SampleRate)
	d.out.Channels = int(stream.Info.NChannels)
	d.out.BitDepth = int(stream.Info.BitsPerSample)
	d.out.BytesPerFrame = d.out.Channels * d.out.BitDepth / 8
	if d.out.BitDepth != 16 && d.out.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", d.out.BitDepth)
	}

	var pcm bytes.Buffer
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse flac frame: %w", err)
		}

		frames := len(f.Subframes[0].Samples)
		for i := 0; i < frames; i++ {
			for _, sub := range f.Subframes {
				s := sub.Samples[i]
				if d.out.BitDepth == 24 {
					b := audio.SampleTo24Bit(s)
					pcm.Write(b[:])
				} else {
					pcm.WriteByte(byte(s))
					pcm.WriteByte(byte(s >> 8))
				}
			}
		}
	}

	frames := pcm.Len() / d.out.BytesPerFrame
	l, err := abl.Alloc(d.out, frames)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %d frames: %w", frames, err)
	}
	if frames > 0 {
		copy(l.Buffers[0].Data, pcm.Bytes()[:frames*d.out.BytesPerFrame])
	}
	return l, nil
}

// Output reports the stream layout; fields reflect the most recently
// decoded stream.
func (d *FLACDecoder) Output() audio.Format {
	return d.out
}

// Close releases decoder resources
func (d *FLACDecoder) Close() error {
	return nil
}
