// ABOUTME: Package documentation for sample rate conversion
// ABOUTME: Describes the List-based streaming resampler

/*
Package resample converts audio buffer lists between sample rates.

The conversion runs through a pure Go polyphase resampler, so output
quality matches dedicated rate converters without CGO. Input and output
are interleaved 16-bit buffer lists; each Process call returns a fresh
owned list the caller must free.

	r, err := resample.New(audio.PCM16(44100, 2, true), 48000)
	if err != nil {
		log.Fatal(err)
	}
	converted, err := r.Process(list)
	if err != nil {
		log.Fatal(err)
	}
	defer converted.Free()

A streaming resampler holds filter state between calls, so the frame
count of one output list need not match its input; call Flush at end of
stream to drain the remainder. When the input and output rates already
match, New returns a passthrough whose Process deep-copies the list.
*/
package resample
