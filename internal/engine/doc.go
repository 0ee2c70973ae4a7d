// ABOUTME: Package documentation for the render engine
// ABOUTME: Describes sources, conversion wrappers, and the mix loop

/*
Package engine hosts playback: sources render audio into buffer lists,
the engine mixes them once per cycle and hands the mix to an output
backend.

	out, _ := output.New("oto")
	e, err := engine.New(engine.Config{
		Format: audio.PCM16(48000, 2, true),
		Output: out,
	})
	if err != nil {
		log.Fatal(err)
	}

	src, _ := engine.NewSource("song.mp3", e.Format())
	conformed, _ := engine.Conform(src, e.Format())
	e.AddSource(conformed)

	e.Run(ctx) // blocks until ctx is cancelled

Sources render in their native format; Conform inserts bit depth and
sample rate conversion stages so the engine only ever sees its own
format. The render loop reuses one mix list and one scratch list for
its whole life, so steady-state playback does not allocate.
*/
package engine
