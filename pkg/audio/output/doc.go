// ABOUTME: Package documentation for audio output backends
// ABOUTME: Describes the Output interface and available implementations

/*
Package output provides audio playback backends that consume buffer lists.

An Output is opened with a format, fed interleaved buffer lists with
Write, and released with Close:

	out, err := output.New("oto")
	if err != nil {
		log.Fatal(err)
	}
	if err := out.Open(audio.PCM16(48000, 2, true)); err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	out.Write(list)

Available backends:

  - "oto": cross-platform playback via the oto library
  - "malgo": miniaudio-based playback with device selection
  - "portaudio": PortAudio playback (requires the portaudio build tag)
  - "null": discards audio while counting frames, for testing

Backends that support volume adjustment also implement VolumeController.
Write blocks until the backend has consumed the list's bytes, so the
caller may free or reuse the list as soon as Write returns.
*/
package output
