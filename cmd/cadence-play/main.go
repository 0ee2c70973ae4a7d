// ABOUTME: Entry point for the Cadence player CLI
// ABOUTME: Parses flags, builds the engine pipeline, and runs playback
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Cadence-Audio/cadence-go/internal/config"
	"github.com/Cadence-Audio/cadence-go/internal/engine"
	"github.com/Cadence-Audio/cadence-go/internal/ui"
	"github.com/Cadence-Audio/cadence-go/internal/version"
	"github.com/Cadence-Audio/cadence-go/pkg/audio"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/abl"
	"github.com/Cadence-Audio/cadence-go/pkg/audio/output"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	filePath   = flag.String("file", "", "Audio file to play (.mp3 or .flac; default: test tone)")
	toneFreq   = flag.Float64("tone-freq", 440.0, "Test tone frequency in Hz")
	configPath = flag.String("config", "", "YAML config file path")
	backend    = flag.String("backend", "oto", "Output backend (oto, malgo, portaudio, null)")
	volume     = flag.Int("volume", 100, "Initial volume (0-100)")
	sampleRate = flag.Int("sample-rate", 48000, "Output sample rate in Hz")
	channels   = flag.Int("channels", 2, "Output channel count")
	bitDepth   = flag.Int("bit-depth", 16, "Output bit depth (16 or 24)")
	logFile    = flag.String("log-file", "cadence-play.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	// Config file first, explicit flags on top
	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	applyFlags(&cfg)

	if !useTUI {
		log.Printf("Starting %s v%s", version.Product, version.Version)
		log.Printf("TUI disabled - logging to file for debugging")
	}

	var format audio.Format
	switch cfg.BitDepth {
	case 24:
		format = audio.PCM24(cfg.SampleRate, cfg.Channels, true)
	default:
		format = audio.PCM16(cfg.SampleRate, cfg.Channels, true)
	}

	out, err := output.New(cfg.Backend)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if vc, ok := out.(output.VolumeController); ok {
		vc.SetVolume(cfg.Volume)
	}

	eng, err := engine.New(engine.Config{
		Format:        format,
		FrameDuration: cfg.FrameDuration,
		Output:        out,
		Allocator:     buildAllocator(cfg),
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	// TUI setup
	var tuiProg *tea.Program
	var volumeCtrl *ui.VolumeControl

	if useTUI {
		volumeCtrl = ui.NewVolumeControl()
		tuiProg, err = ui.Run(volumeCtrl)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go tuiProg.Run()
	}

	// Helper to update TUI
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	// Build the source, then conform it to the engine format
	var src engine.Source
	if *filePath == "" {
		src, err = engine.NewTone(format, *toneFreq)
	} else {
		src, err = engine.NewSource(*filePath, format)
	}
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	src, err = engine.Conform(src, format)
	if err != nil {
		log.Fatalf("Failed to conform source: %v", err)
	}

	if _, err := eng.AddSource(src); err != nil {
		log.Fatalf("Failed to add source: %v", err)
	}

	title, artist, album := src.Metadata()
	initialVolume := cfg.Volume
	updateTUI(ui.StatusMsg{
		Backend:    cfg.Backend,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		BitDepth:   format.BitDepth,
		Title:      title,
		Artist:     artist,
		Album:      album,
		Volume:     &initialVolume,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engErr := make(chan error, 1)
	go func() {
		engErr <- eng.Run(ctx)
	}()

	// Start volume control handler if TUI is enabled
	if volumeCtrl != nil {
		go handleVolumeControl(ctx, out, volumeCtrl)
	}

	// Start stats update loop for TUI
	if tuiProg != nil {
		go statsUpdateLoop(ctx, eng, updateTUI)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Receiving on a nil channel blocks forever, so the TUI quit case
	// only fires when the TUI is running
	var quit chan ui.QuitMsg
	if volumeCtrl != nil {
		quit = volumeCtrl.Quit
	}

	select {
	case <-quit:
		log.Printf("Received quit signal from TUI")
		cancel()
		<-engErr
	case <-sigChan:
		log.Printf("Shutdown signal received")
		cancel()
		<-engErr
	case err := <-engErr:
		if err != nil {
			log.Printf("Engine stopped: %v", err)
		}
	}

	log.Printf("Player stopped")
}

// applyFlags overrides config values with flags the user set explicitly
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "volume":
			cfg.Volume = *volume
		case "sample-rate":
			cfg.SampleRate = *sampleRate
		case "channels":
			cfg.Channels = *channels
		case "bit-depth":
			cfg.BitDepth = *bitDepth
		}
	})
}

func buildAllocator(cfg config.Config) abl.Allocator {
	switch cfg.Allocator {
	case "pool":
		return abl.NewPoolAllocator(cfg.PoolPerClass)
	case "limit":
		return abl.NewLimitAllocator(abl.GoAllocator{}, cfg.BudgetBytes)
	default:
		return abl.DefaultAllocator
	}
}

// handleVolumeControl processes volume changes from TUI
func handleVolumeControl(ctx context.Context, out output.Output, volumeCtrl *ui.VolumeControl) {
	vc, ok := out.(output.VolumeController)
	for {
		select {
		case vol := <-volumeCtrl.Changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			if ok {
				vc.SetVolume(vol.Volume)
				vc.SetMuted(vol.Muted)
			}
		case <-ctx.Done():
			return
		}
	}
}

// statsUpdateLoop periodically updates TUI with playback statistics
func statsUpdateLoop(ctx context.Context, eng *engine.Engine, updateTUI func(ui.StatusMsg)) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// Use a slower ticker for expensive runtime stats to avoid GC pauses
	runtimeStatsTicker := time.NewTicker(2 * time.Second)
	defer runtimeStatsTicker.Stop()

	var lastGoroutines int
	var lastMemAlloc, lastMemSys uint64

	for {
		select {
		case <-runtimeStatsTicker.C:
			// Collect runtime stats less frequently (every 2 seconds)
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			lastGoroutines = runtime.NumGoroutine()
			lastMemAlloc = m.Alloc
			lastMemSys = m.Sys

		case <-ticker.C:
			stats := eng.Stats()
			updateTUI(ui.StatusMsg{
				Cycles:     stats.Cycles,
				Frames:     stats.Frames,
				Underruns:  stats.Underruns,
				Sources:    stats.Sources,
				Goroutines: lastGoroutines,
				MemAlloc:   lastMemAlloc,
				MemSys:     lastMemSys,
			})

		case <-ctx.Done():
			return
		}
	}
}
