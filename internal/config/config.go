// ABOUTME: Engine configuration with YAML file support
// ABOUTME: Defaults first, file values applied with validation on top
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultSampleRate = 48000
	defaultChannels   = 2
	defaultBitDepth   = 16
	defaultFrameMs    = 20
	defaultBackend    = "oto"
	defaultVolume     = 100
	defaultAllocator  = "go"
	defaultPerClass   = 8
)

// Config carries the settings the player engine starts from. Zero is
// never a valid value here; use Default or LoadConfig.
type Config struct {
	SampleRate    int
	Channels      int
	BitDepth      int
	FrameDuration time.Duration

	Backend string
	Volume  int

	Allocator    string // "go", "pool", or "limit"
	PoolPerClass int
	BudgetBytes  int
}

type yamlConfig struct {
	Audio struct {
		SampleRate int `yaml:"sample_rate"`
		Channels   int `yaml:"channels"`
		BitDepth   int `yaml:"bit_depth"`
		FrameMs    int `yaml:"frame_ms"`
	} `yaml:"audio"`
	Output struct {
		Backend string `yaml:"backend"`
		Volume  int    `yaml:"volume"`
	} `yaml:"output"`
	Allocator struct {
		Kind         string `yaml:"kind"`
		PoolPerClass int    `yaml:"pool_per_class"`
		BudgetBytes  int    `yaml:"budget_bytes"`
	} `yaml:"allocator"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SampleRate:    defaultSampleRate,
		Channels:      defaultChannels,
		BitDepth:      defaultBitDepth,
		FrameDuration: defaultFrameMs * time.Millisecond,
		Backend:       defaultBackend,
		Volume:        defaultVolume,
		Allocator:     defaultAllocator,
		PoolPerClass:  defaultPerClass,
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Audio
	if yc.Audio.SampleRate > 0 {
		cfg.SampleRate = yc.Audio.SampleRate
	}
	if yc.Audio.Channels > 0 {
		cfg.Channels = yc.Audio.Channels
	}
	if cfg.Channels > 8 {
		return Config{}, fmt.Errorf("audio.channels must be between 1 and 8, got %d", cfg.Channels)
	}
	if yc.Audio.BitDepth > 0 {
		cfg.BitDepth = yc.Audio.BitDepth
	}
	if cfg.BitDepth != 16 && cfg.BitDepth != 24 {
		return Config{}, fmt.Errorf("audio.bit_depth must be 16 or 24, got %d", cfg.BitDepth)
	}
	if yc.Audio.FrameMs > 0 {
		cfg.FrameDuration = time.Duration(yc.Audio.FrameMs) * time.Millisecond
	}

	// Output
	if yc.Output.Backend != "" {
		cfg.Backend = yc.Output.Backend
	}
	switch cfg.Backend {
	case "oto", "malgo", "portaudio", "null":
	default:
		return Config{}, fmt.Errorf("output.backend must be one of oto, malgo, portaudio, null, got %q", cfg.Backend)
	}
	if yc.Output.Volume > 0 {
		cfg.Volume = yc.Output.Volume
	}
	if cfg.Volume > 100 {
		return Config{}, fmt.Errorf("output.volume must be between 0 and 100, got %d", cfg.Volume)
	}

	// Allocator
	if yc.Allocator.Kind != "" {
		cfg.Allocator = yc.Allocator.Kind
	}
	switch cfg.Allocator {
	case "go", "pool", "limit":
	default:
		return Config{}, fmt.Errorf("allocator.kind must be one of go, pool, limit, got %q", cfg.Allocator)
	}
	if yc.Allocator.PoolPerClass > 0 {
		cfg.PoolPerClass = yc.Allocator.PoolPerClass
	}
	if yc.Allocator.BudgetBytes > 0 {
		cfg.BudgetBytes = yc.Allocator.BudgetBytes
	}
	if cfg.Allocator == "limit" && cfg.BudgetBytes <= 0 {
		return Config{}, fmt.Errorf("allocator.budget_bytes is required when allocator.kind is limit")
	}

	return cfg, nil
}
