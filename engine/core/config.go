package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration of the demo binary and of the
// systems it builds.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Registry RegistryConfig `toml:"registry"`
	Capture  CaptureConfig  `toml:"capture"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `toml:"level"`
}

type RegistryConfig struct {
	// InitialCapacity preallocates record storage. It is not a limit.
	InitialCapacity int `toml:"initial_capacity"`
	// DebugChecks enables the optional contract checker on Register.
	DebugChecks bool `toml:"debug_checks"`
}

type CaptureConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// MinDepth and MaxDepth are the sensing range, in metres.
	MinDepth float32 `toml:"min_depth"`
	MaxDepth float32 `toml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Registry: RegistryConfig{
			InitialCapacity: 64,
		},
		Capture: CaptureConfig{
			Width:    640,
			Height:   480,
			MinDepth: 0.1,
			MaxDepth: 10.0,
		},
	}
}

// LoadConfig reads path on top of DefaultConfig, so a file only needs the
// keys it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Registry.InitialCapacity < 0 {
		return fmt.Errorf("%w: registry.initial_capacity must be >= 0, got %d", ErrInvalidArgument, c.Registry.InitialCapacity)
	}
	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		return fmt.Errorf("%w: capture size must be positive, got %dx%d", ErrInvalidArgument, c.Capture.Width, c.Capture.Height)
	}
	if c.Capture.MinDepth < 0 || c.Capture.MaxDepth <= c.Capture.MinDepth {
		return fmt.Errorf("%w: capture depth range [%g, %g] is empty", ErrInvalidArgument, c.Capture.MinDepth, c.Capture.MaxDepth)
	}
	return nil
}

// Apply pushes the ambient parts of the configuration (currently just the
// log level) into the process.
func (c Config) Apply() error {
	lvl, err := ParseLogLevel(c.Log.Level)
	if err != nil {
		return err
	}
	SetLogLevel(lvl)
	return nil
}
