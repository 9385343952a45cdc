package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[log]
level = "debug"

[capture]
width = 320
max_depth = 4.5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Log.Level = "debug"
	want.Capture.Width = 320
	want.Capture.MaxDepth = 4.5
	if cfg != want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := LoadConfig(writeConfig(t, dir, "[log\nlevel=")); err == nil {
		t.Error("malformed TOML accepted")
	}
	if _, err := LoadConfig(writeConfig(t, dir, "[capture]\nmin_depth = 5.0\nmax_depth = 1.0\n")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty depth range: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"upper case level", func(c *Config) { c.Log.Level = "WARN" }, false},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative capacity", func(c *Config) { c.Registry.InitialCapacity = -1 }, true},
		{"zero capacity", func(c *Config) { c.Registry.InitialCapacity = 0 }, false},
		{"zero width", func(c *Config) { c.Capture.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Capture.Height = -10 }, true},
		{"negative min depth", func(c *Config) { c.Capture.MinDepth = -1 }, true},
		{"empty depth range", func(c *Config) { c.Capture.MaxDepth = c.Capture.MinDepth }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Validate = %v, want invalid argument", err)
			}
		})
	}
}

func TestConfigApplySetsLogLevel(t *testing.T) {
	defer SetLogLevel(GetLogLevel())

	cfg := DefaultConfig()
	cfg.Log.Level = "error"
	if err := cfg.Apply(); err != nil {
		t.Fatal(err)
	}
	if GetLogLevel() != ErrorLevel {
		t.Errorf("level = %s, want error", GetLogLevel())
	}
}
