package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
seed = 42
max_delta = "50ms"

[dispatch]
mode = "parallel"
workers = 2

[enemy]
spawn_interval = "3s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Simulation.Seed)
	}
	if cfg.Simulation.MaxDelta != 50*time.Millisecond {
		t.Errorf("max_delta = %v, want 50ms", cfg.Simulation.MaxDelta)
	}
	if cfg.Dispatch.Mode != "parallel" || cfg.Dispatch.Workers != 2 {
		t.Errorf("dispatch = %+v", cfg.Dispatch)
	}
	if cfg.Enemy.SpawnInterval != 3*time.Second {
		t.Errorf("spawn_interval = %v, want 3s", cfg.Enemy.SpawnInterval)
	}
	// untouched sections keep their defaults
	if cfg.Player.Speed != 5 {
		t.Errorf("player.speed = %v, want default 5", cfg.Player.Speed)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"dispatch", "[dispatch]\nmode = \"threads\"\n", "dispatch mode"},
		{"projection", "[camera]\nprojection = \"fisheye\"\n", "projection"},
		{"damping", "[physics]\ndamping = 0.0\n", "damping"},
		{"ranges", "[enemy]\nmelee_range_sq = 100.0\n", "enemy ranges"},
		{"chunk", "[tilemap]\nchunk_size = 12.5\n", "whole number"},
		{"syntax", "[window\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load succeeded on missing file")
	}
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../config/game.toml")
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Enemy != def.Enemy || cfg.Camera != def.Camera || cfg.TileMap != def.TileMap {
		t.Errorf("shipped config drifted from defaults:\n%+v\n%+v", cfg.Enemy, def.Enemy)
	}
	if cfg.Simulation.MaxDelta != 100*time.Millisecond {
		t.Errorf("max_delta = %v", cfg.Simulation.MaxDelta)
	}
}
