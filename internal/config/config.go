package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Dispatch   DispatchConfig   `toml:"dispatch"`
	Assets     AssetsConfig     `toml:"assets"`
	Player     PlayerConfig     `toml:"player"`
	Combat     CombatConfig     `toml:"combat"`
	Enemy      EnemyConfig      `toml:"enemy"`
	Physics    PhysicsConfig    `toml:"physics"`
	Camera     CameraConfig     `toml:"camera"`
	TileMap    TileMapConfig    `toml:"tilemap"`
	Logging    LoggingConfig    `toml:"logging"`
	Profile    ProfileConfig    `toml:"profile"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type SimulationConfig struct {
	Seed     uint64        `toml:"seed"`      // 0 = seed from wall clock
	MaxDelta time.Duration `toml:"max_delta"` // frame dt is clamped to this
}

type DispatchConfig struct {
	Mode    string `toml:"mode"` // "sequential" or "parallel"
	Workers int    `toml:"workers"`
}

type AssetsConfig struct {
	Atlases    string `toml:"atlases"`
	Enemies    string `toml:"enemies"`
	ImageDir   string `toml:"image_dir"`
	ScriptsDir string `toml:"scripts_dir"`
}

type PlayerConfig struct {
	Speed  float32 `toml:"speed"` // world units per second
	StartX float32 `toml:"start_x"`
	StartY float32 `toml:"start_y"`
	Atlas  string  `toml:"atlas"`
}

type CombatConfig struct {
	ProjectileSpeed float32 `toml:"projectile_speed"`
	Duration        float32 `toml:"duration"` // seconds
	Atlas           string  `toml:"atlas"`
	UVWidth         float32 `toml:"uv_width"`
	UVHeight        float32 `toml:"uv_height"`
}

type EnemyConfig struct {
	MeleeRange2     float32       `toml:"melee_range_sq"` // squared distance
	AggroRange2     float32       `toml:"aggro_range_sq"` // squared distance
	SpawnInterval   time.Duration `toml:"spawn_interval"`
	MaxAlive        int           `toml:"max_alive"`
	SpawnCenterX    float32       `toml:"spawn_center_x"`
	SpawnCenterY    float32       `toml:"spawn_center_y"`
	SpawnSpread     float32       `toml:"spawn_spread"`
	DefaultTemplate string        `toml:"default_template"`
}

type PhysicsConfig struct {
	Damping float32 `toml:"damping"` // fraction of penetration corrected per frame
}

type CameraConfig struct {
	Projection      string        `toml:"projection"` // "orthographic" or "perspective"
	OrthoHalfHeight float32       `toml:"ortho_half_height"`
	FOV             float32       `toml:"fov"` // degrees
	Near            float32       `toml:"near"`
	Far             float32       `toml:"far"`
	EyeY            float32       `toml:"eye_y"`
	EyeZ            float32       `toml:"eye_z"`
	ZoomStep        float32       `toml:"zoom_step"`
	ZoomDuration    time.Duration `toml:"zoom_duration"`
	MinZoom         float32       `toml:"min_zoom"`
	MaxZoom         float32       `toml:"max_zoom"`
}

type TileMapConfig struct {
	ChunkSize     float32 `toml:"chunk_size"` // chunk width in world units
	MapChunks     int     `toml:"map_chunks"` // chunks per side
	VisibleRadius int     `toml:"visible_radius"`
	Atlas         string  `toml:"atlas"`
	UVWidth       float32 `toml:"uv_width"`
	UVHeight      float32 `toml:"uv_height"`
	Variants      int     `toml:"variants"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file overrides it.
func Default() *Config {
	return defaults()
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Simulation.MaxDelta <= 0 {
		return fmt.Errorf("simulation.max_delta must be positive")
	}
	switch c.Dispatch.Mode {
	case "", "sequential", "parallel":
	default:
		return fmt.Errorf("unknown dispatch mode %q", c.Dispatch.Mode)
	}
	if c.Dispatch.Workers < 1 {
		return fmt.Errorf("dispatch.workers must be at least 1")
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player.speed must be positive")
	}
	if c.Combat.Duration <= 0 || c.Combat.ProjectileSpeed <= 0 {
		return fmt.Errorf("combat duration and projectile_speed must be positive")
	}
	if c.Enemy.MeleeRange2 <= 0 || c.Enemy.AggroRange2 < c.Enemy.MeleeRange2 {
		return fmt.Errorf("enemy ranges must satisfy 0 < melee_range_sq <= aggro_range_sq")
	}
	if c.Enemy.SpawnInterval <= 0 {
		return fmt.Errorf("enemy.spawn_interval must be positive")
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping > 1 {
		return fmt.Errorf("physics.damping must be in (0,1], got %v", c.Physics.Damping)
	}
	switch c.Camera.Projection {
	case "orthographic", "perspective":
	default:
		return fmt.Errorf("unknown camera projection %q", c.Camera.Projection)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera planes must satisfy 0 < near < far")
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		return fmt.Errorf("camera zoom bounds must satisfy 0 < min_zoom <= max_zoom")
	}
	if c.TileMap.ChunkSize <= 0 || c.TileMap.MapChunks <= 0 || c.TileMap.VisibleRadius <= 0 {
		return fmt.Errorf("tilemap sizes must be positive")
	}
	if cs := float64(c.TileMap.ChunkSize); cs != math.Trunc(cs) {
		return fmt.Errorf("tilemap.chunk_size must be a whole number of tiles, got %v", c.TileMap.ChunkSize)
	}
	if c.TileMap.Variants <= 0 {
		return fmt.Errorf("tilemap.variants must be positive")
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("unknown profile mode %q", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "isoarena",
			Width:  1280,
			Height: 720,
		},
		Simulation: SimulationConfig{
			MaxDelta: 100 * time.Millisecond,
		},
		Dispatch: DispatchConfig{
			Mode:    "sequential",
			Workers: 4,
		},
		Assets: AssetsConfig{
			Atlases:    "data/yaml/atlases.yaml",
			Enemies:    "data/yaml/enemies.yaml",
			ImageDir:   "assets",
			ScriptsDir: "scripts",
		},
		Player: PlayerConfig{
			Speed: 5,
			Atlas: "player",
		},
		Combat: CombatConfig{
			ProjectileSpeed: 5,
			Duration:        1.0,
			Atlas:           "projectiles",
			UVWidth:         0.125,
			UVHeight:        0.333333,
		},
		Enemy: EnemyConfig{
			MeleeRange2:     2.0,
			AggroRange2:     90.0,
			SpawnInterval:   2 * time.Second,
			MaxAlive:        32,
			SpawnCenterX:    20,
			SpawnCenterY:    2,
			SpawnSpread:     10,
			DefaultTemplate: "zombie",
		},
		Physics: PhysicsConfig{
			Damping: 0.1,
		},
		Camera: CameraConfig{
			Projection:      "orthographic",
			OrthoHalfHeight: 12,
			FOV:             45,
			Near:            0.1,
			Far:             100,
			EyeY:            2,
			EyeZ:            15,
			ZoomStep:        0.25,
			ZoomDuration:    250 * time.Millisecond,
			MinZoom:         0.5,
			MaxZoom:         3,
		},
		TileMap: TileMapConfig{
			ChunkSize:     16,
			MapChunks:     20,
			VisibleRadius: 3,
			Atlas:         "tiles",
			UVWidth:       0.02857,
			UVHeight:      0.024390,
			Variants:      4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
