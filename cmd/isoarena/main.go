package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/isoarena/game/internal/app"
	"github.com/isoarena/game/internal/config"
	"github.com/isoarena/game/internal/data"
	"github.com/isoarena/game/internal/render"
	"github.com/isoarena/game/internal/render/ebitenbackend"
	"github.com/isoarena/game/internal/scripting"
	"github.com/isoarena/game/internal/system"
	"github.com/isoarena/game/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string, width, height int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              isoarena  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        isometric arena · ECS frame loop   \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mwindow:\033[0m %s \033[90m(%dx%d)\033[0m\n\n", title, width, height)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("ISOARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile, log); stop != nil {
		defer stop()
	}

	printBanner(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	// 3. Load atlas and enemy tables
	printSection("data")

	atlases, err := data.LoadAtlasTable(cfg.Assets.Atlases)
	if err != nil {
		return fmt.Errorf("load atlas table: %w", err)
	}
	printStat("atlases", atlases.Count())

	enemies, err := data.LoadEnemyTable(cfg.Assets.Enemies, atlases)
	if err != nil {
		return fmt.Errorf("load enemy table: %w", err)
	}
	printStat("enemy templates", enemies.Count())

	images := make(map[string]string, atlases.Count())
	for _, name := range atlases.Names() {
		images[name] = atlases.Get(name).Image
	}
	textures, err := ebitenbackend.NewTextures(cfg.Assets.ImageDir, images)
	if err != nil {
		return fmt.Errorf("load textures: %w", err)
	}
	printOK("textures registered")

	// 4. Lua spawn scripts
	luaEngine, err := scripting.NewEngine(cfg.Assets.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	var policy system.SpawnPolicy = system.DefaultSpawnPolicy{
		Template: cfg.Enemy.DefaultTemplate,
		Interval: cfg.Enemy.SpawnInterval.Seconds(),
	}
	if luaEngine.HasFunction("next_spawn") {
		policy = system.NewScriptedSpawnPolicy(luaEngine, policy, log)
		printOK("lua spawn script loaded")
	} else {
		printOK("using fixed spawn interval")
	}
	fmt.Println()

	// 5. World state
	printSection("world")

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := world.NewRand(seed)
	cam, err := world.NewCamera(cfg.Camera, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	tiles := world.NewTileMapStorage(cfg.TileMap, rng)
	state := world.NewState(log, rng, cam, tiles)
	printStat("tile chunks", tiles.ChunkCount())

	factory, err := system.NewFactory(state, atlases, enemies, cfg)
	if err != nil {
		return fmt.Errorf("entity factory: %w", err)
	}
	if _, err := factory.SpawnPlayer(mgl32.Vec2{cfg.Player.StartX, cfg.Player.StartY}); err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}
	printOK("player spawned")

	// 6. Renderer and systems
	backend := ebitenbackend.New(textures, log)
	resources := render.NewResourceManager(backend, state.Bus, log)
	if err := system.RegisterAtlases(resources, atlases); err != nil {
		return fmt.Errorf("register atlases: %w", err)
	}
	renderer := render.NewRenderer(backend, resources, log)
	renderer.Resize(cfg.Window.Width, cfg.Window.Height)

	frame, err := system.NewFrame(system.FrameDeps{
		State:     state,
		Factory:   factory,
		Policy:    policy,
		Resources: resources,
		Renderer:  renderer,
		Config:    cfg,
		Log:       log,
	})
	if err != nil {
		return err
	}
	fmt.Println()

	// 7. Run the window loop
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	printSection("ready")
	printReady(fmt.Sprintf("seed %d", seed))
	printReady(fmt.Sprintf("dispatch %s (%s)", cfg.Dispatch.Mode, strings.Join(frame.Order(), " → ")))
	fmt.Println()

	err = ebiten.RunGame(app.NewGame(frame, backend, log))
	stats := frame.Stats()
	log.Info("game stopped",
		zap.Uint64("frames", stats.Frames),
		zap.Int("entities", stats.Entities),
		zap.Int("projectiles", stats.Projectiles),
		zap.Int("enemies_spawned", stats.EnemiesSpawned))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// startProfile starts a pkg/profile session when configured and returns
// its stop function.
func startProfile(cfg config.ProfileConfig, log *zap.Logger) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		log.Warn("unknown profile mode, profiling disabled", zap.String("mode", cfg.Mode))
		return nil
	}
	opts := []func(*profile.Profile){mode, profile.NoShutdownHook, profile.Quiet}
	if cfg.Path != "" {
		opts = append(opts, profile.ProfilePath(cfg.Path))
	}
	p := profile.Start(opts...)
	log.Info("profiling enabled", zap.String("mode", cfg.Mode), zap.String("path", cfg.Path))
	return p.Stop
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
