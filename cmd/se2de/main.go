package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/se2de/engine/internal/component"
	"github.com/se2de/engine/internal/config"
	"github.com/se2de/engine/internal/core/event"
	coresys "github.com/se2de/engine/internal/core/system"
	"github.com/se2de/engine/internal/data"
	"github.com/se2de/engine/internal/engine"
	"github.com/se2de/engine/internal/input"
	"github.com/se2de/engine/internal/persist"
	"github.com/se2de/engine/internal/platform"
	"github.com/se2de/engine/internal/render"
	"github.com/se2de/engine/internal/scripting"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(exitCode(run()))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, platform.ErrInterrupted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
		return exitInterrupted
	default:
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return exitError
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", name)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, cfg.ProgramName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.ProgramName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Scene source
	printSection("Scenes")
	src, closeSrc, err := openSceneSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSrc()
	cache, err := data.NewSceneCache(src, cfg.Scenes.CacheSize, log)
	if err != nil {
		return err
	}
	printOK(fmt.Sprintf("scene source: %s", cfg.Scenes.Source))

	// 4. Runtime, display and components
	flush, err := render.ParseColor(cfg.FlushColor)
	if err != nil {
		return fmt.Errorf("flush_color: %w", err)
	}
	width, height := cfg.ScreenSize[0], cfg.ScreenSize[1]
	backend, err := platform.NewBackend(width, height)
	if err != nil {
		return fmt.Errorf("render backend: %w", err)
	}
	rt := engine.NewRuntime(log, engine.WithDisplay(engine.Display{
		Backend:    backend,
		FlushColor: flush,
		Size:       backend.Screen().Size(),
	}))

	var scripts *scripting.Engine
	if cfg.Scripting.Enabled {
		scripts, err = scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer scripts.Close()
		printOK("Lua scripting ready")
	}
	reg := engine.NewRegistry()
	component.RegisterAll(reg, component.Deps{Scripts: scripts})
	printStat("component types", len(reg.Types()))

	loader := engine.NewLoader(rt, cache, reg, log)

	// 5. Quitting destroys the current scene.
	quit := rt.Bus().Listener(event.EventQuit, event.Bind(loader, "DestroyCurrent", loader.DestroyCurrent))
	quit.Listen()
	defer quit.Ignore()

	// 6. First scene
	s, err := loader.Load(ctx, cfg.FirstScene)
	if err != nil {
		return fmt.Errorf("load first scene: %w", err)
	}
	printStat("gameobjects in "+s.Name(), s.Len())

	// 7. Frame pipeline
	runner := coresys.NewRunner()
	runner.Register(input.NewSystem(rt, platform.NewPoller(), log))
	runner.Register(engine.NewSceneSystem(rt))

	printSection("Running")
	fmt.Println()
	game := platform.NewGame(rt, runner, backend, platform.Options{
		Title:      cfg.ProgramName,
		Width:      width,
		Height:     height,
		FrameRate:  cfg.FrameRate,
		FlushColor: flush,
	}, log)
	start := time.Now()
	err = game.Run(ctx)
	log.Info("frame loop stopped", zap.Duration("uptime", time.Since(start)))
	if err != nil {
		return err
	}
	return loader.DestroyCurrent()
}

// openSceneSource returns the configured scene source and a function
// releasing it.
func openSceneSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (data.Source, func(), error) {
	switch cfg.Scenes.Source {
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err := persist.Open(connectCtx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		if err := db.Migrate(connectCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return persist.NewSceneRepo(db), db.Close, nil
	default:
		return data.DirSource{
			Dir:      cfg.Scenes.Dir,
			Ext:      cfg.Scenes.Extension,
			Encoding: cfg.Scenes.Encoding,
		}, func() {}, nil
	}
}

// newLogger builds the engine logger. Console output is tuned for watching
// a running game; json carries the program name on every entry. Debug level
// turns on caller annotations so hook failures point at their component.
func newLogger(cfg config.LoggingConfig, program string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.InitialFields = map[string]any{"program": program}
	case "console", "":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = level > zapcore.DebugLevel
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("logging format %q: want console or json", cfg.Format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
