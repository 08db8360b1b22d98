package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pasture/assets"
	"github.com/pthm-cable/pasture/audio"
	"github.com/pthm-cable/pasture/clock"
	"github.com/pthm-cable/pasture/config"
	"github.com/pthm-cable/pasture/game"
	"github.com/pthm-cable/pasture/minigame"
	"github.com/pthm-cable/pasture/notice"
	"github.com/pthm-cable/pasture/telemetry"
	"github.com/pthm-cable/pasture/tui"
	"github.com/pthm-cable/pasture/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("tui", false, "Draw the pasture in the terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	hour := flag.Int("hour", -1, "Pin the world clock to this hour (-1 = wall clock)")
	spritePath := flag.String("sprite", "", "PNG grazer sprite (empty = built-in)")
	mute := flag.Bool("mute", false, "Disable sound")
	logFile := flag.String("log-file", "", "Log file for -tui mode (empty = discard)")
	restorePath := flag.String("restore", "", "Snapshot file to resume from")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *mute {
		cfg.Audio.Enabled = false
	}

	// Set up slog (JSON to stdout for structured logging)
	closeLog, err := setupLogging(*terminal, *logFile)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var src clock.Source
	if *hour >= 0 {
		src = clock.FixedHour(*hour)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	sprite, err := assets.Sprite(*spritePath)
	if err != nil {
		// Grazers are skipped by the renderer without a sprite
		slog.Error("sprite unavailable", "error", err)
	}

	history := &telemetry.History{}
	hud := ui.NewHUD()
	counters := &tui.Counters{}
	notices := notice.New(cfg.Notice.Duration, cfg.Notice.Fade)

	// Build pasture options
	opts := game.Options{
		Config:        cfg,
		Seed:          rngSeed,
		Clock:         clock.New(src),
		Notifier:      notices,
		StatsWindow:   *statsWindow,
		LogStats:      *logStats,
		OutputManager: output,
		StatsCallback: history.Record,
	}
	switch {
	case *terminal:
		opts.Display = counters
	case !*headless:
		opts.Display = hud
	}

	pasture, err := newPasture(*restorePath, opts)
	if err != nil {
		slog.Error("failed to restore snapshot", "error", err)
		os.Exit(1)
	}

	switch {
	case *headless:
		runHeadless(pasture, history, rngSeed, *maxTicks, *stepsPerUpdate)

	case *terminal:
		view, err := tui.New(tui.Options{
			Pasture:  pasture,
			Counters: counters,
			Notices:  notices,
			Sprite:   sprite,
			MaxTicks: *maxTicks,
		})
		if err != nil {
			slog.Error("failed to start terminal view", "error", err)
			os.Exit(1)
		}
		view.Run()
		view.Close()

	default:
		runWindow(pasture, cfg, windowDeps{
			hud:            hud,
			notices:        notices,
			history:        history,
			output:         output,
			sprite:         sprite,
			seed:           rngSeed,
			maxTicks:       *maxTicks,
			stepsPerUpdate: *stepsPerUpdate,
		})
	}
}

// setupLogging installs the JSON logger. The terminal view owns stdout, so
// its logs go to a file or nowhere.
func setupLogging(terminal bool, path string) (func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}
	if terminal {
		w = io.Discard
		if path != "" {
			f, err := os.Create(path)
			if err != nil {
				return closeFn, fmt.Errorf("creating log file: %w", err)
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
	return closeFn, nil
}

// newPasture creates a fresh pasture, or resumes one when path is set.
func newPasture(path string, opts game.Options) (*game.Pasture, error) {
	if path == "" {
		return game.New(opts), nil
	}
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	slog.Info("restoring snapshot", "path", path, "tick", snap.Tick, "grazers", len(snap.Grazers))
	return game.Restore(snap, opts)
}

// runHeadless steps the pasture without graphics and prints activity
// charts when the run ends.
func runHeadless(p *game.Pasture, history *telemetry.History, seed int64, maxTicks, stepsPerUpdate int) {
	stepsPerUpdate = max(stepsPerUpdate, 1)
	slog.Info("starting headless simulation",
		"seed", seed,
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)

	for {
		p.StepN(stepsPerUpdate)

		if maxTicks > 0 && int(p.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", p.Tick())
			break
		}
	}

	for _, s := range []int{telemetry.SeriesGrazers, telemetry.SeriesGrazingFraction, telemetry.SeriesJumps} {
		if chart := history.Chart(s, 60, 8); chart != "" {
			fmt.Fprintf(os.Stderr, "\n%s\n", chart)
		}
	}
}

type windowDeps struct {
	hud            *ui.HUD
	notices        *notice.Board
	history        *telemetry.History
	output         *telemetry.OutputManager
	sprite         image.Image
	seed           int64
	maxTicks       int
	stepsPerUpdate int
}

// runWindow opens the raylib window with the Feed-a-Cow game and sound.
func runWindow(p *game.Pasture, cfg *config.Config, deps windowDeps) {
	scale := cfg.Screen.Scale
	if scale < 1 {
		scale = 1
	}
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width*scale), int32(cfg.Screen.Height*scale), "Pixel Pasture")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Esc clears the inspector selection instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	sound := audio.NewSoundManager(cfg.Audio)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the game runs muted
		slog.Warn("audio unavailable", "error", err)
	}
	defer sound.Cleanup()

	feed := minigame.New(minigame.Options{
		Config:   cfg.Minigame,
		Rand:     rand.New(rand.NewSource(deps.seed)),
		Store:    minigame.NewHighScoreStore(cfg.Minigame.HighScorePath),
		Sound:    sound,
		Notifier: deps.notices,
	})

	app := ui.NewApp(ui.AppOptions{
		Title:          "Pixel Pasture",
		Pasture:        p,
		HUD:            deps.hud,
		Notices:        deps.notices,
		Minigame:       feed,
		History:        deps.history,
		Output:         deps.output,
		Sprite:         deps.sprite,
		StepsPerUpdate: deps.stepsPerUpdate,
	})
	defer app.Unload()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if deps.maxTicks > 0 && int(p.Tick()) >= deps.maxTicks {
			break
		}
	}
}
