package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/app"
	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Sokoban",
	Long: `Start the game at the main menu, or directly at a level with --level.

Controls:
  Arrows/WASD  - Move and push
  U/Z          - Undo last move
  R            - Restart level
  P/Esc        - Pause
  M            - Main menu
  Enter        - Next level (after completing one)
  Q            - Quit from the menu
  Ctrl+C       - Quit immediately
  Ctrl+S       - Save a text screenshot

Examples:
  sokoban play
  sokoban play --level 3
  sokoban play --levels ./my-levels --watch
  sokoban play --no-animations --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info("starting", "config", source)

	cat, dir, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	if flagLevel < 0 || flagLevel > cat.Count() {
		return fmt.Errorf("level %d out of range, the catalog has %d levels", flagLevel, cat.Count())
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	engine := audio.NewEngine(cfg.AudioSettings(), logger.WithPrefix("audio"))
	if err := engine.Start(); err != nil {
		logger.Warn("audio unavailable, continuing silently", "error", err)
	}
	defer engine.Stop()

	game := app.New(cat, app.Options{
		Settings: cfg.ScreenSettings(),
		Audio:    engine,
		Records:  records(store),
		Logger:   logger,
	})
	if flagLevel > 0 && !game.StartAt(flagLevel-1) {
		return fmt.Errorf("cannot start level %d", flagLevel)
	}

	opts := tui.Options{
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		TickRate:   cfg.TickRate(),
		Render:     cfg.RenderOptions(),
		Logger:     logger,
	}
	// Size the first frame to the terminal; resize events follow
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts.InitialWidth, opts.InitialHeight = w, h
	}
	if home, homeErr := os.UserHomeDir(); homeErr == nil {
		opts.ScreenshotDir = filepath.Join(home, ".sokoban", "screenshots")
	}

	if cfg.Levels.Watch {
		watcher, werr := catalog.NewWatcher(dir)
		if werr != nil {
			logger.Warn("level watching disabled", "error", werr)
		} else {
			defer watcher.Close()
			opts.Changes = watcher
			logger.Info("watching level files", "dir", dir)
		}
	}

	if err := tui.Run(game, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
