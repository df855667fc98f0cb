// sokoban is a box-pushing puzzle game for the terminal.
//
// Usage:
//
//	sokoban                  - Play, starting at the main menu
//	sokoban play --level 3   - Play, starting at level 3
//	sokoban levels           - List the level catalog
//	sokoban results [level]  - Show best results
//	sokoban serve            - Start SSH server for remote play
//	sokoban config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Configuration file
//	--levels <dir>    - Level directory (default: ~/.sokoban/levels)
//	--db <path>       - Results database (default: ~/.sokoban/sokoban.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
)

var (
	// Global flags
	flagConfig string
	flags      config.Flags
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes onto targets in your terminal",
	Long: `Sokoban is a terminal puzzle game. Push every box onto a target
to complete a level.

Available commands:
  play     - Play (the default when no command is given)
  levels   - List the level catalog
  results  - View best results
  serve    - Start SSH server for remote play
  config   - Print or write the configuration

Examples:
  sokoban
  sokoban play --level 2 --show-fps
  sokoban levels
  sokoban results 1
  sokoban serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	pf.BoolVarP(&flags.Fullscreen, "fullscreen", "f", false, "Use the alternate screen and fill the terminal")
	pf.BoolVar(&flags.NoVSync, "no-vsync", false, "Uncapped tick rate (twice the target fps)")
	pf.BoolVar(&flags.NoMSAA, "no-msaa", false, "Disable half-cell smoothing of moving entities")
	pf.BoolVar(&flags.ShowFPS, "show-fps", false, "Show an FPS counter in the HUD")
	pf.BoolVar(&flags.NoAnimations, "no-animations", false, "Disable movement animations")
	pf.BoolVar(&flags.ShowGrid, "show-grid", false, "Draw floor grid dots")
	pf.BoolVar(&flags.Mute, "mute", false, "Disable audio")
	pf.BoolVar(&flags.Watch, "watch", false, "Reload level files when they change")
	pf.StringVar(&flags.Resolution, "resolution", "", "Fixed viewport size in cells, WxH")
	pf.StringVar(&flags.LevelsDir, "levels", "", "Level directory")
	pf.StringVar(&flags.DBPath, "db", "", "Path to results database")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFile, "log-file", "", "Log file for interactive play")

	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at level N (1-based), skipping the menu")
	rootCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at level N (1-based), skipping the menu")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
