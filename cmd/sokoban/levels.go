package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/level"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows every level in the level directory in play order, with its size,
box count and best result.

If the directory is missing or empty, the built-in levels are written there
first.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, dir, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	width := 80
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
	}

	fmt.Printf("Levels in %s:\n\n", dir)
	printLevels(os.Stdout, cat, store, width)
	fmt.Println()
	fmt.Println("Run 'sokoban play --level <#>' to play a level.")
	return nil
}

// printLevels writes the catalog as a table, truncating names to fit width.
func printLevels(w io.Writer, cat *catalog.Catalog, store *storage.Store, width int) {
	const fixed = 4 + 2 + 7 + 2 + 5 + 2 + 12 + 2 + 2
	nameWidth := max(min(width-fixed, 32), 8)

	fmt.Fprintf(w, "  %-4s  %-*s  %-7s  %-5s  %s\n", "#", nameWidth, "Name", "Size", "Boxes", "Best")
	fmt.Fprintf(w, "  %-4s  %-*s  %-7s  %-5s  %s\n", "-", nameWidth, "----", "----", "-----", "----")

	for i, e := range cat.Entries() {
		name := levelTitle(e)
		size, boxes := "?", "?"
		if def, err := cat.Definition(i); err == nil {
			size = fmt.Sprintf("%dx%d", def.Width, def.Height)
			boxes = fmt.Sprintf("%d", countBoxes(def))
		} else {
			name += " (unreadable)"
		}

		best := "-"
		if store != nil {
			if moves, elapsed, ok := store.BestMoves(e.ID); ok {
				best = fmt.Sprintf("%d in %s", moves, formatElapsed(elapsed.Seconds()))
			}
		}

		fmt.Fprintf(w, "  %-4d  %-*s  %-7s  %-5s  %s\n", i+1, nameWidth, truncate(name, nameWidth), size, boxes, best)
	}
}

func countBoxes(def level.Definition) int {
	l := level.New(nil)
	if !l.LoadFromDefinition(def) {
		return 0
	}
	return l.TotalBoxes()
}

func levelTitle(e catalog.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

func formatElapsed(seconds float64) string {
	secs := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
