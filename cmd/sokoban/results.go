package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var resultsCmd = &cobra.Command{
	Use:   "results [level]",
	Short: "Show best results",
	Long: `Display the best results per level: fewest moves first, then fastest.

Without a level, opens an interactive browser when run in a terminal and
prints a summary of every level otherwise. A level is given by its number
in the catalog or by its id.

Examples:
  sokoban results
  sokoban results 2
  sokoban results level3 --limit 5
  sokoban results 2 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print instead of opening the browser")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the results of the given level")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runResults(_ *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, _, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}
	store := openStore(cfg, logger)
	if store == nil {
		return fmt.Errorf("results database unavailable")
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a level")
		}
		if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
			w, h, termErr := term.GetSize(int(os.Stdout.Fd()))
			if termErr != nil {
				w, h = 80, 24
			}
			return tui.RunResults(cat.Entries(), store, w, h)
		}
		stats, err := store.GetAllLevelStats()
		if err != nil {
			return err
		}
		fmt.Println("Best Results")
		fmt.Println()
		fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "#", "Level", "Moves", "Time", "Solved")
		fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "-", "-----", "-----", "----", "------")
		for i, e := range cat.Entries() {
			s, ok := stats[e.ID]
			if !ok {
				fmt.Printf("  %-4d  %-24s  %-6s  %-6s  %d\n", i+1, truncate(levelTitle(e), 24), "-", "-", 0)
				continue
			}
			fmt.Printf("  %-4d  %-24s  %-6d  %-6s  %d\n", i+1, truncate(levelTitle(e), 24),
				s.BestMoves, formatElapsed(s.BestTime.Seconds()), s.Completions)
		}
		return nil
	}

	entry, err := findEntry(cat, args[0])
	if err != nil {
		return err
	}

	if flagClear {
		if err := store.ClearResults(entry.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", levelTitle(entry))
		return nil
	}

	results, err := store.TopResults(entry.ID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Results - %s\n", levelTitle(entry))
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "Rank", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "----", "-----", "----", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %-6s  %s\n", i+1, r.Moves, formatElapsed(r.Elapsed.Seconds()),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// findEntry resolves a 1-based catalog number or an entry id.
func findEntry(cat *catalog.Catalog, arg string) (catalog.Entry, error) {
	entries := cat.Entries()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(entries) {
			return catalog.Entry{}, fmt.Errorf("level %d out of range, the catalog has %d levels", n, len(entries))
		}
		return entries[n-1], nil
	}
	for _, e := range entries {
		if e.ID == arg {
			return e, nil
		}
	}
	return catalog.Entry{}, fmt.Errorf("unknown level %q", arg)
}
