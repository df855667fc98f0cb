package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
	"github.com/vovakirdan/tui-sokoban/internal/level/formats"
)

// builtinLevels is the fallback catalog written when no level files exist.
// Ordered by difficulty.
var builtinLevels = []level.Definition{
	{
		Name:        "Tutorial",
		Width:       6,
		Height:      5,
		PlayerStart: core.Pt(1, 2),
		Grid: []string{
			"######",
			"#    #",
			"#@$ .#",
			"#    #",
			"######",
		},
	},
	{
		Name:        "Double Push",
		Width:       8,
		Height:      6,
		PlayerStart: core.Pt(1, 2),
		Grid: []string{
			"########",
			"#      #",
			"#@$$..##",
			"#      #",
			"#      #",
			"########",
		},
	},
	{
		Name:        "L-Shape",
		Width:       7,
		Height:      7,
		PlayerStart: core.Pt(1, 1),
		Grid: []string{
			"#######",
			"#@    #",
			"#  $  #",
			"#     #",
			"#  $  #",
			"#  .. #",
			"#######",
		},
	},
	{
		Name:        "Corner Trap",
		Width:       8,
		Height:      8,
		PlayerStart: core.Pt(6, 6),
		Grid: []string{
			"########",
			"#.    .#",
			"#      #",
			"#   $  #",
			"#      #",
			"#  $   #",
			"#     @#",
			"########",
		},
	},
	{
		Name:        "Advanced Puzzle",
		Width:       10,
		Height:      8,
		PlayerStart: core.Pt(1, 1),
		Grid: []string{
			"##########",
			"#@       #",
			"#  ### . #",
			"#  #.#   #",
			"#  #$#  ##",
			"#  # # $ #",
			"#    #   #",
			"##########",
		},
	},
}

// testLevel is substituted when a requested level cannot be loaded.
var testLevel = level.Definition{
	Name:        "Test Level",
	Width:       7,
	Height:      5,
	PlayerStart: core.Pt(1, 1),
	Grid: []string{
		"#######",
		"#@  $.#",
		"#     #",
		"#     #",
		"#######",
	},
}

// Builtin returns copies of the built-in level definitions.
func Builtin() []level.Definition {
	out := make([]level.Definition, len(builtinLevels))
	for i, def := range builtinLevels {
		out[i] = cloneDefinition(def)
	}
	return out
}

// TestLevel returns the minimal fallback level.
func TestLevel() level.Definition {
	return cloneDefinition(testLevel)
}

// builtinFileName is the on-disk name of the i-th built-in level.
func builtinFileName(i int) string {
	return fmt.Sprintf("level%d.json", i+1)
}

// WriteBuiltin writes the built-in levels as level1.json ... levelN.json,
// creating dir if needed. Existing files with the same names are replaced.
func WriteBuiltin(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("catalog: cannot create level directory %s: %w", dir, err)
	}

	for i, def := range builtinLevels {
		path := filepath.Join(dir, builtinFileName(i))
		data, err := formats.Encode(path, def)
		if err != nil {
			return fmt.Errorf("catalog: cannot encode %s: %w", def.Name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("catalog: cannot write %s: %w", path, err)
		}
	}
	return nil
}

func cloneDefinition(def level.Definition) level.Definition {
	def.Grid = append([]string(nil), def.Grid...)
	return def
}
