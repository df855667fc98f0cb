// Package level owns the authoritative grid of a Sokoban level: tile
// classification, box and target occupancy, and the win condition.
// It has no rendering or input concerns.
package level

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Definition is a parsed level document. Grid rows use the legend in tile.go.
type Definition struct {
	Name        string
	Width       int
	Height      int
	PlayerStart core.Point
	Grid        []string
}

// Level is the mutable grid state of one loaded level.
// The zero value is an empty level; use LoadFromDefinition to populate it.
type Level struct {
	name        string
	width       int
	height      int
	grid        [][]Tile
	playerStart core.Point

	// initialBoxes is the placement captured at load, restored by Reset.
	initialBoxes []core.Point

	// totalBoxes is the count captured at load; boxCount is the live count.
	totalBoxes     int
	boxCount       int
	boxesOnTargets int
	completed      bool

	logger *log.Logger
}

// New creates an empty level. A nil logger discards log output.
func New(logger *log.Logger) *Level {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Level{logger: logger}
}

// LoadFromDefinition replaces the level contents with def.
// It returns false and leaves the current contents untouched when the
// dimensions are non-positive or the row count differs from the height.
func (l *Level) LoadFromDefinition(def Definition) bool {
	l.ensureLogger()

	if def.Width <= 0 || def.Height <= 0 {
		l.logger.Error("invalid level dimensions",
			"name", def.Name, "width", def.Width, "height", def.Height)
		return false
	}
	if len(def.Grid) != def.Height {
		l.logger.Error("level row count does not match height",
			"name", def.Name, "rows", len(def.Grid), "height", def.Height)
		return false
	}

	grid := make([][]Tile, def.Height)
	start := def.PlayerStart
	var boxes []core.Point

	for y := 0; y < def.Height; y++ {
		grid[y] = make([]Tile, def.Width)
		for x := range grid[y] {
			grid[y][x] = Tile{Type: TileFloor}
		}

		x := 0
		for _, r := range def.Grid[y] {
			if x >= def.Width {
				break
			}
			tile, player := tileFromChar(r)
			grid[y][x] = tile
			if player {
				start = core.Pt(x, y)
			}
			if tile.HasBox {
				boxes = append(boxes, core.Pt(x, y))
			}
			x++
		}
	}

	l.name = def.Name
	l.width = def.Width
	l.height = def.Height
	l.grid = grid
	l.playerStart = start
	l.initialBoxes = boxes
	l.totalBoxes = len(boxes)
	l.boxesOnTargets = 0
	l.completed = false

	l.CheckCompletion()

	l.logger.Debug("level loaded",
		"name", l.name, "width", l.width, "height", l.height, "boxes", l.totalBoxes)
	return true
}

// Name returns the level's display name.
func (l *Level) Name() string { return l.name }

// Width returns the grid width in cells.
func (l *Level) Width() int { return l.width }

// Height returns the grid height in cells.
func (l *Level) Height() int { return l.height }

// PlayerStart returns the start cell set during parse.
func (l *Level) PlayerStart() core.Point { return l.playerStart }

// TotalBoxes returns the number of boxes captured at load.
func (l *Level) TotalBoxes() int { return l.totalBoxes }

// BoxCount returns the number of boxes currently on the grid. It differs
// from TotalBoxes only after unbalanced PlaceBox or RemoveBox calls.
func (l *Level) BoxCount() int { return l.boxCount }

// BoxesOnTargets returns the number of boxes currently resting on targets.
func (l *Level) BoxesOnTargets() int { return l.boxesOnTargets }

// IsCompleted reports whether every box is on a target (and there is at least one box).
func (l *Level) IsCompleted() bool { return l.completed }

// IsValidPosition reports whether p lies inside the grid.
func (l *Level) IsValidPosition(p core.Point) bool {
	return p.X >= 0 && p.X < l.width && p.Y >= 0 && p.Y < l.height
}

// Tile returns the cell at p. Out-of-bounds cells read as walls.
func (l *Level) Tile(p core.Point) Tile {
	if !l.IsValidPosition(p) {
		return Tile{Type: TileWall}
	}
	return l.grid[p.Y][p.X]
}

// GetTileType returns the type at p, or TileWall when p is out of bounds.
func (l *Level) GetTileType(p core.Point) TileType {
	return l.Tile(p).Type
}

// CanMoveToTile reports whether an entity may step onto p:
// inside the grid, walkable, and not occupied by a box.
func (l *Level) CanMoveToTile(p core.Point) bool {
	if !l.IsValidPosition(p) {
		return false
	}
	t := l.grid[p.Y][p.X]
	return t.Type.Walkable() && !t.HasBox
}

// HasBox reports whether a box occupies p.
func (l *Level) HasBox(p core.Point) bool {
	return l.IsValidPosition(p) && l.grid[p.Y][p.X].HasBox
}

// IsTarget reports whether p is a target cell.
func (l *Level) IsTarget(p core.Point) bool {
	return l.IsValidPosition(p) && l.grid[p.Y][p.X].IsTarget
}

// MoveBox relocates a box in a single step, so no completion read can
// observe the grid between removal and placement. It is a logged no-op
// returning false unless from holds a box and to is an empty non-wall cell.
func (l *Level) MoveBox(from, to core.Point) bool {
	l.ensureLogger()

	if !l.IsValidPosition(from) || !l.IsValidPosition(to) {
		l.logger.Error("move box: position out of bounds", "from", from, "to", to)
		return false
	}
	src := &l.grid[from.Y][from.X]
	dst := &l.grid[to.Y][to.X]
	if !src.HasBox {
		l.logger.Error("move box: no box at source", "from", from)
		return false
	}
	if dst.HasBox {
		l.logger.Error("move box: destination occupied", "to", to)
		return false
	}
	if dst.Type == TileWall {
		l.logger.Error("move box: destination is a wall", "to", to)
		return false
	}

	src.HasBox = false
	dst.HasBox = true
	l.CheckCompletion()
	return true
}

// PlaceBox puts a box on an empty, non-wall cell.
func (l *Level) PlaceBox(p core.Point) bool {
	l.ensureLogger()

	if !l.IsValidPosition(p) {
		l.logger.Error("place box: position out of bounds", "pos", p)
		return false
	}
	t := &l.grid[p.Y][p.X]
	if t.Type == TileWall || t.HasBox {
		l.logger.Error("place box: cell not free", "pos", p, "type", t.Type, "has_box", t.HasBox)
		return false
	}

	t.HasBox = true
	l.CheckCompletion()
	return true
}

// RemoveBox clears the box at p.
func (l *Level) RemoveBox(p core.Point) bool {
	l.ensureLogger()

	if !l.IsValidPosition(p) || !l.grid[p.Y][p.X].HasBox {
		l.logger.Error("remove box: no box at position", "pos", p)
		return false
	}

	l.grid[p.Y][p.X].HasBox = false
	l.CheckCompletion()
	return true
}

// CheckCompletion rescans the grid, refreshes the live counters and returns
// the completion state: every one of the boxes captured at load rests on a
// target and no box was added or lost since.
func (l *Level) CheckCompletion() bool {
	l.ensureLogger()

	total, onTarget := 0, 0
	for y := range l.grid {
		for x := range l.grid[y] {
			t := l.grid[y][x]
			if !t.HasBox {
				continue
			}
			total++
			if t.IsTarget {
				onTarget++
			}
		}
	}

	if onTarget != l.boxesOnTargets {
		l.logger.Debug("boxes on targets changed",
			"level", l.name, "on_targets", onTarget, "total", total)
	}

	completed := l.totalBoxes > 0 && total == l.totalBoxes && onTarget == l.totalBoxes
	if completed && !l.completed {
		l.logger.Info("level completed", "level", l.name)
	}

	l.boxCount = total
	l.boxesOnTargets = onTarget
	l.completed = completed
	return completed
}

// Reset restores the box placement captured at load.
// The player position is not part of the grid and is left to the caller.
func (l *Level) Reset() {
	for y := range l.grid {
		for x := range l.grid[y] {
			l.grid[y][x].HasBox = false
		}
	}
	for _, p := range l.initialBoxes {
		if l.IsValidPosition(p) {
			l.grid[p.Y][p.X].HasBox = true
		}
	}
	l.CheckCompletion()
}

// BoxPositions returns every cell currently holding a box, in row-major order.
func (l *Level) BoxPositions() []core.Point {
	var out []core.Point
	for y := range l.grid {
		for x := range l.grid[y] {
			if l.grid[y][x].HasBox {
				out = append(out, core.Pt(x, y))
			}
		}
	}
	return out
}

// Targets returns every target cell in row-major order.
func (l *Level) Targets() []core.Point {
	var out []core.Point
	for y := range l.grid {
		for x := range l.grid[y] {
			if l.grid[y][x].IsTarget {
				out = append(out, core.Pt(x, y))
			}
		}
	}
	return out
}

// GridToWorld maps a grid cell to its world-space center: one grid unit is
// one world unit on the X/Z plane, at Y = 0.
func (l *Level) GridToWorld(p core.Point) core.Vec3 {
	return GridToWorld(p)
}

// WorldToGrid is the inverse of GridToWorld.
func (l *Level) WorldToGrid(v core.Vec3) core.Point {
	return WorldToGrid(v)
}

// GridToWorld maps a grid cell to world space independent of any level.
func GridToWorld(p core.Point) core.Vec3 {
	return core.V3(float64(p.X), 0, float64(p.Y))
}

// WorldToGrid maps a world position to the nearest grid cell.
func WorldToGrid(v core.Vec3) core.Point {
	return core.Pt(core.Round(v.X), core.Round(v.Z))
}

// Render encodes the current grid in the definition legend, one row per
// line. When player is inside the grid it is drawn with '@' or '+'.
func (l *Level) Render(player core.Point) string {
	var sb strings.Builder
	for y := range l.grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, t := range l.grid[y] {
			sb.WriteRune(t.char(player == core.Pt(x, y)))
		}
	}
	return sb.String()
}

// Definition returns the current grid as a definition document, with
// boxes at their present positions and the start cell marked.
func (l *Level) Definition() Definition {
	rows := make([]string, l.height)
	for y := range l.grid {
		var sb strings.Builder
		for x, t := range l.grid[y] {
			sb.WriteRune(t.char(l.playerStart == core.Pt(x, y)))
		}
		rows[y] = sb.String()
	}
	return Definition{
		Name:        l.name,
		Width:       l.width,
		Height:      l.height,
		PlayerStart: l.playerStart,
		Grid:        rows,
	}
}

func (l *Level) ensureLogger() {
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
}
