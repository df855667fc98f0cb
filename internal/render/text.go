package render

import (
	"math"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// CellWidth is the number of terminal columns per grid cell.
// Two columns keep cells roughly square in most terminal fonts.
const CellWidth = 2

// Glyphs used by TextRenderer, two runes per cell.
const (
	glyphWall   = "██"
	glyphFloor  = "  "
	glyphGrid   = "· "
	glyphTarget = "()"
	glyphBox    = "[]"
)

// Options tune the terminal projection.
type Options struct {
	// Smooth places tweening entities on half-cell columns.
	// When false, positions snap to the nearest cell.
	Smooth bool
	// ShowGrid draws a dot on every floor cell.
	ShowGrid bool
}

// TextRenderer draws a top-down view of the X/Z plane onto a core.Screen.
type TextRenderer struct {
	screen *core.Screen
	opts   Options
	target core.Vec3
	frames int
}

// NewTextRenderer creates a renderer drawing into s.
func NewTextRenderer(s *core.Screen, opts Options) *TextRenderer {
	return &TextRenderer{screen: s, opts: opts}
}

// Screen returns the backing buffer.
func (r *TextRenderer) Screen() *core.Screen { return r.screen }

// Frames returns the number of completed frames.
func (r *TextRenderer) Frames() int { return r.frames }

// SetOptions replaces the projection options.
func (r *TextRenderer) SetOptions(opts Options) { r.opts = opts }

func (r *TextRenderer) BeginFrame() {
	r.screen.Clear()
}

func (r *TextRenderer) EndFrame() {
	r.frames++
}

// SetCamera centers the view on target. A top-down projection ignores
// the eye position and up vector.
func (r *TextRenderer) SetCamera(position, target, up core.Vec3) {
	r.target = target
}

func (r *TextRenderer) DrawFloor(pos core.Vec3) {
	if r.opts.ShowGrid {
		r.put(pos, glyphGrid, core.ColorDarkGray)
		return
	}
	r.put(pos, glyphFloor, core.ColorDefault)
}

func (r *TextRenderer) DrawWall(pos core.Vec3) {
	r.put(pos, glyphWall, core.ColorGray)
}

func (r *TextRenderer) DrawTarget(pos core.Vec3) {
	r.put(pos, glyphTarget, core.ColorBrightYellow)
}

func (r *TextRenderer) DrawBox(pos core.Vec3, onTarget bool, glow float64) {
	c := core.ColorOrange
	if onTarget {
		c = core.ColorGreen
		if glow > 0.5 {
			c = core.ColorBrightGreen
		}
	}
	r.put(pos, glyphBox, c)
}

func (r *TextRenderer) DrawPlayer(pos core.Vec3, rotation float64) {
	r.put(pos, playerGlyph(rotation), core.ColorBrightCyan)
}

func (r *TextRenderer) DrawText(x, y int, text string, c core.Color) {
	r.screen.DrawTextColored(x, y, text, c)
}

func (r *TextRenderer) DrawTextCentered(y int, text string, c core.Color) {
	r.screen.DrawTextCentered(y, text, c)
}

// DrawPanel clears r and frames it.
func (r *TextRenderer) DrawPanel(rect core.Rect, c core.Color) {
	r.screen.DrawRect(rect, ' ', core.ColorDefault)
	r.screen.DrawBox(rect, c)
}

// Dim fades everything drawn so far. Strength is in [0, 1].
func (r *TextRenderer) Dim(strength float64) {
	switch {
	case strength >= 0.5:
		r.screen.Dim(r.screen.Bounds(), core.ColorDarkGray)
	case strength > 0:
		r.screen.Dim(r.screen.Bounds(), core.ColorGray)
	}
}

func (r *TextRenderer) Size() (int, int) {
	return r.screen.Width(), r.screen.Height()
}

// Project maps a world position to the screen cell of its left column.
func (r *TextRenderer) Project(pos core.Vec3) (col, row int) {
	x, z := pos.X, pos.Z
	if !r.opts.Smooth {
		x, z = math.Round(x), math.Round(z)
	}
	w, h := r.Size()
	col = core.Round((x-r.target.X)*CellWidth) + w/2 - CellWidth/2
	row = core.Round(z-r.target.Z) + h/2
	return col, row
}

func (r *TextRenderer) put(pos core.Vec3, glyph string, c core.Color) {
	col, row := r.Project(pos)
	r.screen.DrawTextColored(col, row, glyph, c)
}

// playerGlyph points the player marker along its facing.
func playerGlyph(rotation float64) string {
	switch int(math.Round(rotation)) {
	case 90:
		return "@>"
	case -90:
		return "<@"
	case 180, -180:
		return "@v"
	default:
		return "@^"
	}
}
