package screens

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/entity"
	"github.com/vovakirdan/tui-sokoban/internal/level"
	"github.com/vovakirdan/tui-sokoban/internal/render"
)

const (
	hudRows    = 2
	footerRows = 1

	instructions = "Arrows/WASD: move  U: undo  R: restart  P: pause  M: menu"
)

// cameraEyeHeight places the eye above the plane for renderers that use it.
const cameraEyeHeight = 10

// Draw renders the level, entities, HUD and, when complete, the overlay.
// The caller owns BeginFrame and EndFrame.
func (g *GameScreen) Draw(r render.Renderer) {
	if g.state == StateLoading {
		r.DrawTextCentered(0, "Loading...", core.ColorGray)
		return
	}

	target := g.cameraTarget(r)
	eye := target.Add(core.V3(0, cameraEyeHeight, 0))
	r.SetCamera(eye, target, render.Up)

	g.drawLevel(r)
	for _, b := range g.boxes {
		r.DrawBox(b.Position(), b.State() == entity.BoxOnTarget, b.Glow())
	}
	r.DrawPlayer(g.player.Position(), g.player.Rotation())

	g.drawHUD(r)
	if g.state == StateLevelComplete {
		g.drawComplete(r)
	}
}

// cameraTarget centers a level that fits the viewport and follows the
// player otherwise. The play area sits between the HUD and the footer.
func (g *GameScreen) cameraTarget(r render.Renderer) core.Vec3 {
	w, h := r.Size()
	viewCols := w / render.CellWidth
	viewRows := h - hudRows - footerRows

	center := core.V3(float64(g.level.Width()-1)/2, 0, float64(g.level.Height()-1)/2)
	p := g.player.Position()
	if g.level.Width() > viewCols {
		center.X = p.X
	}
	if g.level.Height() > viewRows {
		center.Z = p.Z
	}
	center.Z -= float64(hudRows-footerRows) / 2
	return center
}

func (g *GameScreen) drawLevel(r render.Renderer) {
	for y := 0; y < g.level.Height(); y++ {
		for x := 0; x < g.level.Width(); x++ {
			c := core.Pt(x, y)
			pos := level.GridToWorld(c)
			if g.level.GetTileType(c) == level.TileWall {
				r.DrawWall(pos)
				continue
			}
			r.DrawFloor(pos)
			if g.level.IsTarget(c) {
				r.DrawTarget(pos)
			}
		}
	}
}

func (g *GameScreen) drawHUD(r render.Renderer) {
	w, h := r.Size()

	title := fmt.Sprintf("Level %d/%d: %s", g.catalog.Current()+1, g.catalog.Count(), g.level.Name())
	if g.fallback {
		title = "Test Level"
	}
	r.DrawText(1, 0, title, core.ColorBrightWhite)

	stats := fmt.Sprintf("Moves: %d  Time: %s", g.moves, formatClock(g.elapsed))
	r.DrawText(w-utf8.RuneCountInString(stats)-1, 0, stats, core.ColorWhite)

	best := "Best: -"
	if g.best.ok {
		best = fmt.Sprintf("Best: %d moves in %s", g.best.moves, formatClock(g.best.elapsed.Seconds()))
	}
	r.DrawText(1, 1, best, core.ColorGray)

	boxes := fmt.Sprintf("Boxes: %d/%d", g.level.BoxesOnTargets(), g.level.TotalBoxes())
	if g.settings.ShowFPS {
		boxes = fmt.Sprintf("FPS: %.0f  %s", g.fps, boxes)
	}
	r.DrawText(w-utf8.RuneCountInString(boxes)-1, 1, boxes, core.ColorGray)

	r.DrawTextCentered(h-1, instructions, core.ColorDarkGray)
}

func (g *GameScreen) drawComplete(r render.Renderer) {
	next := "Press ENTER for next level"
	if g.fallback || !g.catalog.HasNext() {
		next = "Press ENTER to return to menu"
	}
	lines := []string{
		"LEVEL COMPLETE!",
		"",
		fmt.Sprintf("Moves: %d", g.moves),
		fmt.Sprintf("Time: %s", formatClock(g.elapsed)),
		"",
		next,
	}
	drawPanel(r, lines, core.ColorBrightGreen)
}

// drawPanel frames lines in a centered box, the first line highlighted.
func drawPanel(r render.Renderer, lines []string, c core.Color) {
	w, h := r.Size()
	width := 0
	for _, l := range lines {
		width = core.Max(width, utf8.RuneCountInString(l))
	}
	box := core.NewRect(0, 0, w, h).Centered(width+6, len(lines)+4)
	r.DrawPanel(box, c)
	for i, l := range lines {
		col := c
		if i > 0 {
			col = core.ColorWhite
		}
		r.DrawTextCentered(box.Y+2+i, l, col)
	}
}
