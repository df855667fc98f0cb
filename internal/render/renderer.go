// Package render defines the drawing interface used by the screens and a
// terminal implementation that projects the level plane onto a core.Screen.
package render

import "github.com/vovakirdan/tui-sokoban/internal/core"

// Renderer receives one call per visible tile or entity each frame.
// World positions come from level.GridToWorld and entity tweens.
type Renderer interface {
	BeginFrame()
	EndFrame()
	SetCamera(position, target, up core.Vec3)

	DrawFloor(pos core.Vec3)
	DrawWall(pos core.Vec3)
	DrawTarget(pos core.Vec3)
	DrawBox(pos core.Vec3, onTarget bool, glow float64)
	DrawPlayer(pos core.Vec3, rotation float64)

	// Screen-space overlay drawing, in character cells.
	DrawText(x, y int, text string, c core.Color)
	DrawTextCentered(y int, text string, c core.Color)
	DrawPanel(r core.Rect, c core.Color)
	Dim(strength float64)

	Size() (width, height int)
}

// Up is the world up axis passed to SetCamera.
var Up = core.V3(0, 1, 0)
