package screens

import (
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// fakeRenderer counts draw calls and records text.
type fakeRenderer struct {
	w, h int

	frames    int
	cameraSet bool
	walls     int
	floors    int
	targets   int
	boxes     int
	players   int
	panels    int
	dim       float64
	texts     []string
}

func newFakeRenderer(w, h int) *fakeRenderer {
	return &fakeRenderer{w: w, h: h}
}

func (r *fakeRenderer) BeginFrame() {}
func (r *fakeRenderer) EndFrame()   { r.frames++ }

func (r *fakeRenderer) SetCamera(position, target, up core.Vec3) { r.cameraSet = true }

func (r *fakeRenderer) DrawFloor(core.Vec3)              { r.floors++ }
func (r *fakeRenderer) DrawWall(core.Vec3)               { r.walls++ }
func (r *fakeRenderer) DrawTarget(core.Vec3)             { r.targets++ }
func (r *fakeRenderer) DrawBox(core.Vec3, bool, float64) { r.boxes++ }
func (r *fakeRenderer) DrawPlayer(core.Vec3, float64)    { r.players++ }
func (r *fakeRenderer) DrawText(x, y int, s string, c core.Color) {
	r.texts = append(r.texts, s)
}

func (r *fakeRenderer) DrawTextCentered(y int, s string, c core.Color) {
	r.texts = append(r.texts, s)
}

func (r *fakeRenderer) DrawPanel(core.Rect, core.Color) { r.panels++ }
func (r *fakeRenderer) Dim(strength float64)            { r.dim = strength }
func (r *fakeRenderer) Size() (int, int)                { return r.w, r.h }

func (r *fakeRenderer) hasText(sub string) bool {
	for _, s := range r.texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
