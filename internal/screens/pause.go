package screens

import (
	"math"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/render"
)

// PauseAction is the choice made on the pause screen.
type PauseAction int

const (
	PauseNone PauseAction = iota
	PauseResume
	PauseRestart
	PauseMainMenu
)

var pauseItems = []string{"Resume", "Restart Level", "Main Menu"}

// Pause is the overlay shown over a frozen gameplay frame.
// Its opacity fades in on Show and out on Hide.
type Pause struct {
	selected   int
	visible    bool
	alpha      float64
	fade       float64
	inputTimer float64
	delay      float64
}

// NewPause creates a hidden pause screen.
func NewPause(settings Settings) *Pause {
	return &Pause{fade: settings.PauseFade, delay: settings.MenuInputDelay}
}

// Show makes the overlay visible with the first item selected.
func (p *Pause) Show() {
	p.visible = true
	p.selected = 0
	p.inputTimer = p.delay
}

// Hide starts the fade out.
func (p *Pause) Hide() {
	p.visible = false
}

// Visible reports whether the overlay is shown or fading in.
func (p *Pause) Visible() bool { return p.visible }

// Alpha returns the overlay opacity in [0, 1].
func (p *Pause) Alpha() float64 { return p.alpha }

// Selected returns the highlighted item.
func (p *Pause) Selected() int { return p.selected }

// Fade advances the opacity only. It runs even while hidden so the
// overlay can fade out over gameplay.
func (p *Pause) Fade(dt float64) {
	step := 1.0
	if p.fade > 0 {
		step = dt / p.fade
	}
	if p.visible {
		p.alpha = math.Min(p.alpha+step, 1)
	} else {
		p.alpha = math.Max(p.alpha-step, 0)
	}
}

// Update fades the overlay and handles navigation.
// Pause or Back selects Resume directly.
func (p *Pause) Update(dt float64, in core.InputFrame) PauseAction {
	p.Fade(dt)
	p.inputTimer = math.Max(p.inputTimer-dt, 0)
	if !p.visible || p.inputTimer > 0 {
		return PauseNone
	}

	switch {
	case in.Has(core.ActionPause) || in.Has(core.ActionBack):
		p.inputTimer = p.delay
		return PauseResume
	case in.Has(core.ActionUp):
		p.selected = wrap(p.selected-1, len(pauseItems))
		p.inputTimer = p.delay
	case in.Has(core.ActionDown):
		p.selected = wrap(p.selected+1, len(pauseItems))
		p.inputTimer = p.delay
	case in.Has(core.ActionConfirm):
		p.inputTimer = p.delay
		return PauseAction(p.selected + 1)
	}
	return PauseNone
}

// Draw dims what is already on screen and draws the menu panel.
func (p *Pause) Draw(r render.Renderer) {
	if p.alpha <= 0 {
		return
	}
	r.Dim(p.alpha)
	if p.alpha < 0.5 {
		return
	}

	lines := []string{"PAUSED", ""}
	for i, item := range pauseItems {
		lines = append(lines, itemLabel(item, i == p.selected))
	}
	drawPanel(r, lines, core.ColorBrightYellow)
}
