package screens

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/render"
)

// MenuAction is what the menu asks the state machine to do.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuStartGame
	MenuStartLevel
	MenuQuit
)

// MenuResult is returned by Menu.Update. Level is set for MenuStartLevel.
type MenuResult struct {
	Action MenuAction
	Level  int
}

const (
	itemStartGame = iota
	itemSelectLevel
	itemQuit
)

var menuItems = []string{"Start Game", "Select Level", "Quit"}

var menuTitle = []string{
	"╔═╗╔═╗╦╔═╔═╗╔╗ ╔═╗╔╗╔",
	"╚═╗║ ║╠╩╗║ ║╠╩╗╠═╣║║║",
	"╚═╝╚═╝╩ ╩╚═╝╚═╝╩ ╩╝╚╝",
}

// Menu is the main menu with a level selection sub-list.
type Menu struct {
	selected    int
	levels      []string
	levelCursor int
	selecting   bool
	inputTimer  float64
	delay       float64
	audio       audio.Player
}

// NewMenu creates a menu. A nil audio player is silent.
func NewMenu(settings Settings, ap audio.Player) *Menu {
	if ap == nil {
		ap = audio.Silent{}
	}
	return &Menu{delay: settings.MenuInputDelay, audio: ap}
}

// SetLevels replaces the names listed by Select Level.
func (m *Menu) SetLevels(names []string) {
	m.levels = append([]string(nil), names...)
	m.levelCursor = core.Clamp(m.levelCursor, 0, core.Max(len(m.levels)-1, 0))
}

// Reset returns to the first item of the root list.
func (m *Menu) Reset() {
	m.selected = 0
	m.selecting = false
	m.levelCursor = 0
	m.inputTimer = m.delay
}

// Selected returns the highlighted root item.
func (m *Menu) Selected() int { return m.selected }

// SelectingLevel reports whether the level sub-list is open.
func (m *Menu) SelectingLevel() bool { return m.selecting }

// Update handles navigation. Moves and confirms are rate-limited by the
// menu input delay; the list wraps at both ends.
func (m *Menu) Update(dt float64, in core.InputFrame) MenuResult {
	m.inputTimer = math.Max(m.inputTimer-dt, 0)
	if m.inputTimer > 0 {
		return MenuResult{}
	}

	if m.selecting {
		return m.updateLevels(in)
	}

	switch {
	case in.Has(core.ActionUp):
		m.selected = wrap(m.selected-1, len(menuItems))
		m.navigated()
	case in.Has(core.ActionDown):
		m.selected = wrap(m.selected+1, len(menuItems))
		m.navigated()
	case in.Has(core.ActionConfirm):
		m.navigated()
		switch m.selected {
		case itemStartGame:
			return MenuResult{Action: MenuStartGame}
		case itemSelectLevel:
			if len(m.levels) > 0 {
				m.selecting = true
			}
		case itemQuit:
			return MenuResult{Action: MenuQuit}
		}
	case in.Has(core.ActionQuit):
		return MenuResult{Action: MenuQuit}
	}
	return MenuResult{}
}

func (m *Menu) updateLevels(in core.InputFrame) MenuResult {
	switch {
	case in.Has(core.ActionUp):
		m.levelCursor = wrap(m.levelCursor-1, len(m.levels))
		m.navigated()
	case in.Has(core.ActionDown):
		m.levelCursor = wrap(m.levelCursor+1, len(m.levels))
		m.navigated()
	case in.Has(core.ActionBack):
		m.selecting = false
		m.navigated()
	case in.Has(core.ActionConfirm):
		m.selecting = false
		m.navigated()
		return MenuResult{Action: MenuStartLevel, Level: m.levelCursor}
	}
	return MenuResult{}
}

func (m *Menu) navigated() {
	m.inputTimer = m.delay
	m.audio.PlaySound(audio.SoundMenuSelect)
}

// Draw renders the title and the active list.
func (m *Menu) Draw(r render.Renderer) {
	_, h := r.Size()
	top := core.Max((h-len(menuTitle)-len(menuItems)*2-4)/2, 0)

	for i, line := range menuTitle {
		r.DrawTextCentered(top+i, line, core.ColorBrightYellow)
	}
	y := top + len(menuTitle) + 2

	if m.selecting {
		r.DrawTextCentered(y, "Select Level", core.ColorBrightWhite)
		y += 2
		for i, name := range m.visibleLevels(h - y - 2) {
			idx := m.levelOffset(h-y-2) + i
			r.DrawTextCentered(y+i, itemLabel(fmt.Sprintf("%d. %s", idx+1, name), idx == m.levelCursor), itemColor(idx == m.levelCursor))
		}
		r.DrawTextCentered(h-1, "Enter: play  Esc: back", core.ColorDarkGray)
		return
	}

	for i, item := range menuItems {
		r.DrawTextCentered(y+i*2, itemLabel(item, i == m.selected), itemColor(i == m.selected))
	}
	r.DrawTextCentered(h-1, "Up/Down: choose  Enter: select", core.ColorDarkGray)
}

// levelOffset scrolls the level list so the cursor stays visible.
func (m *Menu) levelOffset(rows int) int {
	if rows <= 0 || m.levelCursor < rows {
		return 0
	}
	return m.levelCursor - rows + 1
}

func (m *Menu) visibleLevels(rows int) []string {
	if rows <= 0 {
		return nil
	}
	off := m.levelOffset(rows)
	end := core.Min(off+rows, len(m.levels))
	return m.levels[off:end]
}

func itemLabel(s string, selected bool) string {
	if selected {
		return "> " + s + " <"
	}
	return "  " + s + "  "
}

func itemColor(selected bool) core.Color {
	if selected {
		return core.ColorBrightCyan
	}
	return core.ColorWhite
}

// wrap maps i into [0, n).
func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
