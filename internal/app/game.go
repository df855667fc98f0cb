// Package app is the top-level state machine. It owns the menu, gameplay
// and pause screens and decides each frame which of them runs.
package app

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/render"
	"github.com/vovakirdan/tui-sokoban/internal/screens"
)

// State is the application state.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateLevelComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLevelComplete:
		return "level-complete"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Options configure a Game. Zero values are usable: default settings,
// silent audio, no persistence and a discarding logger.
type Options struct {
	Settings screens.Settings
	Audio    audio.Player
	Records  screens.Records
	Logger   *log.Logger
}

// Game is the application state machine.
type Game struct {
	state       State
	shouldClose bool

	catalog *catalog.Catalog
	menu    *screens.Menu
	play    *screens.GameScreen
	pause   *screens.Pause

	audio  audio.Player
	logger *log.Logger
}

// New creates a game in the Menu state.
func New(cat *catalog.Catalog, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	if opts.Settings == (screens.Settings{}) {
		opts.Settings = screens.DefaultSettings()
	}
	if cat == nil {
		cat = catalog.New(opts.Logger)
	}

	g := &Game{
		catalog: cat,
		menu:    screens.NewMenu(opts.Settings, opts.Audio),
		play:    screens.NewGameScreen(cat, opts.Settings, opts.Audio, opts.Records, opts.Logger),
		pause:   screens.NewPause(opts.Settings),
		audio:   opts.Audio,
		logger:  opts.Logger,
	}
	g.enterMenu()
	return g
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// ShouldClose reports whether the run loop should exit.
func (g *Game) ShouldClose() bool { return g.shouldClose }

// RequestClose asks the run loop to exit.
func (g *Game) RequestClose() { g.shouldClose = true }

// GameScreen returns the gameplay orchestrator.
func (g *Game) GameScreen() *screens.GameScreen { return g.play }

// Menu returns the menu screen.
func (g *Game) Menu() *screens.Menu { return g.menu }

// Pause returns the pause screen.
func (g *Game) Pause() *screens.Pause { return g.pause }

// StartAt skips the menu and starts playing level index.
func (g *Game) StartAt(index int) bool {
	if !g.play.LoadLevel(index) && g.play.State() != screens.StatePlaying {
		return false
	}
	g.ChangeState(StatePlaying)
	return true
}

// TriggerGameOver enters the GameOver state. Nothing in gameplay calls it;
// it exists for external callers.
func (g *Game) TriggerGameOver() {
	g.ChangeState(StateGameOver)
}

// Update runs one frame of the active state and then evaluates the
// transitions raised during it.
func (g *Game) Update(dt float64, in core.InputFrame) {
	switch g.state {
	case StateMenu:
		g.updateMenu(dt, in)
	case StatePlaying:
		g.pause.Fade(dt)
		g.play.Update(dt, in)
		g.afterPlaying()
	case StatePaused:
		g.updatePaused(dt, in)
	case StateLevelComplete:
		g.play.Update(dt, in)
		g.afterLevelComplete()
	case StateGameOver:
		if in.Has(core.ActionConfirm) {
			g.ChangeState(StateMenu)
		}
	}
}

func (g *Game) updateMenu(dt float64, in core.InputFrame) {
	res := g.menu.Update(dt, in)
	switch res.Action {
	case screens.MenuStartGame:
		g.play.LoadLevel(0)
		g.ChangeState(StatePlaying)
	case screens.MenuStartLevel:
		g.play.LoadLevel(res.Level)
		g.ChangeState(StatePlaying)
	case screens.MenuQuit:
		g.shouldClose = true
	}
}

func (g *Game) afterPlaying() {
	switch {
	case g.play.ShouldShowPause():
		g.play.ClearPause()
		g.ChangeState(StatePaused)
	case g.play.LevelJustCompleted():
		g.play.ClearLevelComplete()
		g.ChangeState(StateLevelComplete)
	case g.play.ShouldReturnToMenu():
		g.play.ClearReturnToMenu()
		g.ChangeState(StateMenu)
	}
}

func (g *Game) afterLevelComplete() {
	// Completion is already being shown; a repeated signal changes nothing.
	g.play.ClearLevelComplete()

	switch {
	case g.play.ShouldReturnToMenu():
		g.play.ClearReturnToMenu()
		g.ChangeState(StateMenu)
	case !g.play.IsLevelComplete():
		g.ChangeState(StatePlaying)
	}
}

func (g *Game) updatePaused(dt float64, in core.InputFrame) {
	switch g.pause.Update(dt, in) {
	case screens.PauseResume:
		g.ChangeState(StatePlaying)
	case screens.PauseRestart:
		g.play.RestartLevel()
		g.ChangeState(StatePlaying)
	case screens.PauseMainMenu:
		g.ChangeState(StateMenu)
	}
}

// ChangeState switches to next, running the exit action of the current
// state and the entry action of next. Switching to the current state is a
// no-op.
func (g *Game) ChangeState(next State) {
	if next == g.state {
		return
	}
	prev := g.state
	g.logger.Debug("state change", "from", prev, "to", next)

	switch prev {
	case StateMenu:
		g.audio.StopMusic()
	case StatePaused:
		g.pause.Hide()
		g.play.SetPaused(false)
	}

	g.state = next

	switch next {
	case StateMenu:
		g.enterMenu()
	case StatePaused:
		g.play.SetPaused(true)
		g.pause.Show()
	}
}

func (g *Game) enterMenu() {
	g.play.ClearFlags()
	g.menu.SetLevels(g.catalog.Names())
	g.menu.Reset()
	g.audio.StartMusic()
}

// HotReload forwards changed level files to the gameplay screen and
// refreshes the menu's level list.
func (g *Game) HotReload(paths []string) {
	if len(paths) == 0 {
		return
	}
	g.play.HotReload(paths)
	g.menu.SetLevels(g.catalog.Names())
}

// Draw renders the active state. The pause overlay is drawn over the
// frozen gameplay frame and keeps drawing while it fades out.
func (g *Game) Draw(r render.Renderer) {
	r.BeginFrame()
	defer r.EndFrame()

	switch g.state {
	case StateMenu:
		g.menu.Draw(r)
	case StatePlaying, StateLevelComplete, StatePaused:
		g.play.Draw(r)
		g.pause.Draw(r)
	case StateGameOver:
		g.play.Draw(r)
		r.Dim(1)
		w, h := r.Size()
		r.DrawPanel(core.NewRect(0, 0, w, h).Centered(30, 5), core.ColorBrightRed)
		r.DrawTextCentered(h/2-1, "GAME OVER", core.ColorBrightRed)
		r.DrawTextCentered(h/2, "Press ENTER", core.ColorWhite)
	}
}
