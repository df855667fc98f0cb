package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/app"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/render"
)

// Fallback size used until the terminal reports its dimensions.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// ChangeSource reports level files changed since the last call.
// catalog.Watcher satisfies it.
type ChangeSource interface {
	Poll() []string
}

// Options configure the terminal front end.
type Options struct {
	// Width and Height fix the playfield size in cells. Zero follows the
	// terminal. Fullscreen uses the alternate screen and always follows it.
	Width      int
	Height     int
	Fullscreen bool

	// InitialWidth and InitialHeight size the first frame when the size
	// follows the terminal.
	InitialWidth  int
	InitialHeight int

	TickRate int
	Render   render.Options

	// ScreenshotDir receives Ctrl+S captures. Empty disables them.
	ScreenshotDir string

	// Changes, when set, is polled every tick for hot reload.
	Changes ChangeSource

	Logger *log.Logger
}

func (o Options) fixedSize() bool {
	return !o.Fullscreen && o.Width > 0 && o.Height > 0
}

// Model is the Bubble Tea model that drives an app.Game.
type Model struct {
	game     *app.Game
	screen   *core.Screen
	renderer *render.TextRenderer
	keys     *KeyMapper
	input    core.InputFrame
	opts     Options
	runtime  core.RuntimeConfig
	fps      *fpsCounter
	last     time.Time
	quitting bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game *app.Game, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	w, h := defaultWidth, defaultHeight
	switch {
	case opts.fixedSize():
		w, h = opts.Width, opts.Height
	case opts.InitialWidth > 0 && opts.InitialHeight > 0:
		w, h = opts.InitialWidth, opts.InitialHeight
	}
	screen := core.NewScreen(w, h)

	return Model{
		game:     game,
		screen:   screen,
		renderer: render.NewTextRenderer(screen, opts.Render),
		keys:     NewKeyMapper(),
		input:    core.NewInputFrame(),
		opts:     opts,
		runtime:  core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: opts.TickRate},
		fps:      &fpsCounter{},
	}
}

// Game returns the driven game.
func (m Model) Game() *app.Game { return m.game }

// Screen returns the frame buffer.
func (m Model) Screen() *core.Screen { return m.screen }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey collects the key into the current frame. Keys arriving
// between ticks accumulate and are consumed together.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		m.game.RequestClose()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize follows the terminal unless a fixed size was configured.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if m.opts.fixedSize() {
		return m, nil
	}
	m.runtime.ScreenW, m.runtime.ScreenH = msg.Width, msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.last, now, m.runtime.FrameDelta())
	m.last = now

	if m.opts.Changes != nil {
		if changed := m.opts.Changes.Poll(); len(changed) > 0 {
			m.opts.Logger.Info("level files changed", "files", len(changed))
			m.game.HotReload(changed)
		}
	}

	m.game.GameScreen().SetFPS(m.fps.add(dt))
	m.game.Update(dt, m.input)
	m.input.Clear()

	if m.game.ShouldClose() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.runtime.TickRate)
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Draw(m.renderer)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("sokoban_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Draw(m.renderer)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for game and blocks until it exits.
// Fullscreen runs in the alternate screen buffer.
func Run(game *app.Game, opts Options) error {
	var progOpts []tea.ProgramOption
	if opts.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(NewModel(game, opts), progOpts...)

	_, err := p.Run()
	return err
}
