package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/app"
	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{"s", core.ActionDown, false},
		{"a", core.ActionLeft, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"right", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"m", core.ActionMenu, false},
		{"u", core.ActionUndo, false},
		{"z", core.ActionUndo, false},
		{"q", core.ActionQuit, false},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	f := core.NewInputFrame()
	km.MapKeyToFrame(keyMsg("left"), &f)
	km.MapKeyToFrame(keyMsg("x"), &f)
	if !f.Has(core.ActionLeft) || len(f.Actions) != 1 {
		t.Errorf("frame = %v, want only Left", f.Actions)
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want float64
	}{
		{"first tick", time.Time{}, now, 1.0 / 50},
		{"normal", now, now.Add(20 * time.Millisecond), 0.02},
		{"stall capped", now, now.Add(2 * time.Second), maxFrameDelta},
		{"clock backwards", now, now.Add(-time.Second), 1.0 / 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDelta(tt.last, tt.now, 1.0/50); got != tt.want {
				t.Errorf("frameDelta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	var got float64
	for i := 0; i < 30; i++ {
		got = c.add(1.0 / 60)
	}
	if got < 59 || got > 61 {
		t.Errorf("fps = %v, want ~60", got)
	}
}

func TestFPSCounterRates(t *testing.T) {
	tests := []struct {
		name string
		rate int
	}{
		{"30 fps", 30},
		{"50 fps", 50},
		{"60 fps", 60},
		{"144 fps", 144},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c fpsCounter
			dt := 1.0 / float64(tt.rate)
			if got := c.add(dt); got != 0 {
				t.Errorf("first add = %v, want 0 before the window closes", got)
			}
			var got float64
			for i := 1; i < tt.rate; i++ {
				got = c.add(dt)
			}
			want := float64(tt.rate)
			if got < want*0.99 || got > want*1.01 {
				t.Errorf("fps = %v, want %v", got, want)
			}
		})
	}
}

type fakeChanges struct {
	pending [][]string
	polls   int
}

func (f *fakeChanges) Poll() []string {
	f.polls++
	if len(f.pending) == 0 {
		return nil
	}
	next := f.pending[0]
	f.pending = f.pending[1:]
	return next
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	cat := catalog.New(nil)
	if !cat.Load(t.TempDir()) {
		t.Fatal("catalog Load failed")
	}
	return NewModel(app.New(cat, app.Options{}), opts)
}

// tick feeds keys and then one tick, 1/60 s after the previous one.
func tick(t *testing.T, m Model, at *time.Time, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	*at = at.Add(time.Second / 60)
	next, _ := m.Update(TickMsg(*at))
	return next.(Model)
}

func TestModelStartsGameFromMenu(t *testing.T) {
	m := newModel(t, Options{TickRate: 60})
	at := time.Now()

	for i := 0; i < 30 && m.Game().State() == app.StateMenu; i++ {
		m = tick(t, m, &at, "enter")
	}
	if m.Game().State() != app.StatePlaying {
		t.Fatalf("state = %v, want playing", m.Game().State())
	}

	view := m.View()
	if !strings.Contains(view, "Moves: 0") {
		t.Errorf("view missing HUD:\n%s", view)
	}
}

func TestModelCtrlCQuits(t *testing.T) {
	m := newModel(t, Options{})
	next, cmd := m.Update(keyMsg("ctrl+c"))
	m = next.(Model)
	if cmd == nil || !m.Game().ShouldClose() {
		t.Error("Ctrl+C did not quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelQuitFromMenu(t *testing.T) {
	m := newModel(t, Options{})
	at := time.Now()
	var cmd tea.Cmd
	for i := 0; i < 30 && !m.Game().ShouldClose(); i++ {
		var next tea.Model
		next, _ = m.Update(keyMsg("q"))
		at = at.Add(time.Second / 60)
		next, cmd = next.(Model).Update(TickMsg(at))
		m = next.(Model)
	}
	if !m.Game().ShouldClose() || cmd == nil {
		t.Error("Q in the menu did not close the game")
	}
}

func TestModelPollsChanges(t *testing.T) {
	changes := &fakeChanges{pending: [][]string{{"/nonexistent/level.json"}}}
	m := newModel(t, Options{Changes: changes})
	at := time.Now()
	m = tick(t, m, &at)
	m = tick(t, m, &at)
	if changes.polls != 2 {
		t.Errorf("polls = %d, want 2", changes.polls)
	}
}

func TestModelResize(t *testing.T) {
	m := newModel(t, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	if m.Screen().Width() != 100 || m.Screen().Height() != 40 {
		t.Errorf("screen = %dx%d, want 100x40", m.Screen().Width(), m.Screen().Height())
	}

	fixed := newModel(t, Options{Width: 60, Height: 20})
	next, _ = fixed.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	fixed = next.(Model)
	if fixed.Screen().Width() != 60 || fixed.Screen().Height() != 20 {
		t.Errorf("fixed screen = %dx%d, want 60x20", fixed.Screen().Width(), fixed.Screen().Height())
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	m := newModel(t, Options{ScreenshotDir: dir})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v, %v; want one file", files, err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, files[0].Name()))
	if !strings.Contains(string(data), "Start Game") {
		t.Errorf("screenshot does not contain the menu:\n%s", data)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorBrightRed)
	s.DrawTextColored(2, 0, "cd", core.ColorDarkGray)
	s.DrawText(0, 1, "efgh")

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") || !strings.Contains(lines[1], "efgh") {
		t.Errorf("RenderScreen() = %q", lines)
	}
}

type fakeResults map[string][]storage.Result

func (f fakeResults) TopResults(levelID string, limit int) ([]storage.Result, error) {
	return f[levelID], nil
}

func TestResultsModel(t *testing.T) {
	levels := []catalog.Entry{{ID: "a", Name: "Alpha"}, {ID: "b"}}
	source := fakeResults{
		"a": {{LevelID: "a", Moves: 12, Elapsed: 65 * time.Second}},
	}
	m := NewResultsModel(levels, source, 100, 30)

	if len(m.Results()) != 1 {
		t.Fatalf("results = %d, want 1", len(m.Results()))
	}
	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "1:05") {
		t.Errorf("view missing level or time:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ResultsModel)
	if m.Cursor() != 1 || len(m.Results()) != 0 {
		t.Errorf("after tab: cursor %d, results %d; want 1, 0", m.Cursor(), len(m.Results()))
	}
	if !strings.Contains(m.View(), "No results recorded yet") {
		t.Error("empty level should show placeholder")
	}

	next, _ = m.Update(keyMsg("right"))
	m = next.(ResultsModel)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want wrap to 0", m.Cursor())
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(ResultsModel)
	if !m.IsGoingBack() || m.View() != "" {
		t.Error("esc should leave the results browser")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61500 * time.Millisecond, "1:02"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveHostKey(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "keys", "nested", "host_key")
	got, err := resolveHostKey(want)
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if got != want {
		t.Errorf("resolveHostKey = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("host key directory not created: %v", err)
	}

	t.Setenv("HOME", dir)
	got, err = resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey default: %v", err)
	}
	if want := filepath.Join(dir, ".sokoban", "host_key"); got != want {
		t.Errorf("default host key = %q, want %q", got, want)
	}
}

func TestNewSSHServerNeedsFactory(t *testing.T) {
	if _, err := NewSSHServer(DefaultSSHServerConfig(), nil, nil); err == nil {
		t.Error("NewSSHServer without factory should fail")
	}
}
