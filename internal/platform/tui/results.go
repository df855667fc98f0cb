package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/catalog"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxResults         = 100
)

var (
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")
	borderColor = lipgloss.Color("240")

	resultsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	resultsHelpStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	resultsBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	resultsEmptyStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Padding(2, 4)
	resultsErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(2, 4)
	sidebarPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	levelTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Background(lipgloss.Color("57")).Padding(0, 1)
)

// ResultSource provides ranked results for a level.
type ResultSource interface {
	TopResults(levelID string, limit int) ([]storage.Result, error)
}

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevLevel, k.NextLevel, k.Back}
}

func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.PrevLevel, k.NextLevel}, {k.Back, k.Quit}}
}

// DefaultResultsKeyMap scrolls with up/down and switches level with
// left/right or tab.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextLevel: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		PrevLevel: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/S-tab", "prev level")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ResultsModel browses recorded completions level by level.
type ResultsModel struct {
	levels  []catalog.Entry
	cursor  int
	source  ResultSource
	results []storage.Result
	loadErr error

	table table.Model
	help  help.Model
	keys  ResultsKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewResultsModel creates a results browser over levels, starting at the first.
func NewResultsModel(levels []catalog.Entry, source ResultSource, width, height int) ResultsModel {
	m := ResultsModel{
		levels: levels,
		source: source,
		keys:   DefaultResultsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.selectLevel(0)
	return m
}

func (m ResultsModel) wide() bool { return m.width >= minWidthForSidebar }

func (m ResultsModel) newTable() table.Model {
	dateWidth := 14
	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	if avail > 50 {
		dateWidth = min(avail-28, 20)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(accentColor).Background(lipgloss.Color("57")).Bold(false)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Moves", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
		table.WithStyles(styles),
	)
	t.SetRows(resultRows(m.results))
	return t
}

func resultRows(results []storage.Result) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Moves),
			formatDuration(r.Elapsed),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	return rows
}

// selectLevel moves the cursor with wrap-around and reloads the table.
func (m *ResultsModel) selectLevel(i int) {
	n := len(m.levels)
	if n == 0 {
		return
	}
	m.cursor = ((i % n) + n) % n
	m.results, m.loadErr = nil, nil
	if m.source != nil {
		m.results, m.loadErr = m.source.TopResults(m.levels[m.cursor].ID, maxResults)
	}
	m.table.SetRows(resultRows(m.results))
	m.table.GotoTop()
}

func (m ResultsModel) Init() tea.Cmd { return nil }

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.selectLevel(m.cursor + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.selectLevel(m.cursor - 1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Cursor returns the selected level index.
func (m ResultsModel) Cursor() int { return m.cursor }

// Results returns the rows shown for the selected level.
func (m ResultsModel) Results() []storage.Result { return m.results }

func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST RESULTS"
	if len(m.levels) > 0 {
		title += " - " + levelTitle(m.levels[m.cursor])
	}

	var b strings.Builder
	b.WriteString(resultsTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			resultsBoxStyle.Width(sidebarWidth).Render(m.sidebar()),
			"  ",
			resultsBoxStyle.Render(m.body()),
		))
	} else {
		if len(m.levels) > 0 {
			tab := fmt.Sprintf("< %d/%d %s >", m.cursor+1, len(m.levels), levelTitle(m.levels[m.cursor]))
			b.WriteString(centerText(levelTabStyle.Render(tab), m.width))
			b.WriteString("\n\n")
		}
		b.WriteString(centerText(resultsBoxStyle.Render(m.body()), m.width))
	}
	b.WriteString("\n")
	b.WriteString(resultsHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ResultsModel) sidebar() string {
	lines := []string{"Levels", strings.Repeat("-", sidebarWidth-4)}
	for i, e := range m.levels {
		name := truncate(levelTitle(e), sidebarWidth-6)
		if i == m.cursor {
			lines = append(lines, sidebarPickStyle.Render("> "+name))
			continue
		}
		lines = append(lines, "  "+name)
	}
	return strings.Join(lines, "\n")
}

func (m ResultsModel) body() string {
	switch {
	case m.loadErr != nil:
		return resultsErrStyle.Render("Could not load results:\n" + m.loadErr.Error())
	case len(m.results) == 0:
		return resultsEmptyStyle.Render("No results recorded yet.\nSolve this level to set a record!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the browser was left with Back.
func (m ResultsModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the browser was left with Quit.
func (m ResultsModel) IsQuitting() bool { return m.quitting }

// RunResults runs the results browser until the user leaves it.
func RunResults(levels []catalog.Entry, source ResultSource, width, height int) error {
	_, err := tea.NewProgram(NewResultsModel(levels, source, width, height), tea.WithAltScreen()).Run()
	return err
}

func levelTitle(e catalog.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
