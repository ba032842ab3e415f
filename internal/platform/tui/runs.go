package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Run history layout constants
const (
	runsChromeHeight = 9   // title, stats, borders and help around the table
	maxRuns          = 100 // Max runs to load
)

// RunsOrder selects which runs the table lists.
type RunsOrder int

const (
	OrderBest   RunsOrder = iota // most lines first
	OrderRecent                  // newest first
)

func (o RunsOrder) String() string {
	if o == OrderRecent {
		return "Recent runs"
	}
	return "Best runs"
}

// RunsKeyMap defines the key bindings for the run history.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the autoplay run history.
type RunsModel struct {
	store     *storage.Store
	order     RunsOrder
	runs      []storage.Run
	stats     *storage.RunStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewRunsModel creates a new run history model. A nil store shows an
// empty table.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = NewRunsTable(width, height-runsChromeHeight)
	m.load()
	return m
}

// NewRunsTable builds an empty run table sized for the given area.
func NewRunsTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Seed", Width: 20},
		{Title: "Preset", Width: 7},
		{Title: "Pieces", Width: 7},
		{Title: "Lines", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Stack", Width: 5},
		{Title: "Date", Width: 12},
	}

	// Narrow terminals drop the date, then shrink the seed column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if width > 0 && used > width-4 {
		columns = columns[:len(columns)-1]
		used -= 14
		if used > width-4 {
			columns[1].Width = max(columns[1].Width-(used-(width-4)), 6)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// RunRows converts runs into table rows, ranked from 1. Rows are trimmed to
// the table's column count.
func RunRows(runs []storage.Run, columns int) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Seed),
			r.Preset,
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.StackHeight),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if columns < len(row) {
			row = row[:columns]
		}
		rows[i] = row
	}
	return rows
}

// load reads the runs for the current order and the aggregate stats.
func (m *RunsModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		var err error
		if m.order == OrderRecent {
			m.runs, err = m.store.RecentRuns(maxRuns)
		} else {
			m.runs, err = m.store.TopRuns(maxRuns)
		}
		if err == nil {
			m.stats, err = m.store.Stats()
		}
		m.loadErr = err
	}

	m.table.SetRows(RunRows(m.runs, len(m.table.Columns())))
	m.table.GotoTop()
}

// Init initializes the run history model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.order == OrderBest {
				m.order = OrderRecent
			} else {
				m.order = OrderBest
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = NewRunsTable(m.width, m.height-runsChromeHeight)
		m.table.SetRows(RunRows(m.runs, len(m.table.Columns())))
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("AUTOPLAY RUNS - "+m.order.String()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs"
	}
	return fmt.Sprintf("%d runs  |  best %d lines  |  avg %.1f lines, %.1f pieces",
		m.stats.Runs, m.stats.BestLines, m.stats.AvgLines, m.stats.AvgPieces)
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Cannot load runs:\n" + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nRun `tetris bench --save` to add some.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRunsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
