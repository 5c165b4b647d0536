package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

// Default number of ledger rows loaded by the history screen.
const DefaultHistoryLimit = 50

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.Help, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show match"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing the match ledger.
type HistoryModel struct {
	store    *storage.Store
	node     string // Restricts the summary line to one node when set
	limit    int
	records  []storage.MatchRecord
	stats    *storage.Stats
	detail   []storage.MatchRecord
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model and loads the newest records.
func NewHistoryModel(store *storage.Store, node string, limit, width, height int) HistoryModel {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	m := HistoryModel{
		store:  store,
		node:   node,
		limit:  limit,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Match", Width: 8},
		{Title: "Node", Width: 14},
		{Title: "Role", Width: 7},
		{Title: "Round 1", Width: 8},
		{Title: "Round 2", Width: 8},
		{Title: "Result", Width: 6},
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

func (m *HistoryModel) load() {
	m.detail = nil
	m.loadErr = nil
	if m.store == nil {
		m.records = nil
		m.stats = nil
		m.updateTableRows()
		return
	}

	records, err := m.store.RecentResults(m.limit)
	if err != nil {
		m.loadErr = err
	}
	m.records = records

	stats, err := m.store.NodeStats(m.node)
	if err != nil && m.loadErr == nil {
		m.loadErr = err
	}
	m.stats = stats
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = historyRow(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func historyRow(r storage.MatchRecord) table.Row {
	result := "lost"
	if r.Won {
		result = "won"
	}
	matchID := r.MatchID
	if len(matchID) > 8 {
		matchID = matchID[:8]
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		matchID,
		r.Node,
		r.Role,
		fmt.Sprintf("%.1fs", r.Seconds(r.RoundOne)),
		fmt.Sprintf("%.1fs", r.Seconds(r.RoundTwo)),
		result,
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			m.showSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// showSelected loads every node's record of the highlighted match.
func (m *HistoryModel) showSelected() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.records) {
		return
	}
	detail, err := m.store.ResultsByMatch(m.records[i].MatchID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.detail = detail
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY", m.width)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if len(m.detail) > 0 {
		b.WriteString(m.renderDetail())
		b.WriteString("\n")
	}
	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		b.WriteString(errStyle.Render(m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) summary() string {
	if m.stats == nil {
		return "no ledger"
	}
	who := "all nodes"
	if m.node != "" {
		who = m.node
	}
	s := fmt.Sprintf("%s: %d played, %d won", who, m.stats.Played, m.stats.Won)
	if !m.stats.LastPlayed.IsZero() {
		s += ", last " + m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	return s
}

func (m HistoryModel) renderTableContent() string {
	if len(m.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No matches recorded yet.\nFinish a duel to fill the ledger!")
	}
	return m.table.View()
}

func (m HistoryModel) renderDetail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "match %s\n", m.detail[0].MatchID)
	for _, r := range m.detail {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Fprintf(&b, "  %-14s %-7s R1 %.1fs  R2 %.1fs  %s\n",
			r.Node, r.Role, r.Seconds(r.RoundOne), r.Seconds(r.RoundTwo), result)
	}
	return b.String()
}

// Records returns the loaded ledger rows.
func (m HistoryModel) Records() []storage.MatchRecord {
	return m.records
}

// Detail returns the records of the match last opened with Select.
func (m HistoryModel) Detail() []storage.MatchRecord {
	return m.detail
}

// RunHistory runs the history screen until the user quits.
func RunHistory(store *storage.Store, node string, limit, width, height int) error {
	model := NewHistoryModel(store, node, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
