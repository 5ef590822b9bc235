package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/rotamaze/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the layout sidebar
	sidebarWidth       = 20  // Width of layout sidebar
	maxRuns            = 100 // Max runs to load per tab
	allLayouts         = ""  // tab ID of the cross-layout view
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLayout, k.PrevLayout, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Back, k.Quit},
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
		NextLayout: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev layout"),
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

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	tabs        []string // layout IDs; the first tab shows every layout
	tabCursor   int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	now         func() time.Time
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history screen. Tabs are every layout that has
// recorded runs, sorted by ID, after an "all layouts" tab.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	tabs := []string{allLayouts}
	if store != nil {
		if stats, err := store.GetAllLayoutStats(); err == nil {
			ids := make([]string, 0, len(stats))
			for id := range stats {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			tabs = append(tabs, ids...)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		tabs:        tabs,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		now:         time.Now,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Layout", Width: 12},
		{Title: "Strategy", Width: 13},
		{Title: "Result", Width: 9},
		{Title: "Cost", Width: 6},
		{Title: "Expanded", Width: 11},
		{Title: "Time", Width: 8},
	}

	tableWidth := m.width - 6
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Drop the layout column first, then the timing column, on narrow terminals.
	if tableWidth < 80 {
		columns = append(columns[:1], columns[2:]...)
	}
	if tableWidth < 66 {
		columns = columns[:len(columns)-1]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
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

// loadRuns loads runs for the current tab.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		var (
			runs []storage.Run
			err  error
		)
		if id := m.tabs[m.tabCursor]; id == allLayouts {
			runs, err = m.store.RecentRuns(maxRuns)
		} else {
			runs, err = m.store.RunsForLayout(id, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *HistoryModel) updateTableRows() {
	cols := m.table.Columns()
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := make(table.Row, 0, len(cols))
		for _, c := range cols {
			row = append(row, m.cell(c.Title, r))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *HistoryModel) cell(column string, r storage.Run) string {
	switch column {
	case "When":
		return humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now")
	case "Layout":
		return r.LayoutID
	case "Strategy":
		return r.Strategy
	case "Result":
		switch {
		case r.Found:
			return "solved"
		case r.Truncated:
			return "cut off"
		default:
			return "no path"
		}
	case "Cost":
		if !r.Found {
			return "-"
		}
		return fmt.Sprintf("%d", r.Cost)
	case "Expanded":
		return humanize.Comma(int64(r.Expanded))
	case "Time":
		return r.Duration.Round(time.Millisecond).String()
	}
	return ""
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

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextLayout):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout):
			m.tabCursor--
			if m.tabCursor < 0 {
				m.tabCursor = len(m.tabs) - 1
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RUN HISTORY - "+tabTitle(m.tabs[m.tabCursor])), m.width))
	b.WriteString("\n")
	if summary := m.summary(); summary != "" {
		b.WriteString(centerText(summary, m.width))
	}
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the selected layout's aggregate stats.
func (m HistoryModel) summary() string {
	id := m.tabs[m.tabCursor]
	if m.store == nil || id == allLayouts {
		return ""
	}
	st, err := m.store.GetLayoutStats(id)
	if err != nil || st.Runs == 0 {
		return ""
	}
	line := fmt.Sprintf("%d runs, %d solved", st.Runs, st.Solved)
	if st.Solved > 0 {
		line += fmt.Sprintf(", best cost %d", st.BestCost)
	}
	return line + ", last " + humanize.RelTime(st.LastRun, m.now(), "ago", "from now")
}

// renderWideLayout renders the table with a layout sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Layouts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tabCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(tabTitle(id), sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current tab name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabLine := fmt.Sprintf("< %s >", tabTitle(m.tabs[m.tabCursor]))
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nSolve a layout to start the history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

func tabTitle(id string) string {
	if id == allLayouts {
		return "all layouts"
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunHistory runs the history screen on its own.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		historyProgram{NewHistoryModel(store, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// historyProgram quits when the history screen is left.
type historyProgram struct {
	HistoryModel
}

func (h historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := h.HistoryModel.Update(msg)
	m := next.(HistoryModel)
	if m.IsGoingBack() {
		return historyProgram{m}, tea.Quit
	}
	return historyProgram{m}, cmd
}
