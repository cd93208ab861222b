package main

import (
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-coretweet/pkg/export"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	centralityView view = iota
	membersView
	communitiesView
	summaryView
	viewCount
)

var viewNames = []string{"Centrality", "Members", "Communities", "Summary"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Sort     key.Binding
	Filter   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by next column"),
	),
	Filter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "members of selected community"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Sort, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.ShiftTab}, {k.Sort, k.Filter, k.Clear}, {k.Quit}}
}

// pane is one browsable table
type pane struct {
	data    *dataTable
	rows    [][]string
	sortCol int
	filter  string
	table   table.Model
}

func newPane(data *dataTable) *pane {
	p := &pane{data: data, rows: slices.Clone(data.rows), sortCol: -1}
	cols := make([]table.Column, len(data.header))
	for i, h := range data.header {
		width := len(h)
		for _, r := range data.rows {
			width = max(width, len(r[i]))
		}
		cols[i] = table.Column{Title: h, Width: min(width, 32)}
	}

	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(20))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	p.table = t
	p.refresh()
	return p
}

func (p *pane) refresh() {
	rows := make([]table.Row, len(p.rows))
	for i, r := range p.rows {
		rows[i] = table.Row(r)
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

func (p *pane) cycleSort() {
	if len(p.data.header) == 0 {
		return
	}
	p.sortCol = (p.sortCol + 1) % len(p.data.header)
	sortRows(p.rows, p.sortCol)
	p.refresh()
}

func (p *pane) column(name string) int {
	return slices.Index(p.data.header, name)
}

func (p *pane) setFilter(col int, value string) {
	p.filter = value
	if value == "" {
		p.rows = slices.Clone(p.data.rows)
	} else {
		p.rows = filterRows(p.data.rows, col, value)
	}
	if p.sortCol >= 0 {
		sortRows(p.rows, p.sortCol)
	}
	p.refresh()
}

func (p *pane) status() string {
	s := fmt.Sprintf("%d rows", len(p.rows))
	if p.sortCol >= 0 {
		s += " · sorted by " + p.data.header[p.sortCol]
	}
	if p.filter != "" {
		s += " · community " + p.filter
	}
	return s
}

type model struct {
	dir         string
	panes       map[view]*pane
	summary     string
	currentView view
	help        help.Model
	keys        keyMap
	width       int
	message     string
}

func initialModel(dir string) (model, error) {
	m := model{dir: dir, panes: make(map[view]*pane), help: help.New(), keys: keys}
	files := map[view]string{
		centralityView:  export.CentralityFile,
		membersView:     export.CommunitiesFile,
		communitiesView: export.CommunityStatsFile,
	}
	for v, name := range files {
		data, err := loadTable(dir, name)
		if err != nil {
			return m, fmt.Errorf("load %s: %w", name, err)
		}
		m.panes[v] = newPane(data)
	}
	summary, err := loadText(dir, export.SummaryFile)
	if err != nil {
		summary = "no summary: " + err.Error()
	}
	m.summary = summary
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		p := m.panes[m.currentView]
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.currentView = (m.currentView + viewCount - 1) % viewCount
			return m, nil
		case key.Matches(msg, m.keys.Sort) && p != nil:
			p.cycleSort()
			return m, nil
		case key.Matches(msg, m.keys.Filter) && m.currentView == communitiesView:
			m.showMembers(p)
			return m, nil
		case key.Matches(msg, m.keys.Clear) && p != nil:
			p.setFilter(0, "")
			return m, nil
		}
	}

	if p := m.panes[m.currentView]; p != nil {
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// showMembers switches to the member table filtered to the community
// selected in the community table
func (m *model) showMembers(p *pane) {
	row := p.table.SelectedRow()
	if len(row) == 0 {
		return
	}
	members := m.panes[membersView]
	col := members.column("Community")
	if col < 0 {
		m.message = "member table has no Community column"
		return
	}
	members.setFilter(col, row[0])
	m.currentView = membersView
	m.message = ""
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("co-retweet results · " + m.dir))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")

	if p := m.panes[m.currentView]; p != nil {
		s.WriteString(contentStyle.Render(p.table.View()))
		s.WriteString("\n")
		s.WriteString(contentStyle.Render(statusStyle.Render(p.status())))
	} else {
		s.WriteString(contentStyle.Render(m.summary))
	}
	if m.message != "" {
		s.WriteString("\n")
		s.WriteString(contentStyle.Render(m.message))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, len(viewNames))
	for i, name := range viewNames {
		if view(i) == m.currentView {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func main() {
	dir := flag.String("dir", "out", "Directory holding the exported tables")
	flag.Parse()

	m, err := initialModel(*dir)
	if err != nil {
		log.Fatalf("Failed to load tables: %v", err)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
