package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wrenard/gigdeck/internal/domain"
)

// ProjectsLoadedMsg is sent when projects have been fetched from the
// marketplace. It is exported so that tests can inject it directly into
// MonitorModel.Update.
type ProjectsLoadedMsg struct {
	Projects []domain.Project
	Err      error
}

// tickMsg is sent by the auto-refresh ticker.
type tickMsg struct{}

// DefaultPollInterval is how often the monitor re-runs the search unless the
// caller chooses otherwise.
const DefaultPollInterval = 60 * time.Second

// viewState indicates the current navigation level.
type viewState int

const (
	viewList viewState = iota
	viewDetail
)

// MonitorModel is the root Bubbletea model for the project monitor: it polls
// a search and surfaces projects that were not in the previous results.
type MonitorModel struct {
	searcher domain.ProjectSearcher
	query    string
	filter   domain.Filter
	interval time.Duration

	view     viewState
	list     ProjectListModel
	selected domain.Project

	seen     map[int64]bool
	newCount int

	loading bool
	err     error
	width   int
	height  int
}

// NewMonitorModel creates the root monitor model for a search query.
// A non-positive interval falls back to DefaultPollInterval.
func NewMonitorModel(searcher domain.ProjectSearcher, query string, filter domain.Filter, interval time.Duration) MonitorModel {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return MonitorModel{
		searcher: searcher,
		query:    query,
		filter:   filter,
		interval: interval,
		list:     NewProjectListModel(nil, nil),
		seen:     make(map[int64]bool),
		loading:  true,
	}
}

// Init triggers the initial search.
func (m MonitorModel) Init() tea.Cmd {
	return tea.Batch(m.search(), tickEvery(m.interval))
}

func (m MonitorModel) search() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.searcher.SearchActiveProjects(m.query, m.filter)
		return ProjectsLoadedMsg{Projects: projects, Err: err}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles all incoming messages and key events.
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ProjectsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrUnauthorized) {
				m.err = fmt.Errorf("access token expired: run gigdeck auth and restart")
				return m, nil
			}
			m.err = msg.Err
			return m, nil
		}
		m.err = nil

		firstLoad := len(m.seen) == 0
		newIDs := make(map[int64]bool)
		for _, p := range msg.Projects {
			if !firstLoad && !m.seen[p.ID] {
				newIDs[p.ID] = true
			}
			m.seen[p.ID] = true
		}
		m.newCount = len(newIDs)
		m.list = m.list.UpdateProjects(msg.Projects, newIDs)
		if m.selected.ID != 0 {
			for _, p := range msg.Projects {
				if p.ID == m.selected.ID {
					m.selected = p
					break
				}
			}
		}

	case tickMsg:
		return m, tea.Batch(m.search(), tickEvery(m.interval))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.loading = true
			return m, m.search()
		}
		switch m.view {
		case viewList:
			return m.updateList(msg)
		case viewDetail:
			if msg.String() == "esc" {
				m.view = viewList
			}
		}
	}
	return m, nil
}

func (m MonitorModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.list = m.list.MoveDown()
	case "up":
		m.list = m.list.MoveUp()
	case "enter":
		if len(m.list.Projects()) > 0 {
			m.selected = m.list.Selected()
			m.view = viewDetail
		}
	}
	return m, nil
}

// View renders the full TUI.
func (m MonitorModel) View() string {
	if m.loading {
		return "Searching projects...\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'ctrl+r' to retry or 'q' to quit.\n", m.err)
	}

	header := fmt.Sprintf(" gigdeck | %q\n", m.query)
	separator := "────────────────────────────────────────────────────────────\n"

	if m.view == viewDetail {
		return m.renderDetailView(header, separator)
	}
	return m.renderListView(header, separator)
}

func (m MonitorModel) renderListView(header, separator string) string {
	title := " Active Projects\n"
	listView := m.list.View()
	statusBar := fmt.Sprintf(" %d projects, %d new since last poll\n",
		len(m.list.Projects()), m.newCount)
	footer := " ↑/↓: navigate   enter: details   ctrl+r: refresh   q: quit\n"
	return header + separator + title + listView + "\n" + separator + statusBar + separator + footer
}

func (m MonitorModel) renderDetailView(header, separator string) string {
	p := m.selected
	title := fmt.Sprintf(" %s\n", p.Title)
	body := fmt.Sprintf(
		"\n Budget:    %s\n Type:      %s\n Bids:      %d (avg %.0f)\n Posted:    %s\n\n %s\n\n",
		formatBudget(p), p.Type, p.Bids.Count, p.Bids.Average,
		formatAge(p.Submitted), firstLines(p.Description, m.detailLines()))
	footer := " esc: back   q: quit\n"
	return header + separator + title + separator + body + separator + footer
}

// detailLines returns how many description lines fit in the current
// terminal height.
func (m MonitorModel) detailLines() int {
	lines := m.height - 12
	if lines < 10 {
		return 10
	}
	return lines
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// Run starts the Bubbletea program. Exits on error.
func Run(searcher domain.ProjectSearcher, query string, filter domain.Filter, interval time.Duration) {
	p := tea.NewProgram(NewMonitorModel(searcher, query, filter, interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gigdeck error: %v\n", err)
		os.Exit(1)
	}
}
