package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/wrenard/gigdeck/internal/domain"
)

// ProjectListModel is an immutable Bubbletea-compatible model for the
// project list panel.
type ProjectListModel struct {
	projects []domain.Project
	newIDs   map[int64]bool
	cursor   int
}

// NewProjectListModel creates a project list model. newIDs marks projects
// that appeared since the previous poll.
func NewProjectListModel(projects []domain.Project, newIDs map[int64]bool) ProjectListModel {
	return ProjectListModel{projects: projects, newIDs: newIDs, cursor: 0}
}

// UpdateProjects returns a new model with fresh projects, keeping the cursor
// on the same project when it is still listed.
func (m ProjectListModel) UpdateProjects(projects []domain.Project, newIDs map[int64]bool) ProjectListModel {
	selected := m.Selected()
	next := ProjectListModel{projects: projects, newIDs: newIDs, cursor: 0}
	for i, p := range projects {
		if p.ID == selected.ID {
			next.cursor = i
			break
		}
	}
	return next
}

// MoveDown returns a new model with the cursor moved down by one.
func (m ProjectListModel) MoveDown() ProjectListModel {
	if m.cursor < len(m.projects)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m ProjectListModel) MoveUp() ProjectListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Projects returns the listed projects.
func (m ProjectListModel) Projects() []domain.Project {
	return m.projects
}

// SelectedIndex returns the current cursor position.
func (m ProjectListModel) SelectedIndex() int {
	return m.cursor
}

// Selected returns the currently highlighted project.
// Returns zero-value Project if the list is empty.
func (m ProjectListModel) Selected() domain.Project {
	if len(m.projects) == 0 {
		return domain.Project{}
	}
	return m.projects[m.cursor]
}

// View renders the project list as a string.
func (m ProjectListModel) View() string {
	if len(m.projects) == 0 {
		return "No projects found."
	}
	var sb strings.Builder
	for i, p := range m.projects {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		marker := " "
		if m.newIDs[p.ID] {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%s %-40s %-16s %3d bids  %s\n",
			prefix,
			marker,
			truncate(p.Title, 40),
			formatBudget(p),
			p.Bids.Count,
			formatAge(p.Submitted),
		))
	}
	return sb.String()
}

func formatBudget(p domain.Project) string {
	if p.Budget.Minimum == 0 && p.Budget.Maximum == 0 {
		return "--"
	}
	return fmt.Sprintf("%.0f-%.0f %s", p.Budget.Minimum, p.Budget.Maximum, p.CurrencyCode)
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
