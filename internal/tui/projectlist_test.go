package tui_test

import (
	"strings"
	"testing"

	"github.com/wrenard/gigdeck/internal/domain"
	"github.com/wrenard/gigdeck/internal/tui"
)

func TestProjectList_CursorStaysInBounds(t *testing.T) {
	m := tui.NewProjectListModel([]domain.Project{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}, nil)

	m = m.MoveUp()
	if m.SelectedIndex() != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.SelectedIndex())
	}

	m = m.MoveDown().MoveDown().MoveDown()
	if m.SelectedIndex() != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.SelectedIndex())
	}
	if m.Selected().ID != 2 {
		t.Errorf("expected second project selected, got %d", m.Selected().ID)
	}
}

func TestProjectList_UpdateKeepsCursorOnSameProject(t *testing.T) {
	m := tui.NewProjectListModel([]domain.Project{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}, nil)
	m = m.MoveDown()

	m = m.UpdateProjects([]domain.Project{
		{ID: 3, Title: "Newcomer"},
		{ID: 2, Title: "Second"},
		{ID: 1, Title: "First"},
	}, nil)

	if m.Selected().ID != 2 {
		t.Errorf("expected cursor to follow project 2, got %d", m.Selected().ID)
	}
}

func TestProjectList_UpdateResetsCursorWhenProjectGone(t *testing.T) {
	m := tui.NewProjectListModel([]domain.Project{{ID: 1, Title: "First"}}, nil)

	m = m.UpdateProjects([]domain.Project{{ID: 5, Title: "Other"}}, nil)
	if m.SelectedIndex() != 0 {
		t.Errorf("expected cursor reset to 0, got %d", m.SelectedIndex())
	}
}

func TestProjectList_ViewShowsBudgetAndBids(t *testing.T) {
	m := tui.NewProjectListModel([]domain.Project{
		{
			ID:           1,
			Title:        "Build REST API",
			Budget:       domain.Budget{Minimum: 250, Maximum: 750},
			CurrencyCode: "USD",
			Bids:         domain.BidStats{Count: 12},
		},
	}, nil)

	view := m.View()
	if !strings.Contains(view, "250-750 USD") {
		t.Errorf("expected budget range in view, got:\n%s", view)
	}
	if !strings.Contains(view, "12 bids") {
		t.Errorf("expected bid count in view, got:\n%s", view)
	}
}

func TestProjectList_EmptyView(t *testing.T) {
	m := tui.NewProjectListModel(nil, nil)
	if got := m.View(); !strings.Contains(got, "No projects found") {
		t.Errorf("expected empty message, got %q", got)
	}
}
