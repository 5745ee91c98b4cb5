package tui_test

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wrenard/gigdeck/internal/domain"
	"github.com/wrenard/gigdeck/internal/tui"
)

// fakeSearcher satisfies domain.ProjectSearcher for TUI tests.
type fakeSearcher struct {
	projects []domain.Project
	err      error
	calls    int
}

func (f *fakeSearcher) SearchActiveProjects(_ string, _ domain.Filter) ([]domain.Project, error) {
	f.calls++
	return f.projects, f.err
}

func loaded(projects ...domain.Project) tui.ProjectsLoadedMsg {
	return tui.ProjectsLoadedMsg{Projects: projects}
}

func TestMonitor_FirstLoadShowsProjectsWithoutNewMarkers(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	updated, _ := m.Update(loaded(
		domain.Project{ID: 1, Title: "Build REST API", CurrencyCode: "USD"},
		domain.Project{ID: 2, Title: "Fix scraper", CurrencyCode: "USD"},
	))
	view := updated.(tui.MonitorModel).View()

	if !strings.Contains(view, "Build REST API") {
		t.Errorf("expected project title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "2 projects, 0 new") {
		t.Errorf("expected no new projects on first load, got:\n%s", view)
	}
}

func TestMonitor_SecondLoadFlagsUnseenProjects(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	m1, _ := m.Update(loaded(domain.Project{ID: 1, Title: "Old project"}))
	m2, _ := m1.(tui.MonitorModel).Update(loaded(
		domain.Project{ID: 2, Title: "Fresh project"},
		domain.Project{ID: 1, Title: "Old project"},
	))
	view := m2.(tui.MonitorModel).View()

	if !strings.Contains(view, "1 new") {
		t.Errorf("expected 1 new project flagged, got:\n%s", view)
	}
	if !strings.Contains(view, "* Fresh project") {
		t.Errorf("expected new-project marker on Fresh project, got:\n%s", view)
	}
}

func TestMonitor_ReloadedProjectIsNotNewAgain(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	m1, _ := m.Update(loaded(domain.Project{ID: 1, Title: "Only project"}))
	m2, _ := m1.(tui.MonitorModel).Update(loaded(domain.Project{ID: 1, Title: "Only project"}))
	view := m2.(tui.MonitorModel).View()

	if !strings.Contains(view, "0 new") {
		t.Errorf("expected previously seen project not flagged, got:\n%s", view)
	}
}

func TestMonitor_EnterOpensDetailEscReturns(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	m1, _ := m.Update(loaded(domain.Project{
		ID:          1,
		Title:       "Build REST API",
		Description: "Full project description here",
		Bids:        domain.BidStats{Count: 4, Average: 300},
	}))
	m2, _ := m1.(tui.MonitorModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	detail := m2.(tui.MonitorModel).View()

	if !strings.Contains(detail, "Full project description here") {
		t.Errorf("expected description in detail view, got:\n%s", detail)
	}

	m3, _ := m2.(tui.MonitorModel).Update(tea.KeyMsg{Type: tea.KeyEsc})
	list := m3.(tui.MonitorModel).View()

	if !strings.Contains(list, "Active Projects") {
		t.Errorf("expected return to list view, got:\n%s", list)
	}
}

func TestMonitor_UnauthorizedShowsReauthHint(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	updated, _ := m.Update(tui.ProjectsLoadedMsg{Err: domain.ErrUnauthorized})
	view := updated.(tui.MonitorModel).View()

	if !strings.Contains(view, "gigdeck auth") {
		t.Errorf("expected re-auth hint in view, got:\n%s", view)
	}
}

func TestMonitor_GenericErrorIsDisplayed(t *testing.T) {
	m := tui.NewMonitorModel(&fakeSearcher{}, "golang", domain.Filter{}, 0)

	updated, _ := m.Update(tui.ProjectsLoadedMsg{Err: errors.New("connection refused")})
	view := updated.(tui.MonitorModel).View()

	if !strings.Contains(view, "connection refused") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestMonitor_CtrlRTriggersSearch(t *testing.T) {
	searcher := &fakeSearcher{projects: []domain.Project{{ID: 1, Title: "P"}}}
	m := tui.NewMonitorModel(searcher, "golang", domain.Filter{}, 0)

	m1, _ := m.Update(loaded(domain.Project{ID: 1, Title: "P"}))
	_, cmd := m1.(tui.MonitorModel).Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected ctrl+r to return a refresh command")
	}

	msg := cmd()
	if _, ok := msg.(tui.ProjectsLoadedMsg); !ok {
		t.Fatalf("expected ProjectsLoadedMsg from refresh, got %T", msg)
	}
	if searcher.calls != 1 {
		t.Errorf("expected one search call, got %d", searcher.calls)
	}
}
