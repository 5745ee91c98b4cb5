package freelancer_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wrenard/gigdeck/internal/domain"
	"github.com/wrenard/gigdeck/internal/freelancer"
)

func TestSelf_ReturnsUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/0.1/self/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("freelancer-oauth-v1"); got != "test-token" {
			t.Errorf("expected oauth header with token, got %q", got)
		}
		fmt.Fprint(w, `{
			"status": "success",
			"result": {
				"id": 42,
				"username": "devuser",
				"display_name": "Dev User",
				"email": "dev@example.com"
			}
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("test-token", server.URL)
	user, err := client.Self()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 42 {
		t.Errorf("expected user id 42, got %d", user.ID)
	}
	if user.Username != "devuser" {
		t.Errorf("expected username devuser, got %q", user.Username)
	}
	if user.Status != "active" {
		t.Errorf("expected status active, got %q", user.Status)
	}
}

func TestSearchActiveProjects_MapsProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/0.1/projects/active/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("query"); got != "golang api" {
			t.Errorf("expected query 'golang api', got %q", got)
		}
		if got := q.Get("limit"); got != "5" {
			t.Errorf("expected limit 5, got %q", got)
		}
		if got := q.Get("min_avg_price"); got != "100" {
			t.Errorf("expected min_avg_price 100, got %q", got)
		}
		if got := q["jobs[]"]; len(got) != 2 {
			t.Errorf("expected 2 job filters, got %v", got)
		}
		fmt.Fprint(w, `{
			"status": "success",
			"result": {
				"projects": [
					{
						"id": 1001,
						"owner_id": 7,
						"title": "Build REST API",
						"preview_description": "Need an API built",
						"type": "fixed",
						"status": "active",
						"budget": {"minimum": 250, "maximum": 750},
						"currency": {"code": "USD"},
						"bid_stats": {"bid_count": 12, "bid_avg": 430.5},
						"submitdate": 1756100000
					}
				]
			}
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("tok", server.URL)
	projects, err := client.SearchActiveProjects("golang api", domain.Filter{
		MinBudget: 100,
		SkillIDs:  []int64{116, 500},
		Limit:     5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.ID != 1001 {
		t.Errorf("expected project id 1001, got %d", p.ID)
	}
	if p.Description != "Need an API built" {
		t.Errorf("expected preview description fallback, got %q", p.Description)
	}
	if p.Budget.Minimum != 250 || p.Budget.Maximum != 750 {
		t.Errorf("expected budget 250-750, got %+v", p.Budget)
	}
	if p.CurrencyCode != "USD" {
		t.Errorf("expected currency USD, got %q", p.CurrencyCode)
	}
	if p.Bids.Count != 12 || p.Bids.Average != 430.5 {
		t.Errorf("expected bid stats 12/430.5, got %+v", p.Bids)
	}
	if want := time.Unix(1756100000, 0).UTC(); !p.Submitted.Equal(want) {
		t.Errorf("expected submitted %v, got %v", want, p.Submitted)
	}
}

func TestProjectDetails_SendsIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/0.1/projects/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		ids := r.URL.Query()["projects[]"]
		if len(ids) != 2 || ids[0] != "1001" || ids[1] != "1002" {
			t.Errorf("expected project ids [1001 1002], got %v", ids)
		}
		fmt.Fprint(w, `{
			"status": "success",
			"result": {
				"projects": [
					{"id": 1001, "title": "First", "description": "Full text one"},
					{"id": 1002, "title": "Second", "description": "Full text two"}
				]
			}
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("tok", server.URL)
	projects, err := client.ProjectDetails([]int64{1001, 1002})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[1].Description != "Full text two" {
		t.Errorf("expected full description, got %q", projects[1].Description)
	}
}

func TestJobCategories_ReturnsTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/0.1/jobs/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("jobs"); got != "true" {
			t.Errorf("expected jobs=true, got %q", got)
		}
		fmt.Fprint(w, `{
			"status": "success",
			"result": [
				{"id": 116, "name": "Golang"},
				{"id": 500, "name": "API Development"}
			]
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("tok", server.URL)
	categories, err := client.JobCategories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].ID != 116 || categories[0].Name != "Golang" {
		t.Errorf("unexpected first category: %+v", categories[0])
	}
}

func TestJobCategories_AcceptsWrappedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": "success",
			"result": {
				"jobs": [
					{"id": 7, "name": "Python"}
				]
			}
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("tok", server.URL)
	categories, err := client.JobCategories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Python" {
		t.Errorf("unexpected categories: %+v", categories)
	}
}

func TestActiveContests_ReturnsContests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contests/0.1/contests/active" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("active_only"); got != "true" {
			t.Errorf("expected active_only=true, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("expected limit 10, got %q", got)
		}
		fmt.Fprint(w, `{
			"status": "success",
			"result": {
				"contests": [
					{"id": 9, "title": "Logo design", "prize": 150, "currency": {"code": "USD"}, "entry_count": 33}
				]
			}
		}`)
	}))
	defer server.Close()

	client := freelancer.NewClient("tok", server.URL)
	contests, err := client.ActiveContests(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contests) != 1 {
		t.Fatalf("expected 1 contest, got %d", len(contests))
	}
	if contests[0].Prize != 150 || contests[0].EntryCount != 33 {
		t.Errorf("unexpected contest: %+v", contests[0])
	}
}

func TestClient_UnauthorizedMapsToDomainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := freelancer.NewClient("expired", server.URL)
	_, err := client.Self()
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_ImplementsProjectSearcher(t *testing.T) {
	var _ domain.ProjectSearcher = freelancer.NewClient("tok", "")
}
