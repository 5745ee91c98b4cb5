package freelancer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wrenard/gigdeck/internal/domain"
)

const defaultBaseURL = "https://www.freelancer.com/api"

// Client wraps the Freelancer.com REST API.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Freelancer API client.
// baseURL is used for testing; pass empty string to use the real API.
func NewClient(token string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Self returns the profile of the authenticated user. It doubles as a token
// check: an expired or revoked token surfaces as domain.ErrUnauthorized.
func (c *Client) Self() (domain.User, error) {
	var result struct {
		Result rawUser `json:"result"`
	}
	if err := c.get(c.baseURL+"/users/0.1/self/", &result); err != nil {
		return domain.User{}, err
	}
	return result.Result.toUser(), nil
}

// SearchActiveProjects returns active projects matching the query, newest
// first as the API orders them.
func (c *Client) SearchActiveProjects(query string, filter domain.Filter) ([]domain.Project, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("full_description", "true")
	q.Set("job_details", "true")
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	q.Set("limit", strconv.Itoa(limit))
	if filter.MinBudget > 0 {
		q.Set("min_avg_price", strconv.FormatFloat(filter.MinBudget, 'f', -1, 64))
	}
	if filter.MaxBudget > 0 {
		q.Set("max_avg_price", strconv.FormatFloat(filter.MaxBudget, 'f', -1, 64))
	}
	for _, id := range filter.SkillIDs {
		q.Add("jobs[]", strconv.FormatInt(id, 10))
	}

	var result struct {
		Result struct {
			Projects []rawProject `json:"projects"`
		} `json:"result"`
	}
	if err := c.get(c.baseURL+"/projects/0.1/projects/active/?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, len(result.Result.Projects))
	for i, p := range result.Result.Projects {
		projects[i] = p.toProject()
	}
	return projects, nil
}

// ProjectDetails returns full records for the given project ids.
func (c *Client) ProjectDetails(ids []int64) ([]domain.Project, error) {
	q := url.Values{}
	q.Set("full_description", "true")
	for _, id := range ids {
		q.Add("projects[]", strconv.FormatInt(id, 10))
	}

	var result struct {
		Result struct {
			Projects []rawProject `json:"projects"`
		} `json:"result"`
	}
	if err := c.get(c.baseURL+"/projects/0.1/projects/?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	projects := make([]domain.Project, len(result.Result.Projects))
	for i, p := range result.Result.Projects {
		projects[i] = p.toProject()
	}
	return projects, nil
}

// JobCategories returns the full skill/category taxonomy. The API returns
// the result as either a bare array or an object with a jobs key.
func (c *Client) JobCategories() ([]domain.JobCategory, error) {
	var result struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.get(c.baseURL+"/projects/0.1/jobs/?jobs=true", &result); err != nil {
		return nil, err
	}

	var jobs []rawJob
	if err := json.Unmarshal(result.Result, &jobs); err != nil {
		var wrapped struct {
			Jobs []rawJob `json:"jobs"`
		}
		if err := json.Unmarshal(result.Result, &wrapped); err != nil {
			return nil, fmt.Errorf("decoding job categories: %w", err)
		}
		jobs = wrapped.Jobs
	}

	categories := make([]domain.JobCategory, len(jobs))
	for i, j := range jobs {
		categories[i] = domain.JobCategory{ID: j.ID, Name: j.Name}
	}
	return categories, nil
}

// ActiveContests returns currently running contests, up to limit.
func (c *Client) ActiveContests(limit int) ([]domain.Contest, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("active_only", "true")
	q.Set("limit", strconv.Itoa(limit))

	var result struct {
		Result struct {
			Contests []rawContest `json:"contests"`
		} `json:"result"`
	}
	if err := c.get(c.baseURL+"/contests/0.1/contests/active?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	contests := make([]domain.Contest, len(result.Result.Contests))
	for i, ct := range result.Result.Contests {
		contests[i] = ct.toContest()
	}
	return contests, nil
}

func (c *Client) get(url string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("freelancer-oauth-v1", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("freelancer API error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// rawUser is the raw Freelancer API response shape for a user.
type rawUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Status      struct {
		EmailVerified bool `json:"email_verified"`
	} `json:"status"`
	Closed bool `json:"closed"`
}

func (u rawUser) toUser() domain.User {
	status := "active"
	if u.Closed {
		status = "closed"
	}
	return domain.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Status:      status,
	}
}

// rawProject is the raw Freelancer API response shape for a project.
type rawProject struct {
	ID                 int64  `json:"id"`
	OwnerID            int64  `json:"owner_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	PreviewDescription string `json:"preview_description"`
	Type               string `json:"type"`
	Status             string `json:"status"`
	Budget             struct {
		Minimum float64 `json:"minimum"`
		Maximum float64 `json:"maximum"`
	} `json:"budget"`
	Currency struct {
		Code string `json:"code"`
	} `json:"currency"`
	BidStats struct {
		Count   int     `json:"bid_count"`
		Average float64 `json:"bid_avg"`
	} `json:"bid_stats"`
	SubmitDate int64 `json:"submitdate"`
}

func (p rawProject) toProject() domain.Project {
	description := p.Description
	if description == "" {
		description = p.PreviewDescription
	}
	var submitted time.Time
	if p.SubmitDate > 0 {
		submitted = time.Unix(p.SubmitDate, 0).UTC()
	}
	return domain.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: description,
		Type:        p.Type,
		Status:      p.Status,
		OwnerID:     p.OwnerID,
		Budget: domain.Budget{
			Minimum: p.Budget.Minimum,
			Maximum: p.Budget.Maximum,
		},
		CurrencyCode: p.Currency.Code,
		Bids: domain.BidStats{
			Count:   p.BidStats.Count,
			Average: p.BidStats.Average,
		},
		Submitted: submitted,
	}
}

// rawJob is the raw Freelancer API response shape for a skill category.
type rawJob struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// rawContest is the raw Freelancer API response shape for a contest.
type rawContest struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Prize    float64 `json:"prize"`
	Currency struct {
		Code string `json:"code"`
	} `json:"currency"`
	EntryCount int `json:"entry_count"`
}

func (ct rawContest) toContest() domain.Contest {
	return domain.Contest{
		ID:           ct.ID,
		Title:        ct.Title,
		Prize:        ct.Prize,
		CurrencyCode: ct.Currency.Code,
		EntryCount:   ct.EntryCount,
	}
}
