package metaads

import (
	"context"
	"strconv"
	"time"
)

// Action is one entry of the insights "actions" breakdown.
type Action struct {
	Type  string `json:"action_type"`
	Value string `json:"value"`
}

// ParseLeadActions sums the lead counts from an actions breakdown. Meta
// splits leads across two action types depending on where the form ran.
func ParseLeadActions(actions []Action) int64 {
	var leads int64
	for _, a := range actions {
		switch a.Type {
		case "leadgen.other", "onsite_conversion.lead_grouped":
			n, _ := strconv.ParseInt(a.Value, 10, 64)
			leads += n
		}
	}
	return leads
}

// Insight is one performance record at the requested level.
type Insight struct {
	AdID         string
	AdName       string
	AdSetID      string
	AdSetName    string
	CampaignID   string
	CampaignName string
	Impressions  int64
	Clicks       int64
	Leads        int64
	Spend        float64
	CTR          float64
	CPM          float64
	CPC          float64
}

// CPL is cost per lead; zero when no leads were recorded.
func (in Insight) CPL() float64 {
	if in.Leads == 0 {
		return 0
	}
	return in.Spend / float64(in.Leads)
}

// InsightsQuery selects what GetInsights fetches. Zero values default to
// ad-level records over the last seven days.
type InsightsQuery struct {
	Level string
	Since string // YYYY-MM-DD
	Until string // YYYY-MM-DD
	Limit int
}

var defaultInsightFields = []string{
	"ad_id", "ad_name", "adset_id", "adset_name",
	"campaign_id", "campaign_name",
	"impressions", "clicks", "actions", "spend",
	"ctr", "cpm", "cpc",
}

// GetInsights fetches performance records for the account.
func (c *Client) GetInsights(ctx context.Context, query InsightsQuery) ([]Insight, error) {
	if query.Level == "" {
		query.Level = "ad"
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}
	if query.Since == "" || query.Until == "" {
		now := time.Now()
		query.Since = now.AddDate(0, 0, -7).Format("2006-01-02")
		query.Until = now.Format("2006-01-02")
	}

	var result struct {
		Data []rawInsight `json:"data"`
	}
	args := map[string]any{
		"object_id": c.accountID,
		"level":     query.Level,
		"time_range": map[string]string{
			"since": query.Since,
			"until": query.Until,
		},
		"fields": defaultInsightFields,
		"limit":  query.Limit,
	}
	if err := c.callTool(ctx, "get_insights", args, &result); err != nil {
		return nil, err
	}
	insights := make([]Insight, len(result.Data))
	for i, r := range result.Data {
		insights[i] = r.toInsight()
	}
	return insights, nil
}

// rawInsight is the raw insights record. Meta serializes every metric as a
// JSON string.
type rawInsight struct {
	AdID         string   `json:"ad_id"`
	AdName       string   `json:"ad_name"`
	AdSetID      string   `json:"adset_id"`
	AdSetName    string   `json:"adset_name"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Spend        string   `json:"spend"`
	CTR          string   `json:"ctr"`
	CPM          string   `json:"cpm"`
	CPC          string   `json:"cpc"`
	Actions      []Action `json:"actions"`
}

func (r rawInsight) toInsight() Insight {
	impressions, _ := strconv.ParseInt(r.Impressions, 10, 64)
	clicks, _ := strconv.ParseInt(r.Clicks, 10, 64)
	spend, _ := strconv.ParseFloat(r.Spend, 64)
	ctr, _ := strconv.ParseFloat(r.CTR, 64)
	cpm, _ := strconv.ParseFloat(r.CPM, 64)
	cpc, _ := strconv.ParseFloat(r.CPC, 64)
	return Insight{
		AdID:         r.AdID,
		AdName:       r.AdName,
		AdSetID:      r.AdSetID,
		AdSetName:    r.AdSetName,
		CampaignID:   r.CampaignID,
		CampaignName: r.CampaignName,
		Impressions:  impressions,
		Clicks:       clicks,
		Leads:        ParseLeadActions(r.Actions),
		Spend:        spend,
		CTR:          ctr,
		CPM:          cpm,
		CPC:          cpc,
	}
}
