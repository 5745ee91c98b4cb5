package metaads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "https://mcp.pipeboard.co/meta-ads-mcp"

// toolCaller is the slice of *mcp.ClientSession the client needs. Tests
// substitute a stub.
type toolCaller interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// Client drives Meta Ads through the Pipeboard MCP gateway.
type Client struct {
	session   toolCaller
	accountID string
	mcpConn   *mcp.ClientSession
}

// ToolError is returned when a gateway tool ran but reported failure.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %s", e.Tool, e.Message)
}

// Dial connects to the Pipeboard MCP gateway.
// endpoint is used for testing; pass empty string to use the real gateway.
// accountID is the Meta ad account id in "act_<number>" form.
func Dial(ctx context.Context, token, accountID, endpoint string) (*Client, error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	httpClient := &http.Client{
		Timeout:   60 * time.Second,
		Transport: &bearerTransport{token: token, base: http.DefaultTransport},
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "gigdeck", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   endpoint,
		HTTPClient: httpClient,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to gateway: %w", err)
	}
	return &Client{session: session, accountID: accountID, mcpConn: session}, nil
}

// Close terminates the gateway session.
func (c *Client) Close() error {
	if c.mcpConn == nil {
		return nil
	}
	return c.mcpConn.Close()
}

// bearerTransport injects the Pipeboard API token into every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}

// callTool invokes a gateway tool and decodes its payload into target.
// The gateway nests the real response as a JSON string under
// structuredContent.result; plain text content is the fallback.
func (c *Client) callTool(ctx context.Context, name string, args map[string]any, target interface{}) error {
	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return fmt.Errorf("calling %s: %w", name, err)
	}
	if result.IsError {
		return &ToolError{Tool: name, Message: firstText(result)}
	}
	if target == nil {
		return nil
	}
	payload, err := resultPayload(result)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", name, err)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decoding %s response: %w", name, err)
	}
	return nil
}

func resultPayload(result *mcp.CallToolResult) ([]byte, error) {
	if m, ok := result.StructuredContent.(map[string]any); ok {
		if s, ok := m["result"].(string); ok {
			return []byte(s), nil
		}
	}
	if text := firstText(result); text != "" {
		return []byte(text), nil
	}
	return nil, fmt.Errorf("no payload in tool result")
}

func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

// AdAccount is an ad account visible to the API token.
type AdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
	AmountSpent   string `json:"amount_spent"` // lifetime spend in cents, serialized as a string
}

// SpentDollars converts the lifetime spend to dollars.
func (a AdAccount) SpentDollars() float64 {
	cents, err := strconv.ParseFloat(a.AmountSpent, 64)
	if err != nil {
		return 0
	}
	return cents / 100
}

// Active reports whether Meta considers the account active.
func (a AdAccount) Active() bool {
	return a.AccountStatus == 1
}

// GetAdAccounts returns the ad accounts the token can reach.
func (c *Client) GetAdAccounts(ctx context.Context) ([]AdAccount, error) {
	var result struct {
		Data []AdAccount `json:"data"`
	}
	if err := c.callTool(ctx, "get_ad_accounts", map[string]any{}, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// Campaign is an existing campaign in the account.
type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

// GetCampaigns returns up to limit campaigns from the account.
func (c *Client) GetCampaigns(ctx context.Context, limit int) ([]Campaign, error) {
	if limit <= 0 {
		limit = 25
	}
	var result struct {
		Data []Campaign `json:"data"`
	}
	args := map[string]any{
		"account_id": c.accountID,
		"limit":      limit,
	}
	if err := c.callTool(ctx, "get_campaigns", args, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// UploadAdImage uploads an image by URL and returns its hash for use in
// creatives.
func (c *Client) UploadAdImage(ctx context.Context, imageURL, filename string) (string, error) {
	var result struct {
		Images map[string]struct {
			Hash string `json:"hash"`
		} `json:"images"`
		Hash      string `json:"hash"`
		ImageHash string `json:"image_hash"`
	}
	args := map[string]any{
		"account_id": c.accountID,
		"image_url":  imageURL,
		"filename":   filename,
	}
	if err := c.callTool(ctx, "upload_ad_image", args, &result); err != nil {
		return "", err
	}
	for _, img := range result.Images {
		if img.Hash != "" {
			return img.Hash, nil
		}
	}
	if result.Hash != "" {
		return result.Hash, nil
	}
	if result.ImageHash != "" {
		return result.ImageHash, nil
	}
	return "", fmt.Errorf("upload_ad_image returned no image hash")
}

// CampaignSpec describes a campaign to create. Zero values get safe
// defaults: OUTCOME_LEADS objective and PAUSED status.
type CampaignSpec struct {
	Name      string
	Objective string
	Status    string
}

// CreateCampaign creates a campaign and returns its id.
func (c *Client) CreateCampaign(ctx context.Context, spec CampaignSpec) (string, error) {
	if spec.Objective == "" {
		spec.Objective = "OUTCOME_LEADS"
	}
	if spec.Status == "" {
		spec.Status = "PAUSED"
	}
	var result createResult
	args := map[string]any{
		"account_id":            c.accountID,
		"name":                  spec.Name,
		"objective":             spec.Objective,
		"status":                spec.Status,
		"special_ad_categories": []string{"NONE"},
		"buying_type":           "AUCTION",
	}
	if err := c.callTool(ctx, "create_campaign", args, &result); err != nil {
		return "", err
	}
	return result.id("create_campaign")
}

// AdSetSpec describes an ad set to create. DailyBudgetCents is in account
// currency cents (1500 = $15.00). Empty times default to a run starting
// tomorrow morning and lasting three days.
type AdSetSpec struct {
	CampaignID       string
	Name             string
	DailyBudgetCents int
	Targeting        Targeting
	StartTime        string
	EndTime          string
	Status           string
}

// CreateAdSet creates an ad set under a campaign and returns its id.
func (c *Client) CreateAdSet(ctx context.Context, spec AdSetSpec) (string, error) {
	if spec.Status == "" {
		spec.Status = "PAUSED"
	}
	if spec.StartTime == "" {
		spec.StartTime = time.Now().AddDate(0, 0, 1).Format("2006-01-02") + "T09:00:00-08:00"
	}
	if spec.EndTime == "" {
		spec.EndTime = time.Now().AddDate(0, 0, 4).Format("2006-01-02") + "T09:00:00-08:00"
	}
	var result createResult
	args := map[string]any{
		"account_id":        c.accountID,
		"campaign_id":       spec.CampaignID,
		"name":              spec.Name,
		"status":            spec.Status,
		"daily_budget":      spec.DailyBudgetCents,
		"billing_event":     "IMPRESSIONS",
		"optimization_goal": "LEAD_GENERATION",
		"bid_strategy":      "LOWEST_COST_WITHOUT_CAP",
		"start_time":        spec.StartTime,
		"end_time":          spec.EndTime,
		"targeting":         spec.Targeting.spec(),
	}
	if err := c.callTool(ctx, "create_adset", args, &result); err != nil {
		return "", err
	}
	return result.id("create_adset")
}

// CreativeSpec describes an ad creative: an image with copy and a
// call-to-action link.
type CreativeSpec struct {
	Name         string
	PageID       string
	ImageHash    string
	Message      string
	Headline     string
	Link         string
	CallToAction string
	Status       string
}

// CreateAdCreative creates a creative and returns its id.
func (c *Client) CreateAdCreative(ctx context.Context, spec CreativeSpec) (string, error) {
	if spec.CallToAction == "" {
		spec.CallToAction = "SIGN_UP"
	}
	if spec.Status == "" {
		spec.Status = "PAUSED"
	}
	var result createResult
	args := map[string]any{
		"account_id": c.accountID,
		"name":       spec.Name,
		"status":     spec.Status,
		"object_story_spec": map[string]any{
			"page_id": spec.PageID,
			"link_data": map[string]any{
				"message":    spec.Message,
				"name":       spec.Headline,
				"link":       spec.Link,
				"image_hash": spec.ImageHash,
				"call_to_action": map[string]any{
					"type":  spec.CallToAction,
					"value": map[string]any{"link": spec.Link},
				},
			},
		},
	}
	if err := c.callTool(ctx, "create_ad_creative", args, &result); err != nil {
		return "", err
	}
	return result.id("create_ad_creative")
}

// AdSpec ties a creative to an ad set.
type AdSpec struct {
	AdSetID    string
	CreativeID string
	Name       string
	Status     string
}

// CreateAd creates an ad and returns its id.
func (c *Client) CreateAd(ctx context.Context, spec AdSpec) (string, error) {
	if spec.Status == "" {
		spec.Status = "PAUSED"
	}
	var result createResult
	args := map[string]any{
		"account_id": c.accountID,
		"adset_id":   spec.AdSetID,
		"name":       spec.Name,
		"creative":   map[string]any{"creative_id": spec.CreativeID},
		"status":     spec.Status,
	}
	if err := c.callTool(ctx, "create_ad", args, &result); err != nil {
		return "", err
	}
	return result.id("create_ad")
}

// createResult covers the id field variants the gateway returns across the
// create_* tools.
type createResult struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	AdsetID    string `json:"adset_id"`
	CreativeID string `json:"creative_id"`
	AdID       string `json:"ad_id"`
}

func (r createResult) id(tool string) (string, error) {
	for _, id := range []string{r.ID, r.CampaignID, r.AdsetID, r.CreativeID, r.AdID} {
		if id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%s returned no object id", tool)
}
