package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wrenard/gigdeck/internal/config"
	"github.com/wrenard/gigdeck/internal/metaads"
)

func metaClient(ctx context.Context, cfg config.Config) (*metaads.Client, error) {
	if cfg.Meta.APIToken == "" {
		return nil, fmt.Errorf("PIPEBOARD_API_TOKEN is not configured")
	}
	if cfg.Meta.AdAccountID == "" {
		return nil, fmt.Errorf("META_AD_ACCOUNT_ID is not configured")
	}
	return metaads.Dial(ctx, cfg.Meta.APIToken, cfg.Meta.AdAccountID, "")
}

// runVerify checks the gateway connection without creating anything.
func runVerify(cfg config.Config, _ []string) error {
	ctx := context.Background()
	client, err := metaClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	accounts, err := client.GetAdAccounts(ctx)
	if err != nil {
		return fmt.Errorf("fetching ad accounts: %w", err)
	}
	fmt.Printf("found %d ad account(s)\n", len(accounts))

	var target *metaads.AdAccount
	for i, account := range accounts {
		marker := "  "
		if account.ID == cfg.Meta.AdAccountID {
			marker = "* "
			target = &accounts[i]
		}
		fmt.Printf("%s%s  %s\n", marker, account.ID, account.Name)
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "warning: target account %s not in accessible accounts\n", cfg.Meta.AdAccountID)
	} else {
		status := "inactive"
		if target.Active() {
			status = "active"
		}
		fmt.Printf("\ntarget account: %s (%s, %s, $%.2f spent)\n",
			target.Name, status, target.Currency, target.SpentDollars())
	}

	campaigns, err := client.GetCampaigns(ctx, 5)
	if err != nil {
		return fmt.Errorf("fetching campaigns: %w", err)
	}
	fmt.Printf("\nfound %d campaign(s):\n", len(campaigns))
	for _, campaign := range campaigns {
		fmt.Printf("  %s  %-10s %s\n", campaign.ID, campaign.Status, campaign.Name)
	}
	if cfg.Meta.PageID == "" {
		fmt.Fprintf(os.Stderr, "warning: META_PAGE_ID not set (required for post-ad)\n")
	}
	return nil
}

// runPostAd creates a full lead-generation campaign. Everything is created
// PAUSED so nothing spends before review in Ads Manager.
func runPostAd(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("post-ad", flag.ExitOnError)
	name := fs.String("name", "gigdeck lead campaign", "campaign name")
	imageURL := fs.String("image", "", "public URL of the creative image (required)")
	message := fs.String("message", "", "ad body text (required)")
	headline := fs.String("headline", "", "ad headline (required)")
	budget := fs.Int("daily-budget", 1500, "daily budget in cents")
	ageMin := fs.Int("age-min", 18, "minimum audience age")
	ageMax := fs.Int("age-max", 65, "maximum audience age")
	countries := fs.String("countries", "US,CA", "comma-separated country codes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imageURL == "" || *message == "" || *headline == "" {
		return fmt.Errorf("-image, -message, and -headline are required")
	}
	if cfg.Meta.PageID == "" {
		return fmt.Errorf("META_PAGE_ID is not configured")
	}
	link := cfg.Meta.CTAURL
	if link == "" {
		link = "https://example.com"
	}

	ctx := context.Background()
	client, err := metaClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Fprintf(os.Stderr, "uploading image...\n")
	imageHash, err := client.UploadAdImage(ctx, *imageURL, "gigdeck-creative.png")
	if err != nil {
		return fmt.Errorf("uploading image: %w", err)
	}

	fmt.Fprintf(os.Stderr, "creating campaign...\n")
	campaignID, err := client.CreateCampaign(ctx, metaads.CampaignSpec{Name: *name})
	if err != nil {
		return fmt.Errorf("creating campaign: %w", err)
	}

	fmt.Fprintf(os.Stderr, "creating ad set...\n")
	adsetID, err := client.CreateAdSet(ctx, metaads.AdSetSpec{
		CampaignID:       campaignID,
		Name:             *name + " - ad set",
		DailyBudgetCents: *budget,
		Targeting: metaads.Targeting{
			AgeMin:    *ageMin,
			AgeMax:    *ageMax,
			Countries: strings.Split(*countries, ","),
		},
	})
	if err != nil {
		return fmt.Errorf("creating ad set: %w", err)
	}

	fmt.Fprintf(os.Stderr, "creating creative...\n")
	creativeID, err := client.CreateAdCreative(ctx, metaads.CreativeSpec{
		Name:      *name + " - creative",
		PageID:    cfg.Meta.PageID,
		ImageHash: imageHash,
		Message:   *message,
		Headline:  *headline,
		Link:      link,
	})
	if err != nil {
		return fmt.Errorf("creating creative: %w", err)
	}

	fmt.Fprintf(os.Stderr, "creating ad...\n")
	adID, err := client.CreateAd(ctx, metaads.AdSpec{
		AdSetID:    adsetID,
		CreativeID: creativeID,
		Name:       *name + " - ad",
	})
	if err != nil {
		return fmt.Errorf("creating ad: %w", err)
	}

	fmt.Printf("campaign: %s\n", campaignID)
	fmt.Printf("ad set:   %s\n", adsetID)
	fmt.Printf("creative: %s\n", creativeID)
	fmt.Printf("ad:       %s\n", adID)
	fmt.Println("\nall objects are PAUSED; review them in Ads Manager before activating")
	return nil
}

// runMetrics fetches insights and prints the performance report.
func runMetrics(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	level := fs.String("level", "ad", "insights level: ad, adset, or campaign")
	since := fs.String("since", "", "start date YYYY-MM-DD (default: 7 days ago)")
	until := fs.String("until", "", "end date YYYY-MM-DD (default: today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := metaClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	insights, err := client.GetInsights(ctx, metaads.InsightsQuery{
		Level: *level,
		Since: *since,
		Until: *until,
	})
	if err != nil {
		return fmt.Errorf("fetching insights: %w", err)
	}
	if len(insights) == 0 {
		fmt.Println("no insights for the selected period (ads paused or not yet delivering)")
		return nil
	}

	for _, in := range insights {
		fmt.Printf("%s (%s)\n", in.AdName, in.CampaignName)
		fmt.Printf("  impressions: %d  clicks: %d  ctr: %.2f%%\n", in.Impressions, in.Clicks, in.CTR)
		if in.Leads > 0 {
			fmt.Printf("  leads: %d  spend: $%.2f  cpl: $%.2f\n", in.Leads, in.Spend, in.CPL())
		} else {
			fmt.Printf("  leads: 0  spend: $%.2f\n", in.Spend)
		}
	}

	report := metaads.BuildReport(insights)
	fmt.Printf("\ntotals: %d ads, %d impressions, %d clicks, %d leads, $%.2f spent\n",
		report.TotalAds, report.TotalImpressions, report.TotalClicks,
		report.TotalLeads, report.TotalSpend)
	fmt.Printf("overall ctr: %.2f%%", report.OverallCTR*100)
	if report.OverallCPL > 0 {
		fmt.Printf("  overall cpl: $%.2f", report.OverallCPL)
	}
	fmt.Println()

	if report.BestCPL != nil {
		fmt.Printf("best cpl:   %s ($%.2f)\n", report.BestCPL.AdName, report.BestCPL.CPL())
	}
	if report.BestCTR != nil {
		fmt.Printf("best ctr:   %s (%.2f%%)\n", report.BestCTR.AdName, report.BestCTR.CTR)
	}
	if report.MostLeads != nil {
		fmt.Printf("most leads: %s (%d)\n", report.MostLeads.AdName, report.MostLeads.Leads)
	}
	for _, in := range report.Underperformers {
		fmt.Printf("consider pausing:  %s (cpl $%.2f)\n", in.AdName, in.CPL())
	}
	for _, in := range report.TopPerformers {
		fmt.Printf("consider scaling:  %s (cpl $%.2f)\n", in.AdName, in.CPL())
	}
	return nil
}
