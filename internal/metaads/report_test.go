package metaads

import "testing"

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil)
	if report.TotalAds != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if report.BestCPL != nil || report.BestCTR != nil {
		t.Error("expected no standouts for empty input")
	}
}

func TestBuildReport_TotalsAndStandouts(t *testing.T) {
	insights := []Insight{
		{AdName: "Steady", Impressions: 1000, Clicks: 20, Leads: 10, Spend: 100, CTR: 2.0},
		{AdName: "Sharp", Impressions: 500, Clicks: 25, Leads: 5, Spend: 50, CTR: 5.0},
		{AdName: "Quiet", Impressions: 2000, Clicks: 10, Spend: 40, CTR: 0.5},
	}

	report := BuildReport(insights)

	if report.TotalAds != 3 {
		t.Errorf("expected 3 ads, got %d", report.TotalAds)
	}
	if report.TotalImpressions != 3500 {
		t.Errorf("expected 3500 impressions, got %d", report.TotalImpressions)
	}
	if report.TotalLeads != 15 {
		t.Errorf("expected 15 leads, got %d", report.TotalLeads)
	}
	if report.TotalSpend != 190 {
		t.Errorf("expected spend 190, got %v", report.TotalSpend)
	}
	if want := float64(55) / 3500; report.OverallCTR != want {
		t.Errorf("expected overall CTR %v, got %v", want, report.OverallCTR)
	}
	if want := 190.0 / 15; report.OverallCPL != want {
		t.Errorf("expected overall CPL %v, got %v", want, report.OverallCPL)
	}

	if report.BestCTR == nil || report.BestCTR.AdName != "Sharp" {
		t.Errorf("expected Sharp as best CTR, got %+v", report.BestCTR)
	}
	if report.MostLeads == nil || report.MostLeads.AdName != "Steady" {
		t.Errorf("expected Steady as most leads, got %+v", report.MostLeads)
	}
	// Steady: CPL 10, Sharp: CPL 10; either is a valid best, Quiet has none.
	if report.BestCPL == nil || report.BestCPL.Leads == 0 {
		t.Errorf("expected best CPL among ads with leads, got %+v", report.BestCPL)
	}
}

func TestBuildReport_FlagsOutliers(t *testing.T) {
	insights := []Insight{
		{AdName: "Cheap", Leads: 10, Spend: 20},    // CPL 2
		{AdName: "Average", Leads: 10, Spend: 100}, // CPL 10
		{AdName: "Pricey", Leads: 2, Spend: 80},    // CPL 40
	}

	report := BuildReport(insights)

	// avg CPL = (2 + 10 + 40) / 3 ~= 17.3
	if len(report.Underperformers) != 1 || report.Underperformers[0].AdName != "Pricey" {
		t.Errorf("expected Pricey flagged as underperformer, got %+v", report.Underperformers)
	}
	if len(report.TopPerformers) != 2 {
		t.Errorf("expected Cheap and Average flagged for scaling, got %+v", report.TopPerformers)
	}
}
