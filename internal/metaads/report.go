package metaads

// Report aggregates a batch of insights into totals, standouts, and
// budget recommendations.
type Report struct {
	TotalAds         int
	TotalImpressions int64
	TotalClicks      int64
	TotalLeads       int64
	TotalSpend       float64
	OverallCTR       float64 // clicks / impressions
	OverallCPL       float64 // zero when no leads

	BestCPL   *Insight // lowest cost per lead among ads with leads
	BestCTR   *Insight
	MostLeads *Insight

	// Among ads with leads: CPL more than twice the average is a pause
	// candidate, under 0.7x the average is a scale candidate.
	Underperformers []Insight
	TopPerformers   []Insight
}

// BuildReport computes the performance summary for a set of insights.
func BuildReport(insights []Insight) Report {
	report := Report{TotalAds: len(insights)}
	if len(insights) == 0 {
		return report
	}

	var withLeads []Insight
	for i := range insights {
		in := insights[i]
		report.TotalImpressions += in.Impressions
		report.TotalClicks += in.Clicks
		report.TotalLeads += in.Leads
		report.TotalSpend += in.Spend
		if in.Leads > 0 {
			withLeads = append(withLeads, in)
		}
		if report.BestCTR == nil || in.CTR > report.BestCTR.CTR {
			report.BestCTR = &insights[i]
		}
		if in.Leads > 0 && (report.MostLeads == nil || in.Leads > report.MostLeads.Leads) {
			report.MostLeads = &insights[i]
		}
		if in.Leads > 0 && (report.BestCPL == nil || in.CPL() < report.BestCPL.CPL()) {
			report.BestCPL = &insights[i]
		}
	}

	if report.TotalImpressions > 0 {
		report.OverallCTR = float64(report.TotalClicks) / float64(report.TotalImpressions)
	}
	if report.TotalLeads > 0 {
		report.OverallCPL = report.TotalSpend / float64(report.TotalLeads)
	}

	if len(withLeads) > 0 {
		var sum float64
		for _, in := range withLeads {
			sum += in.CPL()
		}
		avg := sum / float64(len(withLeads))
		for _, in := range withLeads {
			switch cpl := in.CPL(); {
			case cpl > avg*2:
				report.Underperformers = append(report.Underperformers, in)
			case cpl < avg*0.7:
				report.TopPerformers = append(report.TopPerformers, in)
			}
		}
	}

	return report
}
