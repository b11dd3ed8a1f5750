package analysis

import "github.com/storelens/storelens-cli/internal/dataset"

// Insights are the headline findings surfaced in the console narration and
// the text report.
type Insights struct {
	TopBranch      string
	TopProductLine string
	PeakWeekday    string
	AvgTransaction float64
	AvgRating      float64
}

// ComputeInsights derives the headline findings from the table: the branch,
// product line, and weekday with the highest total sales, plus the average
// transaction value and customer rating.
func ComputeInsights(records []dataset.Record) Insights {
	return Insights{
		TopBranch:      argmaxSum(records, ByBranch),
		TopProductLine: argmaxSum(records, ByProductLine),
		PeakWeekday:    argmaxSum(records, ByWeekday),
		AvgTransaction: Total(records, Sales).Mean,
		AvgRating:      Total(records, Rating).Mean,
	}
}

func argmaxSum(records []dataset.Record, key KeyFunc) string {
	stats := GroupBy(records, key, Sales)
	SortBySum(stats)
	if len(stats) == 0 {
		return ""
	}
	return stats[0].Key
}
