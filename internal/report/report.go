// Package report formats analysis results for the console and the plain-text
// report file.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/storelens/storelens-cli/internal/analysis"
	"github.com/storelens/storelens-cli/internal/dataset"
)

// File is the fixed name of the plain-text report.
const File = "analysis_report.txt"

// Fixed recommendations carried over from the original analysis.
var recommendations = []string{
	"Focus marketing efforts on the top-performing product lines",
	"Implement loyalty programs to convert normal customers to members",
	"Optimize inventory based on branch-specific performance",
	"Leverage peak sales days for promotional activities",
}

// WriteBasicStats prints the descriptive statistics block to w: totals, date
// range, and branch / product line performance tables.
func WriteBasicStats(w io.Writer, t *dataset.Table) {
	total := analysis.Total(t.Records, analysis.Sales)
	min, max := t.DateRange()

	fmt.Fprintf(w, "Total Sales: $%s\n", formatAmount(total.Sum))
	fmt.Fprintf(w, "Average Sale: $%.2f\n", total.Mean)
	fmt.Fprintf(w, "Total Transactions: %d\n", total.Count)
	fmt.Fprintf(w, "Date Range: %s to %s\n", min.Format("2006-01-02"), max.Format("2006-01-02"))

	fmt.Fprintf(w, "\nBranch Performance:\n")
	writeStatsTable(w, analysis.GroupBy(t.Records, analysis.ByBranch, analysis.Sales))

	fmt.Fprintf(w, "\nProduct Line Performance:\n")
	products := analysis.GroupBy(t.Records, analysis.ByProductLine, analysis.Sales)
	analysis.SortBySum(products)
	writeStatsTable(w, products)
}

func writeStatsTable(w io.Writer, stats []analysis.GroupStat) {
	width := 0
	for _, s := range stats {
		if len(s.Key) > width {
			width = len(s.Key)
		}
	}
	fmt.Fprintf(w, "  %-*s  %8s  %14s  %10s\n", width, "", "count", "sum", "mean")
	for _, s := range stats {
		fmt.Fprintf(w, "  %-*s  %8d  %14.2f  %10.2f\n", width, s.Key, s.Count, s.Sum, s.Mean)
	}
}

// Build assembles the full text report.
func Build(t *dataset.Table, profiles []analysis.SegmentProfile, ins analysis.Insights, runID string) string {
	total := analysis.Total(t.Records, analysis.Sales)
	minDate, maxDate := t.DateRange()

	var b strings.Builder
	b.WriteString("SUPERMARKET SALES ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("EXECUTIVE SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Revenue: $%s\n", formatAmount(total.Sum))
	fmt.Fprintf(&b, "- Total Transactions: %d\n", total.Count)
	fmt.Fprintf(&b, "- Average Transaction: $%.2f\n", total.Mean)
	fmt.Fprintf(&b, "- Analysis Period: %s - %s\n", minDate.Format("January 2006"), maxDate.Format("January 2006"))

	b.WriteString("\nBRANCH PERFORMANCE:\n")
	for _, s := range analysis.GroupBy(t.Records, analysis.ByBranch, analysis.Sales) {
		fmt.Fprintf(&b, "- %s: %d transactions, $%s\n", s.Key, s.Count, formatAmount(s.Sum))
	}

	b.WriteString("\nPRODUCT LINE ANALYSIS:\n")
	products := analysis.GroupBy(t.Records, analysis.ByProductLine, analysis.Sales)
	analysis.SortBySum(products)
	for _, s := range products {
		fmt.Fprintf(&b, "- %s: $%s\n", s.Key, formatAmount(s.Sum))
	}

	b.WriteString("\nCUSTOMER INSIGHTS:\n")
	writeCounts(&b, "Customer Types", analysis.ValueCounts(t.Records, analysis.ByCustomer))
	writeCounts(&b, "Gender Split", analysis.ValueCounts(t.Records, analysis.ByGender))
	fmt.Fprintf(&b, "- Average Rating: %.1f/10\n", ins.AvgRating)

	if len(profiles) > 0 {
		b.WriteString("\nCUSTOMER SEGMENTATION:\n")
		for _, p := range profiles {
			fmt.Fprintf(&b, "- Segment %d: %d transactions, mean sales $%.2f, mean quantity %.2f, mean rating %.2f\n",
				p.Segment, p.Count, p.MeanSales, p.MeanQuantity, p.MeanRating)
		}
	}

	b.WriteString("\nKEY FINDINGS:\n")
	fmt.Fprintf(&b, "- Best performing branch: %s\n", ins.TopBranch)
	fmt.Fprintf(&b, "- Most profitable product line: %s\n", ins.TopProductLine)
	fmt.Fprintf(&b, "- Peak sales day: %s\n", ins.PeakWeekday)
	fmt.Fprintf(&b, "- Average transaction value: $%.2f\n", ins.AvgTransaction)

	b.WriteString("\nRECOMMENDATIONS:\n")
	for i, r := range recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	fmt.Fprintf(&b, "\nRun ID: %s\n", runID)
	return b.String()
}

func writeCounts(b *strings.Builder, label string, counts []analysis.GroupStat) {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", c.Key, c.Count))
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(parts, ", "))
}

// formatAmount renders an amount with thousands separators and two decimals.
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	var out strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(d)
	}
	if neg {
		return "-" + out.String() + frac
	}
	return out.String() + frac
}
