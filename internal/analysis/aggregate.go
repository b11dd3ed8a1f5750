// Package analysis computes grouped aggregates, correlations, and the
// customer segmentation over a loaded transaction table.
package analysis

import (
	"sort"

	"github.com/storelens/storelens-cli/internal/dataset"
)

// GroupStat holds count/sum/mean of one numeric field for one group key.
type GroupStat struct {
	Key   string
	Count int
	Sum   float64
	Mean  float64
}

// Totals holds ungrouped count/sum/mean of a numeric field.
type Totals struct {
	Count int
	Sum   float64
	Mean  float64
}

// KeyFunc extracts the grouping key from a record.
type KeyFunc func(r dataset.Record) string

// ValueFunc extracts the aggregated numeric value from a record.
type ValueFunc func(r dataset.Record) float64

// Common key and value extractors.
var (
	ByBranch      KeyFunc = func(r dataset.Record) string { return r.Branch }
	ByCity        KeyFunc = func(r dataset.Record) string { return r.City }
	ByProductLine KeyFunc = func(r dataset.Record) string { return r.ProductLine }
	ByCustomer    KeyFunc = func(r dataset.Record) string { return r.CustomerType }
	ByGender      KeyFunc = func(r dataset.Record) string { return r.Gender }
	ByPayment     KeyFunc = func(r dataset.Record) string { return r.Payment }
	ByMonth       KeyFunc = func(r dataset.Record) string { return r.Month }
	ByWeekday     KeyFunc = func(r dataset.Record) string { return r.Weekday }

	Sales  ValueFunc = func(r dataset.Record) float64 { return r.Sales }
	Rating ValueFunc = func(r dataset.Record) float64 { return r.Rating }
)

// GroupBy aggregates value under key for every record: count, sum, and mean
// per group. Results are sorted ascending by key for stable display; use
// SortBySum for ranked output.
func GroupBy(records []dataset.Record, key KeyFunc, value ValueFunc) []GroupStat {
	acc := make(map[string]*GroupStat)
	for _, r := range records {
		k := key(r)
		g := acc[k]
		if g == nil {
			g = &GroupStat{Key: k}
			acc[k] = g
		}
		g.Count++
		g.Sum += value(r)
	}
	out := make([]GroupStat, 0, len(acc))
	for _, g := range acc {
		g.Mean = g.Sum / float64(g.Count)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SortBySum re-sorts group stats descending by sum, ties broken by key.
func SortBySum(stats []GroupStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Sum == stats[j].Sum {
			return stats[i].Key < stats[j].Key
		}
		return stats[i].Sum > stats[j].Sum
	})
}

// ValueCounts returns the frequency of each categorical key, descending by
// count with ties broken by key.
func ValueCounts(records []dataset.Record, key KeyFunc) []GroupStat {
	acc := make(map[string]int)
	for _, r := range records {
		acc[key(r)]++
	}
	out := make([]GroupStat, 0, len(acc))
	for k, n := range acc {
		out = append(out, GroupStat{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Key < out[j].Key
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// Total aggregates value over all records.
func Total(records []dataset.Record, value ValueFunc) Totals {
	var t Totals
	for _, r := range records {
		t.Count++
		t.Sum += value(r)
	}
	if t.Count > 0 {
		t.Mean = t.Sum / float64(t.Count)
	}
	return t
}
