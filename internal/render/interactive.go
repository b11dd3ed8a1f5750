package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/storelens/storelens-cli/internal/dataset"
)

// Sunburst writes the hierarchical city→branch sales breakdown as a
// standalone HTML document.
func Sunburst(t *dataset.Table, path string) error {
	type branchSum map[string]float64
	cities := make(map[string]branchSum)
	for _, r := range t.Records {
		b := cities[r.City]
		if b == nil {
			b = make(branchSum)
			cities[r.City] = b
		}
		b[r.Branch] += r.Sales
	}

	cityNames := make([]string, 0, len(cities))
	for c := range cities {
		cityNames = append(cityNames, c)
	}
	sort.Strings(cityNames)

	data := make([]opts.SunBurstData, 0, len(cityNames))
	for _, city := range cityNames {
		branches := cities[city]
		branchNames := make([]string, 0, len(branches))
		for b := range branches {
			branchNames = append(branchNames, b)
		}
		sort.Strings(branchNames)

		node := opts.SunBurstData{Name: city}
		for _, b := range branchNames {
			node.Children = append(node.Children, &opts.SunBurstData{
				Name:  b,
				Value: round2(branches[b]),
			})
		}
		data = append(data, node)
	}

	chart := charts.NewSunburst()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sales Distribution by City and Branch"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sales Sunburst"}),
	)
	chart.AddSeries("sales", data)
	return renderHTML(chart, path)
}

// Scatter writes the unit price vs. sales scatter, one series per product
// line with symbol size scaled by quantity, as a standalone HTML document.
func Scatter(t *dataset.Table, path string) error {
	series := make(map[string][]opts.ScatterData)
	for _, r := range t.Records {
		series[r.ProductLine] = append(series[r.ProductLine], opts.ScatterData{
			Value:      []interface{}{round2(r.UnitPrice), round2(r.Sales)},
			SymbolSize: 4 + 2*r.Quantity,
		})
	}
	lines := make([]string, 0, len(series))
	for pl := range series {
		lines = append(lines, pl)
	}
	sort.Strings(lines)

	chart := charts.NewScatter()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sales vs Unit Price by Product Line"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sales Scatter"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Unit price"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Sales"}),
	)
	for _, pl := range lines {
		chart.AddSeries(pl, series[pl])
	}
	return renderHTML(chart, path)
}

type htmlRenderer interface {
	Render(w io.Writer) error
}

func renderHTML(chart htmlRenderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := chart.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
