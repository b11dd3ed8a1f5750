// Package render writes the chart artifacts: the static dashboard image and
// the two interactive HTML charts.
package render

import (
	"fmt"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/storelens/storelens-cli/internal/analysis"
	"github.com/storelens/storelens-cli/internal/dataset"
)

// Output file names are fixed; only the directory is configurable.
const (
	DashboardFile = "supermarket_analysis_dashboard.png"
	SunburstFile  = "sales_sunburst.html"
	ScatterFile   = "sales_scatter.html"
)

// Dashboard renders the 3x3 panel grid of static charts to path as a PNG.
func Dashboard(t *dataset.Table, corr *analysis.CorrMatrix, path string, dpi int) error {
	if dpi <= 0 {
		dpi = 150
	}
	records := t.Records

	branchSales := analysis.GroupBy(records, analysis.ByBranch, analysis.Sales)
	productSales := analysis.GroupBy(records, analysis.ByProductLine, analysis.Sales)
	analysis.SortBySum(productSales)

	panels := [][]func() (*plot.Plot, error){
		{
			func() (*plot.Plot, error) { return barPanel("Total Sales by Branch", "Sales", branchSales, false) },
			func() (*plot.Plot, error) { return barPanel("Sales by Product Line", "Sales", productSales, true) },
			func() (*plot.Plot, error) {
				return countPanel("Customer Type Distribution", analysis.ValueCounts(records, analysis.ByCustomer))
			},
		},
		{
			func() (*plot.Plot, error) {
				return countPanel("Gender Distribution", analysis.ValueCounts(records, analysis.ByGender))
			},
			func() (*plot.Plot, error) {
				return countPanel("Payment Methods", analysis.ValueCounts(records, analysis.ByPayment))
			},
			func() (*plot.Plot, error) { return histPanel("Sales Distribution", "Sales", salesValues(records), 30) },
		},
		{
			func() (*plot.Plot, error) {
				return histPanel("Customer Rating Distribution", "Rating", ratingValues(records), 20)
			},
			func() (*plot.Plot, error) { return monthlyPanel(records) },
			func() (*plot.Plot, error) { return heatmapPanel(corr) },
		},
	}

	const rows, cols = 3, 3
	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
		for j := range plots[i] {
			p, err := panels[i][j]()
			if err != nil {
				return fmt.Errorf("dashboard panel (%d,%d): %w", i, j, err)
			}
			plots[i][j] = p
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(15*vg.Inch, 12*vg.Inch), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dashboard: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	return nil
}

func barPanel(title, axis string, stats []analysis.GroupStat, horizontal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	values := make(plotter.Values, len(stats))
	names := make([]string, len(stats))
	for i, s := range stats {
		values[i] = s.Sum
		names[i] = s.Key
	}
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = horizontal
	p.Add(bars)
	if horizontal {
		p.NominalY(names...)
		p.X.Label.Text = axis
	} else {
		p.NominalX(names...)
		p.Y.Label.Text = axis
	}
	return p, nil
}

func countPanel(title string, counts []analysis.GroupStat) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, s := range counts {
		values[i] = float64(s.Count)
		names[i] = s.Key
	}
	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(names...)
	p.Y.Label.Text = "Transactions"
	return p, nil
}

func histPanel(title, axis string, values plotter.Values, bins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	p.X.Label.Text = axis
	p.Y.Label.Text = "Frequency"
	return p, nil
}

func monthlyPanel(records []dataset.Record) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Monthly Sales Trend"
	p.Y.Label.Text = "Sales"

	byMonth := make(map[string]float64)
	for _, r := range records {
		byMonth[r.Month] += r.Sales
	}
	// Calendar order, months present only.
	var names []string
	var xys plotter.XYs
	for m := time.January; m <= time.December; m++ {
		sum, ok := byMonth[m.String()]
		if !ok {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(len(names)), Y: sum})
		names = append(names, m.String())
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	p.NominalX(names...)
	return p, nil
}

// corrGrid adapts a correlation matrix to the heatmap grid interface.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int)   { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func heatmapPanel(corr *analysis.CorrMatrix) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Correlation Matrix"
	h := plotter.NewHeatMap(corrGrid{m: corr}, palette.Heat(16, 1))
	p.Add(h)
	return p, nil
}

func salesValues(records []dataset.Record) plotter.Values {
	v := make(plotter.Values, len(records))
	for i, r := range records {
		v[i] = r.Sales
	}
	return v
}

func ratingValues(records []dataset.Record) plotter.Values {
	v := make(plotter.Values, len(records))
	for i, r := range records {
		v[i] = r.Rating
	}
	return v
}
