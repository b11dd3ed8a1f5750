package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/storelens/storelens-cli/internal/dataset"
)

// NumericFields are the columns the correlation matrix covers, in display
// order.
var NumericFields = []string{"Unit price", "Quantity", "Sales", "Rating", "gross income"}

// CorrMatrix is a symmetric Pearson correlation matrix with unit diagonal.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlations computes the Pearson correlation matrix over the fixed numeric
// fields. The loader guarantees every field is present, so there is no
// missing-value handling here. Off-diagonal values are clamped to [-1, 1];
// a zero-variance column correlates as 0 with everything else.
func Correlations(records []dataset.Record) *CorrMatrix {
	series := numericSeries(records)
	n := len(series)
	m := &CorrMatrix{Columns: NumericFields, Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := stat.Correlation(series[i], series[j], nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			r = math.Max(-1, math.Min(1, r))
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func numericSeries(records []dataset.Record) [][]float64 {
	series := make([][]float64, len(NumericFields))
	for i := range series {
		series[i] = make([]float64, len(records))
	}
	for k, r := range records {
		series[0][k] = r.UnitPrice
		series[1][k] = float64(r.Quantity)
		series[2][k] = r.Sales
		series[3][k] = r.Rating
		series[4][k] = r.GrossIncome
	}
	return series
}
