package analysis

import (
	"math"
	"testing"

	"github.com/storelens/storelens-cli/internal/dataset"
)

func TestCorrelationsSymmetricUnitDiagonal(t *testing.T) {
	records := []dataset.Record{
		{UnitPrice: 10, Quantity: 1, Sales: 10.5, Rating: 9, GrossIncome: 0.5},
		{UnitPrice: 20, Quantity: 3, Sales: 63, Rating: 7, GrossIncome: 3},
		{UnitPrice: 15, Quantity: 2, Sales: 31.5, Rating: 8, GrossIncome: 1.5},
		{UnitPrice: 50, Quantity: 5, Sales: 262.5, Rating: 6, GrossIncome: 12.5},
		{UnitPrice: 5, Quantity: 10, Sales: 52.5, Rating: 9.5, GrossIncome: 2.5},
	}
	m := Correlations(records)
	n := len(m.Columns)
	if n != len(NumericFields) {
		t.Fatalf("expected %d columns, got %d", len(NumericFields), n)
	}
	for i := 0; i < n; i++ {
		if m.Values[i][i] != 1 {
			t.Errorf("diagonal (%d,%d) = %v, want 1", i, i, m.Values[i][i])
		}
		for j := 0; j < n; j++ {
			if m.Values[i][j] != m.Values[j][i] {
				t.Errorf("asymmetry at (%d,%d): %v vs %v", i, j, m.Values[i][j], m.Values[j][i])
			}
			if math.Abs(m.Values[i][j]) > 1 {
				t.Errorf("value out of range at (%d,%d): %v", i, j, m.Values[i][j])
			}
		}
	}
}

func TestCorrelationsPerfectlyLinear(t *testing.T) {
	// Sales is exactly 10x gross income in every record.
	records := []dataset.Record{
		{Sales: 10, GrossIncome: 1},
		{Sales: 20, GrossIncome: 2},
		{Sales: 70, GrossIncome: 7},
		{Sales: 40, GrossIncome: 4},
	}
	m := Correlations(records)
	// Sales is index 2, gross income index 4.
	if r := m.Values[2][4]; math.Abs(r-1) > 1e-9 {
		t.Errorf("expected r=1 for proportional columns, got %v", r)
	}
}

func TestCorrelationsZeroVariance(t *testing.T) {
	// Every rating identical: correlation with anything is defined as 0.
	records := []dataset.Record{
		{Sales: 10, Rating: 7},
		{Sales: 20, Rating: 7},
		{Sales: 30, Rating: 7},
	}
	m := Correlations(records)
	if r := m.Values[2][3]; r != 0 {
		t.Errorf("expected 0 for zero-variance column, got %v", r)
	}
	if m.Values[3][3] != 1 {
		t.Errorf("diagonal must stay 1 even for zero variance")
	}
}
