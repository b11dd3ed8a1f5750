// Package dataset loads the fixed-schema retail transaction table into memory.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// UnlabeledSegment marks a record that has not been through segmentation yet.
const UnlabeledSegment = -1

// Record is one transaction. Immutable after load except for Segment, which
// is assigned by the segmentation step.
type Record struct {
	Date         time.Time
	Branch       string
	City         string
	ProductLine  string
	CustomerType string
	Gender       string
	Payment      string
	UnitPrice    float64
	Quantity     int
	Sales        float64
	GrossIncome  float64
	Rating       float64

	// Derived once at load time.
	Month   string
	Weekday string

	Segment int
}

// Table is the ordered sequence of loaded records.
type Table struct {
	Name    string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// DateRange returns the earliest and latest transaction dates.
func (t *Table) DateRange() (min, max time.Time) {
	for i, r := range t.Records {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
		if i == 0 || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}

// ApplySegments stores a cluster label per record. The labels slice must be
// the same length as the table.
func (t *Table) ApplySegments(labels []int) error {
	if len(labels) != len(t.Records) {
		return fmt.Errorf("segment labels: got %d labels for %d records", len(labels), len(t.Records))
	}
	for i := range t.Records {
		t.Records[i].Segment = labels[i]
	}
	return nil
}

// Options controls loading behavior.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects by extension (',' or '\t').
	Delimiter rune
	// MaxRows limits rows processed; 0 means unlimited.
	MaxRows int
}

// Required column headers, matched case-insensitively. Extra columns in the
// input (invoice id, time, tax, cogs, ...) are ignored.
const (
	colBranch       = "Branch"
	colCity         = "City"
	colCustomerType = "Customer type"
	colGender       = "Gender"
	colProductLine  = "Product line"
	colUnitPrice    = "Unit price"
	colQuantity     = "Quantity"
	colSales        = "Sales"
	colDate         = "Date"
	colPayment      = "Payment"
	colGrossIncome  = "gross income"
	colRating       = "Rating"
)

var requiredColumns = []string{
	colBranch, colCity, colCustomerType, colGender, colProductLine,
	colUnitPrice, colQuantity, colSales, colDate, colPayment,
	colGrossIncome, colRating,
}

var dateLayouts = []string{"1/2/2006", "01/02/2006", "2006-01-02"}

// Load reads the transaction CSV at path. Any missing required column, or any
// row with an empty or unparseable required field, fails the load with a
// typed error; there is no partial result.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	col := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			return nil, &SchemaError{Column: name}
		}
		col[name] = i
	}

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}

	t := &Table{Name: filepath.Base(path)}
	line := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if line > maxRows {
			break
		}

		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		date, err := parseDate(field(colDate))
		if err != nil {
			return nil, &RowError{Line: line, Column: colDate, Err: err}
		}
		unitPrice, err := parseFloat(field(colUnitPrice))
		if err != nil {
			return nil, &RowError{Line: line, Column: colUnitPrice, Err: err}
		}
		quantity, err := parseInt(field(colQuantity))
		if err != nil {
			return nil, &RowError{Line: line, Column: colQuantity, Err: err}
		}
		sales, err := parseFloat(field(colSales))
		if err != nil {
			return nil, &RowError{Line: line, Column: colSales, Err: err}
		}
		gross, err := parseFloat(field(colGrossIncome))
		if err != nil {
			return nil, &RowError{Line: line, Column: colGrossIncome, Err: err}
		}
		rating, err := parseFloat(field(colRating))
		if err != nil {
			return nil, &RowError{Line: line, Column: colRating, Err: err}
		}

		t.Records = append(t.Records, Record{
			Date:         date,
			Branch:       field(colBranch),
			City:         field(colCity),
			ProductLine:  field(colProductLine),
			CustomerType: field(colCustomerType),
			Gender:       field(colGender),
			Payment:      field(colPayment),
			UnitPrice:    unitPrice,
			Quantity:     quantity,
			Sales:        sales,
			GrossIncome:  gross,
			Rating:       rating,
			Month:        date.Month().String(),
			Weekday:      date.Weekday().String(),
			Segment:      UnlabeledSegment,
		})
	}
	if len(t.Records) == 0 {
		return nil, fmt.Errorf("dataset %s: no data rows", t.Name)
	}
	return t, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty value")
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable number %q", s)
	}
	return f, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	// Quantities occasionally arrive as "7.0"; accept the float form.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable integer %q", s)
	}
	return int(f), nil
}
