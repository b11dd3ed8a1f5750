package dataset

import "fmt"

// SchemaError indicates a required column is absent from the input header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

// RowError indicates a data row that could not be parsed. Line is the 1-based
// data row number (the header is not counted).
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
