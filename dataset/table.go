package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ============================================================================
// TABLE — In-memory tabular dataset loaded from CSV
// ============================================================================
// A Table is loaded once and never mutated afterwards. Every operation in
// ops.go reads through it; concurrent reads are safe.
//
// Column typing is inferred at load time: a column is numeric when every
// non-empty value parses as a float, otherwise it is text. Empty cells are
// nulls.
// ============================================================================

// ColumnKind classifies a column as numeric or text.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column holds one named, typed column of values.
type Column struct {
	Name string
	Kind ColumnKind

	raw  []string  // original cell text, "" for null
	nums []float64 // parsed values, valid only for numeric non-null cells
	null []bool
}

// NullCount returns the number of null cells in the column.
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.null {
		if isNull {
			n++
		}
	}
	return n
}

// Table is an immutable, row-ordered dataset with named typed columns.
type Table struct {
	source string
	cols   []Column
	rows   int
}

// LoadError reports a failed table load. It is the only terminal failure
// in the pipeline — everything downstream degrades instead of failing.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a CSV file from disk into a Table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	t, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	t.source = path
	return t, nil
}

// Parse builds a Table from raw CSV bytes.
func Parse(data []byte) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("CSV has no columns")
	}

	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i := range cols {
			val := ""
			if i < len(record) {
				val = strings.TrimSpace(record[i])
			}
			cols[i].raw = append(cols[i].raw, val)
			cols[i].null = append(cols[i].null, val == "")
		}
		rows++
	}

	if rows == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	// Infer column kinds: numeric if every non-null cell parses as float.
	for i := range cols {
		inferKind(&cols[i])
	}

	return &Table{cols: cols, rows: rows}, nil
}

func inferKind(c *Column) {
	nums := make([]float64, len(c.raw))
	seen := false
	for i, v := range c.raw {
		if c.null[i] {
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			c.Kind = KindText
			return
		}
		nums[i] = f
		seen = true
	}
	if !seen {
		c.Kind = KindText
		return
	}
	c.Kind = KindNumeric
	c.nums = nums
}

// ============================================================================
// ACCESSORS
// ============================================================================

// Source returns the locator the table was loaded from, if any.
func (t *Table) Source() string { return t.source }

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return t.rows }

// ColumnNames returns column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i]
		}
	}
	return nil
}

// HasColumn reports whether a column exists under the exact name.
func (t *Table) HasColumn(name string) bool { return t.Column(name) != nil }

// NumericColumns returns the names of numeric columns in declared order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// TextColumns returns the names of text columns in declared order.
func (t *Table) TextColumns() []string {
	var names []string
	for _, c := range t.cols {
		if c.Kind == KindText {
			names = append(names, c.Name)
		}
	}
	return names
}

// cellValue returns the typed value of a cell: nil for null, float64 for
// numeric columns, the original string otherwise.
func (c *Column) cellValue(row int) any {
	if c.null[row] {
		return nil
	}
	if c.Kind == KindNumeric {
		return c.nums[row]
	}
	return c.raw[row]
}

// cellText returns the cell coerced to text. Null cells return "".
func (c *Column) cellText(row int) string {
	return c.raw[row]
}

// row serializes one row as an ordered field map in schema column order.
func (t *Table) row(i int) Fields {
	fields := make(Fields, 0, len(t.cols))
	for c := range t.cols {
		fields = append(fields, Field{Key: t.cols[c].Name, Value: t.cols[c].cellValue(i)})
	}
	return fields
}

// rowsPayload serializes the given row indices, capped at limit.
func (t *Table) rowsPayload(indices []int, limit int) []Fields {
	if len(indices) > limit {
		indices = indices[:limit]
	}
	out := make([]Fields, 0, len(indices))
	for _, i := range indices {
		out = append(out, t.row(i))
	}
	return out
}
