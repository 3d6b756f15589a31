package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// OPERATIONS — The six read-only data operations
// ============================================================================
// Every operation returns either a success payload or an ErrorPayload —
// never an error value and never a panic. The dispatcher stores whatever
// comes back under the operation's bundle key.
//
// Row payloads are capped (first 10 rows, first 3 sample rows, first 20
// unique values) and always serialize rows in schema column order.
// ============================================================================

const (
	maxResultRows   = 10
	maxSampleRows   = 3
	maxUniqueValues = 20
)

// ErrorPayload is the failure shape shared by all operations.
type ErrorPayload struct {
	Error string `json:"error"`
}

// MessagePayload carries an informational non-error message.
type MessagePayload struct {
	Message string `json:"message"`
}

// SchemaInfo is the payload of DescribeSchema.
type SchemaInfo struct {
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	Columns     []string `json:"columns"`
	DTypes      Fields   `json:"dtypes"`
	NullCounts  Fields   `json:"null_counts"`
	SampleRows  []Fields `json:"sample_rows"`
}

// FilterResult is the payload of ExecuteFilterExpression.
type FilterResult struct {
	Expression      string   `json:"expression"`
	MatchedRowCount int      `json:"matched_row_count"`
	Rows            []Fields `json:"first_10_rows"`
}

// EqualityResult is the payload of FilterByEquality.
type EqualityResult struct {
	Filter          string   `json:"filter"`
	MatchedRowCount int      `json:"matched_row_count"`
	Rows            []Fields `json:"first_10_rows"`
}

// AggregateResult is the payload of GroupAndAggregate.
type AggregateResult struct {
	Operation string   `json:"operation"`
	Rows      []Fields `json:"rows"`
}

// UniqueResult is the payload of UniqueValues. UniqueCount is the full
// distinct count even when the value list is truncated.
type UniqueResult struct {
	Column       string `json:"column"`
	UniqueCount  int    `json:"unique_count"`
	UniqueValues []any  `json:"unique_values"`
}

// SearchResult is the payload of SearchSubstring.
type SearchResult struct {
	SearchTerm      string   `json:"search_term"`
	Column          string   `json:"column"`
	MatchCount      int      `json:"match_count"`
	Rows            []Fields `json:"first_10_rows"`
}

// ============================================================================
// DESCRIBE + SUMMARY
// ============================================================================

// DescribeSchema returns shape, column names, inferred types, null counts
// and the first sample rows.
func (t *Table) DescribeSchema() any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}

	dtypes := make(Fields, 0, len(t.cols))
	nulls := make(Fields, 0, len(t.cols))
	for i := range t.cols {
		dtypes = append(dtypes, Field{Key: t.cols[i].Name, Value: t.cols[i].Kind.String()})
		nulls = append(nulls, Field{Key: t.cols[i].Name, Value: t.cols[i].NullCount()})
	}

	sample := make([]int, 0, maxSampleRows)
	for i := 0; i < t.rows && i < maxSampleRows; i++ {
		sample = append(sample, i)
	}

	return SchemaInfo{
		RowCount:    t.rows,
		ColumnCount: len(t.cols),
		Columns:     t.ColumnNames(),
		DTypes:      dtypes,
		NullCounts:  nulls,
		SampleRows:  t.rowsPayload(sample, maxSampleRows),
	}
}

// SummaryStatistics computes count, mean, std, min, quartiles and max for
// every numeric column. Quartiles use linear interpolation; std is the
// sample standard deviation. Columns with fewer than two values report a
// null std.
func (t *Table) SummaryStatistics() any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}

	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return MessagePayload{Message: "No numeric columns found"}
	}

	out := make(Fields, 0, len(numeric))
	for _, name := range numeric {
		col := t.Column(name)
		values := col.nonNullValues()
		out = append(out, Field{Key: name, Value: describeValues(values)})
	}
	return out
}

func (c *Column) nonNullValues() []float64 {
	values := make([]float64, 0, len(c.nums))
	for i := range c.nums {
		if !c.null[i] {
			values = append(values, c.nums[i])
		}
	}
	return values
}

func describeValues(values []float64) Fields {
	stats := Fields{{Key: "count", Value: float64(len(values))}}
	if len(values) == 0 {
		for _, k := range []string{"mean", "std", "min", "25%", "50%", "75%", "max"} {
			stats = append(stats, Field{Key: k, Value: nil})
		}
		return stats
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var std any
	if len(values) >= 2 {
		std = sampleStd(values)
	}

	stats = append(stats,
		Field{Key: "mean", Value: mean(values)},
		Field{Key: "std", Value: std},
		Field{Key: "min", Value: sorted[0]},
		Field{Key: "25%", Value: quantile(sorted, 0.25)},
		Field{Key: "50%", Value: quantile(sorted, 0.50)},
		Field{Key: "75%", Value: quantile(sorted, 0.75)},
		Field{Key: "max", Value: sorted[len(sorted)-1]},
	)
	return stats
}

func mean(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func sampleStd(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

// quantile interpolates linearly between the two nearest ranks.
// Input must be sorted ascending.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ============================================================================
// FILTERING
// ============================================================================

// ExecuteFilterExpression applies a boolean row filter expression
// (conjunctions of "column OP literal" joined with and/or). An empty
// expression selects every row. Malformed expressions and unknown columns
// come back as an error payload prefixed with "Query error:".
func (t *Table) ExecuteFilterExpression(expression string) any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}

	node, err := parseExpression(expression, t)
	if err != nil {
		return ErrorPayload{Error: fmt.Sprintf("Query error: %v", err)}
	}

	var matched []int
	for i := 0; i < t.rows; i++ {
		if node.eval(t, i) {
			matched = append(matched, i)
		}
	}

	return FilterResult{
		Expression:      expression,
		MatchedRowCount: len(matched),
		Rows:            t.rowsPayload(matched, maxResultRows),
	}
}

// FilterByEquality returns rows where the column equals the given value.
// Numeric columns compare numerically when the value parses as a number.
func (t *Table) FilterByEquality(column, value string) any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}
	col := t.Column(column)
	if col == nil {
		return ErrorPayload{Error: fmt.Sprintf("Column '%s' not found", column)}
	}

	numValue, numOK := 0.0, false
	if col.Kind == KindNumeric {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			numValue, numOK = f, true
		}
	}

	var matched []int
	for i := 0; i < t.rows; i++ {
		if col.null[i] {
			continue
		}
		if numOK {
			if col.nums[i] == numValue {
				matched = append(matched, i)
			}
		} else if col.raw[i] == value {
			matched = append(matched, i)
		}
	}

	return EqualityResult{
		Filter:          fmt.Sprintf("%s == %s", column, value),
		MatchedRowCount: len(matched),
		Rows:            t.rowsPayload(matched, maxResultRows),
	}
}

// ============================================================================
// GROUP AND AGGREGATE
// ============================================================================

// aggregate applies a named aggregation over non-null values.
// Returns nil when the aggregation is undefined for the input.
func aggregate(values []float64, fn string) any {
	if fn == "count" {
		return float64(len(values))
	}
	if len(values) == 0 {
		return nil
	}
	switch fn {
	case "mean", "avg":
		return mean(values)
	case "sum":
		var total float64
		for _, v := range values {
			total += v
		}
		return total
	case "min":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return sorted[0]
	case "max":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return sorted[len(sorted)-1]
	case "median":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return quantile(sorted, 0.5)
	case "std":
		if len(values) < 2 {
			return nil
		}
		return sampleStd(values)
	}
	return nil
}

func supportedAggregation(fn string) bool {
	switch fn {
	case "mean", "avg", "sum", "min", "max", "count", "median", "std":
		return true
	}
	return false
}

// GroupAndAggregate groups rows by the distinct values of groupColumn and
// applies fn to aggColumn within each group. Result rows are ordered by
// group key ascending (numeric order for numeric group columns).
func (t *Table) GroupAndAggregate(groupColumn, aggColumn, fn string) any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}
	groupCol := t.Column(groupColumn)
	if groupCol == nil {
		return ErrorPayload{Error: fmt.Sprintf("Group column '%s' not found", groupColumn)}
	}
	aggCol := t.Column(aggColumn)
	if aggCol == nil {
		return ErrorPayload{Error: fmt.Sprintf("Aggregation column '%s' not found", aggColumn)}
	}
	if !supportedAggregation(fn) {
		return ErrorPayload{Error: fmt.Sprintf("Aggregation error: unsupported function '%s'", fn)}
	}
	if aggCol.Kind != KindNumeric && fn != "count" {
		return ErrorPayload{Error: fmt.Sprintf("Aggregation error: column '%s' is not numeric", aggColumn)}
	}

	// Group row indices by the group column's raw value, first-seen order.
	grouped := make(map[string][]int)
	var order []string
	for i := 0; i < t.rows; i++ {
		if groupCol.null[i] {
			continue
		}
		key := groupCol.raw[i]
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	// Order groups by key ascending.
	if groupCol.Kind == KindNumeric {
		sort.Slice(order, func(i, j int) bool {
			a, _ := strconv.ParseFloat(order[i], 64)
			b, _ := strconv.ParseFloat(order[j], 64)
			return a < b
		})
	} else {
		sort.Strings(order)
	}

	rows := make([]Fields, 0, len(order))
	for _, key := range order {
		var values []float64
		for _, i := range grouped[key] {
			if aggCol.Kind == KindNumeric && !aggCol.null[i] {
				values = append(values, aggCol.nums[i])
			} else if fn == "count" && !aggCol.null[i] {
				values = append(values, 0) // counted, value unused
			}
		}
		keyValue := any(key)
		if groupCol.Kind == KindNumeric {
			f, _ := strconv.ParseFloat(key, 64)
			keyValue = f
		}
		rows = append(rows, Fields{
			{Key: groupColumn, Value: keyValue},
			{Key: aggColumn, Value: aggregate(values, fn)},
		})
	}

	return AggregateResult{
		Operation: fmt.Sprintf("%s(%s) grouped by %s", fn, aggColumn, groupColumn),
		Rows:      rows,
	}
}

// ============================================================================
// UNIQUE VALUES + SEARCH
// ============================================================================

// UniqueValues returns the distinct non-null values of a column in
// first-seen order. The list is capped at 20 entries; the count is not.
func (t *Table) UniqueValues(column string) any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}
	col := t.Column(column)
	if col == nil {
		return ErrorPayload{Error: fmt.Sprintf("Column '%s' not found", column)}
	}

	seen := make(map[string]bool)
	var values []any
	count := 0
	for i := 0; i < t.rows; i++ {
		if col.null[i] || seen[col.raw[i]] {
			continue
		}
		seen[col.raw[i]] = true
		count++
		if len(values) < maxUniqueValues {
			values = append(values, col.cellValue(i))
		}
	}

	return UniqueResult{
		Column:       column,
		UniqueCount:  count,
		UniqueValues: values,
	}
}

// SearchSubstring finds rows where the column's text contains the term,
// case-insensitively. Null cells never match.
func (t *Table) SearchSubstring(column, term string) any {
	if t == nil || t.rows == 0 {
		return ErrorPayload{Error: "No data loaded"}
	}
	col := t.Column(column)
	if col == nil {
		return ErrorPayload{Error: fmt.Sprintf("Column '%s' not found", column)}
	}

	needle := strings.ToLower(term)
	var matched []int
	for i := 0; i < t.rows; i++ {
		if col.null[i] {
			continue
		}
		if strings.Contains(strings.ToLower(col.cellText(i)), needle) {
			matched = append(matched, i)
		}
	}

	return SearchResult{
		SearchTerm: term,
		Column:     column,
		MatchCount: len(matched),
		Rows:       t.rowsPayload(matched, maxResultRows),
	}
}
