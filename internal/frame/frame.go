// Package frame provides the in-memory tabular snapshot that all analysis
// components read from. A Frame is materialized once from a query result and
// never mutated afterwards.
package frame

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column as numeric or categorical. Classification happens
// exactly once, when the Frame is built, and is reused by the profiler, chart
// renderer and insight generator.
type Kind int

const (
	// Numeric means every non-missing value in the column parses as a number.
	Numeric Kind = iota
	// Categorical is every other column.
	Categorical
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column is one named column of a Frame. Values holds one entry per row;
// nil marks a missing (SQL NULL) value. Empty strings are values, not
// missing.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Frame is an immutable in-memory snapshot of a query result.
type Frame struct {
	cols []Column
	rows int
}

// FromRows drains rows into a Frame. Column order matches the result set.
// Byte slices are converted to strings so that TEXT values scanned as []byte
// compare and display consistently.
func FromRows(rows *sql.Rows) (*Frame, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name}
	}

	n := 0
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", n, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[i].Values = append(cols[i].Values, v)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	for i := range cols {
		cols[i].Kind = Classify(cols[i].Values)
	}

	return &Frame{cols: cols, rows: n}, nil
}

// New builds a Frame directly from named columns. All columns must have the
// same length. Intended for tests and programmatic construction.
func New(names []string, columns [][]any) (*Frame, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("got %d names for %d columns", len(names), len(columns))
	}
	rows := 0
	cols := make([]Column, len(names))
	for i, name := range names {
		if i == 0 {
			rows = len(columns[i])
		} else if len(columns[i]) != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", name, len(columns[i]), rows)
		}
		cols[i] = Column{Name: name, Kind: Classify(columns[i]), Values: columns[i]}
	}
	return &Frame{cols: cols, rows: rows}, nil
}

// Rows returns the number of rows in the frame.
func (f *Frame) Rows() int { return f.rows }

// Cols returns the number of columns in the frame.
func (f *Frame) Cols() int { return len(f.cols) }

// Columns returns the columns in declaration order.
func (f *Frame) Columns() []Column { return f.cols }

// Names returns the column names in declaration order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (f *Frame) Column(name string) (*Column, bool) {
	for i := range f.cols {
		if f.cols[i].Name == name {
			return &f.cols[i], true
		}
	}
	return nil, false
}

// NumericColumns returns the numeric columns in declaration order.
func (f *Frame) NumericColumns() []*Column {
	var out []*Column
	for i := range f.cols {
		if f.cols[i].Kind == Numeric {
			out = append(out, &f.cols[i])
		}
	}
	return out
}

// MissingCount returns the number of missing values in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// NonMissing returns the number of non-missing values in the column.
func (c *Column) NonMissing() int {
	return len(c.Values) - c.MissingCount()
}

// Floats returns the column as float64 values with a parallel presence mask.
// present[i] is false where the value is missing or does not parse as a
// number.
func (c *Column) Floats() (vals []float64, present []bool) {
	vals = make([]float64, len(c.Values))
	present = make([]bool, len(c.Values))
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		if x, ok := AsNumber(v); ok {
			vals[i] = x
			present[i] = true
		}
	}
	return vals, present
}

// DistinctCount returns the number of distinct non-missing values, compared
// by display form.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{})
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		seen[Display(v)] = struct{}{}
	}
	return len(seen)
}

// Classify returns Numeric when every non-missing value parses as a number,
// Categorical otherwise. A column with no non-missing values satisfies the
// rule vacuously and classifies as Numeric; its statistics stay undefined.
func Classify(values []any) Kind {
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := AsNumber(v); !ok {
			return Categorical
		}
	}
	return Numeric
}

// AsNumber reports whether v carries a numeric value and returns it as a
// float64. Strings are parsed; empty and blank strings are not numbers.
func AsNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Display renders a scalar value for previews and category labels.
// Missing values render as the empty string marker "NULL".
func Display(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
