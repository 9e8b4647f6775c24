// Package profile computes descriptive statistics over a loaded frame:
// per-column profiles, table totals, and pairwise correlations between
// numeric columns.
package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sumanthd032/DataCanvas/internal/frame"
)

// ColumnProfile holds the derived attributes of one column. The numeric
// statistics are pointers so that "no data" stays distinct from zero: a
// column with no non-missing values reports nil, never 0.
type ColumnProfile struct {
	Name     string     `json:"name" yaml:"name"`
	Kind     frame.Kind `json:"-" yaml:"-"`
	KindName string     `json:"kind" yaml:"kind"`
	Rows     int        `json:"rows" yaml:"rows"`
	Missing  int        `json:"missing" yaml:"missing"`
	Distinct int        `json:"distinct" yaml:"distinct"`

	Min    *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	StdDev *float64 `json:"stddev,omitempty" yaml:"stddev,omitempty"`
}

// MissingFraction returns the fraction of rows with a missing value.
func (p ColumnProfile) MissingFraction() float64 {
	if p.Rows == 0 {
		return 0
	}
	return float64(p.Missing) / float64(p.Rows)
}

// DistinctFraction returns the fraction of non-missing values that are
// distinct.
func (p ColumnProfile) DistinctFraction() float64 {
	n := p.Rows - p.Missing
	if n == 0 {
		return 0
	}
	return float64(p.Distinct) / float64(n)
}

// TableProfile aggregates the column profiles of one table.
type TableProfile struct {
	Table        string          `json:"table" yaml:"table"`
	Rows         int             `json:"rows" yaml:"rows"`
	Columns      int             `json:"columns" yaml:"columns"`
	MissingCells int             `json:"missing_cells" yaml:"missing_cells"`
	Profiles     []ColumnProfile `json:"profiles" yaml:"profiles"`
}

// CorrelationPair is the Pearson coefficient between two numeric columns,
// computed over rows where both values are present. Pairs with fewer than
// two such rows, or with a non-finite coefficient, are not emitted.
type CorrelationPair struct {
	A string  `json:"a" yaml:"a"`
	B string  `json:"b" yaml:"b"`
	R float64 `json:"r" yaml:"r"`
}

// Table profiles every column of f.
func Table(name string, f *frame.Frame) *TableProfile {
	tp := &TableProfile{
		Table:   name,
		Rows:    f.Rows(),
		Columns: f.Cols(),
	}
	for _, col := range f.Columns() {
		p := profileColumn(col)
		tp.MissingCells += p.Missing
		tp.Profiles = append(tp.Profiles, p)
	}
	return tp
}

func profileColumn(c frame.Column) ColumnProfile {
	p := ColumnProfile{
		Name:     c.Name,
		Kind:     c.Kind,
		KindName: c.Kind.String(),
		Rows:     len(c.Values),
		Missing:  c.MissingCount(),
		Distinct: c.DistinctCount(),
	}

	if c.Kind != frame.Numeric {
		return p
	}

	xs := presentValues(&c)
	if len(xs) == 0 {
		return p
	}

	p.Min = ptr(floats.Min(xs))
	p.Max = ptr(floats.Max(xs))
	p.Mean = ptr(stat.Mean(xs, nil))
	if len(xs) >= 2 {
		p.StdDev = ptr(stat.PopStdDev(xs, nil))
	}
	return p
}

// Correlations computes the coefficient for every unordered pair of numeric
// columns, in column declaration order.
func Correlations(f *frame.Frame) []CorrelationPair {
	numeric := f.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	var pairs []CorrelationPair
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			if r, ok := Correlate(numeric[i], numeric[j]); ok {
				pairs = append(pairs, CorrelationPair{
					A: numeric[i].Name,
					B: numeric[j].Name,
					R: r,
				})
			}
		}
	}
	return pairs
}

// Correlate computes the Pearson coefficient between two columns over their
// aligned non-missing rows. ok is false when fewer than two such rows exist
// or the coefficient is not finite (e.g. a constant column).
func Correlate(a, b *frame.Column) (r float64, ok bool) {
	av, ap := a.Floats()
	bv, bp := b.Floats()

	n := len(av)
	if len(bv) < n {
		n = len(bv)
	}

	var xs, ys []float64
	for i := 0; i < n; i++ {
		if ap[i] && bp[i] {
			xs = append(xs, av[i])
			ys = append(ys, bv[i])
		}
	}
	if len(xs) < 2 {
		return 0, false
	}

	r = stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Matrix builds the pairwise correlation matrix over the numeric columns of
// f. Cells for pairs with no defined coefficient hold NaN; the diagonal is
// always 1. Returns ok=false when fewer than two numeric columns exist.
func Matrix(f *frame.Frame) (names []string, m [][]float64, ok bool) {
	numeric := f.NumericColumns()
	if len(numeric) < 2 {
		return nil, nil, false
	}

	names = make([]string, len(numeric))
	for i, c := range numeric {
		names[i] = c.Name
	}

	m = make([][]float64, len(numeric))
	for i := range m {
		m[i] = make([]float64, len(numeric))
		for j := range m[i] {
			switch {
			case i == j:
				m[i][j] = 1
			case j < i:
				m[i][j] = m[j][i]
			default:
				if r, defined := Correlate(numeric[i], numeric[j]); defined {
					m[i][j] = r
				} else {
					m[i][j] = math.NaN()
				}
			}
		}
	}
	return names, m, true
}

func presentValues(c *frame.Column) []float64 {
	vals, present := c.Floats()
	var xs []float64
	for i, p := range present {
		if p {
			xs = append(xs, vals[i])
		}
	}
	return xs
}

func ptr(f float64) *float64 { return &f }
