// Package insight turns column profiles and correlation pairs into templated
// natural-language observations when fixed thresholds are crossed.
package insight

import (
	"fmt"
	"math"
	"sort"

	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/profile"
)

// Kind orders insight groups: correlations first, then missing data, then
// high cardinality.
type Kind int

const (
	Correlation Kind = iota
	MissingData
	HighCardinality
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case Correlation:
		return "correlation"
	case MissingData:
		return "missing"
	default:
		return "cardinality"
	}
}

// Insight is one observation. Severity decides ordering within a kind:
// coefficient magnitude, missing fraction, or distinct fraction.
type Insight struct {
	Kind     Kind
	Severity float64
	Text     string
}

// Thresholds holds the trigger constants. Zero-valued fields fall back to
// the package defaults.
type Thresholds struct {
	Correlation float64 // |r| at or above this emits an insight
	Missing     float64 // missing fraction at or above this emits an insight
	Cardinality float64 // distinct fraction at or above this emits an insight
	MinRows     int     // cardinality insights need more rows than this
}

// Default trigger constants.
const (
	DefaultCorrelation = 0.7
	DefaultMissing     = 0.2
	DefaultCardinality = 0.9
	DefaultMinRows     = 20
)

// DefaultThresholds returns the package default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Correlation: DefaultCorrelation,
		Missing:     DefaultMissing,
		Cardinality: DefaultCardinality,
		MinRows:     DefaultMinRows,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.Correlation == 0 {
		t.Correlation = d.Correlation
	}
	if t.Missing == 0 {
		t.Missing = d.Missing
	}
	if t.Cardinality == 0 {
		t.Cardinality = d.Cardinality
	}
	if t.MinRows == 0 {
		t.MinRows = d.MinRows
	}
	return t
}

// Generate emits insights for the table, grouped by kind in the fixed order
// correlation, missing, cardinality, and ordered by descending severity
// within each group. Each column pair and column appears at most once.
func Generate(tp *profile.TableProfile, pairs []profile.CorrelationPair, th Thresholds) []Insight {
	th = th.withDefaults()

	var correlations, missing, cardinality []Insight

	seenPairs := make(map[[2]string]struct{})
	for _, p := range pairs {
		key := [2]string{p.A, p.B}
		if p.B < p.A {
			key = [2]string{p.B, p.A}
		}
		if _, dup := seenPairs[key]; dup {
			continue
		}
		seenPairs[key] = struct{}{}

		if math.Abs(p.R) >= th.Correlation {
			correlations = append(correlations, Insight{
				Kind:     Correlation,
				Severity: math.Abs(p.R),
				Text:     fmt.Sprintf("Strong correlation between %s and %s (r = %.2f).", p.A, p.B, p.R),
			})
		}
	}

	for _, cp := range tp.Profiles {
		if frac := cp.MissingFraction(); frac >= th.Missing && cp.Missing > 0 {
			missing = append(missing, Insight{
				Kind:     MissingData,
				Severity: frac,
				Text: fmt.Sprintf("%s is missing %.0f%% of its values (%d of %d rows).",
					cp.Name, frac*100, cp.Missing, cp.Rows),
			})
		}

		if cp.Kind != frame.Categorical || cp.Rows <= th.MinRows {
			continue
		}
		if frac := cp.DistinctFraction(); frac >= th.Cardinality {
			cardinality = append(cardinality, Insight{
				Kind:     HighCardinality,
				Severity: frac,
				Text: fmt.Sprintf("%s has very high cardinality: %d distinct values in %d rows (%.0f%% unique).",
					cp.Name, cp.Distinct, cp.Rows, frac*100),
			})
		}
	}

	bySeverity := func(in []Insight) {
		sort.SliceStable(in, func(i, j int) bool { return in[i].Severity > in[j].Severity })
	}
	bySeverity(correlations)
	bySeverity(missing)
	bySeverity(cardinality)

	out := make([]Insight, 0, len(correlations)+len(missing)+len(cardinality))
	out = append(out, correlations...)
	out = append(out, missing...)
	out = append(out, cardinality...)
	return out
}
