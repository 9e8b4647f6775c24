// Package chart renders PNG charts over a loaded frame: histograms, bar
// charts, correlation heat maps and grouped box plots. Rendering never
// mutates the frame.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sumanthd032/DataCanvas/internal/frame"
	"github.com/sumanthd032/DataCanvas/internal/profile"
)

// Chart type names accepted by Render.
const (
	TypeHistogram = "histogram"
	TypeBar       = "bar"
	TypeHeatmap   = "heatmap"
	TypeBox       = "box"
)

// Types lists the supported chart types.
var Types = []string{TypeHistogram, TypeBar, TypeHeatmap, TypeBox}

// Options holds render knobs. Zero values fall back to the defaults.
type Options struct {
	Bins int // histogram bin count
	TopK int // category cap for bar and box charts
}

// Default render knobs.
const (
	DefaultBins = 20
	DefaultTopK = 20
)

// otherLabel groups the categories beyond the top K. The same policy
// applies to bar charts and box plots.
const otherLabel = "(other)"

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	return o
}

var barColor = color.RGBA{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff}

// Render dispatches on the chart type. col selects the primary column; by
// selects the grouping column for box plots. Heat maps ignore both.
func Render(f *frame.Frame, typ, col, by string, o Options) ([]byte, error) {
	switch typ {
	case TypeHistogram:
		return Histogram(f, col, o)
	case TypeBar:
		return Bar(f, col, o)
	case TypeHeatmap:
		return Heatmap(f)
	case TypeBox:
		return Box(f, col, by, o)
	default:
		return nil, fmt.Errorf("unknown chart type %q", typ)
	}
}

// Histogram renders the distribution of a numeric column with a fixed
// default bin count.
func Histogram(f *frame.Frame, col string, o Options) ([]byte, error) {
	o = o.withDefaults()

	c, err := numericColumn(f, col)
	if err != nil {
		return nil, err
	}
	xs := presentFloats(c)
	if len(xs) == 0 {
		return nil, insufficient("column %q has no values", col)
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + col
	p.X.Label.Text = col
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(xs), o.Bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = barColor
	p.Add(h)

	return renderPNG(p)
}

// Bar renders value frequencies of a column, capped to the top K categories
// with the remainder grouped as "(other)".
func Bar(f *frame.Frame, col string, o Options) ([]byte, error) {
	o = o.withDefaults()

	c, ok := f.Column(col)
	if !ok {
		return nil, fmt.Errorf("no such column %q", col)
	}

	labels, counts := topCategories(c, o.TopK)
	if len(labels) == 0 {
		return nil, insufficient("column %q has no values", col)
	}

	p := plot.New()
	p.Title.Text = "Frequency of " + col
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.9

	return renderPNG(p)
}

// Heatmap renders the pairwise correlation matrix of all numeric columns.
func Heatmap(f *frame.Frame) ([]byte, error) {
	names, m, ok := profile.Matrix(f)
	if !ok {
		return nil, insufficient("need at least two numeric columns for a correlation heatmap")
	}

	p := plot.New()
	p.Title.Text = "Correlation heatmap"

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	h := plotter.NewHeatMap(corrGrid{m: m}, cm.Palette(64))
	h.Min = -1
	h.Max = 1
	h.NaN = color.Gray{Y: 0xee}
	p.Add(h)

	p.X.Tick.Marker = nameTicks{names: names}
	p.Y.Tick.Marker = nameTicks{names: names}
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -0.9

	return renderPNG(p)
}

// Box renders a numeric column grouped by a categorical one, capped to the
// top K categories with the remainder pooled into "(other)". A grouped
// chart needs at least two categories.
func Box(f *frame.Frame, numCol, catCol string, o Options) ([]byte, error) {
	o = o.withDefaults()

	num, err := numericColumn(f, numCol)
	if err != nil {
		return nil, err
	}
	cat, ok := f.Column(catCol)
	if !ok {
		return nil, fmt.Errorf("no such column %q", catCol)
	}
	if cat.Kind != frame.Categorical {
		return nil, insufficient("column %q is not categorical", catCol)
	}

	labels, groups := groupByCategory(num, cat, o.TopK)
	if len(labels) < 2 {
		return nil, insufficient("column %q has fewer than two categories", catCol)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s by %s", numCol, catCol)
	p.Y.Label.Text = numCol

	for i, label := range labels {
		box, err := plotter.NewBoxPlot(vg.Points(28), float64(i), plotter.Values(groups[label]))
		if err != nil {
			return nil, fmt.Errorf("failed to build box plot: %w", err)
		}
		p.Add(box)
	}
	p.NominalX(labels...)

	return renderPNG(p)
}

func numericColumn(f *frame.Frame, name string) (*frame.Column, error) {
	c, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("no such column %q", name)
	}
	if c.Kind != frame.Numeric {
		return nil, insufficient("column %q is not numeric", name)
	}
	return c, nil
}

func presentFloats(c *frame.Column) []float64 {
	vals, present := c.Floats()
	var xs []float64
	for i, ok := range present {
		if ok {
			xs = append(xs, vals[i])
		}
	}
	return xs
}

// topCategories counts value frequencies and keeps the k most frequent
// labels, grouping the rest under otherLabel. Ties break alphabetically for
// deterministic output.
func topCategories(c *frame.Column, k int) (labels []string, counts []float64) {
	freq := make(map[string]int)
	var order []string
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		label := frame.Display(v)
		if _, seen := freq[label]; !seen {
			order = append(order, label)
		}
		freq[label]++
	}
	if len(order) == 0 {
		return nil, nil
	}

	sort.Slice(order, func(i, j int) bool {
		if freq[order[i]] != freq[order[j]] {
			return freq[order[i]] > freq[order[j]]
		}
		return order[i] < order[j]
	})

	if len(order) <= k {
		for _, label := range order {
			labels = append(labels, label)
			counts = append(counts, float64(freq[label]))
		}
		return labels, counts
	}

	other := 0
	for _, label := range order[k:] {
		other += freq[label]
	}
	for _, label := range order[:k] {
		labels = append(labels, label)
		counts = append(counts, float64(freq[label]))
	}
	return append(labels, otherLabel), append(counts, float64(other))
}

// groupByCategory buckets the numeric values by category label, applying
// the same top-K-plus-other cap as topCategories.
func groupByCategory(num, cat *frame.Column, k int) (labels []string, groups map[string][]float64) {
	kept, _ := topCategories(cat, k)
	keep := make(map[string]bool, len(kept))
	for _, label := range kept {
		keep[label] = true
	}

	vals, present := num.Floats()
	groups = make(map[string][]float64)
	for i, v := range cat.Values {
		if v == nil || i >= len(present) || !present[i] {
			continue
		}
		label := frame.Display(v)
		if !keep[label] {
			label = otherLabel
		}
		groups[label] = append(groups[label], vals[i])
	}

	for _, label := range kept {
		if len(groups[label]) > 0 {
			labels = append(labels, label)
		}
	}
	return labels, groups
}

// corrGrid adapts a correlation matrix to the heat map grid interface.
type corrGrid struct {
	m [][]float64
}

func (g corrGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }
func (g corrGrid) Z(c, r int) float64 { return g.m[r][c] }

// nameTicks labels integer grid positions with column names.
type nameTicks struct {
	names []string
}

func (t nameTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, name := range t.names {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}
	return ticks
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(7*vg.Inch, 4.5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
