// Package chart draws the per-dimension group comparison box plots.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"path/filepath"

	domainstats "stailab/domain/stats"
	"stailab/domain/study"
	"stailab/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options control the figure size and point jitter.
type Options struct {
	WidthCM    float64
	HeightCM   float64
	JitterSD   float64
	JitterSeed int64
}

// DefaultOptions matches the layout of the published figures.
func DefaultOptions() Options {
	return Options{WidthCM: 25, HeightCM: 15, JitterSD: 0.04, JitterSeed: 42}
}

var groupColors = map[study.Category]color.RGBA{
	study.ValidCoping:       {R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF},
	study.NoEffect:          {R: 0xA8, G: 0xDA, B: 0xDC, A: 0xFF},
	study.Counterproductive: {R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF},
}

var (
	zeroLineColor = color.RGBA{R: 0xD6, G: 0x28, B: 0x28, A: 0x80}
	meanColor     = color.RGBA{R: 0xD6, G: 0x28, B: 0x28, A: 0xFF}
)

// BoxPlotRenderer writes one PNG per compared dimension.
type BoxPlotRenderer struct {
	dir  string
	opts Options
}

func NewBoxPlotRenderer(dir string, opts Options) *BoxPlotRenderer {
	return &BoxPlotRenderer{dir: dir, opts: opts}
}

// FileName is element{N}_group_comparison.png for dimension number N.
func FileName(dim study.Dimension) string {
	return fmt.Sprintf("element%d_group_comparison.png", dim.Number)
}

// Render draws the box plot for cmp from the deltas of observations and
// returns the written path.
func (r *BoxPlotRenderer) Render(cmp *domainstats.ComparisonResult, observations []study.Observation) (string, error) {
	path := filepath.Join(r.dir, FileName(cmp.Dimension))

	p, err := r.build(cmp, groupValues(cmp, observations))
	if err != nil {
		return "", errors.RenderError(path, err)
	}
	w := vg.Length(r.opts.WidthCM) * vg.Centimeter
	h := vg.Length(r.opts.HeightCM) * vg.Centimeter
	if err := p.Save(w, h, path); err != nil {
		return "", errors.RenderError(path, err)
	}
	return path, nil
}

func groupValues(cmp *domainstats.ComparisonResult, observations []study.Observation) [][]float64 {
	selector := cmp.Dimension.Selector()
	byCategory := make(map[study.Category][]float64, len(cmp.GroupNames))
	for _, o := range observations {
		byCategory[selector(o)] = append(byCategory[selector(o)], o.Delta())
	}
	values := make([][]float64, len(cmp.GroupNames))
	for i, c := range cmp.GroupNames {
		values[i] = byCategory[c]
	}
	return values
}

func (r *BoxPlotRenderer) build(cmp *domainstats.ComparisonResult, values [][]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cmp.Dimension.Name + "\ndelta STAI-S by group"
	p.Y.Label.Text = "delta STAI-S (B - A)"
	p.Add(plotter.NewGrid())

	rng := rand.New(rand.NewSource(r.opts.JitterSeed))
	names := make([]string, len(cmp.GroupNames))
	yMin, yMax := 0.0, 0.0

	for i, c := range cmp.GroupNames {
		g := values[i]
		names[i] = fmt.Sprintf("%s (n=%d)", c, len(g))
		loc := float64(i)

		box, err := plotter.NewBoxPlot(vg.Points(40), loc, plotter.Values(g))
		if err != nil {
			return nil, err
		}
		box.FillColor = withAlpha(groupColors[c], 0xB3)
		box.BoxStyle.Width = vg.Points(1.5)

		pts := make(plotter.XYs, len(g))
		for j, v := range g {
			pts[j] = plotter.XY{X: loc + rng.NormFloat64()*r.opts.JitterSD, Y: v}
			yMin, yMax = math.Min(yMin, v), math.Max(yMax, v)
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Color = withAlpha(groupColors[c], 0x80)

		mean, err := plotter.NewScatter(plotter.XYs{{X: loc, Y: cmp.Groups[c].Mean}})
		if err != nil {
			return nil, err
		}
		mean.GlyphStyle.Shape = draw.BoxGlyph{}
		mean.GlyphStyle.Radius = vg.Points(4)
		mean.GlyphStyle.Color = meanColor

		p.Add(box, scatter, mean)
	}
	p.NominalX(names...)

	zero, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(names)) - 0.5, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Color = zeroLineColor
	zero.LineStyle.Width = vg.Points(2)
	zero.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	p.Add(zero)
	p.Legend.Add("no change (delta = 0)", zero)
	p.Legend.Top = true

	span := yMax - yMin
	if span == 0 {
		span = 1
	}
	p.Y.Min = yMin - 0.1*span
	p.Y.Max = yMax + 0.3*span

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: -0.45, Y: yMax + 0.25*span}},
		Labels: []string{Annotation(cmp)},
	})
	if err != nil {
		return nil, err
	}
	p.Add(label)
	return p, nil
}

// Annotation is the in-figure test summary, e.g. "ANOVA: p=0.0010 **\nη²=0.900".
func Annotation(cmp *domainstats.ComparisonResult) string {
	return fmt.Sprintf("%s: p=%.4f %s\nη²=%.3f", cmp.TestChoice, cmp.PValue, cmp.Significance.Marker(), cmp.EtaSquared)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// premultiplied
	scale := float64(a) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: a,
	}
}
