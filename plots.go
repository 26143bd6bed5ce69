package cafeplot

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cafe-experiment/cafeplot/ratio"
	"github.com/cafe-experiment/cafeplot/summary"
)

// Entry is a labeled histogram.
type Entry struct {
	Label string
	Hist  *hbook.H1D
}

// Integral returns the sum of the in-range bin contents of h and its error.
func Integral(h *hbook.H1D) (sum, err float64) {
	var w2 float64
	for i := range h.Binning.Bins {
		sum += h.Binning.Bins[i].SumW()
		w2 += h.Binning.Bins[i].SumW2()
	}
	return sum, math.Sqrt(w2)
}

// normalized returns a copy of h with unit in-range area. Empty
// histograms are returned as is.
func normalized(h *hbook.H1D) *hbook.H1D {
	sum, _ := Integral(h)
	if sum == 0 {
		return h
	}
	c := h.Clone()
	c.Scale(1 / sum)
	return c
}

// Overlay draws each histogram normalized to unit area, one palette color
// per entry, e.g. the missing momentum of several nuclei at the same
// kinematics.
func Overlay(s Style, l Labels, entries ...Entry) (*hplot.Plot, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("cafeplot: nothing to overlay")
	}
	p := s.newPlot(l)
	hists := make([]*hbook.H1D, 0, len(entries))
	for i, e := range entries {
		h := normalized(e.Hist)
		hists = append(hists, h)

		hp := s.h1d(h, i, false)
		hp.GlyphStyle = draw.GlyphStyle{
			Color:  s.Color(i),
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(hp)
		p.Legend.Add(e.Label, hp)
	}
	s.yRange(p, hists...)
	return p, nil
}

// Compare overlays two histograms with their integrals in the legend.
// With normalize set, both are drawn with unit area.
func Compare(s Style, l Labels, a, b Entry, normalize bool) *hplot.Plot {
	p := s.newPlot(l)
	var drawn []*hbook.H1D
	for i, e := range []Entry{a, b} {
		sum, err := Integral(e.Hist)
		h := e.Hist
		if normalize {
			h = normalized(h)
		}
		drawn = append(drawn, h)

		hp := s.h1d(h, i, true)
		p.Add(hp)
		p.Legend.Add(fmt.Sprintf("%s | Integral: %.3f ± %.2f", e.Label, sum, err), hp)
	}
	s.yRange(p, drawn...)
	return p
}

// RatioPlot draws the normalized histograms of res on the top pad and
// their valid ratio points on the bottom pad.
func RatioPlot(s Style, l Labels, res *ratio.Result) *hplot.RatioPlot {
	top := s.newPlot(l)
	for i, e := range []struct {
		label string
		h     *hbook.H1D
	}{
		{res.KeyA.Target + " " + res.KeyA.Kin, res.A},
		{res.KeyB.Target + " " + res.KeyB.Kin, res.B},
	} {
		sum, err := Integral(e.h)
		hp := s.h1d(e.h, i, true)
		top.Add(hp)
		top.Legend.Add(fmt.Sprintf("%s  Integral: %.3f ± %.2f", e.label, sum, err), hp)
	}
	s.yRange(top, res.A, res.B)

	bottom := s.newPlot(Labels{X: l.X, Y: res.Ratio.Name})
	bottom.Y.Scale = plot.LinearScale{}
	bottom.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: s.Ticks}
	if pts := res.Ratio.S2D(); pts.Len() > 0 {
		sp := hplot.NewS2D(pts, hplot.WithXErrBars(true), hplot.WithYErrBars(true))
		sp.GlyphStyle = draw.GlyphStyle{
			Color:  s.Color(len(s.Palette) - 1),
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
		bottom.Add(sp)
	}

	rp := hplot.NewRatioPlot()
	rp.Ratio = 0.4
	rp.Top = top
	rp.Bottom = bottom
	return rp
}

// XAxis selects the abscissa of a rate dependence plot.
type XAxis int

const (
	ByCurrent XAxis = iota // average beam current
	ByT2Rate               // T2 scaler rate
)

// Series is one rate dependence study, e.g. one analysis phase.
type Series struct {
	Label  string
	Points []summary.RunPoint
	T2     bool // plot relative T2 scaler counts instead of yields
}

// RelativeYieldPlot draws relative yields (or relative T2 counts) of each
// series as dashed lines with error bars.
func RelativeYieldPlot(s Style, l Labels, x XAxis, series ...Series) (*hplot.Plot, error) {
	p := s.newPlot(l)
	for i, ser := range series {
		if len(ser.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(ser.Points))
		yerrs := make(plotter.YErrors, len(ser.Points))
		for j, pt := range ser.Points {
			pts[j].X = pt.Current
			if x == ByT2Rate {
				pts[j].X = pt.T2Rate
			}
			pts[j].Y = pt.RelYield
			yerrs[j].Low = pt.RelYieldErr
			if ser.T2 {
				pts[j].Y = pt.RelT2
				yerrs[j].Low = 0
			}
			yerrs[j].High = yerrs[j].Low
		}

		c := s.Color(i)
		errPoints := plotutil.ErrorPoints{XYs: pts, YErrors: yerrs}
		bars, err := plotter.NewYErrorBars(errPoints)
		if err != nil {
			return nil, fmt.Errorf("could not build error bars for %q: %w", ser.Label, err)
		}
		bars.LineStyle.Color = c

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("could not build points for %q: %w", ser.Label, err)
		}
		line.LineStyle.Color = c
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		if ser.T2 {
			line.LineStyle.Dashes = nil
		}
		points.GlyphStyle = draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(3),
			Shape:  draw.CircleGlyph{},
		}

		p.Add(line, points, bars)
		p.Legend.Add(ser.Label, line, points)
	}
	return p, nil
}
