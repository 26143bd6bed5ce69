// Package cafeplot draws CaFe histogram overlays, single ratios and rate
// dependence studies. Presentation is controlled by an explicit Style
// passed to each call.
package cafeplot

import (
	"image/color"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Style holds the cosmetics of a plot.
type Style struct {
	Width, Height vg.Length

	TitleSize  vg.Length
	LabelSize  vg.Length
	TickSize   vg.Length
	LegendSize vg.Length

	LineWidth vg.Length
	Palette   []color.Color
	FillAlpha uint8 // 0 disables filled histograms

	Ticks    int     // suggested number of labeled ticks
	LogY     bool    // logarithmic y axis
	Headroom float64 // y range above the tallest bin, as a fraction of it
}

func DefaultStyle() Style {
	return Style{
		Width:      6 * vg.Inch,
		Height:     4.5 * vg.Inch,
		TitleSize:  vg.Points(14),
		LabelSize:  vg.Points(12),
		TickSize:   vg.Points(10),
		LegendSize: vg.Points(9),
		LineWidth:  vg.Points(1.5),
		Palette: []color.Color{
			color.RGBA{R: 220, G: 20, B: 20, A: 255},
			color.RGBA{R: 20, G: 40, B: 220, A: 255},
			color.RGBA{R: 200, G: 0, B: 200, A: 255},
			color.RGBA{R: 20, G: 140, B: 40, A: 255},
			color.RGBA{R: 90, G: 60, B: 200, A: 255},
			color.RGBA{R: 230, G: 140, B: 0, A: 255},
			color.RGBA{R: 0, G: 160, B: 170, A: 255},
			color.RGBA{A: 255},
		},
		FillAlpha: 100,
		Ticks:     5,
		Headroom:  0.6,
	}
}

// Color returns the i-th palette color, cycling through the palette.
func (s Style) Color(i int) color.Color {
	if len(s.Palette) == 0 {
		return color.Black
	}
	return s.Palette[i%len(s.Palette)]
}

func (s Style) fill(i int) color.Color {
	if s.FillAlpha == 0 {
		return nil
	}
	r, g, b, _ := s.Color(i).RGBA()
	a := uint32(s.FillAlpha)
	// premultiplied alpha
	return color.RGBA{
		R: uint8((r >> 8) * a / 255),
		G: uint8((g >> 8) * a / 255),
		B: uint8((b >> 8) * a / 255),
		A: s.FillAlpha,
	}
}

// Labels are the texts of a plot.
type Labels struct {
	Title string
	X, Y  string
}

func (s Style) newPlot(l Labels) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = l.Title
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.X.Label.Text = l.X
	p.X.Label.TextStyle.Font.Size = s.LabelSize
	p.Y.Label.Text = l.Y
	p.Y.Label.TextStyle.Font.Size = s.LabelSize
	p.X.Tick.Label.Font.Size = s.TickSize
	p.Y.Tick.Label.Font.Size = s.TickSize

	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: s.Ticks}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: s.Ticks}
	if s.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	p.Legend.TextStyle.Font.Size = s.LegendSize
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

// h1d styles h with the i-th palette color.
func (s Style) h1d(h *hbook.H1D, i int, filled bool) *hplot.H1D {
	c := s.Color(i)
	// log scales cannot draw error bars reaching zero
	opts := []hplot.Options{hplot.WithYErrBars(!s.LogY)}
	if s.LogY {
		opts = append(opts, hplot.WithLogY(true))
	}
	hp := hplot.NewH1D(h, opts...)
	hp.LineStyle.Color = c
	hp.LineStyle.Width = s.LineWidth
	hp.FillColor = nil
	if filled {
		hp.FillColor = s.fill(i)
	}
	if hp.YErrs != nil {
		hp.YErrs.LineStyle.Color = c
	}
	hp.Infos.Style = hplot.HInfoNone
	return hp
}

// yRange sets the y axis from zero (or a small positive value on a log
// scale) to the tallest bin plus headroom.
func (s Style) yRange(p *hplot.Plot, hists ...*hbook.H1D) {
	top := 0.0
	for _, h := range hists {
		for i := range h.Binning.Bins {
			if v := h.Binning.Bins[i].SumW(); v > top {
				top = v
			}
		}
	}
	if top <= 0 {
		return
	}
	p.Y.Min = 0
	if s.LogY {
		p.Y.Min = top * 1e-4
	}
	p.Y.Max = top * (1 + s.Headroom)
}

// Save writes d to fname; the format follows the file extension.
func Save(d hplot.Drawer, s Style, fname string) error {
	return hplot.Save(d, s.Width, s.Height, fname)
}
