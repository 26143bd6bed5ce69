package cafeplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/hbook"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/ratio"
	"github.com/cafe-experiment/cafeplot/summary"
)

func newHist(counts ...float64) *hbook.H1D {
	h := hbook.NewH1D(len(counts), 0, 0.1*float64(len(counts)))
	for i, w := range counts {
		if w != 0 {
			h.Fill(0.1*float64(i)+0.05, w)
		}
	}
	return h
}

func checkSaved(t *testing.T, fname string) {
	t.Helper()
	fi, err := os.Stat(fname)
	if err != nil {
		t.Fatalf("plot not saved: %+v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("empty plot file %q", fname)
	}
}

func TestIntegral(t *testing.T) {
	sum, err := Integral(newHist(3, 4, 0))
	if sum != 7 || err != 5 {
		t.Fatalf("got %v ± %v, want 7 ± 5", sum, err)
	}
}

func TestNormalized(t *testing.T) {
	h := newHist(1, 3)
	n := normalized(h)
	if sum, _ := Integral(n); math.Abs(sum-1) > 1e-12 {
		t.Fatalf("normalized area %v", sum)
	}
	if sum, _ := Integral(h); sum != 4 {
		t.Fatalf("input modified: area %v", sum)
	}
	empty := newHist(0, 0)
	if normalized(empty) != empty {
		t.Fatalf("empty histogram should be returned as is")
	}
}

func TestOverlay(t *testing.T) {
	dir := t.TempDir()
	s := DefaultStyle()
	l := Labels{Title: "Missing Momentum (light nuclei)", X: "Missing Momentum [GeV/c]", Y: "Normalized Counts"}

	p, err := Overlay(s, l,
		Entry{"LD2 MF", newHist(1, 5, 3, 1)},
		Entry{"Be9 MF", newHist(2, 6, 2, 1)},
		Entry{"C12 MF", newHist(1, 4, 4, 2)},
	)
	if err != nil {
		t.Fatal(err)
	}
	fname := filepath.Join(dir, "overlay.png")
	if err := Save(p, s, fname); err != nil {
		t.Fatalf("%+v", err)
	}
	checkSaved(t, fname)

	if _, err := Overlay(s, l); err == nil {
		t.Fatalf("expected an error for an empty overlay")
	}
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	s := DefaultStyle()
	s.LogY = true
	p := Compare(s, Labels{X: "E_{miss} [GeV]"},
		Entry{"pass1", newHist(10, 20, 5)},
		Entry{"pass2", newHist(12, 18, 6)},
		true,
	)
	fname := filepath.Join(dir, "compare.png")
	if err := Save(p, s, fname); err != nil {
		t.Fatalf("%+v", err)
	}
	checkSaved(t, fname)
}

func TestRatioPlot(t *testing.T) {
	a, b := newHist(8, 0, 4), newHist(1, 0.5, 0)
	r, err := ratio.Divide(a, b)
	if err != nil {
		t.Fatal(err)
	}
	res := &ratio.Result{
		KeyA: dataset.Key{Target: "Ca48", Kin: "MF"},
		KeyB: dataset.Key{Target: "Ca40", Kin: "MF"},
		Hist: "kin_plots/H_Pm",
		A:    a, B: b,
		Ratio: r,
	}
	s := DefaultStyle()
	s.Height = 8 * s.Width / 6

	fname := filepath.Join(t.TempDir(), "ratio.png")
	if err := Save(RatioPlot(s, Labels{X: "P_{m} [GeV/c]"}, res), s, fname); err != nil {
		t.Fatalf("%+v", err)
	}
	checkSaved(t, fname)
}

func TestRelativeYieldPlot(t *testing.T) {
	pts := []summary.RunPoint{
		{Current: 10, T2Rate: 50, RelYield: 1, RelT2: 1},
		{Current: 20, T2Rate: 100, RelYield: 0.99, RelYieldErr: 0.01, RelT2: 1.01},
		{Current: 40, T2Rate: 210, RelYield: 0.97, RelYieldErr: 0.01, RelT2: 1.02},
	}
	s := DefaultStyle()
	for _, x := range []XAxis{ByCurrent, ByT2Rate} {
		p, err := RelativeYieldPlot(s, Labels{Y: "Relative Yield"}, x,
			Series{Label: "Au197 MF (yield)", Points: pts},
			Series{Label: "Au197 MF (T2 scalers)", Points: pts, T2: true},
			Series{Label: "empty"},
		)
		if err != nil {
			t.Fatal(err)
		}
		fname := filepath.Join(t.TempDir(), "rate.png")
		if err := Save(p, s, fname); err != nil {
			t.Fatalf("%+v", err)
		}
		checkSaved(t, fname)
	}
}
