package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go-hep.org/x/hep/hbook"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/histio"
	"github.com/cafe-experiment/cafeplot/ratio"
	"github.com/cafe-experiment/cafeplot/source"
	"github.com/cafe-experiment/cafeplot/summary"
)

func newResult(t *testing.T) *ratio.Result {
	t.Helper()
	a := hbook.NewH1D(2, 0, 2)
	a.Fill(0.5, 4)
	a.Fill(1.5, 2)
	b := hbook.NewH1D(2, 0, 2)
	b.Fill(0.5, 2)

	r, err := ratio.Divide(a, b)
	if err != nil {
		t.Fatal(err)
	}
	r.Name = "Ratio Ca48MF/Ca40MF"

	one := summary.Quantity{Value: 1}
	norm := ratio.Normalization{Charge: one, HMSTrackEff: one, SHMSTrackEff: one, LiveTime: one}
	return &ratio.Result{
		KeyA:  dataset.Key{Target: "Ca48", Kin: "MF"},
		KeyB:  dataset.Key{Target: "Ca40", Kin: "MF"},
		Hist:  "kin_plots/H_Pm",
		A:     a,
		B:     b,
		NormA: norm,
		NormB: norm,
		Ratio: r,
	}
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, newResult(t))

	got := out.String()
	for _, want := range []string{"Ca48_MF", "Ca40_MF", "Ratio Ca48MF/Ca40MF", "2 ± "} {
		if !strings.Contains(got, want) {
			t.Fatalf("output misses %q:\n%s", want, got)
		}
	}
	// second bin has an empty denominator
	flagged := false
	for _, line := range strings.Split(got, "\n") {
		if f := strings.Fields(line); len(f) == 4 && f[0] == "1" && f[3] == "-" {
			flagged = true
		}
	}
	if !flagged {
		t.Fatalf("invalid bin not flagged:\n%s", got)
	}
}

func TestWriteROOT(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "ratio.root")
	res := newResult(t)
	if err := writeROOT(fname, res); err != nil {
		t.Fatalf("%+v", err)
	}

	store := histio.NewStore(source.Dir(""), dataset.DefaultLayout())
	h, err := store.H1DFile(context.Background(), fname, "Ca48_MF")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got, want := h.SumW(), res.A.SumW(); got != want {
		t.Fatalf("sumw=%v, want %v", got, want)
	}
}
