package summary

import (
	"fmt"
	"math"
	"sort"

	"github.com/cafe-experiment/cafeplot/dataset"
)

// RateColumns extends Columns with the per-run columns of the rate
// dependence study.
type RateColumns struct {
	Columns `yaml:",inline"`

	Current       string `yaml:"current"`
	MultiTrackEff string `yaml:"multi_track_eff"`
	T2Rate        string `yaml:"t2_rate"`   // kHz
	BeamTime      string `yaml:"beam_time"` // s
}

func DefaultRateColumns() RateColumns {
	return RateColumns{
		Columns:       DefaultColumns(),
		Current:       "avg_current",
		MultiTrackEff: "multi_track_eff",
		T2Rate:        "T2_scl_rate",
		BeamTime:      "beam_time",
	}
}

// RunPoint is one run of a rate dependence study.
type RunPoint struct {
	Current float64 // µA
	T2Rate  float64 // kHz

	Yield    float64 // N/(Q·ε_hms·ε_shms·LT·ε_multi)
	YieldErr float64

	RelYield    float64 // Yield / Yield of the lowest current run
	RelYieldErr float64

	RelT2 float64 // T2 scaler counts per charge, relative to the lowest current run
}

// RelativeYields computes charge-normalized yields per run, ordered by
// beam current, relative to the lowest current run. Errors of the yield,
// tracking efficiencies and live time are propagated to first order as
// uncorrelated; the reference run has a zero relative error.
func RelativeYields(t *Table, cols RateColumns) ([]RunPoint, error) {
	names := []string{
		cols.Current, cols.Charge,
		cols.Yield, cols.YieldErr,
		cols.HMSTrackEff, cols.HMSTrackEffErr,
		cols.SHMSTrackEff, cols.SHMSTrackEffErr,
		cols.LiveTime, cols.LiveTimeErr,
		cols.MultiTrackEff, cols.T2Rate, cols.BeamTime,
	}
	data := make([][]float64, len(names))
	for i, name := range names {
		v, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if j := missing(v); j >= 0 {
			return nil, fmt.Errorf("%s: column %q, row %d: missing value: %w", t.Name, name, j+1, dataset.ErrParse)
		}
		data[i] = v
	}
	var (
		cur, q      = data[0], data[1]
		n, nErr     = data[2], data[3]
		h, hErr     = data[4], data[5]
		p, pErr     = data[6], data[7]
		lt, ltErr   = data[8], data[9]
		mult        = data[10]
		rate, btime = data[11], data[12]
	)

	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return cur[order[a]] < cur[order[b]] })

	pts := make([]RunPoint, 0, len(order))
	t2 := make([]float64, 0, len(order))
	for _, i := range order {
		denom := q[i] * h[i] * p[i] * lt[i] * mult[i]
		if denom == 0 || math.IsInf(denom, 0) {
			return nil, fmt.Errorf("%s: row %d: invalid normalization %g: %w", t.Name, i+1, denom, dataset.ErrParse)
		}
		y := n[i] / denom
		rel2 := sq(hErr[i]/h[i]) + sq(pErr[i]/p[i]) + sq(ltErr[i]/lt[i])
		pts = append(pts, RunPoint{
			Current:  cur[i],
			T2Rate:   rate[i],
			Yield:    y,
			YieldErr: math.Sqrt(sq(nErr[i]/denom) + y*y*rel2),
		})
		// kHz -> Hz times seconds gives counts.
		t2 = append(t2, rate[i]*1000*btime[i]/q[i])
	}
	if len(pts) == 0 {
		return nil, nil
	}

	ref := pts[0]
	if ref.Yield == 0 {
		return nil, fmt.Errorf("%s: reference run has a zero yield: %w", t.Name, dataset.ErrParse)
	}
	if t2[0] == 0 {
		return nil, fmt.Errorf("%s: reference run has zero T2 scaler counts: %w", t.Name, dataset.ErrParse)
	}
	for i := range pts {
		pts[i].RelYield = pts[i].Yield / ref.Yield
		pts[i].RelT2 = t2[i] / t2[0]
		if i == 0 {
			continue
		}
		pts[i].RelYieldErr = math.Sqrt(
			sq(pts[i].YieldErr/ref.Yield) + sq(pts[i].Yield*ref.YieldErr/(ref.Yield*ref.Yield)),
		)
	}
	return pts, nil
}

func sq(x float64) float64 { return x * x }
