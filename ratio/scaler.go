package ratio

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/histio"
	"github.com/cafe-experiment/cafeplot/summary"
)

// Scaler builds normalized histograms and their single ratios.
type Scaler struct {
	agg   *summary.Aggregator
	hists *histio.Store
}

func NewScaler(agg *summary.Aggregator, hists *histio.Store) *Scaler {
	return &Scaler{agg: agg, hists: hists}
}

// Normalization aggregates the charge, tracking efficiencies and live time
// of k.
func (s *Scaler) Normalization(ctx context.Context, k dataset.Key) (Normalization, error) {
	var (
		n    Normalization
		dsts = []struct {
			m   summary.Metric
			dst *summary.Quantity
		}{
			{summary.TotalCharge, &n.Charge},
			{summary.HMSTrackEff, &n.HMSTrackEff},
			{summary.SHMSTrackEff, &n.SHMSTrackEff},
			{summary.TotalLiveTime, &n.LiveTime},
		}
	)
	for _, d := range dsts {
		q, err := s.agg.Aggregate(ctx, d.m, k)
		if err != nil {
			return Normalization{}, fmt.Errorf("could not aggregate %v of %v: %w", d.m, k, err)
		}
		*d.dst = q
	}
	return n, nil
}

// Scaled loads histogram name of k and scales it by the scale factor of k.
func (s *Scaler) Scaled(ctx context.Context, k dataset.Key, name string) (*hbook.H1D, Normalization, error) {
	norm, err := s.Normalization(ctx, k)
	if err != nil {
		return nil, norm, err
	}
	f, err := norm.ScaleFactor()
	if err != nil {
		return nil, norm, fmt.Errorf("%v: %w", k, err)
	}

	h, err := s.hists.H1D(ctx, k, name)
	if err != nil {
		return nil, norm, err
	}
	Scale(h, f)
	h.Annotation()["name"] = k.String()
	return h, norm, nil
}

// Result holds both normalized histograms of a single ratio and the ratio.
type Result struct {
	KeyA, KeyB   dataset.Key
	Hist         string
	A, B         *hbook.H1D
	NormA, NormB Normalization
	Ratio        *Ratio
}

// Compute returns the normalized histograms name of a and b and their
// ratio a/b, e.g. Ca48 MF / Ca40 MF.
func (s *Scaler) Compute(ctx context.Context, a, b dataset.Key, name string) (*Result, error) {
	ha, na, err := s.Scaled(ctx, a, name)
	if err != nil {
		return nil, err
	}
	hb, nb, err := s.Scaled(ctx, b, name)
	if err != nil {
		return nil, err
	}

	r, err := Divide(ha, hb)
	if err != nil {
		return nil, fmt.Errorf("could not divide %v by %v (%s): %w", a, b, name, err)
	}
	r.Name = fmt.Sprintf("Ratio %s%s/%s%s", a.Target, a.Kin, b.Target, b.Kin)

	return &Result{
		KeyA: a, KeyB: b,
		Hist:  name,
		A:     ha,
		B:     hb,
		NormA: na,
		NormB: nb,
		Ratio: r,
	}, nil
}
