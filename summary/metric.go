package summary

import (
	"errors"
	"fmt"
)

// ErrUnknownMetric is returned by ParseMetric for selectors outside the
// fixed metric table.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects a summary column and the reduction applied to it.
type Metric int

const (
	TotalCharge Metric = iota
	RealYield
	RealYieldErr
	HMSTrackEff
	HMSTrackEffErr
	SHMSTrackEff
	SHMSTrackEffErr
	TotalLiveTime
	TotalLiveTimeErr

	numMetrics
)

var metricNames = [numMetrics]string{
	TotalCharge:      "total_charge",
	RealYield:        "real_yield",
	RealYieldErr:     "real_yield_err",
	HMSTrackEff:      "hms_trk_eff",
	HMSTrackEffErr:   "hms_trk_eff_err",
	SHMSTrackEff:     "shms_trk_eff",
	SHMSTrackEffErr:  "shms_trk_eff_err",
	TotalLiveTime:    "total_live_time",
	TotalLiveTimeErr: "total_live_time_err",
}

func (m Metric) valid() bool { return m >= 0 && m < numMetrics }

func (m Metric) String() string {
	if !m.valid() {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

// ParseMetric maps a selector name such as "hms_trk_eff" to its Metric.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return Metric(m), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
}

// Metrics lists every metric in table order.
func Metrics() []Metric {
	ms := make([]Metric, numMetrics)
	for i := range ms {
		ms[i] = Metric(i)
	}
	return ms
}

// Reduction is the rule collapsing one column over all runs.
type Reduction int

const (
	Sum             Reduction = iota // Σv
	Quadrature                       // sqrt(Σv²)
	WeightedMean                     // inverse-variance weighted mean of v
	WeightedMeanErr                  // error of the weighted mean
)

func (m Metric) Reduction() Reduction {
	switch m {
	case TotalCharge, RealYield:
		return Sum
	case RealYieldErr:
		return Quadrature
	case HMSTrackEff, SHMSTrackEff, TotalLiveTime:
		return WeightedMean
	case HMSTrackEffErr, SHMSTrackEffErr, TotalLiveTimeErr:
		return WeightedMeanErr
	}
	panic(fmt.Errorf("summary: invalid metric %d", int(m)))
}

// Columns names the summary table columns read by each metric.
type Columns struct {
	Charge          string `yaml:"charge"`
	Yield           string `yaml:"yield"`
	YieldErr        string `yaml:"yield_err"`
	HMSTrackEff     string `yaml:"hms_trk_eff"`
	HMSTrackEffErr  string `yaml:"hms_trk_eff_err"`
	SHMSTrackEff    string `yaml:"shms_trk_eff"`
	SHMSTrackEffErr string `yaml:"shms_trk_eff_err"`
	LiveTime        string `yaml:"live_time"`
	LiveTimeErr     string `yaml:"live_time_err"`
}

// DefaultColumns returns the column names written by the replay reports.
func DefaultColumns() Columns {
	return Columns{
		Charge:          "charge",
		Yield:           "real_Yield",
		YieldErr:        "real_Yield_err",
		HMSTrackEff:     "hTrkEff",
		HMSTrackEffErr:  "hTrkEff_err",
		SHMSTrackEff:    "pTrkEff",
		SHMSTrackEffErr: "pTrkEff_err",
		LiveTime:        "tLT",
		LiveTimeErr:     "tLT_err_Bi",
	}
}

// columns returns the value column of m and, for weighted means, the
// matching error column.
func (c Columns) columns(m Metric) (value, sigma string) {
	switch m {
	case TotalCharge:
		return c.Charge, ""
	case RealYield:
		return c.Yield, ""
	case RealYieldErr:
		return c.YieldErr, ""
	case HMSTrackEff, HMSTrackEffErr:
		return c.HMSTrackEff, c.HMSTrackEffErr
	case SHMSTrackEff, SHMSTrackEffErr:
		return c.SHMSTrackEff, c.SHMSTrackEffErr
	case TotalLiveTime, TotalLiveTimeErr:
		return c.LiveTime, c.LiveTimeErr
	}
	panic(fmt.Errorf("summary: invalid metric %d", int(m)))
}
