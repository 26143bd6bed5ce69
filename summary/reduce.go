package summary

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cafe-experiment/cafeplot/dataset"
)

// ErrNoData is returned when a weighted mean has no run with a usable
// error.
var ErrNoData = errors.New("no usable runs")

// Quantity is a reduced column. Err is only set by weighted means.
type Quantity struct {
	Value float64
	Err   float64
}

// QuadratureSum returns sqrt(Σe²).
func QuadratureSum(e []float64) float64 {
	return math.Sqrt(floats.Dot(e, e))
}

// Weighted returns the inverse-variance weighted mean of v and its error
// 1/sqrt(Σw). Runs with a missing value, or a zero, missing or non-finite
// error carry no weight.
func Weighted(v, e []float64) (Quantity, error) {
	if len(v) != len(e) {
		return Quantity{}, fmt.Errorf("summary: length mismatch (%d values, %d errors)", len(v), len(e))
	}

	xs := make([]float64, 0, len(v))
	ws := make([]float64, 0, len(v))
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			continue
		}
		if e[i] == 0 || math.IsNaN(e[i]) || math.IsInf(e[i], 0) {
			continue
		}
		xs = append(xs, v[i])
		ws = append(ws, 1/(e[i]*e[i]))
	}
	if len(xs) == 0 {
		return Quantity{}, ErrNoData
	}

	return Quantity{
		Value: stat.Mean(xs, ws),
		Err:   1 / math.Sqrt(floats.Sum(ws)),
	}, nil
}

// Reduce applies the reduction of m to t.
func Reduce(t *Table, m Metric, cols Columns) (Quantity, error) {
	if !m.valid() {
		return Quantity{}, fmt.Errorf("%v: %w", m, ErrUnknownMetric)
	}
	vname, ename := cols.columns(m)
	v, err := t.Column(vname)
	if err != nil {
		return Quantity{}, err
	}

	switch red := m.Reduction(); red {
	case Sum, Quadrature:
		if i := missing(v); i >= 0 {
			return Quantity{}, fmt.Errorf("%s: column %q, row %d: missing value: %w", t.Name, vname, i+1, dataset.ErrParse)
		}
		if red == Sum {
			return Quantity{Value: floats.Sum(v)}, nil
		}
		return Quantity{Value: QuadratureSum(v)}, nil

	default:
		e, err := t.Column(ename)
		if err != nil {
			return Quantity{}, err
		}
		q, err := Weighted(v, e)
		if err != nil {
			return Quantity{}, fmt.Errorf("%s: %v of %q: %w", t.Name, m, vname, err)
		}
		if red == WeightedMeanErr {
			return Quantity{Value: q.Err}, nil
		}
		return q, nil
	}
}
