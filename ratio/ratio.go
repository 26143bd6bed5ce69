// Package ratio normalizes CaFe histograms by charge, tracking efficiencies
// and live time, and forms bin-by-bin single ratios between data sets.
package ratio

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/summary"
)

// ErrBadNormalization is returned when a normalization input is not
// strictly positive and finite.
var ErrBadNormalization = errors.New("invalid normalization")

// Normalization holds the aggregated quantities a histogram is divided by.
type Normalization struct {
	Charge       summary.Quantity // mC
	HMSTrackEff  summary.Quantity
	SHMSTrackEff summary.Quantity
	LiveTime     summary.Quantity
}

// ScaleFactor returns 1/(Q·ε_hms·ε_shms·LT).
func (n Normalization) ScaleFactor() (float64, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"charge", n.Charge.Value},
		{"hms tracking efficiency", n.HMSTrackEff.Value},
		{"shms tracking efficiency", n.SHMSTrackEff.Value},
		{"live time", n.LiveTime.Value},
	} {
		if !(v.val > 0) || math.IsInf(v.val, 0) {
			return 0, fmt.Errorf("%s = %g: %w", v.name, v.val, ErrBadNormalization)
		}
	}
	p := n.Charge.Value * n.HMSTrackEff.Value * n.SHMSTrackEff.Value * n.LiveTime.Value
	if p == 0 || math.IsInf(p, 0) {
		return 0, fmt.Errorf("product %g: %w", p, ErrBadNormalization)
	}
	return 1 / p, nil
}

// Scale multiplies the bin contents of h by k and its bin errors by |k|.
func Scale(h *hbook.H1D, k float64) {
	h.Scale(k)
}

// Bin is one bin of a Ratio. Valid is false where the denominator is
// empty; Value and Err are then zero.
type Bin struct {
	XMin, XMax float64
	Value, Err float64
	Valid      bool
}

// Ratio is the bin-by-bin quotient of two identically binned histograms.
type Ratio struct {
	Name string
	Bins []Bin
}

func (r *Ratio) Len() int { return len(r.Bins) }

// Invalid returns the indices of the flagged bins.
func (r *Ratio) Invalid() []int {
	var idx []int
	for i, b := range r.Bins {
		if !b.Valid {
			idx = append(idx, i)
		}
	}
	return idx
}

// S2D returns the valid bins as points at the bin centers, with the bin
// half-width as x error.
func (r *Ratio) S2D() *hbook.S2D {
	pts := make([]hbook.Point2D, 0, len(r.Bins))
	for _, b := range r.Bins {
		if !b.Valid {
			continue
		}
		hw := 0.5 * (b.XMax - b.XMin)
		pts = append(pts, hbook.Point2D{
			X:    b.XMin + hw,
			Y:    b.Value,
			ErrX: hbook.Range{Min: hw, Max: hw},
			ErrY: hbook.Range{Min: b.Err, Max: b.Err},
		})
	}
	return hbook.NewS2D(pts...)
}

const edgeTol = 1e-9

// Divide returns num/den per bin, with uncorrelated errors
// σ_R² = σ_n²/d² + σ_d²·n²/d⁴. Bins with an empty denominator are flagged
// invalid.
func Divide(num, den *hbook.H1D) (*Ratio, error) {
	if num.Len() != den.Len() {
		return nil, fmt.Errorf("%d bins / %d bins: %w", num.Len(), den.Len(), dataset.ErrBinningMismatch)
	}

	r := &Ratio{Bins: make([]Bin, num.Len())}
	for i := range r.Bins {
		nb, db := &num.Binning.Bins[i], &den.Binning.Bins[i]
		if !sameEdge(nb.XMin(), db.XMin()) || !sameEdge(nb.XMax(), db.XMax()) {
			return nil, fmt.Errorf(
				"bin %d: [%g, %g) / [%g, %g): %w",
				i, nb.XMin(), nb.XMax(), db.XMin(), db.XMax(), dataset.ErrBinningMismatch,
			)
		}

		b := Bin{XMin: nb.XMin(), XMax: nb.XMax()}
		n, d := nb.SumW(), db.SumW()
		if d != 0 {
			b.Valid = true
			b.Value = n / d
			b.Err = math.Sqrt(nb.SumW2()/(d*d) + db.SumW2()*n*n/(d*d*d*d))
		}
		r.Bins[i] = b
	}
	return r, nil
}

func sameEdge(a, b float64) bool {
	return math.Abs(a-b) <= edgeTol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
