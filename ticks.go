package cafeplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labeled ticks on multiples of
// 1, 2, 3, 4, 5, 6 or 8 times a power of ten, with unlabeled minor ticks
// between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: formatTick(min)}}
	}

	major, mult := majorStep(max-min, n)
	div := 2
	switch mult {
	case 3, 6:
		div = 3
	case 5:
		div = 5
	}
	minor := major / float64(div)
	prec := int(math.Max(0, -math.Floor(math.Log10(minor)))) + 1

	var ticks []plot.Tick
	lo, hi := int64(math.Ceil(min/minor)), int64(math.Floor(max/minor))
	for j := lo; j <= hi; j++ {
		v := roundTo(float64(j)*minor, prec)
		if j%int64(div) != 0 {
			ticks = append(ticks, plot.Tick{Value: v})
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

// majorStep returns the major tick spacing for span and its leading digit.
func majorStep(span float64, n int) (float64, int) {
	tens := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/tens < float64(n-1) {
		tens /= 10
	}

	mult := int(span / tens / float64(n-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return float64(mult) * tens, mult
}

func roundTo(x float64, prec int) float64 {
	if x == 0 {
		return 0 // drop the sign of -0
	}
	pow := math.Pow10(prec)
	if v := x * pow; !math.IsInf(v, 0) {
		return math.Round(v) / pow
	}
	return x
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
