package figure

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// IntegerTicks is a plot.Ticker that only places ticks on whole numbers.
type IntegerTicks struct {
	// N is the desired number of ticks; fewer are produced for short ranges.
	N int
}

var _ plot.Ticker = IntegerTicks{}

// Ticks implements plot.Ticker.
func (t IntegerTicks) Ticks(min, max float64) []plot.Tick {
	vals := IntegerTickValues(min, max, t.N)
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: FormatTick(v)}
	}
	return ticks
}

// unlabeled keeps tick positions but drops their labels (rows sharing the x axis
// with the bottom row).
type unlabeled struct{ plot.Ticker }

func (u unlabeled) Ticks(min, max float64) []plot.Tick {
	ticks := u.Ticker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}

// IntegerTickValues returns integer tick positions covering [min, max] using a
// 1, 2, 5 x 10^k step chosen to give at most about n ticks.
func IntegerTickValues(min, max float64, n int) []float64 {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if n < 2 {
		n = 2
	}
	if max < min {
		min, max = max, min
	}
	step := 1.0
	if raw := (max - min) / float64(n-1); raw > 1 {
		mag := math.Pow(10, math.Floor(math.Log10(raw)))
		step = 10 * mag
		for _, c := range []float64{1, 2, 5, 10} {
			if c*mag >= raw {
				step = c * mag
				break
			}
		}
	}
	start := math.Ceil(min/step) * step
	var out []float64
	for v := start; v <= max+1e-9; v += step {
		out = append(out, v)
		if len(out) > 2*n+2 {
			break
		}
	}
	return out
}

// FormatTick renders an integral tick value.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
