package figure

import (
	"image/color"

	"gonum.org/v1/plot/vg"

	"github.com/iafilius/pmcplot/src/pmc"
)

// yHeadroom is the fraction added above the largest value on the shared y axis.
const yHeadroom = 0.05

// Row is one subplot: a labelled line in a fixed color.
type Row struct {
	Label string
	X     []float64
	Y     []float64
	Color color.RGBA
}

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// Layout is the backend-independent description of a figure. Every row shares
// the X and Y ranges.
type Layout struct {
	Title  string
	Rows   []Row
	X      Range
	Y      Range
	Width  vg.Length
	Height vg.Length
}

// NewLayout arranges a report into one row per series. The y range always
// starts at zero; the x range spans the longest series.
func NewLayout(r pmc.Report) (Layout, error) {
	if len(r.Series) == 0 {
		return Layout{}, pmc.ErrNoSeries
	}
	l := Layout{Title: r.Title, Rows: make([]Row, len(r.Series))}
	for i, s := range r.Series {
		l.Rows[i] = Row{
			Label: s.Label,
			X:     s.Index(),
			Y:     append([]float64(nil), s.Values...),
			Color: ColorFor(i),
		}
	}
	l.X = Range{Min: 0, Max: float64(r.MaxLen() - 1)}
	if l.X.Max < 1 {
		l.X.Max = 1
	}
	l.Y = Range{Min: 0, Max: r.MaxValue() * (1 + yHeadroom)}
	if l.Y.Max <= 0 {
		l.Y.Max = 1
	}
	l.Width, l.Height = ComputeFigureSize(len(l.Rows))
	return l, nil
}

// PixelSize is the raster size of the layout at DPI.
func (l Layout) PixelSize() (int, int) { return PixelSize(l.Width, l.Height) }
