package figure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/gomono"
	"gonum.org/v1/plot/vg"

	"github.com/iafilius/pmcplot/src/pmc"
)

var goChartFormats = map[Format]bool{
	FormatPNG: true, FormatJPEG: true, FormatGIF: true, FormatTIFF: true, FormatBMP: true,
}

// minChartHeight is the smallest row chart go-chart is asked to draw, in pixels.
const minChartHeight = 48

// GoChartRenderer draws each row with go-chart and stacks the rows into one
// raster image.
type GoChartRenderer struct{}

// Render implements Renderer. The composite is drawn once, up front.
func (GoChartRenderer) Render(r pmc.Report) (Figure, error) {
	defer pmc.TimeTrack(time.Now(), "go-chart render")
	l, err := NewLayout(r)
	if err != nil {
		return nil, err
	}
	img, err := composeGoChart(l)
	if err != nil {
		return nil, err
	}
	return &goChartFigure{layout: l, img: img}, nil
}

type goChartFigure struct {
	layout Layout
	img    *image.RGBA
}

func (f *goChartFigure) Layout() Layout              { return f.layout }
func (f *goChartFigure) Image() (image.Image, error) { return f.img, nil }

func (f *goChartFigure) Save(path string) error {
	format, err := checkFormat(path, BackendGoChart, goChartFormats)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { return encodeRaster(w, f.img, format) })
}

var goMonoTTF = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

func px(l vg.Length) int { return int(l.Dots(DPI) + 0.5) }

// composeGoChart renders every row and pastes it below its left-aligned label,
// framed by the figure title and the shared axis labels.
func composeGoChart(l Layout) (*image.RGBA, error) {
	W, H := l.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, W, H))
	fill(img, color.White)

	titleFace := monoFace(TitleSize)
	labelFace := monoFace(LabelSize)
	rowFace := monoFace(RowTitleSize)
	m := px(Margin)

	top := m
	if l.Title != "" {
		drawTextCentered(img, titleFace, W/2, m, l.Title, color.Black)
		top = lineHeight(titleFace) + 2*m
	}
	bottom := lineHeight(labelFace) + 2*m
	left := lineHeight(labelFace) + 2*m
	right := m

	drawTextCentered(img, labelFace, left+(W-left-right)/2, H-bottom+m, XLabel, color.Black)
	drawTextVertical(img, labelFace, m, top+(H-top-bottom)/2, YLabel, color.Black)

	n := len(l.Rows)
	gap := px(RowSpacing)
	rowTitleH := lineHeight(rowFace) + 2
	blockH := (H - top - bottom - gap*(n-1)) / n
	chartH := blockH - rowTitleH
	if chartH < minChartHeight {
		chartH = minChartHeight
	}
	chartW := W - left - right

	mono, err := goMonoTTF()
	if err != nil {
		pmc.Warnf("go-chart: mono font unavailable, using default: %v", err)
		mono = nil
	}
	pad := chart.Box{Top: 4, Left: 12, Right: 8, Bottom: 4}
	for i, row := range l.Rows {
		rowImg, err := renderGoChartRow(l, row, i == n-1, chartW, chartH, pad, mono)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, row.Label, err)
		}
		y0 := top + i*(blockH+gap)
		drawText(img, rowFace, left+pad.Left, y0, row.Label, color.Black)
		dst := image.Rect(left, y0+rowTitleH, left+chartW, y0+rowTitleH+chartH)
		draw.Draw(img, dst, rowImg, rowImg.Bounds().Min, draw.Src)
	}
	return img, nil
}

func toDrawingColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// goChartTicks builds integer ticks for r. go-chart narrows an axis to the span
// of its ticks, so unlabeled ticks pin both ends of r.
func goChartTicks(r Range, n int, labels bool) []chart.Tick {
	vals := IntegerTickValues(r.Min, r.Max, n)
	ticks := make([]chart.Tick, 0, len(vals)+2)
	if len(vals) == 0 || vals[0] > r.Min {
		ticks = append(ticks, chart.Tick{Value: r.Min})
	}
	for _, v := range vals {
		t := chart.Tick{Value: v}
		if labels {
			t.Label = FormatTick(v)
		}
		ticks = append(ticks, t)
	}
	if len(vals) == 0 || vals[len(vals)-1] < r.Max {
		ticks = append(ticks, chart.Tick{Value: r.Max})
	}
	return ticks
}

func renderGoChartRow(l Layout, row Row, bottom bool, w, h int, pad chart.Box, mono *truetype.Font) (image.Image, error) {
	series := chart.ContinuousSeries{
		Name:    row.Label,
		XValues: row.X,
		YValues: row.Y,
		Style: chart.Style{
			StrokeColor: toDrawingColor(row.Color),
			StrokeWidth: 2,
		},
	}
	if len(row.Y) == 0 {
		// go-chart wants at least one visible point; draw the empty row's axes only.
		series.XValues = []float64{0}
		series.YValues = []float64{0}
		series.Style.StrokeColor = drawing.ColorTransparent
	}
	ch := chart.Chart{
		Width:      w,
		Height:     h,
		DPI:        DPI,
		Font:       mono,
		Background: chart.Style{Padding: pad},
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: TickSize.Points()},
			Range: &chart.ContinuousRange{Min: l.X.Min, Max: l.X.Max},
			Ticks: goChartTicks(l.X, 8, bottom),
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: TickSize.Points()},
			Range: &chart.ContinuousRange{Min: l.Y.Min, Max: l.Y.Max},
			Ticks: goChartTicks(l.Y, 4, true),
		},
		Series: []chart.Series{series},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
