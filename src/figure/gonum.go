package figure

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/iafilius/pmcplot/src/pmc"
)

var gonumFormats = map[Format]bool{
	FormatPNG: true, FormatJPEG: true, FormatGIF: true, FormatTIFF: true,
	FormatBMP: true, FormatSVG: true, FormatPDF: true, FormatEPS: true,
}

// GonumRenderer draws figures with gonum/plot.
type GonumRenderer struct{}

// Render implements Renderer. Drawing is deferred until Save or Image so each
// output canvas gets a fresh pass.
func (GonumRenderer) Render(r pmc.Report) (Figure, error) {
	l, err := NewLayout(r)
	if err != nil {
		return nil, err
	}
	return &gonumFigure{layout: l}, nil
}

type gonumFigure struct {
	layout Layout
}

func (f *gonumFigure) Layout() Layout { return f.layout }

func (f *gonumFigure) Image() (image.Image, error) {
	c := f.rasterCanvas()
	if err := f.draw(draw.New(c)); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

func (f *gonumFigure) Save(path string) error {
	defer pmc.TimeTrack(time.Now(), "gonum save "+path)
	format, err := checkFormat(path, BackendGonum, gonumFormats)
	if err != nil {
		return err
	}
	w, h := f.layout.Width, f.layout.Height
	var out vg.CanvasWriterTo
	switch format {
	case FormatSVG:
		out = vgsvg.New(w, h)
	case FormatPDF:
		out = vgpdf.New(w, h)
	case FormatEPS:
		out = vgeps.New(w, h)
	case FormatPNG:
		out = vgimg.PngCanvas{Canvas: f.rasterCanvas()}
	case FormatJPEG:
		out = vgimg.JpegCanvas{Canvas: f.rasterCanvas()}
	case FormatTIFF:
		out = vgimg.TiffCanvas{Canvas: f.rasterCanvas()}
	default:
		// gif and bmp have no vgimg writer; encode the rasterized image.
		img, err := f.Image()
		if err != nil {
			return err
		}
		return writeFile(path, func(w io.Writer) error { return encodeRaster(w, img, format) })
	}
	if err := f.draw(draw.New(out)); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := out.WriteTo(w)
		return err
	})
}

func (f *gonumFigure) rasterCanvas() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(f.layout.Width, f.layout.Height),
		vgimg.UseDPI(DPI),
		vgimg.UseBackgroundColor(color.White),
	)
}

func textStyle(size vg.Length, xa text.XAlignment, ya text.YAlignment) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(MonoFont, size),
		XAlign:  xa,
		YAlign:  ya,
		Handler: plot.DefaultTextHandler,
	}
}

// draw lays out the figure title, the shared axis labels and one tile per row.
func (f *gonumFigure) draw(dc draw.Canvas) error {
	l := f.layout
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	if l.Title != "" {
		sty := textStyle(TitleSize, text.XCenter, text.YTop)
		dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - Margin}, l.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(sty.Height(l.Title) + 2*Margin))
	}
	xsty := textStyle(LabelSize, text.XCenter, text.YBottom)
	dc.FillText(xsty, vg.Point{X: dc.Center().X, Y: dc.Min.Y + Margin}, XLabel)
	dc = draw.Crop(dc, 0, 0, xsty.Height(XLabel)+2*Margin, 0)

	ysty := textStyle(LabelSize, text.XCenter, text.YTop)
	ysty.Rotation = math.Pi / 2
	dc.FillText(ysty, vg.Point{X: dc.Min.X + Margin, Y: dc.Center().Y}, YLabel)
	dc = draw.Crop(dc, ysty.Height(YLabel)+2*Margin, -Margin, 0, 0)

	tiles := draw.Tiles{Rows: len(l.Rows), Cols: 1, PadY: RowSpacing}
	rowSty := textStyle(RowTitleSize, text.XLeft, text.YTop)
	for i, row := range l.Rows {
		p, err := f.rowPlot(row, i == len(l.Rows)-1)
		if err != nil {
			return fmt.Errorf("row %d (%s): %w", i, row.Label, err)
		}
		tc := tiles.At(dc, 0, i)
		body := draw.Crop(tc, 0, 0, 0, -(rowSty.Height(row.Label) + vg.Points(2)))
		da := p.DataCanvas(body)
		tc.FillText(rowSty, vg.Point{X: da.Min.X, Y: tc.Max.Y}, row.Label)
		p.Draw(body)
	}
	return nil
}

func (f *gonumFigure) rowPlot(row Row, bottom bool) (*plot.Plot, error) {
	saved := plot.DefaultFont
	plot.DefaultFont = MonoFont
	p := plot.New()
	plot.DefaultFont = saved

	if len(row.Y) > 0 {
		xys := make(plotter.XYs, len(row.Y))
		for j := range row.Y {
			xys[j].X = row.X[j]
			xys[j].Y = row.Y[j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = row.Color
		line.LineStyle.Width = LineWidth
		p.Add(line)
	}
	// Shared scales; set after Add, which widens the axes to the data.
	l := f.layout
	p.X.Min, p.X.Max = l.X.Min, l.X.Max
	p.Y.Min, p.Y.Max = l.Y.Min, l.Y.Max

	p.Y.Tick.Marker = IntegerTicks{N: 4}
	p.Y.Tick.Label.Font.Size = TickSize
	p.X.Tick.Label.Font.Size = TickSize
	if bottom {
		p.X.Tick.Marker = IntegerTicks{N: 8}
	} else {
		p.X.Tick.Marker = unlabeled{IntegerTicks{N: 8}}
	}
	return p, nil
}
