package figure

import (
	"image/color"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

// Fixed figure styling.
const (
	DPI    = 200
	XLabel = "Time (sequential test number)"
	YLabel = "Number of events"
)

var (
	// BaseWidth x BaseHeight is the figure size for up to eight rows (1280x960 px at DPI).
	BaseWidth  = 6.4 * vg.Inch
	BaseHeight = 4.8 * vg.Inch
	// MinRowHeight keeps rows readable; taller figures are produced past eight rows.
	MinRowHeight = 0.6 * vg.Inch
	// RowSpacing is the vertical gap between consecutive rows.
	RowSpacing = vg.Points(6)
	// Margin surrounds the figure-level title and the shared axis labels.
	Margin = vg.Points(4)

	TitleSize    = vg.Points(12)
	LabelSize    = vg.Points(10)
	RowTitleSize = vg.Points(9)
	TickSize     = vg.Points(7)
	LineWidth    = vg.Points(1)
)

// MonoFont is the monospace face used for every piece of text.
var MonoFont = font.Font{Typeface: "Liberation", Variant: "Mono"}

// PaletteNames lists the row colors in assignment order.
var PaletteNames = []string{"red", "orange", "green", "blue", "indigo", "violet"}

// Palette holds the RGB values for PaletteNames (CSS named colors).
var Palette = []color.RGBA{
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	{R: 0x4b, G: 0x00, B: 0x82, A: 0xff},
	{R: 0xee, G: 0x82, B: 0xee, A: 0xff},
}

// ColorFor returns the color of row i; colors repeat after len(Palette) rows.
func ColorFor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// ComputeFigureSize returns the figure size for the given number of rows.
// The width is fixed; the height grows once rows would drop below MinRowHeight.
func ComputeFigureSize(rows int) (vg.Length, vg.Length) {
	h := BaseHeight
	if need := vg.Length(rows) * MinRowHeight; need > h {
		h = need
	}
	return BaseWidth, h
}

// PixelSize converts a figure size to raster pixels at DPI.
func PixelSize(w, h vg.Length) (int, int) {
	return int(w.Dots(DPI) + 0.5), int(h.Dots(DPI) + 0.5)
}
