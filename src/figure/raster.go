package figure

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
	"gonum.org/v1/plot/vg"

	"github.com/iafilius/pmcplot/src/pmc"
)

// encodeRaster writes img in one of the raster formats.
func encodeRaster(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w %q for raster output", ErrUnsupportedFormat, f)
	}
}

var parseMono = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gomono.TTF)
})

// monoFace returns a Go Mono face of the given size at DPI, falling back to the
// fixed 7x13 bitmap face when the embedded font cannot be loaded.
func monoFace(size vg.Length) font.Face {
	f, err := parseMono()
	if err == nil {
		var face font.Face
		face, err = opentype.NewFace(f, &opentype.FaceOptions{Size: size.Points(), DPI: DPI, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
	}
	pmc.Warnf("mono font unavailable, using basic bitmap face: %v", err)
	return basicfont.Face7x13
}

func lineHeight(face font.Face) int { return face.Metrics().Height.Ceil() }

func textWidth(face font.Face, s string) int { return font.MeasureString(face, s).Ceil() }

// drawText draws s with its top-left corner at (x, y).
func drawText(dst draw.Image, face font.Face, x, y int, s string, col color.Color) {
	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	dr.DrawString(s)
}

// drawTextCentered draws s horizontally centered on cx with its top at y.
func drawTextCentered(dst draw.Image, face font.Face, cx, y int, s string, col color.Color) {
	drawText(dst, face, cx-textWidth(face, s)/2, y, s, col)
}

// drawTextVertical draws s rotated a quarter turn counter-clockwise, reading
// bottom to top, centered vertically on cy with its top edge at x.
func drawTextVertical(dst draw.Image, face font.Face, x, cy int, s string, col color.Color) {
	w, h := textWidth(face, s), lineHeight(face)
	if w <= 0 || h <= 0 {
		return
	}
	flat := image.NewRGBA(image.Rect(0, 0, w, h))
	drawText(flat, face, 0, 0, s, col)
	rot := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rot.SetRGBA(y, w-1-x, flat.RGBAAt(x, y))
		}
	}
	top := cy - w/2
	draw.Draw(dst, image.Rect(x, top, x+h, top+w), rot, image.Point{}, draw.Over)
}

// fill paints the whole of img with col.
func fill(img draw.Image, col color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}
