package figure

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output encoding chosen from the output file extension.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatEPS  Format = "eps"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

var extFormats = map[string]Format{
	"":      FormatPNG,
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".svg":  FormatSVG,
	".pdf":  FormatPDF,
	".eps":  FormatEPS,
}

// FormatFor infers the output format from path's extension (case-insensitive).
// A path without an extension is written as PNG.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// checkFormat resolves path's format and verifies the backend can encode it.
func checkFormat(path, backend string, supported map[Format]bool) (Format, error) {
	f, err := FormatFor(path)
	if err != nil {
		return "", err
	}
	if !supported[f] {
		return "", fmt.Errorf("%w %q for backend %s", ErrUnsupportedFormat, f, backend)
	}
	return f, nil
}
