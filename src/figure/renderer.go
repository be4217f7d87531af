// Package figure renders a parsed report as a stack of time-series rows, one
// per series, sharing both axes.
//
// Two backends draw the same Layout: gonum/plot (the default, vector and
// raster output) and go-chart (raster output composited row by row).
package figure

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/iafilius/pmcplot/src/pmc"
)

// Backend names accepted by New.
const (
	BackendGonum   = "gonum"
	BackendGoChart = "gochart"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Renderer turns a report into a figure.
type Renderer interface {
	Render(r pmc.Report) (Figure, error)
}

// Figure is a rendered report.
type Figure interface {
	// Save encodes the figure in the format implied by path's extension and
	// writes it to path. Nothing is written when encoding fails.
	Save(path string) error
	// Image rasterizes the figure at DPI for on-screen display.
	Image() (image.Image, error)
	// Layout returns what was drawn.
	Layout() Layout
}

// New returns the renderer for backend ("" selects gonum).
func New(backend string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendGonum:
		return GonumRenderer{}, nil
	case BackendGoChart, "go-chart":
		return GoChartRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want %s or %s)", ErrUnknownBackend, backend, BackendGonum, BackendGoChart)
	}
}

// writeFile encodes via enc into memory first so a failing encoder leaves no
// partial file behind.
func writeFile(path string, enc func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := enc(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
