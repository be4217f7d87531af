// plotpmc renders labelled event-count series as a stack of time-series rows
// and writes the figure to an image file.
//
//	plotpmc [flags] <graph title> <input file> <output file>
//
// Each non-empty input line is `<label>|<json array of numbers>`. The output
// format follows the output file extension. After writing, the figure is shown
// in a window when a display is available (disable with --show=false).
package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iafilius/pmcplot/src/figure"
	"github.com/iafilius/pmcplot/src/pmc"
	"github.com/iafilius/pmcplot/src/viewer"
)

const usage = "usage: plotpmc <graph title> <input file> <output file>"

// display abstracts the interactive window so runs can be headless.
type display struct {
	available func() bool
	show      func(title string, img image.Image) error
}

type options struct {
	logLevel string
	backend  string
	show     bool
}

func newRootCmd(d display) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "plotpmc [flags] <graph title> <input file> <output file>",
		Short:         "Plot event-count series as stacked time-series rows",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) < 3 {
				fmt.Fprintln(out, usage)
				return nil
			}
			return run(out, opts, d, args[0], args[1], args[2])
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	f.StringVar(&opts.backend, "backend", figure.BackendGonum, "Rendering backend (gonum|gochart)")
	f.BoolVar(&opts.show, "show", true, "Show the figure in a window after writing it")
	return cmd
}

func run(out io.Writer, opts *options, d display, title, inPath, outPath string) error {
	if !pmc.ValidLogLevel(opts.logLevel) {
		return fmt.Errorf("invalid --log-level %q", opts.logLevel)
	}
	pmc.SetLogLevel(opts.logLevel)
	defer pmc.TimeTrack(time.Now(), "plotpmc")

	renderer, err := figure.New(opts.backend)
	if err != nil {
		return err
	}
	report, err := pmc.LoadReport(title, inPath)
	if err != nil {
		return err
	}
	fig, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := fig.Save(outPath); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote to %s\n", outPath)

	if !opts.show {
		return nil
	}
	if d.available != nil && !d.available() {
		pmc.Warnf("no display available; not showing %s", outPath)
		return nil
	}
	img, err := fig.Image()
	if err != nil {
		return fmt.Errorf("rasterize for display: %w", err)
	}
	return d.show(report.Title, img)
}

func main() {
	cmd := newRootCmd(display{available: viewer.DisplayAvailable, show: viewer.Show})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
