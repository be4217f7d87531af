// pmcdump parses an event-count input file and prints per-series summary
// statistics, one line per series in input order.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iafilius/pmcplot/src/pmc"
)

type options struct {
	logLevel string
	label    string
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	fs.StringVar(&opts.label, "label", "", "Optional label filter (exact match)")
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "pmcdump [flags] <input file>",
		Short:         "Print per-series statistics of an event-count file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd.OutOrStdout(), opts, args[0])
		},
	}
	addFlags(cmd.Flags(), opts)
	return cmd
}

func dump(out io.Writer, opts *options, path string) error {
	if !pmc.ValidLogLevel(opts.logLevel) {
		return fmt.Errorf("invalid --log-level %q", opts.logLevel)
	}
	pmc.SetLogLevel(opts.logLevel)

	series, err := pmc.ParseFile(path)
	if err != nil {
		return err
	}
	shown := 0
	for _, s := range series {
		if opts.label != "" && s.Label != opts.label {
			continue
		}
		shown++
	}
	fmt.Fprintf(out, "Total series: %d\n", shown)
	for i, s := range series {
		if opts.label != "" && s.Label != opts.label {
			continue
		}
		st := pmc.Summarize(s)
		if st.Count == 0 {
			fmt.Fprintf(out, "%d %s: count=0\n", i, st.Label)
			continue
		}
		fmt.Fprintf(out, "%d %s: count=%d min=%g max=%g mean=%.3f\n", i, st.Label, st.Count, st.Min, st.Max, st.Mean)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
