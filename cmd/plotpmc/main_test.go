package main

import (
	"bytes"
	"errors"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/pmcplot/src/figure"
	"github.com/iafilius/pmcplot/src/pmc"
)

type showRecorder struct {
	calls int
	title string
	img   image.Image
}

func (s *showRecorder) display(available bool) display {
	return display{
		available: func() bool { return available },
		show: func(title string, img image.Image) error {
			s.calls++
			s.title = title
			s.img = img
			return nil
		},
	}
}

func execute(t *testing.T, d display, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(d)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "events.txt")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return p
}

func TestUsage_TooFewArgs(t *testing.T) {
	for _, args := range [][]string{nil, {"Test"}, {"Test", "in.txt"}} {
		rec := &showRecorder{}
		out, err := execute(t, rec.display(true), args...)
		if err != nil {
			t.Fatalf("args %v: unexpected error %v", args, err)
		}
		if out != usage+"\n" {
			t.Fatalf("args %v: output %q want usage", args, out)
		}
		if rec.calls != 0 {
			t.Fatalf("usage path must not show anything")
		}
	}
}

func TestRun_WritesPNGAndShows(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\nB|[3,2,1]\n")
	outPath := filepath.Join(t.TempDir(), "out.png")
	rec := &showRecorder{}

	out, err := execute(t, rec.display(true), "Test", in, outPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "Wrote to "+outPath+"\n" {
		t.Fatalf("stdout = %q", out)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil || format != "png" {
		t.Fatalf("decode output: %v (format %q)", err, format)
	}
	if cfg.Width != 1280 || cfg.Height != 960 {
		t.Fatalf("output size %dx%d want 1280x960", cfg.Width, cfg.Height)
	}
	if rec.calls != 1 || rec.title != "Test" || rec.img == nil {
		t.Fatalf("show not called as expected: %+v", rec)
	}
}

func TestRun_ExtraArgsIgnored(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\n")
	outPath := filepath.Join(t.TempDir(), "out.png")
	rec := &showRecorder{}
	if _, err := execute(t, rec.display(false), "Test", in, outPath, "extra", "args"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRun_MalformedLineWritesNothing(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\nno delimiter\n")
	outPath := filepath.Join(t.TempDir(), "out.png")
	rec := &showRecorder{}

	out, err := execute(t, rec.display(true), "Test", in, outPath)
	if !errors.Is(err, pmc.ErrMissingDelimiter) {
		t.Fatalf("expected ErrMissingDelimiter, got %v", err)
	}
	var pe *pmc.ParseError
	if !errors.As(err, &pe) || pe.Line != 2 {
		t.Fatalf("expected parse error on line 2, got %v", err)
	}
	if strings.Contains(out, "Wrote to") {
		t.Fatalf("nothing should be reported written: %q", out)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("output file must not exist")
	}
	if rec.calls != 0 {
		t.Fatalf("show must not be called on failure")
	}
}

func TestRun_Errors(t *testing.T) {
	good := writeInput(t, "A|[1,2,3]\n")
	dir := t.TempDir()
	cases := []struct {
		name string
		args []string
		want error
	}{
		{"missing input", []string{"T", filepath.Join(dir, "nope.txt"), filepath.Join(dir, "a.png")}, os.ErrNotExist},
		{"bad json", []string{"T", writeInput(t, "A|[1,2\n"), filepath.Join(dir, "b.png")}, pmc.ErrNotNumericArray},
		{"empty input", []string{"T", writeInput(t, "\n"), filepath.Join(dir, "c.png")}, pmc.ErrNoSeries},
		{"bad extension", []string{"T", good, filepath.Join(dir, "d.xyz")}, figure.ErrUnsupportedFormat},
		{"bad backend", []string{"--backend", "ascii", "T", good, filepath.Join(dir, "e.png")}, figure.ErrUnknownBackend},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &showRecorder{}
			_, err := execute(t, rec.display(true), tc.args...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
			if out := tc.args[len(tc.args)-1]; fileExists(out) {
				t.Fatalf("%s should not have been written", out)
			}
		})
	}
	if _, err := execute(t, (&showRecorder{}).display(true), "--log-level", "loud", "T", good, filepath.Join(dir, "f.png")); err == nil {
		t.Fatalf("expected invalid log level error")
	}
	// the unwritable-directory case: parent does not exist
	if _, err := execute(t, (&showRecorder{}).display(true), "T", good, filepath.Join(dir, "missing", "g.png")); err == nil {
		t.Fatalf("expected write error for missing directory")
	}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func TestRun_ShowSuppressed(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\nB|[3,2,1]\n")
	dir := t.TempDir()

	rec := &showRecorder{}
	if _, err := execute(t, rec.display(true), "--show=false", "Test", in, filepath.Join(dir, "a.png")); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("--show=false must not open a window")
	}

	rec = &showRecorder{}
	if _, err := execute(t, rec.display(false), "Test", in, filepath.Join(dir, "b.png")); err != nil {
		t.Fatalf("execute without display: %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("no display: window must not be opened")
	}
}

func TestRun_GoChartBackendAndVectorOutput(t *testing.T) {
	in := writeInput(t, "A|[0,1,1,2,3,2,1,0]\nB|[3,2,1]\nC|[5]\n")
	dir := t.TempDir()
	rec := &showRecorder{}
	gif := filepath.Join(dir, "out.gif")
	if _, err := execute(t, rec.display(false), "--backend", "gochart", "Test", in, gif); err != nil {
		t.Fatalf("gochart: %v", err)
	}
	svg := filepath.Join(dir, "out.svg")
	if _, err := execute(t, rec.display(false), "Test", in, svg); err != nil {
		t.Fatalf("gonum svg: %v", err)
	}
	for _, p := range []string{gif, svg} {
		if !fileExists(p) {
			t.Fatalf("%s not written", p)
		}
	}
}
