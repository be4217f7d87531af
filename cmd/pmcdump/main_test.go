package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iafilius/pmcplot/src/pmc"
)

func runDump(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
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

func TestDump_PrintsSummaries(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\nB|[]\n\nC|[4]\n")
	out, err := runDump(t, in)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "Total series: 3\n" +
		"0 A: count=3 min=1 max=3 mean=2.000\n" +
		"1 B: count=0\n" +
		"2 C: count=1 min=4 max=4 mean=4.000\n"
	if out != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", out, want)
	}
}

func TestDump_LabelFilter(t *testing.T) {
	in := writeInput(t, "A|[1,2,3]\nB|[5,7]\n")
	out, err := runDump(t, "--label", "B", in)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "Total series: 1\n1 B: count=2 min=5 max=7 mean=6.000\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestDump_Errors(t *testing.T) {
	if _, err := runDump(t); err == nil {
		t.Fatalf("expected argument count error")
	}
	in := writeInput(t, "A|[1,x]\n")
	_, err := runDump(t, in)
	if !errors.Is(err, pmc.ErrNotNumericArray) {
		t.Fatalf("expected ErrNotNumericArray, got %v", err)
	}
	var pe *pmc.ParseError
	if !errors.As(err, &pe) || pe.Line != 1 {
		t.Fatalf("expected parse error on line 1, got %v", err)
	}
	if _, err := runDump(t, filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
