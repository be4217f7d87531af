// Package pmc reads event-count series recorded from performance-monitoring
// counter runs.
//
// Input is line oriented, one series per line:
//
//	<label>|<json array of numbers>
//
// e.g. `jcc (always-taken)|[0,1,1,2,3,2,1,0]`. Blank lines are skipped; any
// other malformed line aborts the whole parse.
package pmc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"
)

// Delimiter separates the label from the JSON payload.
const Delimiter = "|"

// maxLineBytes bounds a single input line; long test runs produce large arrays.
const maxLineBytes = 16 * 1024 * 1024

var (
	ErrMissingDelimiter = errors.New("missing '|' delimiter")
	ErrNotNumericArray  = errors.New("payload is not a JSON array of numbers")
	ErrNoSeries         = errors.New("no series in input")
)

// ParseError reports the input line a parse failure happened on.
type ParseError struct {
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Series is one labelled sequence of event counts.
type Series struct {
	Label  string
	Values []float64
}

// Index returns the implicit x values 0..len(Values)-1.
func (s Series) Index() []float64 {
	xs := make([]float64, len(s.Values))
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// Len is the number of samples in the series.
func (s Series) Len() int { return len(s.Values) }

// Report is everything rendered by one run: a title and the parsed series in input order.
type Report struct {
	Title  string
	Series []Series
}

// MaxLen returns the length of the longest series.
func (r Report) MaxLen() int {
	n := 0
	for _, s := range r.Series {
		if s.Len() > n {
			n = s.Len()
		}
	}
	return n
}

// MaxValue returns the largest value across all series, or 0 when there is none.
func (r Report) MaxValue() float64 {
	max := 0.0
	for _, s := range r.Series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// ParseLine decodes a single non-empty record.
func ParseLine(line string) (Series, error) {
	label, payload, ok := strings.Cut(strings.TrimSpace(line), Delimiter)
	if !ok {
		return Series{}, ErrMissingDelimiter
	}
	values, err := decodeValues(payload)
	if err != nil {
		return Series{}, err
	}
	return Series{Label: label, Values: values}, nil
}

func decodeValues(payload string) ([]float64, error) {
	payload = strings.TrimSpace(payload)
	// json.Unmarshal accepts a bare `null` as an empty slice.
	if !strings.HasPrefix(payload, "[") {
		return nil, ErrNotNumericArray
	}
	var raw []*float64
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotNumericArray, err)
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrNotNumericArray, i)
		}
		values[i] = *v
	}
	return values, nil
}

// Parse reads records from r until EOF.
func Parse(r io.Reader) ([]Series, error) {
	var out []Series
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s, err := ParseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		if min := minValue(s.Values); min < 0 {
			Warnf("line %d (%s): negative event count %g", lineNo, s.Label, min)
		}
		Debugf("line %d: series %q with %d samples", lineNo, s.Label, len(s.Values))
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Series, error) {
	defer TimeTrack(time.Now(), "parse "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	series, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// LoadReport parses path into a Report carrying title. An input without any
// series is reported as ErrNoSeries.
func LoadReport(title, path string) (Report, error) {
	series, err := ParseFile(path)
	if err != nil {
		return Report{}, err
	}
	if len(series) == 0 {
		return Report{}, fmt.Errorf("%s: %w", path, ErrNoSeries)
	}
	Infof("loaded %d series from %s", len(series), path)
	return Report{Title: title, Series: series}, nil
}

func minValue(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		if v < m {
			m = v
		}
	}
	return m
}
