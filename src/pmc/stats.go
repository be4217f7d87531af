package pmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one series. Min, Max and Mean are NaN for an empty series.
type Stats struct {
	Label string
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Sum   float64
}

// Summarize computes Stats for s.
func Summarize(s Series) Stats {
	st := Stats{Label: s.Label, Count: len(s.Values)}
	if st.Count == 0 {
		st.Min, st.Max, st.Mean = math.NaN(), math.NaN(), math.NaN()
		return st
	}
	st.Min = floats.Min(s.Values)
	st.Max = floats.Max(s.Values)
	st.Sum = floats.Sum(s.Values)
	st.Mean = stat.Mean(s.Values, nil)
	return st
}
