// Package stats provides descriptive statistics over a single column of
// telemetry samples.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Descriptive summarises one sample. StdDev is the sample standard
// deviation (N-1 denominator) and is 0 for a single value.
type Descriptive struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Range  float64
}

// Describe returns the descriptive statistics of xs, or nil when xs is
// empty. The input is not modified.
func Describe(xs []float64) *Descriptive {
	n := len(xs)
	if n == 0 {
		return nil
	}

	sorted := sortedCopy(xs)

	d := &Descriptive{
		Count: n,
		Mean:  stat.Mean(xs, nil),
		Min:   sorted[0],
		Max:   sorted[n-1],
	}
	d.Range = d.Max - d.Min

	if n%2 == 1 {
		d.Median = sorted[n/2]
	} else {
		d.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	if n > 1 {
		d.StdDev = stat.StdDev(xs, nil)
	}
	return d
}

// Percentiles returns the empirical quantiles of xs at each fraction in ps
// (0.85 for the 85th percentile). Fractions outside [0, 1] are clamped.
// Returns nil for empty input.
func Percentiles(xs []float64, ps ...float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	sorted := sortedCopy(xs)

	out := make([]float64, len(ps))
	for i, p := range ps {
		p = math.Max(0, math.Min(1, p))
		out[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return out
}

// Hist is a fixed-width histogram. Edges has one more entry than Counts;
// bin i covers [Edges[i], Edges[i+1]) and the last bin also includes its
// upper edge.
type Hist struct {
	Edges  []float64
	Counts []float64
}

// Histogram bins the finite values of xs into the given number of equal
// width bins spanning their range. A constant sample is centred in a span
// of width one. Returns nil when there are no finite values or bins < 1.
func Histogram(xs []float64, bins int) *Hist {
	if bins < 1 {
		return nil
	}

	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	sort.Float64s(finite)

	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)

	// stat.Histogram treats the last divider as exclusive.
	dividers := append([]float64(nil), edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	return &Hist{
		Edges:  edges,
		Counts: stat.Histogram(nil, dividers, finite, nil),
	}
}

// Centers returns the midpoint of each bin.
func (h *Hist) Centers() []float64 {
	if h == nil {
		return nil
	}
	out := make([]float64, len(h.Counts))
	for i := range out {
		out[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return out
}

func sortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}
