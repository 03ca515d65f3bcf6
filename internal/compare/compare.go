// Package compare reduces several telemetry runs to per-run scalars and
// ranks them by fuel used. Runs are never compared pointwise, so they may
// differ in length and sample rate.
package compare

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/telemetry.report/internal/metrics"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
)

// InsufficientReason is reported when fewer than two runs are supplied.
const InsufficientReason = "insufficient data for comparison"

// Summary holds the comparison scalars for one run.
type Summary struct {
	Label      string
	Samples    int
	Distance   float64
	FuelPer100 float64
	TotalFuel  float64
	MeanSpeed  float64
	MaxSpeed   float64
}

// Rank places one run in the fuel ranking. Position is 1-based.
type Rank struct {
	Position  int
	Label     string
	TotalFuel float64
}

// Result is a comparison of two or more runs. When Insufficient is set the
// other fields are empty and Reason explains why.
type Result struct {
	Insufficient bool
	Reason       string
	Scenarios    []Summary // input order
	Ranking      []Rank    // ascending total fuel, ties in input order
}

// Compare summarises each series and ranks them by total fuel. It only
// returns an error when series and labels differ in length; fewer than two
// runs is reported through Result.Insufficient.
func Compare(series []*telemetry.Series, labels []string) (*Result, error) {
	if len(series) != len(labels) {
		return nil, fmt.Errorf("compare: %d series but %d labels", len(series), len(labels))
	}
	if len(series) < 2 {
		return &Result{Insufficient: true, Reason: InsufficientReason}, nil
	}

	res := &Result{Scenarios: make([]Summary, len(series))}
	for i, s := range series {
		res.Scenarios[i] = Summarize(s, labels[i])
	}

	order := make([]int, len(series))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return res.Scenarios[order[a]].TotalFuel < res.Scenarios[order[b]].TotalFuel
	})

	res.Ranking = make([]Rank, len(order))
	for pos, idx := range order {
		res.Ranking[pos] = Rank{
			Position:  pos + 1,
			Label:     res.Scenarios[idx].Label,
			TotalFuel: res.Scenarios[idx].TotalFuel,
		}
	}
	return res, nil
}

// Summarize computes the comparison scalars for a single run.
func Summarize(s *telemetry.Series, label string) Summary {
	speed := s.Speed()
	cumFuel := s.CumulativeFuel()
	distance := metrics.TotalDistance(speed, s.Time())

	sum := Summary{
		Label:      label,
		Samples:    s.Len(),
		Distance:   distance,
		FuelPer100: metrics.FuelPer100(cumFuel, distance),
		TotalFuel:  metrics.TotalFuel(cumFuel),
	}
	if len(speed) > 0 {
		sum.MeanSpeed = stat.Mean(speed, nil)
		sum.MaxSpeed = floats.Max(speed)
	}
	return sum
}

// Best returns the run that used the least fuel.
func (r *Result) Best() (Rank, bool) {
	if r == nil || len(r.Ranking) == 0 {
		return Rank{}, false
	}
	return r.Ranking[0], true
}

// Worst returns the run that used the most fuel.
func (r *Result) Worst() (Rank, bool) {
	if r == nil || len(r.Ranking) == 0 {
		return Rank{}, false
	}
	return r.Ranking[len(r.Ranking)-1], true
}

// Spread is the difference in total fuel between the worst and best runs.
func (r *Result) Spread() float64 {
	best, ok := r.Best()
	if !ok {
		return 0
	}
	worst, _ := r.Worst()
	return worst.TotalFuel - best.TotalFuel
}

// Labels returns the scenario labels in input order.
func (r *Result) Labels() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.Scenarios))
	for i, s := range r.Scenarios {
		out[i] = s.Label
	}
	return out
}
