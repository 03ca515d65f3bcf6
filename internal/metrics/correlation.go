package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/telemetry.report/internal/telemetry"
)

// Correlation returns the Pearson correlation coefficient of x and y. An
// undefined coefficient is reported as 0: mismatched lengths, empty input,
// or a constant series.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}
	if isConstant(x) || isConstant(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func isConstant(xs []float64) bool {
	return floats.Min(xs) == floats.Max(xs)
}

// CorrelationSet holds the four correlations reported for every run. Fuel
// here is the per-step fuel column.
type CorrelationSet struct {
	SpeedFuel  float64
	SpeedDrag  float64
	ReynoldsCd float64
	SlopeFuel  float64
}

// Correlations computes the standard correlation set for s.
func Correlations(s *telemetry.Series) CorrelationSet {
	speed := s.Speed()
	fuel := s.FuelStep()
	return CorrelationSet{
		SpeedFuel:  Correlation(speed, fuel),
		SpeedDrag:  Correlation(speed, s.Drag()),
		ReynoldsCd: Correlation(s.Reynolds(), s.DragCoefficient()),
		SlopeFuel:  Correlation(s.Slope(), fuel),
	}
}

// CorrelationThresholds are the absolute coefficients above which Interpret
// calls out a relationship.
type CorrelationThresholds struct {
	StrongSpeedFuel     float64
	VeryStrongSpeedDrag float64
	ModerateSlopeFuel   float64
}

// DefaultCorrelationThresholds returns the stock interpretation thresholds.
func DefaultCorrelationThresholds() CorrelationThresholds {
	return CorrelationThresholds{
		StrongSpeedFuel:     0.7,
		VeryStrongSpeedDrag: 0.9,
		ModerateSlopeFuel:   0.5,
	}
}

// Interpret returns one sentence per correlation whose magnitude exceeds
// its threshold, in a fixed order.
func (c CorrelationSet) Interpret(th CorrelationThresholds) []string {
	var out []string
	if math.Abs(c.SpeedFuel) > th.StrongSpeedFuel {
		out = append(out, fmt.Sprintf("Strong correlation between speed and fuel consumption (%.3f)", c.SpeedFuel))
	}
	if math.Abs(c.SpeedDrag) > th.VeryStrongSpeedDrag {
		out = append(out, fmt.Sprintf("Very strong correlation between speed and drag force (%.3f)", c.SpeedDrag))
	}
	if math.Abs(c.SlopeFuel) > th.ModerateSlopeFuel {
		out = append(out, fmt.Sprintf("Moderate correlation between road slope and fuel consumption (%.3f)", c.SlopeFuel))
	}
	return out
}
