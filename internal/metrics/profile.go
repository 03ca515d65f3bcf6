package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// AccelerationProfile summarises the acceleration column. Zero samples
// count as neither acceleration nor deceleration.
type AccelerationProfile struct {
	MeanAcceleration float64 // mean of strictly positive samples
	MeanDeceleration float64 // mean of strictly negative samples
	MaxAcceleration  float64 // global maximum
	MaxDeceleration  float64 // global minimum
	AccelSamples     int
	DecelSamples     int
}

// Profile computes the acceleration profile. Every field is 0 for an empty
// series.
func Profile(acc []float64) AccelerationProfile {
	var p AccelerationProfile
	if len(acc) == 0 {
		return p
	}

	var accSum, decSum float64
	for _, a := range acc {
		switch {
		case a > 0:
			accSum += a
			p.AccelSamples++
		case a < 0:
			decSum += a
			p.DecelSamples++
		}
	}
	if p.AccelSamples > 0 {
		p.MeanAcceleration = accSum / float64(p.AccelSamples)
	}
	if p.DecelSamples > 0 {
		p.MeanDeceleration = decSum / float64(p.DecelSamples)
	}
	p.MaxAcceleration = floats.Max(acc)
	p.MaxDeceleration = floats.Min(acc)
	return p
}

// ResistanceShare splits the total resisting force into its components.
// Slope resistance is summed as magnitudes.
type ResistanceShare struct {
	DragTotal    float64
	RollingTotal float64
	SlopeTotal   float64
	Total        float64
	DragPct      float64
	RollingPct   float64
	SlopePct     float64
}

// ResistanceBreakdown sums each force column and reports its share of the
// grand total in percent. Returns nil when the grand total is exactly 0.
func ResistanceBreakdown(drag, rolling, slope []float64) *ResistanceShare {
	r := &ResistanceShare{
		DragTotal:    floats.Sum(drag),
		RollingTotal: floats.Sum(rolling),
	}
	for _, s := range slope {
		r.SlopeTotal += math.Abs(s)
	}
	r.Total = r.DragTotal + r.RollingTotal + r.SlopeTotal
	if r.Total == 0 {
		return nil
	}

	r.DragPct = r.DragTotal / r.Total * 100
	r.RollingPct = r.RollingTotal / r.Total * 100
	r.SlopePct = r.SlopeTotal / r.Total * 100
	return r
}
