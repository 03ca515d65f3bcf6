// Package report turns analysed runs into text and PDF reports and prepares
// the aligned series the chart renderer draws from.
package report

import (
	"math"
	"time"

	"github.com/banshee-data/telemetry.report/internal/config"
	"github.com/banshee-data/telemetry.report/internal/metrics"
	"github.com/banshee-data/telemetry.report/internal/stats"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/units"
)

// Percentile fractions reported for speed.
var speedPercentiles = []float64{0.50, 0.85, 0.95}

// Bundle is everything reported for one run. Speeds inside the statistics
// are in m/s; writers convert them for display.
type Bundle struct {
	RunID       string
	Label       string
	Source      string
	GeneratedAt time.Time
	Samples     int
	SpeedUnits  string

	Speed    *stats.Descriptive
	Drag     *stats.Descriptive
	Reynolds *stats.Descriptive
	Altitude *stats.Descriptive

	// p50, p85, p95; nil for an empty run
	SpeedPercentiles []float64

	Derived        metrics.Derived
	Interpretation []string
}

// Assemble computes the bundle for one run. Run metadata (RunID, Source,
// GeneratedAt) is left for the caller to fill in.
func Assemble(engine *metrics.Engine, cfg *config.AnalysisConfig, s *telemetry.Series, label string) *Bundle {
	d := engine.Derive(s)
	speed := s.Speed()

	return &Bundle{
		Label:            label,
		Samples:          s.Len(),
		SpeedUnits:       cfg.GetSpeedUnits(),
		Speed:            stats.Describe(speed),
		Drag:             stats.Describe(s.Drag()),
		Reynolds:         stats.Describe(s.Reynolds()),
		Altitude:         stats.Describe(s.Altitude()),
		SpeedPercentiles: stats.Percentiles(speed, speedPercentiles...),
		Derived:          d,
		Interpretation:   d.Correlations.Interpret(cfg.CorrelationThresholds()),
	}
}

// PlotData is the aligned numeric feed for the run dashboard. Speed values
// are already converted to SpeedUnits; everything else is SI.
type PlotData struct {
	SpeedUnits string

	Time           []float64
	Speed          []float64
	Acceleration   []float64
	Drag           []float64
	Rolling        []float64
	SlopeAbs       []float64 // magnitude of slope resistance
	Total          []float64
	FuelStep       []float64
	CumulativeFuel []float64
	Reynolds       []float64
	Cd             []float64
	Altitude       []float64

	Resistance   *metrics.ResistanceShare
	RollingFuel  []float64 // one value per window start
	SpeedHist    *stats.Hist
	ReynoldsHist *stats.Hist
}

// NewPlotData extracts the renderer feed for s.
func NewPlotData(engine *metrics.Engine, cfg *config.AnalysisConfig, s *telemetry.Series) *PlotData {
	unit := cfg.GetSpeedUnits()
	bins := cfg.GetHistogramBins()

	speed := s.Speed()
	for i, v := range speed {
		speed[i] = units.ConvertSpeed(v, unit)
	}
	slope := s.SlopeResistance()
	for i, v := range slope {
		slope[i] = math.Abs(v)
	}
	reynolds := s.Reynolds()

	return &PlotData{
		SpeedUnits:     unit,
		Time:           s.Time(),
		Speed:          speed,
		Acceleration:   s.Acceleration(),
		Drag:           s.Drag(),
		Rolling:        s.RollingResistance(),
		SlopeAbs:       slope,
		Total:          s.TotalResistance(),
		FuelStep:       s.FuelStep(),
		CumulativeFuel: s.CumulativeFuel(),
		Reynolds:       reynolds,
		Cd:             s.DragCoefficient(),
		Altitude:       s.Altitude(),
		Resistance:     metrics.ResistanceBreakdown(s.Drag(), s.RollingResistance(), s.SlopeResistance()),
		RollingFuel:    engine.Rolling(s),
		SpeedHist:      stats.Histogram(speed, bins),
		ReynoldsHist:   stats.Histogram(reynolds, bins),
	}
}
