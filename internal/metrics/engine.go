// Package metrics derives physical and economic figures from a telemetry
// run: distance, fuel economy, energy efficiency, cost, emissions, windowed
// consumption, acceleration and resistance profiles, and correlations.
//
// Every function is pure. Physical constants are injected through Constants
// so callers and tests can override them.
package metrics

import "github.com/banshee-data/telemetry.report/internal/telemetry"

// Constants holds the conversion factors and window sizes used by an Engine.
type Constants struct {
	EnergyDensityMJPerL float64 // energy content of the fuel
	CO2KgPerL           float64 // CO2 mass released per litre burned
	FuelPricePerL       float64 // price used by Cost
	PeakWindow          int     // samples per peak consumption window
	RollingWindow       int     // samples per rolling fuel/distance window
}

// Default constant values
const (
	DefaultEnergyDensityMJPerL = 32.4
	DefaultCO2KgPerL           = 2.31
	DefaultFuelPricePerL       = 1.5
	DefaultPeakWindow          = 100
	DefaultRollingWindow       = 100
)

// DefaultConstants returns the constants used when none are configured.
func DefaultConstants() Constants {
	return Constants{
		EnergyDensityMJPerL: DefaultEnergyDensityMJPerL,
		CO2KgPerL:           DefaultCO2KgPerL,
		FuelPricePerL:       DefaultFuelPricePerL,
		PeakWindow:          DefaultPeakWindow,
		RollingWindow:       DefaultRollingWindow,
	}
}

// Engine computes derived metrics with a fixed set of constants. The zero
// value is not useful; build one with NewEngine.
type Engine struct {
	c Constants
}

// NewEngine returns an engine using c. Non-positive fields fall back to
// their defaults.
func NewEngine(c Constants) *Engine {
	d := DefaultConstants()
	if c.EnergyDensityMJPerL <= 0 {
		c.EnergyDensityMJPerL = d.EnergyDensityMJPerL
	}
	if c.CO2KgPerL <= 0 {
		c.CO2KgPerL = d.CO2KgPerL
	}
	if c.FuelPricePerL <= 0 {
		c.FuelPricePerL = d.FuelPricePerL
	}
	if c.PeakWindow <= 0 {
		c.PeakWindow = d.PeakWindow
	}
	if c.RollingWindow <= 0 {
		c.RollingWindow = d.RollingWindow
	}
	return &Engine{c: c}
}

// Constants returns the constants the engine was built with.
func (e *Engine) Constants() Constants {
	return e.c
}

// EnergyEfficiency returns distance per megajoule of fuel energy: distance
// divided by the final cumulative fuel times the energy density. Returns 0
// when the series is empty, the distance is zero or no fuel was burned.
func (e *Engine) EnergyEfficiency(cumFuel []float64, distance float64) float64 {
	if len(cumFuel) == 0 || distance == 0 {
		return 0
	}
	energy := last(cumFuel) * e.c.EnergyDensityMJPerL
	if energy == 0 {
		return 0
	}
	return distance / energy
}

// Cost prices the final cumulative fuel at the engine's fuel price.
func (e *Engine) Cost(cumFuel []float64) float64 {
	return CostAt(cumFuel, e.c.FuelPricePerL)
}

// CO2 returns the kilograms of CO2 released by the final cumulative fuel.
func (e *Engine) CO2(cumFuel []float64) float64 {
	if len(cumFuel) == 0 {
		return 0
	}
	return last(cumFuel) * e.c.CO2KgPerL
}

// Derived is the full set of metrics for one run. Resistance and Peak are
// nil when there is nothing to report.
type Derived struct {
	Distance         float64
	TotalFuel        float64
	FuelPer100       float64
	EnergyEfficiency float64
	Cost             float64
	CO2              float64
	Acceleration     AccelerationProfile
	Resistance       *ResistanceShare
	Peak             *PeakWindow
	Correlations     CorrelationSet
}

// Derive computes every metric for s.
func (e *Engine) Derive(s *telemetry.Series) Derived {
	speed := s.Speed()
	cumFuel := s.CumulativeFuel()
	fuel := s.FuelStep()
	tm := s.Time()

	distance := TotalDistance(speed, tm)

	return Derived{
		Distance:         distance,
		TotalFuel:        TotalFuel(cumFuel),
		FuelPer100:       FuelPer100(cumFuel, distance),
		EnergyEfficiency: e.EnergyEfficiency(cumFuel, distance),
		Cost:             e.Cost(cumFuel),
		CO2:              e.CO2(cumFuel),
		Acceleration:     Profile(s.Acceleration()),
		Resistance:       ResistanceBreakdown(s.Drag(), s.RollingResistance(), s.SlopeResistance()),
		Peak:             PeakConsumptionWindow(fuel, tm, e.c.PeakWindow),
		Correlations:     Correlations(s),
	}
}

// Rolling returns the rolling fuel per distance sequence for s using the
// engine's rolling window.
func (e *Engine) Rolling(s *telemetry.Series) []float64 {
	return RollingFuelPerDistance(s.FuelStep(), s.Speed(), e.c.RollingWindow)
}

func last(xs []float64) float64 {
	return xs[len(xs)-1]
}
