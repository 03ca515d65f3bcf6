package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/telemetry.report/internal/metrics"
	"github.com/banshee-data/telemetry.report/internal/units"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig holds the constants and knobs for an analysis batch. Every
// field is optional; the Get* accessors supply defaults for unset fields,
// so partial configs are safe.
type AnalysisConfig struct {
	// Physical and economic constants
	EnergyDensityMJPerL *float64 `json:"energy_density_mj_per_l,omitempty"`
	CO2KgPerL           *float64 `json:"co2_kg_per_l,omitempty"`
	FuelPricePerL       *float64 `json:"fuel_price_per_l,omitempty"`

	// Window sizes, in samples
	PeakWindow    *int `json:"peak_window,omitempty"`
	RollingWindow *int `json:"rolling_window,omitempty"`

	// Presentation
	HistogramBins *int    `json:"histogram_bins,omitempty"`
	SpeedUnits    *string `json:"speed_units,omitempty"`

	// Driver
	MaxParallel *int    `json:"max_parallel,omitempty"`
	RunTimeout  *string `json:"run_timeout,omitempty"` // duration string like "5m"

	// Correlation interpretation thresholds (absolute coefficient)
	StrongSpeedFuelCorr     *float64 `json:"strong_speed_fuel_corr,omitempty"`
	VeryStrongSpeedDragCorr *float64 `json:"very_strong_speed_drag_corr,omitempty"`
	ModerateSlopeFuelCorr   *float64 `json:"moderate_slope_fuel_corr,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyAnalysisConfig returns an AnalysisConfig with all fields unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// DefaultAnalysisConfig returns a config with every field set to its
// default value.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		EnergyDensityMJPerL:     ptrFloat64(metrics.DefaultEnergyDensityMJPerL),
		CO2KgPerL:               ptrFloat64(metrics.DefaultCO2KgPerL),
		FuelPricePerL:           ptrFloat64(metrics.DefaultFuelPricePerL),
		PeakWindow:              ptrInt(metrics.DefaultPeakWindow),
		RollingWindow:           ptrInt(metrics.DefaultRollingWindow),
		HistogramBins:           ptrInt(30),
		SpeedUnits:              ptrString(units.KMPH),
		MaxParallel:             ptrInt(4),
		RunTimeout:              ptrString("5m"),
		StrongSpeedFuelCorr:     ptrFloat64(0.7),
		VeryStrongSpeedDragCorr: ptrFloat64(0.9),
		ModerateSlopeFuelCorr:   ptrFloat64(0.5),
	}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repository
// root. Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"energy_density_mj_per_l", c.EnergyDensityMJPerL},
		{"co2_kg_per_l", c.CO2KgPerL},
		{"fuel_price_per_l", c.FuelPricePerL},
	}
	for _, p := range positive {
		if p.v != nil && *p.v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", p.name, *p.v)
		}
	}

	counts := []struct {
		name string
		v    *int
	}{
		{"peak_window", c.PeakWindow},
		{"rolling_window", c.RollingWindow},
		{"histogram_bins", c.HistogramBins},
		{"max_parallel", c.MaxParallel},
	}
	for _, p := range counts {
		if p.v != nil && *p.v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", p.name, *p.v)
		}
	}

	if c.SpeedUnits != nil && !units.IsValid(*c.SpeedUnits) {
		return fmt.Errorf("speed_units must be one of %s, got %q", units.GetValidUnitsString(), *c.SpeedUnits)
	}

	if c.RunTimeout != nil && *c.RunTimeout != "" {
		if _, err := time.ParseDuration(*c.RunTimeout); err != nil {
			return fmt.Errorf("invalid run_timeout '%s': %w", *c.RunTimeout, err)
		}
	}

	thresholds := []struct {
		name string
		v    *float64
	}{
		{"strong_speed_fuel_corr", c.StrongSpeedFuelCorr},
		{"very_strong_speed_drag_corr", c.VeryStrongSpeedDragCorr},
		{"moderate_slope_fuel_corr", c.ModerateSlopeFuelCorr},
	}
	for _, p := range thresholds {
		if p.v != nil && (*p.v < 0 || *p.v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", p.name, *p.v)
		}
	}

	return nil
}

// GetEnergyDensityMJPerL returns the energy_density_mj_per_l value or the default.
func (c *AnalysisConfig) GetEnergyDensityMJPerL() float64 {
	if c.EnergyDensityMJPerL == nil {
		return metrics.DefaultEnergyDensityMJPerL
	}
	return *c.EnergyDensityMJPerL
}

// GetCO2KgPerL returns the co2_kg_per_l value or the default.
func (c *AnalysisConfig) GetCO2KgPerL() float64 {
	if c.CO2KgPerL == nil {
		return metrics.DefaultCO2KgPerL
	}
	return *c.CO2KgPerL
}

// GetFuelPricePerL returns the fuel_price_per_l value or the default.
func (c *AnalysisConfig) GetFuelPricePerL() float64 {
	if c.FuelPricePerL == nil {
		return metrics.DefaultFuelPricePerL
	}
	return *c.FuelPricePerL
}

// GetPeakWindow returns the peak_window value or the default.
func (c *AnalysisConfig) GetPeakWindow() int {
	if c.PeakWindow == nil {
		return metrics.DefaultPeakWindow
	}
	return *c.PeakWindow
}

// GetRollingWindow returns the rolling_window value or the default.
func (c *AnalysisConfig) GetRollingWindow() int {
	if c.RollingWindow == nil {
		return metrics.DefaultRollingWindow
	}
	return *c.RollingWindow
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *AnalysisConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return 30
	}
	return *c.HistogramBins
}

// GetSpeedUnits returns the speed_units value or the default.
func (c *AnalysisConfig) GetSpeedUnits() string {
	if c.SpeedUnits == nil || *c.SpeedUnits == "" {
		return units.KMPH
	}
	return *c.SpeedUnits
}

// GetMaxParallel returns the max_parallel value or the default.
func (c *AnalysisConfig) GetMaxParallel() int {
	if c.MaxParallel == nil {
		return 4
	}
	return *c.MaxParallel
}

// GetRunTimeout parses and returns the RunTimeout as a time.Duration.
func (c *AnalysisConfig) GetRunTimeout() time.Duration {
	if c.RunTimeout == nil || *c.RunTimeout == "" {
		return 5 * time.Minute // default
	}
	d, err := time.ParseDuration(*c.RunTimeout)
	if err != nil {
		return 5 * time.Minute // default on parse error
	}
	return d
}

// MetricsConstants returns the constants to build a metrics.Engine with.
func (c *AnalysisConfig) MetricsConstants() metrics.Constants {
	return metrics.Constants{
		EnergyDensityMJPerL: c.GetEnergyDensityMJPerL(),
		CO2KgPerL:           c.GetCO2KgPerL(),
		FuelPricePerL:       c.GetFuelPricePerL(),
		PeakWindow:          c.GetPeakWindow(),
		RollingWindow:       c.GetRollingWindow(),
	}
}

// CorrelationThresholds returns the interpretation thresholds, falling back
// to the defaults for unset fields.
func (c *AnalysisConfig) CorrelationThresholds() metrics.CorrelationThresholds {
	th := metrics.DefaultCorrelationThresholds()
	if c.StrongSpeedFuelCorr != nil {
		th.StrongSpeedFuel = *c.StrongSpeedFuelCorr
	}
	if c.VeryStrongSpeedDragCorr != nil {
		th.VeryStrongSpeedDrag = *c.VeryStrongSpeedDragCorr
	}
	if c.ModerateSlopeFuelCorr != nil {
		th.ModerateSlopeFuel = *c.ModerateSlopeFuelCorr
	}
	return th
}
