package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/telemetry.report/internal/compare"
	"github.com/banshee-data/telemetry.report/internal/units"
	"github.com/banshee-data/telemetry.report/internal/version"
)

const ruleWidth = 70

var rule = strings.Repeat("=", ruleWidth)

// textWriter accumulates the first write error so formatting code can stay
// linear.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) header(title string) {
	t.printf("%s\n  %s\n%s\n", rule, title, rule)
}

// WriteDetailed writes the detailed statistics block for one run.
func WriteDetailed(w io.Writer, b *Bundle) error {
	t := &textWriter{w: w}
	d := b.Derived
	unit := b.SpeedUnits
	speedLabel := units.SpeedLabel(unit)

	t.header("DETAILED STATISTICAL ANALYSIS - " + b.Label)

	t.printf("\nDistance & Fuel Metrics:\n")
	t.printf("  Total Distance: %.3f %s\n", units.ConvertDistance(d.Distance, unit), units.DistanceLabel(unit))
	t.printf("  Total Fuel Used: %.3f L\n", d.TotalFuel)
	t.printf("  Fuel Consumption: %.3f L/100km\n", d.FuelPer100)
	t.printf("  Energy Efficiency: %.3f km/MJ\n", d.EnergyEfficiency/1000)
	t.printf("  Estimated Cost: $%.2f\n", d.Cost)
	t.printf("  CO2 Emissions: %.3f kg\n", d.CO2)

	if s := b.Speed; s != nil {
		t.printf("\nSpeed Statistics (%s):\n", speedLabel)
		t.printf("  Mean: %.3f\n", units.ConvertSpeed(s.Mean, unit))
		t.printf("  Median: %.3f\n", units.ConvertSpeed(s.Median, unit))
		t.printf("  Std Dev: %.3f\n", units.ConvertSpeed(s.StdDev, unit))
		t.printf("  Min: %.3f\n", units.ConvertSpeed(s.Min, unit))
		t.printf("  Max: %.3f\n", units.ConvertSpeed(s.Max, unit))
		if p := b.SpeedPercentiles; len(p) == 3 {
			t.printf("  P50/P85/P95: %.3f / %.3f / %.3f\n",
				units.ConvertSpeed(p[0], unit), units.ConvertSpeed(p[1], unit), units.ConvertSpeed(p[2], unit))
		}
	}

	a := d.Acceleration
	t.printf("\nAcceleration Metrics (m/s²):\n")
	t.printf("  Avg Acceleration: %.3f\n", a.MeanAcceleration)
	t.printf("  Avg Deceleration: %.3f\n", a.MeanDeceleration)
	t.printf("  Max Acceleration: %.3f\n", a.MaxAcceleration)
	t.printf("  Max Deceleration: %.3f\n", a.MaxDeceleration)

	if s := b.Drag; s != nil {
		t.printf("\nAerodynamic Drag Statistics (N):\n")
		t.printf("  Mean: %.3f\n", s.Mean)
		t.printf("  Max: %.3f\n", s.Max)
		t.printf("  Std Dev: %.3f\n", s.StdDev)
	}

	if s := b.Reynolds; s != nil {
		t.printf("\nReynolds Number Statistics:\n")
		t.printf("  Mean: %.0f\n", s.Mean)
		t.printf("  Min: %.0f\n", s.Min)
		t.printf("  Max: %.0f\n", s.Max)
	}

	if r := d.Resistance; r != nil {
		t.printf("\nResistance Force Breakdown:\n")
		t.printf("  Aerodynamic Drag: %.1f%%\n", r.DragPct)
		t.printf("  Rolling Resistance: %.1f%%\n", r.RollingPct)
		t.printf("  Slope Resistance: %.1f%%\n", r.SlopePct)
	}

	if s := b.Altitude; s != nil {
		t.printf("\nAltitude Profile (m):\n")
		t.printf("  Max Elevation: %.2f\n", s.Max)
		t.printf("  Min Elevation: %.2f\n", s.Min)
		t.printf("  Elevation Change: %.2f\n", s.Range)
	}

	if p := d.Peak; p != nil {
		t.printf("\nPeak Consumption Period:\n")
		t.printf("  Time Range: %.0fs - %.0fs\n", p.StartTime, p.EndTime)
		t.printf("  Consumption: %.5f L\n", p.Consumption)
	}

	t.printf("%s\n", rule)
	return t.err
}

// WriteCorrelation writes the correlation coefficients and their
// interpretation for one run.
func WriteCorrelation(w io.Writer, b *Bundle) error {
	t := &textWriter{w: w}
	c := b.Derived.Correlations

	t.header("CORRELATION ANALYSIS - " + b.Label)
	t.printf("\nCorrelation Coefficients:\n")
	t.printf("  Speed vs Fuel Consumption: %.3f\n", c.SpeedFuel)
	t.printf("  Speed vs Drag Force: %.3f\n", c.SpeedDrag)
	t.printf("  Reynolds Number vs Cd: %.3f\n", c.ReynoldsCd)
	t.printf("  Slope vs Fuel Consumption: %.3f\n", c.SlopeFuel)

	t.printf("\nInterpretation:\n")
	if len(b.Interpretation) == 0 {
		t.printf("  No notable correlations\n")
	}
	for _, line := range b.Interpretation {
		t.printf("  %s\n", line)
	}
	t.printf("%s\n", rule)
	return t.err
}

// WriteSummary writes the short summary report saved alongside each run.
func WriteSummary(w io.Writer, b *Bundle) error {
	t := &textWriter{w: w}
	d := b.Derived
	unit := b.SpeedUnits

	t.printf("%s\nSIMULATION SUMMARY REPORT - %s\n%s\n\n", rule, b.Label, rule)
	if b.RunID != "" {
		t.printf("Run: %s\n", b.RunID)
	}
	if b.Source != "" {
		t.printf("Source: %s (%d samples)\n", b.Source, b.Samples)
	}
	if !b.GeneratedAt.IsZero() {
		t.printf("Generated: %s\n", b.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	t.printf("\n")

	t.printf("Total Distance: %.3f %s\n", units.ConvertDistance(d.Distance, unit), units.DistanceLabel(unit))
	t.printf("Total Fuel Used: %.3f L\n", d.TotalFuel)
	t.printf("Fuel Consumption: %.3f L/100km\n", d.FuelPer100)
	t.printf("Estimated Cost: $%.2f\n", d.Cost)
	t.printf("CO2 Emissions: %.3f kg\n\n", d.CO2)

	if s := b.Speed; s != nil {
		t.printf("Average Speed: %s\n", units.FormatSpeed(s.Mean, unit))
		t.printf("Maximum Speed: %s\n\n", units.FormatSpeed(s.Max, unit))
	} else {
		t.printf("No samples recorded.\n\n")
	}

	t.printf("Analysis completed successfully.\n")
	t.printf("%s\n", version.String())
	return t.err
}

// WriteComparison writes the per-scenario comparison table and the fuel
// ranking, or the insufficient-data notice.
func WriteComparison(w io.Writer, res *compare.Result, speedUnits string) error {
	t := &textWriter{w: w}

	t.header("SCENARIO COMPARISON")
	if res == nil || res.Insufficient {
		reason := compare.InsufficientReason
		if res != nil && res.Reason != "" {
			reason = res.Reason
		}
		t.printf("\n%s\n%s\n", reason, rule)
		return t.err
	}

	t.printf("\nComparative Statistics:\n")
	for _, s := range res.Scenarios {
		t.printf("\n%s:\n", s.Label)
		t.printf("  Total Fuel: %.3f L\n", s.TotalFuel)
		t.printf("  Fuel per 100km: %.3f L/100km\n", s.FuelPer100)
		t.printf("  Distance: %.3f %s\n", units.ConvertDistance(s.Distance, speedUnits), units.DistanceLabel(speedUnits))
		t.printf("  Avg Speed: %s\n", units.FormatSpeed(s.MeanSpeed, speedUnits))
		t.printf("  Max Speed: %s\n", units.FormatSpeed(s.MaxSpeed, speedUnits))
	}

	t.printf("\nRanking by Total Fuel (lowest first):\n")
	for _, r := range res.Ranking {
		t.printf("  %d. %s  %.3f L\n", r.Position, r.Label, r.TotalFuel)
	}
	if best, ok := res.Best(); ok {
		worst, _ := res.Worst()
		t.printf("\n%s used %.3f L less fuel than %s\n", best.Label, res.Spread(), worst.Label)
	}
	t.printf("%s\n", rule)
	return t.err
}
