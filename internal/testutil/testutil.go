// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// TelemetryHeader is the canonical header line of a telemetry CSV file.
const TelemetryHeader = "time,speed,acceleration,drag,rolling_resistance,slope_resistance,total_resistance,fuel,cumulative_fuel,reynolds,cd,altitude,slope"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Sample is one telemetry row used to build CSV fixtures. Fields mirror the
// CSV columns in header order.
type Sample struct {
	Time, Speed, Acceleration          float64
	Drag, Rolling, Slope, Total        float64
	Fuel, CumulativeFuel               float64
	Reynolds, Cd, Altitude, SlopeAngle float64
}

// TelemetryCSV renders samples as a telemetry CSV document with header.
func TelemetryCSV(samples []Sample) string {
	var b strings.Builder
	b.WriteString(TelemetryHeader)
	b.WriteByte('\n')
	for _, s := range samples {
		fmt.Fprintf(&b, "%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g\n",
			s.Time, s.Speed, s.Acceleration,
			s.Drag, s.Rolling, s.Slope, s.Total,
			s.Fuel, s.CumulativeFuel,
			s.Reynolds, s.Cd, s.Altitude, s.SlopeAngle)
	}
	return b.String()
}

// ConstantSpeedSamples returns n one-second samples at a fixed speed and
// per-sample fuel, with cumulative fuel and resistance columns filled in.
func ConstantSpeedSamples(n int, speed, fuel float64) []Sample {
	samples := make([]Sample, n)
	cum := 0.0
	for i := range samples {
		cum += fuel
		drag := 0.4 * speed * speed
		samples[i] = Sample{
			Time:           float64(i),
			Speed:          speed,
			Drag:           drag,
			Rolling:        120,
			Total:          drag + 120,
			Fuel:           fuel,
			CumulativeFuel: cum,
			Reynolds:       speed * 1e5,
			Cd:             0.3,
		}
	}
	return samples
}

// ConstantSpeedSeriesCSV is TelemetryCSV(ConstantSpeedSamples(n, speed, fuel)).
func ConstantSpeedSeriesCSV(n int, speed, fuel float64) string {
	return TelemetryCSV(ConstantSpeedSamples(n, speed, fuel))
}
