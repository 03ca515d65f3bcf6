// Package units converts the SI quantities stored in telemetry (m/s, m)
// into the units used when presenting reports.
package units

import "fmt"

// Speed unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid speed unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// ConvertSpeed converts a speed from meters per second to the target units.
// Unknown units leave the value in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH, KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}

// SpeedLabel returns the display suffix for a speed unit.
func SpeedLabel(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case KMPH, KPH:
		return "km/h"
	default:
		return "m/s"
	}
}

// ConvertDistance converts meters into the distance unit paired with the
// given speed unit: miles for mph, kilometres for km/h, meters otherwise.
func ConvertDistance(meters float64, speedUnits string) float64 {
	switch speedUnits {
	case MPH:
		return meters / 1609.344
	case KMPH, KPH:
		return meters / 1000.0
	default:
		return meters
	}
}

// DistanceLabel returns the display suffix paired with a speed unit.
func DistanceLabel(speedUnits string) string {
	switch speedUnits {
	case MPH:
		return "mi"
	case KMPH, KPH:
		return "km"
	default:
		return "m"
	}
}

// FormatSpeed renders a m/s value in the target units, e.g. "36.00 km/h".
func FormatSpeed(speedMPS float64, targetUnits string) string {
	return fmt.Sprintf("%.2f %s", ConvertSpeed(speedMPS, targetUnits), SpeedLabel(targetUnits))
}
