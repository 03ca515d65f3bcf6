package metrics

// TotalDistance integrates speed over time with a forward difference:
// the sum of speed[i] * (time[i] - time[i-1]) for i >= 1. The first sample
// never contributes. Returns 0 for fewer than two samples or mismatched
// lengths.
func TotalDistance(speed, time []float64) float64 {
	n := len(speed)
	if n != len(time) || n <= 1 {
		return 0
	}
	var d float64
	for i := 1; i < n; i++ {
		d += speed[i] * (time[i] - time[i-1])
	}
	return d
}

// TotalFuel returns the final cumulative fuel, or 0 for an empty series.
func TotalFuel(cumFuel []float64) float64 {
	if len(cumFuel) == 0 {
		return 0
	}
	return last(cumFuel)
}

// FuelPer100 returns litres per 100 km given cumulative litres and a
// distance in meters. Returns 0 when the distance is zero or the series is
// empty.
func FuelPer100(cumFuel []float64, distance float64) float64 {
	if len(cumFuel) == 0 || distance == 0 {
		return 0
	}
	return last(cumFuel) / distance * 1e5
}

// CostAt prices the final cumulative fuel at pricePerL.
func CostAt(cumFuel []float64, pricePerL float64) float64 {
	if len(cumFuel) == 0 {
		return 0
	}
	return last(cumFuel) * pricePerL
}
