package metrics

// PeakWindow is the stretch of consecutive samples that burned the most
// fuel.
type PeakWindow struct {
	StartIndex  int
	StartTime   float64
	EndTime     float64
	Consumption float64
}

// PeakConsumptionWindow slides a window of size consecutive fuel steps over
// the series and returns the one with the largest sum. Windows start at
// 0..N-size, scanned left to right; only a strictly greater sum replaces the
// best, so the earliest maximum wins. EndTime is time[start+size], or the
// final timestamp for the window that ends the series. Returns nil when the
// series is shorter than the window or size < 1.
func PeakConsumptionWindow(fuelStep, time []float64, size int) *PeakWindow {
	n := len(fuelStep)
	if size < 1 || n < size || len(time) != n {
		return nil
	}

	best := &PeakWindow{StartIndex: 0, Consumption: windowSum(fuelStep, 0, size)}
	for i := 1; i <= n-size; i++ {
		if sum := windowSum(fuelStep, i, size); sum > best.Consumption {
			best.StartIndex = i
			best.Consumption = sum
		}
	}

	best.StartTime = time[best.StartIndex]
	if end := best.StartIndex + size; end < n {
		best.EndTime = time[end]
	} else {
		best.EndTime = time[n-1]
	}
	return best
}

// RollingFuelPerDistance returns, for each window start 0..N-size, the fuel
// burned in the window divided by the window's distance figure
// sum(speed)*size/1e5. A window with no distance yields 0. Returns an empty
// slice when the series is shorter than the window.
func RollingFuelPerDistance(fuelStep, speed []float64, size int) []float64 {
	n := len(fuelStep)
	if size < 1 || n < size || len(speed) != n {
		return []float64{}
	}

	out := make([]float64, n-size+1)
	for i := range out {
		fuel := windowSum(fuelStep, i, size)
		distance := windowSum(speed, i, size) * float64(size) / 1e5
		if distance > 0 {
			out[i] = fuel / distance
		}
	}
	return out
}

// windowSum adds xs[start:start+size] left to right. Each window is summed
// from scratch so equal windows produce identical sums.
func windowSum(xs []float64, start, size int) float64 {
	var sum float64
	for _, x := range xs[start : start+size] {
		sum += x
	}
	return sum
}
