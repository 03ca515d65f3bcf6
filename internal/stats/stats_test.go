package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name       string
		xs         []float64
		wantMean   float64
		wantMedian float64
		wantStd    float64
		wantMin    float64
		wantMax    float64
	}{
		{"single value", []float64{7}, 7, 7, 0, 7, 7},
		{"odd count", []float64{3, 1, 2}, 2, 2, 1, 1, 3},
		{"even count averages middle pair", []float64{4, 1, 3, 2}, 2.5, 2.5, math.Sqrt(5.0 / 3.0), 1, 4},
		{"constant", []float64{5, 5, 5, 5}, 5, 5, 0, 5, 5},
		{"negatives", []float64{-2, 2}, 0, 0, math.Sqrt(8), -2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Describe(tt.xs)
			require.NotNil(t, d)
			assert.Equal(t, len(tt.xs), d.Count)
			assert.InDelta(t, tt.wantMean, d.Mean, 1e-12)
			assert.InDelta(t, tt.wantMedian, d.Median, 1e-12)
			assert.InDelta(t, tt.wantStd, d.StdDev, 1e-12)
			assert.Equal(t, tt.wantMin, d.Min)
			assert.Equal(t, tt.wantMax, d.Max)
			assert.Equal(t, tt.wantMax-tt.wantMin, d.Range)
		})
	}
}

func TestDescribe_Empty(t *testing.T) {
	assert.Nil(t, Describe(nil))
	assert.Nil(t, Describe([]float64{}))
}

func TestDescribe_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Describe(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestPercentiles(t *testing.T) {
	xs := make([]float64, 100)
	for i := range xs {
		xs[i] = float64(100 - i)
	}

	got := Percentiles(xs, 0.5, 0.85, 0.95)
	require.Len(t, got, 3)
	assert.Equal(t, 50.0, got[0])
	assert.Equal(t, 85.0, got[1])
	assert.Equal(t, 95.0, got[2])

	assert.Equal(t, []float64{1, 100}, Percentiles(xs, -1, 2), "fractions are clamped")
	assert.Nil(t, Percentiles(nil, 0.5))
}

func TestHistogram(t *testing.T) {
	h := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.NotNil(t, h)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, h.Edges)
	assert.Equal(t, []float64{2, 2, 2, 2, 3}, h.Counts, "maximum lands in the last bin")
	assert.Equal(t, []float64{1, 3, 5, 7, 9}, h.Centers())
}

func TestHistogram_Constant(t *testing.T) {
	h := Histogram([]float64{4, 4, 4}, 2)
	require.NotNil(t, h)
	assert.Equal(t, []float64{3.5, 4, 4.5}, h.Edges)
	assert.Equal(t, []float64{0, 3}, h.Counts)
}

func TestHistogram_Degenerate(t *testing.T) {
	assert.Nil(t, Histogram(nil, 10))
	assert.Nil(t, Histogram([]float64{1, 2}, 0))
	assert.Nil(t, Histogram([]float64{math.NaN(), math.Inf(1)}, 3))

	h := Histogram([]float64{1, math.NaN(), 3}, 2)
	require.NotNil(t, h)
	assert.Equal(t, 2.0, h.Counts[0]+h.Counts[1])
}
