package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnString(t *testing.T) {
	want := []string{
		"time", "speed", "acceleration", "drag", "rolling_resistance",
		"slope_resistance", "total_resistance", "fuel", "cumulative_fuel",
		"reynolds", "cd", "altitude", "slope",
	}
	cols := Columns()
	require.Len(t, cols, NumColumns)
	for i, c := range cols {
		assert.Equal(t, want[i], c.String())
	}
	assert.Equal(t, "column(-1)", Column(-1).String())
}

func TestFromRows_ColumnsAreCopies(t *testing.T) {
	s := FromRows([]Row{
		{Time: 0, Speed: 5, CumulativeFuel: 0.1},
		{Time: 1, Speed: 6, CumulativeFuel: 0.2},
	})

	speed := s.Speed()
	speed[0] = 99
	assert.Equal(t, 5.0, s.At(Speed, 0), "mutating a returned column must not change the series")
	assert.Equal(t, Row{Time: 1, Speed: 6, CumulativeFuel: 0.2}, s.Row(1))
}

func TestSeries_NilIsEmpty(t *testing.T) {
	var s *Series
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Time())
}

func TestValidate(t *testing.T) {
	ok := FromRows([]Row{{Time: 0, CumulativeFuel: 0.1}, {Time: 1, CumulativeFuel: 0.1}, {Time: 2, CumulativeFuel: 0.3}})
	assert.NoError(t, ok.Validate())

	backwards := FromRows([]Row{{Time: 0}, {Time: 2}, {Time: 1}})
	err := backwards.Validate()
	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, Time, inv.Column)
	assert.Equal(t, 2, inv.Index)

	fuel := FromRows([]Row{{Time: 0, CumulativeFuel: 0.5}, {Time: 1, CumulativeFuel: 0.4}})
	require.True(t, errors.As(fuel.Validate(), &inv))
	assert.Equal(t, CumulativeFuel, inv.Column)
}
