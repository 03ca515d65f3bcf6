// Package telemetry holds one simulator run as a column-aligned table of
// float64 samples and loads it from the simulator's CSV output.
package telemetry

import "fmt"

// Column identifies one of the fixed telemetry columns.
type Column int

// Columns in file order.
const (
	Time Column = iota
	Speed
	Acceleration
	Drag
	RollingResistance
	SlopeResistance
	TotalResistance
	FuelStep
	CumulativeFuel
	Reynolds
	DragCoefficient
	Altitude
	Slope

	NumColumns = int(Slope) + 1
)

var columnNames = [NumColumns]string{
	"time",
	"speed",
	"acceleration",
	"drag",
	"rolling_resistance",
	"slope_resistance",
	"total_resistance",
	"fuel",
	"cumulative_fuel",
	"reynolds",
	"cd",
	"altitude",
	"slope",
}

// String returns the simulator's header name for the column.
func (c Column) String() string {
	if c < 0 || int(c) >= NumColumns {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// Columns returns every column in file order.
func Columns() []Column {
	out := make([]Column, NumColumns)
	for i := range out {
		out[i] = Column(i)
	}
	return out
}

// Row is one sample. Units are SI as produced by the simulator: seconds,
// m/s, m/s², newtons, litres, meters and radians.
type Row struct {
	Time              float64
	Speed             float64
	Acceleration      float64
	Drag              float64
	RollingResistance float64
	SlopeResistance   float64
	TotalResistance   float64
	FuelStep          float64
	CumulativeFuel    float64
	Reynolds          float64
	DragCoefficient   float64
	Altitude          float64
	Slope             float64
}

func (r Row) values() [NumColumns]float64 {
	return [NumColumns]float64{
		r.Time, r.Speed, r.Acceleration,
		r.Drag, r.RollingResistance, r.SlopeResistance, r.TotalResistance,
		r.FuelStep, r.CumulativeFuel,
		r.Reynolds, r.DragCoefficient, r.Altitude, r.Slope,
	}
}

// Series is a fully materialised run. Every column has the same length and
// the series is never modified after construction; whole-column accessors
// return copies.
type Series struct {
	cols [NumColumns][]float64
	n    int
}

// FromRows builds a series from already parsed samples.
func FromRows(rows []Row) *Series {
	s := &Series{n: len(rows)}
	for c := range s.cols {
		s.cols[c] = make([]float64, len(rows))
	}
	for i, r := range rows {
		v := r.values()
		for c := range s.cols {
			s.cols[c][i] = v[c]
		}
	}
	return s
}

// Len returns the number of samples.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

// At returns the value of col at sample i. It panics if i is out of range,
// like a slice index.
func (s *Series) At(col Column, i int) float64 {
	return s.cols[col][i]
}

// Column returns a copy of the named column.
func (s *Series) Column(col Column) []float64 {
	out := make([]float64, s.Len())
	if s != nil {
		copy(out, s.cols[col])
	}
	return out
}

// Row returns sample i as a Row.
func (s *Series) Row(i int) Row {
	return Row{
		Time:              s.cols[Time][i],
		Speed:             s.cols[Speed][i],
		Acceleration:      s.cols[Acceleration][i],
		Drag:              s.cols[Drag][i],
		RollingResistance: s.cols[RollingResistance][i],
		SlopeResistance:   s.cols[SlopeResistance][i],
		TotalResistance:   s.cols[TotalResistance][i],
		FuelStep:          s.cols[FuelStep][i],
		CumulativeFuel:    s.cols[CumulativeFuel][i],
		Reynolds:          s.cols[Reynolds][i],
		DragCoefficient:   s.cols[DragCoefficient][i],
		Altitude:          s.cols[Altitude][i],
		Slope:             s.cols[Slope][i],
	}
}

// Per-column accessors. Each returns a copy.

func (s *Series) Time() []float64              { return s.Column(Time) }
func (s *Series) Speed() []float64             { return s.Column(Speed) }
func (s *Series) Acceleration() []float64      { return s.Column(Acceleration) }
func (s *Series) Drag() []float64              { return s.Column(Drag) }
func (s *Series) RollingResistance() []float64 { return s.Column(RollingResistance) }
func (s *Series) SlopeResistance() []float64   { return s.Column(SlopeResistance) }
func (s *Series) TotalResistance() []float64   { return s.Column(TotalResistance) }
func (s *Series) FuelStep() []float64          { return s.Column(FuelStep) }
func (s *Series) CumulativeFuel() []float64    { return s.Column(CumulativeFuel) }
func (s *Series) Reynolds() []float64          { return s.Column(Reynolds) }
func (s *Series) DragCoefficient() []float64   { return s.Column(DragCoefficient) }
func (s *Series) Altitude() []float64          { return s.Column(Altitude) }
func (s *Series) Slope() []float64             { return s.Column(Slope) }

// Validate checks that time and cumulative fuel never decrease. Load does
// not call it; the simulator output is trusted and callers decide whether a
// violation matters.
func (s *Series) Validate() error {
	for _, col := range []Column{Time, CumulativeFuel} {
		xs := s.cols[col]
		for i := 1; i < len(xs); i++ {
			if xs[i] < xs[i-1] {
				return &InvariantError{Column: col, Index: i, Prev: xs[i-1], Value: xs[i]}
			}
		}
	}
	return nil
}
