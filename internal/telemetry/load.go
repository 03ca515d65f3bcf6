package telemetry

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/telemetry.report/internal/fsutil"
)

// Load reads a simulator CSV table. The first record is a header and is
// discarded; every following record must hold exactly NumColumns numeric
// fields. Surrounding whitespace is ignored. Either the whole table loads or
// an error is returned: a *MalformedRowError for bad content, or a
// *SourceUnavailableError if the reader itself fails. An empty or header-only
// source gives an empty series.
func Load(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return FromRows(nil), nil
		}
		return nil, classifyReadError(err, 0)
	}

	var rows []Row
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classifyReadError(err, row)
		}
		if len(record) != NumColumns {
			return nil, &MalformedRowError{Row: row, Column: -1, Fields: len(record), Err: ErrFieldCount}
		}

		var v [NumColumns]float64
		for c, field := range record {
			field = strings.TrimSpace(field)
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &MalformedRowError{Row: row, Column: Column(c), Field: field, Fields: len(record), Err: err}
			}
			v[c] = f
		}
		rows = append(rows, rowFromValues(v))
	}
	return FromRows(rows), nil
}

// LoadFile opens path on fsys and loads it. Failing to open the file gives a
// *SourceUnavailableError; content errors come back from Load unchanged.
func LoadFile(fsys fsutil.FileSystem, path string) (*Series, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		var unavailable *SourceUnavailableError
		if errors.As(err, &unavailable) && unavailable.Path == "" {
			unavailable.Path = path
		}
		return nil, err
	}
	return s, nil
}

// classifyReadError separates CSV syntax errors, which are content problems,
// from failures of the underlying reader.
func classifyReadError(err error, row int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &MalformedRowError{Row: row, Column: -1, Err: parseErr.Err}
	}
	return &SourceUnavailableError{Err: err}
}

func rowFromValues(v [NumColumns]float64) Row {
	return Row{
		Time:              v[Time],
		Speed:             v[Speed],
		Acceleration:      v[Acceleration],
		Drag:              v[Drag],
		RollingResistance: v[RollingResistance],
		SlopeResistance:   v[SlopeResistance],
		TotalResistance:   v[TotalResistance],
		FuelStep:          v[FuelStep],
		CumulativeFuel:    v[CumulativeFuel],
		Reynolds:          v[Reynolds],
		DragCoefficient:   v[DragCoefficient],
		Altitude:          v[Altitude],
		Slope:             v[Slope],
	}
}
