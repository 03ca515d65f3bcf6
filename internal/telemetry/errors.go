package telemetry

import (
	"errors"
	"fmt"
)

// ErrFieldCount is the cause recorded when a data row does not have one
// field per column.
var ErrFieldCount = errors.New("wrong number of fields")

// SourceUnavailableError reports that a telemetry source could not be
// opened or read.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("telemetry source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("telemetry source %s unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// MalformedRowError reports the first data row that could not be parsed.
// Row is 1-based and counts data rows only, so the first row after the
// header is row 1; row 0 is the header itself. Column is -1 when the row
// had the wrong field count or was not valid CSV.
type MalformedRowError struct {
	Row    int
	Column Column
	Field  string
	Fields int
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column < 0 {
		if errors.Is(e.Err, ErrFieldCount) {
			return fmt.Sprintf("malformed row %d: got %d fields, want %d", e.Row, e.Fields, NumColumns)
		}
		return fmt.Sprintf("malformed row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("malformed row %d: %s=%q: %v", e.Row, e.Column, e.Field, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// InvariantError reports a column that decreases where it must not.
type InvariantError struct {
	Column Column
	Index  int
	Prev   float64
	Value  float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s decreases at sample %d (%g after %g)", e.Column, e.Index, e.Value, e.Prev)
}

// IsSourceUnavailable reports whether err is or wraps a SourceUnavailableError.
func IsSourceUnavailable(err error) bool {
	var target *SourceUnavailableError
	return errors.As(err, &target)
}

// IsMalformed reports whether err is or wraps a MalformedRowError.
func IsMalformed(err error) bool {
	var target *MalformedRowError
	return errors.As(err, &target)
}
