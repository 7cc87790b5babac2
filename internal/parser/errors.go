package parser

import (
	"fmt"
)

// ErrInvalidCoordinate indicates coordinate out of valid bounds
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f lon=%f (lat must be ±90, lon must be ±180)",
		e.Lat, e.Lon)
}

// ErrInvalidGeometry indicates a ring or point that cannot describe an
// airspace boundary.
type ErrInvalidGeometry struct {
	Record string // Record name, empty when not yet known
	Line   int    // 1-based source line, 0 when unknown
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	return "invalid geometry" + recordContext(e.Record, e.Line) + ": " + e.Reason
}

// ErrMalformedRecord indicates a record that is missing a required field
// or whose directives arrive out of order.
type ErrMalformedRecord struct {
	Record string
	Line   int
	Reason string
}

func (e *ErrMalformedRecord) Error() string {
	return "malformed record" + recordContext(e.Record, e.Line) + ": " + e.Reason
}

func recordContext(record string, line int) string {
	switch {
	case record != "" && line > 0:
		return fmt.Sprintf(" %q (line %d)", record, line)
	case record != "":
		return fmt.Sprintf(" %q", record)
	case line > 0:
		return fmt.Sprintf(" (line %d)", line)
	default:
		return ""
	}
}

// withRecord attaches record context to an error produced by the primitive
// constructors, which know nothing about records.
func withRecord(err error, record string, line int) error {
	switch e := err.(type) {
	case *ErrMalformedRecord:
		return &ErrMalformedRecord{Record: record, Line: line, Reason: e.Reason}
	case *ErrInvalidGeometry:
		return &ErrInvalidGeometry{Record: record, Line: line, Reason: e.Reason}
	case *ErrInvalidCoordinate:
		return &ErrInvalidGeometry{Record: record, Line: line, Reason: e.Error()}
	default:
		return err
	}
}
