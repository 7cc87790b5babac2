package airspace

import (
	"errors"
	"fmt"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// WarningKind classifies a recoverable problem found while loading or
// composing. None of them stop the operation.
type WarningKind int

const (
	// WarningInvalidGeometry: a record's ring or a point was unusable; the
	// record was skipped.
	WarningInvalidGeometry WarningKind = iota + 1
	// WarningMalformedRecord: a record was missing a required field or its
	// directives were out of order; the record was skipped.
	WarningMalformedRecord
	// WarningUnresolvedOverlayReference: an overlay zone named a base volume
	// the catalog does not hold; the zone was dropped.
	WarningUnresolvedOverlayReference
	// WarningCatalogConflict: two records shared a name and class; one copy
	// was dropped.
	WarningCatalogConflict
	// WarningEmptySource: a source yielded no usable records.
	WarningEmptySource
	// WarningOverlayOutsideBase: a referenced zone has no vertex inside its
	// base volume. The zone is still drawn.
	WarningOverlayOutsideBase
)

func (k WarningKind) String() string {
	switch k {
	case WarningInvalidGeometry:
		return "InvalidGeometry"
	case WarningMalformedRecord:
		return "MalformedRecord"
	case WarningUnresolvedOverlayReference:
		return "UnresolvedOverlayReference"
	case WarningCatalogConflict:
		return "CatalogConflict"
	case WarningEmptySource:
		return "EmptySource"
	case WarningOverlayOutsideBase:
		return "OverlayOutsideBase"
	default:
		return "Unknown"
	}
}

// Warning reports one recoverable problem. It satisfies error so callers
// can join or wrap warnings, but it is never returned as a failure.
type Warning struct {
	Kind   WarningKind
	Source string // source buffer name
	Record string // record or zone name, if known
	Line   int    // 1-based line, if known
	Err    error  // underlying cause
}

func (w Warning) Error() string {
	msg := w.Kind.String()
	if w.Source != "" {
		msg += " " + w.Source
		if w.Line > 0 {
			msg += fmt.Sprintf(":%d", w.Line)
		}
	}
	if w.Err != nil {
		msg += ": " + w.Err.Error()
	}
	return msg
}

func (w Warning) Unwrap() error { return w.Err }

// recordWarning classifies a parser error.
func recordWarning(source string, err error) Warning {
	var (
		geomErr  *parser.ErrInvalidGeometry
		coordErr *parser.ErrInvalidCoordinate
		recErr   *parser.ErrMalformedRecord
	)
	switch {
	case errors.As(err, &geomErr):
		return Warning{Kind: WarningInvalidGeometry, Source: source, Record: geomErr.Record, Line: geomErr.Line, Err: err}
	case errors.As(err, &coordErr):
		return Warning{Kind: WarningInvalidGeometry, Source: source, Err: err}
	case errors.As(err, &recErr):
		return Warning{Kind: WarningMalformedRecord, Source: source, Record: recErr.Record, Line: recErr.Line, Err: err}
	default:
		return Warning{Kind: WarningMalformedRecord, Source: source, Err: err}
	}
}

// CountWarnings tallies warnings by kind.
func CountWarnings(warnings []Warning) map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range warnings {
		counts[w.Kind]++
	}
	return counts
}
