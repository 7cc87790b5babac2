package parser

import (
	"fmt"
	"math"
	"strings"
)

// ValidateCoordinate validates a single coordinate pair
func ValidateCoordinate(lat, lon float64) error {
	if !finite(lat) || !finite(lon) {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidateVolume checks the invariants every emitted volume must hold.
// Both parsers call it as the last step before emitting a record.
func ValidateVolume(v *Volume) error {
	if v == nil {
		return fmt.Errorf("volume is nil")
	}

	if strings.TrimSpace(v.Name) == "" {
		return &ErrMalformedRecord{Line: v.Line, Reason: "missing name"}
	}
	if v.Class == ClassUnknown {
		return &ErrMalformedRecord{Record: v.Name, Line: v.Line, Reason: "missing or unknown class"}
	}

	if _, err := NewRing(v.Ring); err != nil {
		return withRecord(err, v.Name, v.Line)
	}

	if v.Altitude.Lower.Level() > v.Altitude.Upper.Level() {
		return &ErrMalformedRecord{
			Record: v.Name,
			Line:   v.Line,
			Reason: fmt.Sprintf("lower limit %s is above upper limit %s", v.Altitude.Lower, v.Altitude.Upper),
		}
	}

	return nil
}
