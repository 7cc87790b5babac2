package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// feetPerMetre converts metric limits; results are rounded to whole feet.
const feetPerMetre = 3.28084

// unlimitedLevel is the comparable level of an unlimited upper limit.
const unlimitedLevel = math.MaxInt32

// Reference identifies the datum of an altitude limit.
type Reference int

const (
	// RefSurface is the ground or water surface.
	RefSurface Reference = iota
	// RefAMSL is a height above mean sea level in feet.
	RefAMSL
	// RefAGL is a height above ground level in feet.
	RefAGL
	// RefFlightLevel is a pressure altitude in hundreds of feet.
	RefFlightLevel
	// RefUnlimited has no upper bound.
	RefUnlimited
)

// String returns the conventional abbreviation for the reference.
func (r Reference) String() string {
	switch r {
	case RefSurface:
		return "SFC"
	case RefAMSL:
		return "AMSL"
	case RefAGL:
		return "AGL"
	case RefFlightLevel:
		return "FL"
	case RefUnlimited:
		return "UNL"
	default:
		return "Unknown"
	}
}

// Limit is one vertical limit of an airspace. Feet holds the numeric
// value in feet for AMSL and AGL, and the level times 100 for flight
// levels. It is zero for the symbolic references.
type Limit struct {
	Ref  Reference
	Feet int
}

// Ground returns the surface limit.
func Ground() Limit { return Limit{Ref: RefSurface} }

// Unlimited returns the unlimited limit.
func Unlimited() Limit { return Limit{Ref: RefUnlimited} }

// FlightLevel returns the limit for flight level fl (e.g. 195).
func FlightLevel(fl int) Limit { return Limit{Ref: RefFlightLevel, Feet: fl * 100} }

// Feet returns a numeric limit in feet above the given reference.
func Feet(ft int, ref Reference) Limit { return Limit{Ref: ref, Feet: ft} }

// Numeric reports whether the limit carries a value rather than a symbol.
func (l Limit) Numeric() bool {
	return l.Ref == RefAMSL || l.Ref == RefAGL || l.Ref == RefFlightLevel
}

// Level places the limit on a single feet scale so limits with different
// references can be compared. AGL heights are treated as AMSL, which is
// exact enough for choosing what to draw.
func (l Limit) Level() int {
	switch l.Ref {
	case RefSurface:
		return 0
	case RefUnlimited:
		return unlimitedLevel
	default:
		return l.Feet
	}
}

func (l Limit) String() string {
	switch l.Ref {
	case RefSurface:
		return "SFC"
	case RefUnlimited:
		return "UNL"
	case RefFlightLevel:
		return fmt.Sprintf("FL%d", l.Feet/100)
	case RefAGL:
		return fmt.Sprintf("%dft AGL", l.Feet)
	default:
		return fmt.Sprintf("%dft", l.Feet)
	}
}

// AltitudeBound is the vertical extent of a volume.
type AltitudeBound struct {
	Lower Limit
	Upper Limit
}

// NewAltitudeBound validates lower ≤ upper.
func NewAltitudeBound(lower, upper Limit) (AltitudeBound, error) {
	if lower.Level() > upper.Level() {
		return AltitudeBound{}, &ErrMalformedRecord{
			Reason: fmt.Sprintf("lower limit %s is above upper limit %s", lower, upper),
		}
	}
	return AltitudeBound{Lower: lower, Upper: upper}, nil
}

// Intersects reports whether the bound shares any altitude with w. A
// volume whose lower limit equals the window's upper edge only touches it
// and does not count. A zero-height window is treated as a single
// altitude inside [Lower, Upper).
func (a AltitudeBound) Intersects(w Window) bool {
	lo, hi := a.Lower.Level(), a.Upper.Level()
	if w.Lower == w.Upper {
		return lo <= w.Lower && w.Lower < hi
	}
	return lo < w.Upper && hi > w.Lower
}

func (a AltitudeBound) String() string {
	return a.Lower.String() + "-" + a.Upper.String()
}

// Window is an altitude band in feet used to filter volumes.
type Window struct {
	Lower int
	Upper int
}

// Everything is the window covering every altitude.
func Everything() Window {
	return Window{Lower: 0, Upper: unlimitedLevel}
}

var (
	flightLevelPattern = regexp.MustCompile(`^FL\s*(\d{1,3})$`)
	numericPattern     = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(FT|F|FEET|M|METERS?|METRES?)?\s*(AMSL|MSL|ALT|AGL|AGND|ASFC|SFC|GND)?$`)
)

// ParseLimit parses the textual altitude forms found in published data:
// "SFC", "GND", "UNL", "FL195", "FL 65", "2500ft", "2500 ft AMSL",
// "1500ft AGL", "1500 AGL", "3000 ALT", "600m". A bare number is feet AMSL.
func ParseLimit(s string) (Limit, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	switch text {
	case "":
		return Limit{}, fmt.Errorf("empty altitude")
	case "SFC", "GND", "SURFACE", "GROUND":
		return Ground(), nil
	case "UNL", "UNLIM", "UNLIMITED", "UNLTD":
		return Unlimited(), nil
	}

	if m := flightLevelPattern.FindStringSubmatch(text); m != nil {
		fl, _ := strconv.Atoi(m[1])
		return FlightLevel(fl), nil
	}

	m := numericPattern.FindStringSubmatch(text)
	if m == nil {
		return Limit{}, fmt.Errorf("unrecognised altitude %q", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Limit{}, fmt.Errorf("altitude %q: %w", s, err)
	}

	unit := "FT"
	if strings.HasPrefix(m[2], "M") {
		unit = "M"
	}
	ref := RefAMSL
	switch m[3] {
	case "AGL", "AGND", "ASFC", "SFC", "GND":
		ref = RefAGL
	}
	return MakeLimit(value, unit, ref.String())
}

// MakeLimit builds a limit from the separate value, unit and reference
// fields of the structured format. unit is "ft", "m" or "fl"; ref is
// "AMSL", "AGL", "SFC" or "UNL" (case-insensitive, defaulting to AMSL).
func MakeLimit(value float64, unit, ref string) (Limit, error) {
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "SFC", "GND", "SURFACE":
		return Ground(), nil
	case "UNL", "UNLIMITED":
		return Unlimited(), nil
	}

	if value < 0 {
		return Limit{}, fmt.Errorf("negative altitude %v", value)
	}

	var feet int
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "", "FT", "F", "FEET":
		feet = int(math.Round(value))
	case "M", "METERS", "METRES":
		feet = int(math.Round(value * feetPerMetre))
	case "FL":
		return FlightLevel(int(math.Round(value))), nil
	default:
		return Limit{}, fmt.Errorf("unknown altitude unit %q", unit)
	}

	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "", "AMSL", "MSL", "ALT":
		return Feet(feet, RefAMSL), nil
	case "AGL":
		return Feet(feet, RefAGL), nil
	default:
		return Limit{}, fmt.Errorf("unknown altitude reference %q", ref)
	}
}
