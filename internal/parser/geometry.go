package parser

import (
	"fmt"
	"math"
)

// coordinateScale fixes the precision every parser normalises to:
// 1e-6 degrees, roughly 11cm at the equator.
const coordinateScale = 1e6

// Point is a WGS-84 position in signed decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// NewPoint validates the coordinate ranges and rounds to the shared
// coordinate precision.
func NewPoint(lat, lon float64) (Point, error) {
	if err := ValidateCoordinate(lat, lon); err != nil {
		return Point{}, err
	}
	return Point{Lat: roundCoord(lat), Lon: roundCoord(lon)}, nil
}

func roundCoord(v float64) float64 {
	return math.Round(v*coordinateScale) / coordinateScale
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}

// Ring is a closed boundary. The closing segment from the last point back
// to the first is implicit; the first point is never repeated at the end.
type Ring []Point

// NewRing validates that points form a usable ring: at least three points
// and no two consecutive points identical (including last→first).
func NewRing(points []Point) (Ring, error) {
	if len(points) < 3 {
		return nil, &ErrInvalidGeometry{Reason: fmt.Sprintf("ring needs at least 3 points, got %d", len(points))}
	}
	for i, p := range points {
		if err := ValidateCoordinate(p.Lat, p.Lon); err != nil {
			return nil, &ErrInvalidGeometry{Reason: fmt.Sprintf("point %d: %v", i, err)}
		}
		next := points[(i+1)%len(points)]
		if p == next {
			return nil, &ErrInvalidGeometry{Reason: fmt.Sprintf("points %d and %d are identical %s", i, (i+1)%len(points), p)}
		}
	}
	ring := make(Ring, len(points))
	copy(ring, points)
	return ring, nil
}

// NormalizeRing drops consecutive duplicate points and an explicit closing
// point, which both published formats commonly contain, then validates the
// result with NewRing.
func NormalizeRing(points []Point) (Ring, error) {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return NewRing(out)
}

// Bounds returns the ring's bounding box.
func (r Ring) Bounds() Bounds {
	if len(r) == 0 {
		return Bounds{}
	}
	b := Bounds{MinLon: r[0].Lon, MaxLon: r[0].Lon, MinLat: r[0].Lat, MaxLat: r[0].Lat}
	for _, p := range r[1:] {
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
	}
	return b
}

// Contains reports whether p lies inside the ring using the even-odd
// crossing rule. Points exactly on an edge may fall either way.
func (r Ring) Contains(p Point) bool {
	if len(r) < 3 {
		return false
	}

	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		pi, pj := r[i], r[j]
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) &&
			p.Lon < (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Equal reports whether both rings hold the same points in the same order.
func (r Ring) Equal(other Ring) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Union returns the smallest bounds covering both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: math.Min(b.MinLon, other.MinLon),
		MaxLon: math.Max(b.MaxLon, other.MaxLon),
		MinLat: math.Min(b.MinLat, other.MinLat),
		MaxLat: math.Max(b.MaxLat, other.MaxLat),
	}
}
