package parser

import (
	"math"
)

// earthRadiusNM is the mean earth radius in nautical miles
// (6371 km / 1.852 km/nm).
const earthRadiusNM = 3440.065

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }

// destination returns the point dist nautical miles from p along the great
// circle with initial bearing brg (degrees true).
func destination(p Point, brg, dist float64) Point {
	lat1, lon1 := radians(p.Lat), radians(p.Lon)
	theta := radians(brg)
	delta := dist / earthRadiusNM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	lon := degrees(lon2)
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}
	return Point{Lat: roundCoord(degrees(lat2)), Lon: roundCoord(lon)}
}

// bearing returns the initial great-circle bearing from a to b in
// degrees [0, 360).
func bearing(a, b Point) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dlon := radians(b.Lon - a.Lon)
	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	return normalizeBearing(degrees(math.Atan2(y, x)))
}

// distanceNM returns the haversine distance between a and b.
func distanceNM(a, b Point) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dlat := lat2 - lat1
	dlon := radians(b.Lon - a.Lon)
	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusNM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func normalizeBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// arcPoints approximates the arc of radius nautical miles around center,
// from bearing start to bearing end, with straight segments no wider than
// step degrees. Both end points are included. Equal start and end bearings
// describe a full circle.
func arcPoints(center Point, radius, start, end float64, clockwise bool, step float64) []Point {
	var sweep float64
	if clockwise {
		sweep = normalizeBearing(end - start)
	} else {
		sweep = normalizeBearing(start - end)
	}
	if sweep == 0 {
		sweep = 360
	}

	n := int(math.Ceil(sweep / step))
	if n < 1 {
		n = 1
	}
	dir := 1.0
	if !clockwise {
		dir = -1
	}

	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		brg := start + dir*sweep*float64(i)/float64(n)
		points = append(points, destination(center, normalizeBearing(brg), radius))
	}
	return points
}

// circlePoints approximates a full circle. The closing point is omitted.
func circlePoints(center Point, radius, step float64) []Point {
	points := arcPoints(center, radius, 0, 0, true, step)
	return points[:len(points)-1]
}
