package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T) Ring {
	t.Helper()
	ring, err := NewRing([]Point{
		{Lat: 51.0, Lon: -1.0},
		{Lat: 51.0, Lon: 0.0},
		{Lat: 52.0, Lon: 0.0},
		{Lat: 52.0, Lon: -1.0},
	})
	require.NoError(t, err)
	return ring
}

// TestNewPointRounds tests that coordinates are normalised to 1e-6 degrees
func TestNewPointRounds(t *testing.T) {
	p, err := NewPoint(51.12345678, -0.98765432)
	require.NoError(t, err)
	assert.Equal(t, 51.123457, p.Lat)
	assert.Equal(t, -0.987654, p.Lon)

	_, err = NewPoint(91, 0)
	var ce *ErrInvalidCoordinate
	assert.True(t, errors.As(err, &ce))
}

// TestNewRing tests ring validation
func TestNewRing(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 1}
	c := Point{Lat: 1, Lon: 1}

	tests := []struct {
		name    string
		points  []Point
		wantErr bool
	}{
		{"triangle", []Point{a, b, c}, false},
		{"too few points", []Point{a, b}, true},
		{"empty", nil, true},
		{"consecutive duplicate", []Point{a, b, b, c}, true},
		{"explicit closing point", []Point{a, b, c, a}, true},
		{"out of range", []Point{a, b, {Lat: 95, Lon: 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRing(tt.points)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ge *ErrInvalidGeometry
			assert.True(t, errors.As(err, &ge), "want *ErrInvalidGeometry, got %v", err)
		})
	}
}

// TestNormalizeRing tests duplicate and closing point removal
func TestNormalizeRing(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 1}
	c := Point{Lat: 1, Lon: 1}

	ring, err := NormalizeRing([]Point{a, b, b, c, a, a})
	require.NoError(t, err)
	assert.Equal(t, Ring{a, b, c}, ring)

	_, err = NormalizeRing([]Point{a, b, a})
	assert.Error(t, err)
}

// TestRingContains tests the even-odd point-in-ring rule
func TestRingContains(t *testing.T) {
	ring := square(t)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"centre", Point{Lat: 51.5, Lon: -0.5}, true},
		{"west", Point{Lat: 51.5, Lon: -1.5}, false},
		{"north", Point{Lat: 52.5, Lon: -0.5}, false},
		{"near corner inside", Point{Lat: 51.01, Lon: -0.01}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ring.Contains(tt.p))
		})
	}
}

// TestRingBounds tests bounding box calculation
func TestRingBounds(t *testing.T) {
	b := square(t).Bounds()
	assert.Equal(t, Bounds{MinLon: -1, MaxLon: 0, MinLat: 51, MaxLat: 52}, b)

	assert.True(t, b.Contains(Point{Lat: 51.5, Lon: -0.5}))
	assert.False(t, b.Contains(Point{Lat: 50, Lon: -0.5}))
	assert.True(t, b.Intersects(Bounds{MinLon: -0.5, MaxLon: 1, MinLat: 51.5, MaxLat: 53}))
	assert.False(t, b.Intersects(Bounds{MinLon: 1, MaxLon: 2, MinLat: 51, MaxLat: 52}))

	u := b.Union(Bounds{MinLon: 1, MaxLon: 2, MinLat: 50, MaxLat: 51})
	assert.Equal(t, Bounds{MinLon: -1, MaxLon: 2, MinLat: 50, MaxLat: 52}, u)
}

// TestArcPoints tests arc subdivision
func TestArcPoints(t *testing.T) {
	centre := Point{Lat: 51.5, Lon: -0.5}

	t.Run("quarter arc", func(t *testing.T) {
		pts := arcPoints(centre, 5, 0, 90, true, 5)
		require.Len(t, pts, 19)
		for _, p := range pts {
			assert.InDelta(t, 5, distanceNM(centre, p), 0.01)
		}
		assert.InDelta(t, 0, bearing(centre, pts[0]), 0.01)
		assert.InDelta(t, 90, bearing(centre, pts[len(pts)-1]), 0.1)
	})

	t.Run("counter-clockwise takes the long way", func(t *testing.T) {
		pts := arcPoints(centre, 5, 0, 90, false, 5)
		assert.Len(t, pts, 55)
	})

	t.Run("step controls density", func(t *testing.T) {
		assert.Len(t, circlePoints(centre, 2, 5), 72)
		assert.Len(t, circlePoints(centre, 2, 10), 36)
	})
}
