package airspace

import (
	"encoding/json"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// DrawableKind distinguishes catalog volumes from overlay zones.
type DrawableKind int

const (
	DrawableVolume DrawableKind = iota + 1
	DrawableOverlay
)

func (k DrawableKind) String() string {
	switch k {
	case DrawableVolume:
		return "volume"
	case DrawableOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Drawable is one item for the renderer.
type Drawable struct {
	Kind  DrawableKind
	Name  string
	Rings []Ring
	Label string

	// Volumes only.
	Class    Class
	Altitude AltitudeBound

	// Overlays only: the base volume name or the opt-in group.
	Reference string
	Group     string

	Source string
}

// DrawableSet is the ordered output of Compose and the only thing the
// rendering shell consumes: visible volumes in selection order, then
// overlay zones in file order.
type DrawableSet struct {
	items []Drawable
}

// Len returns the number of drawables.
func (d *DrawableSet) Len() int { return len(d.items) }

// Items returns the drawables in draw order.
func (d *DrawableSet) Items() []Drawable { return slices.Clone(d.items) }

func (d *DrawableSet) add(item Drawable) {
	d.items = append(d.items, item)
}

// GeoJSON renders the set as a FeatureCollection with one feature per
// drawable, in order. Single-ring drawables become Polygons, multi-ring
// overlays MultiPolygons. Coordinates are [lon, lat].
func (d *DrawableSet) GeoJSON() ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(d.items))}

	for _, item := range d.items {
		g, err := drawableGeometry(item.Rings)
		if err != nil {
			return nil, eris.Wrapf(err, "geojson: %s %q", item.Kind, item.Name)
		}

		props := map[string]interface{}{
			"kind":  item.Kind.String(),
			"name":  item.Name,
			"label": item.Label,
		}
		switch item.Kind {
		case DrawableVolume:
			props["class"] = item.Class.String()
			props["lower"] = item.Altitude.Lower.String()
			props["upper"] = item.Altitude.Upper.String()
		case DrawableOverlay:
			if item.Reference != "" {
				props["references"] = item.Reference
			}
			if item.Group != "" {
				props["group"] = item.Group
			}
		}

		fc.Features = append(fc.Features, &geojson.Feature{Geometry: g, Properties: props})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "geojson: marshal feature collection")
	}
	return data, nil
}

func drawableGeometry(rings []Ring) (geom.T, error) {
	if len(rings) == 1 {
		return ringPolygon(rings[0])
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, r := range rings {
		poly, err := ringPolygon(r)
		if err != nil {
			return nil, err
		}
		if err := mp.Push(poly); err != nil {
			return nil, err
		}
	}
	return mp, nil
}

// ringPolygon converts a ring to a polygon, repeating the first point at
// the end as GeoJSON requires.
func ringPolygon(r Ring) (*geom.Polygon, error) {
	flat := make([]float64, 0, (len(r)+1)*2)
	for _, p := range r {
		flat = append(flat, p.Lon, p.Lat)
	}
	if len(r) > 0 {
		flat = append(flat, r[0].Lon, r[0].Lat)
	}

	poly := geom.NewPolygon(geom.XY)
	if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
		return nil, err
	}
	return poly, nil
}
