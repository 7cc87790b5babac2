// Package airspace provides the public API for loading airspace-definition
// data and selecting what to draw on a moving map.
//
// Two source formats are read into one model: a structured YAML/JSON format
// and the line-oriented OpenAir format. LoadCatalog merges them, Select
// filters the catalog by class and altitude band, and Compose layers overlay
// zones on top to give the DrawableSet handed to a renderer.
//
// Example:
//
//	sources := []airspace.Source{
//	    airspace.NewSource("uk.yaml", yamlBytes),
//	    airspace.NewSource("extra.txt", openAirBytes),
//	}
//	catalog, warnings := airspace.LoadCatalog(sources, airspace.DefaultLoadOptions())
//	for _, w := range warnings {
//	    log.Println(w)
//	}
//
//	rule := airspace.FilterRule{
//	    Classes: []airspace.Class{airspace.ClassA, airspace.ClassD, airspace.ClassDanger},
//	    Window:  airspace.Window{Lower: 0, Upper: 10000},
//	}
//	selection := airspace.Select(catalog, rule)
//	drawables, _ := airspace.Compose(catalog, selection, nil)
//	geojson, _ := drawables.GeoJSON()
//
// Everything returned by the package is immutable. A Catalog may be shared
// between goroutines; use Store to swap catalogs while readers are active.
package airspace

import (
	"slices"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// Point is a WGS-84 position in signed decimal degrees.
type Point = parser.Point

// Ring is a closed lateral boundary; the last point joins the first.
type Ring = parser.Ring

// Bounds is a geographic bounding box.
type Bounds = parser.Bounds

// Class is the regulatory category of a volume.
type Class = parser.Class

// Airspace classes, in the order they are drawn. ClassUnknown never
// appears in a catalog.
const (
	ClassUnknown    = parser.ClassUnknown
	ClassProhibited = parser.ClassProhibited
	ClassRestricted = parser.ClassRestricted
	ClassDanger     = parser.ClassDanger
	ClassA          = parser.ClassA
	ClassB          = parser.ClassB
	ClassC          = parser.ClassC
	ClassD          = parser.ClassD
	ClassE          = parser.ClassE
	ClassF          = parser.ClassF
	ClassG          = parser.ClassG
	ClassOther      = parser.ClassOther
)

// AllClasses returns every class a volume can carry, in priority order.
func AllClasses() []Class {
	return slices.Clone(parser.AllClasses)
}

// ParseClass converts a class code such as "D", "R" or "DANGER".
func ParseClass(code string) (Class, bool) {
	return parser.ClassFromCode(code)
}

// Limit is one vertical limit: surface, unlimited, a flight level or a
// height in feet above mean sea level or ground.
type Limit = parser.Limit

// AltitudeBound is the vertical extent of a volume.
type AltitudeBound = parser.AltitudeBound

// Window is an altitude band in feet.
type Window = parser.Window

// Everything returns the window covering every altitude.
func Everything() Window { return parser.Everything() }

// Format identifies a source format.
type Format = parser.Format

// Source formats.
const (
	FormatUnknown    = parser.FormatUnknown
	FormatStructured = parser.FormatStructured
	FormatLegacy     = parser.FormatLegacy
	FormatOverlay    = parser.FormatOverlay
)

// Volume is one airspace volume in a catalog.
//
// All fields are private; a Volume cannot be changed once loaded.
type Volume struct {
	name      string
	key       string
	class     Class
	localType string
	frequency string
	ring      Ring
	bounds    Bounds
	altitude  AltitudeBound
	format    Format
	source    string
	line      int
}

func convertVolume(v parser.Volume) Volume {
	return Volume{
		name:      v.Name,
		key:       nameKey(v.Name),
		class:     v.Class,
		localType: v.LocalType,
		frequency: v.Frequency,
		ring:      v.Ring,
		bounds:    v.Ring.Bounds(),
		altitude:  v.Altitude,
		format:    v.Format,
		source:    v.Source,
		line:      v.Line,
	}
}

// Name returns the published name, e.g. "LONDON CTR".
func (v Volume) Name() string { return v.name }

// Class returns the regulatory class as published.
func (v Volume) Class() Class { return v.class }

// LocalType returns the free-form type tag ("CTR", "ATZ", "ILS", ...), or
// "" when the source gives none.
func (v Volume) LocalType() string { return v.localType }

// Frequency returns the controlling radio frequency, or "".
func (v Volume) Frequency() string { return v.frequency }

// Ring returns a copy of the lateral boundary.
func (v Volume) Ring() Ring { return slices.Clone(v.ring) }

// Bounds returns the bounding box of the boundary.
func (v Volume) Bounds() Bounds { return v.bounds }

// Altitude returns the vertical extent.
func (v Volume) Altitude() AltitudeBound { return v.altitude }

// Format returns the format the volume was parsed from.
func (v Volume) Format() Format { return v.format }

// Source returns the name of the source buffer.
func (v Volume) Source() string { return v.source }

// Line returns the source line the record starts on.
func (v Volume) Line() int { return v.line }

// Contains reports whether p lies inside the lateral boundary.
func (v Volume) Contains(p Point) bool {
	return v.bounds.Contains(p) && v.ring.Contains(p)
}

// Equal reports whether two volumes carry the same content.
func (v Volume) Equal(other Volume) bool {
	return v.name == other.name &&
		v.class == other.class &&
		v.localType == other.localType &&
		v.frequency == other.frequency &&
		v.altitude == other.altitude &&
		v.format == other.format &&
		v.source == other.source &&
		v.line == other.line &&
		v.ring.Equal(other.ring)
}

func (v Volume) String() string {
	return v.name + " (" + v.class.String() + " " + v.altitude.String() + ")"
}
