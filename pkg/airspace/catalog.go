package airspace

import (
	"runtime"
	"slices"

	"github.com/rotisserie/eris"

	"github.com/beetlebugorg/airspace/internal/parser"
)

// LoadOptions controls how sources are parsed and merged.
type LoadOptions struct {
	// ArcStep is the arc subdivision step in degrees for OpenAir arcs and
	// circles. Zero uses the parser default of 5 degrees.
	ArcStep float64

	// Parallel parses sources concurrently. Output is identical to a
	// serial load.
	Parallel bool

	// Workers caps concurrent parses. If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// Classes, if non-empty, keeps only volumes of these classes.
	Classes []Class
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		ArcStep:  parser.DefaultArcStep,
		Parallel: true,
		Workers:  runtime.NumCPU(),
	}
}

func (o LoadOptions) parseOptions() parser.ParseOptions {
	return parser.ParseOptions{
		ArcStep:     o.ArcStep,
		ClassFilter: o.Classes,
	}
}

// Catalog is the merged, indexed set of volumes from every source.
//
// A Catalog is read-only once built. Two catalogs loaded from the same
// content are Equal but never share storage.
type Catalog struct {
	volumes []Volume
	byKey   map[string][]int // normalised name -> positions
	index   *volumeIndex
	bounds  Bounds
}

// catalogKey identifies a volume for deduplication.
type catalogKey struct {
	name  string
	class Class
}

// LoadCatalog parses and merges sources into a catalog.
//
// Loading never fails: bad records, empty sources and duplicates are
// reported as warnings alongside whatever could be loaded.
//
// Duplicates are matched on (normalised name, class). A structured copy
// always beats a legacy copy, whatever the source order, and takes the
// slot of the first copy seen. Otherwise the first copy is kept. Every
// dropped copy yields one CatalogConflict warning.
//
// Example:
//
//	catalog, warnings := airspace.LoadCatalog([]airspace.Source{
//	    airspace.NewSource("uk.yaml", yamlBytes),
//	    airspace.NewSource("uk.txt", openAirBytes),
//	}, airspace.DefaultLoadOptions())
//	fmt.Printf("%d volumes, %d warnings\n", catalog.Len(), len(warnings))
func LoadCatalog(sources []Source, opts LoadOptions) (*Catalog, []Warning) {
	parsed := parseSources(sources, opts)

	var (
		warnings []Warning
		volumes  []Volume
		seen     = make(map[catalogKey]int)
	)

	for _, ps := range parsed {
		warnings = append(warnings, ps.warnings...)
		if len(ps.volumes) == 0 {
			warnings = append(warnings, Warning{
				Kind:   WarningEmptySource,
				Source: ps.name,
				Err:    eris.Errorf("no usable %s records", ps.format),
			})
			continue
		}

		for _, pv := range ps.volumes {
			v := convertVolume(pv)
			key := catalogKey{name: v.key, class: v.class}

			pos, dup := seen[key]
			if !dup {
				seen[key] = len(volumes)
				volumes = append(volumes, v)
				continue
			}

			kept := volumes[pos]
			if kept.format != FormatStructured && v.format == FormatStructured {
				volumes[pos] = v
				warnings = append(warnings, conflictWarning(kept, v))
				continue
			}
			warnings = append(warnings, conflictWarning(v, kept))
		}
	}

	return newCatalog(volumes), warnings
}

// conflictWarning reports that dropped lost to kept.
func conflictWarning(dropped, kept Volume) Warning {
	return Warning{
		Kind:   WarningCatalogConflict,
		Source: dropped.source,
		Record: dropped.name,
		Line:   dropped.line,
		Err: eris.Errorf("duplicate of %s class %s from %s (%s); %s copy dropped",
			kept.name, kept.class, kept.source, kept.format, dropped.format),
	}
}

func newCatalog(volumes []Volume) *Catalog {
	c := &Catalog{
		volumes: volumes,
		byKey:   make(map[string][]int, len(volumes)),
		index:   newVolumeIndex(volumes),
	}
	for i, v := range volumes {
		c.byKey[v.key] = append(c.byKey[v.key], i)
		if i == 0 {
			c.bounds = v.bounds
		} else {
			c.bounds = c.bounds.Union(v.bounds)
		}
	}
	return c
}

// Len returns the number of volumes.
func (c *Catalog) Len() int { return len(c.volumes) }

// Volumes returns every volume in catalog order.
func (c *Catalog) Volumes() []Volume { return slices.Clone(c.volumes) }

// Bounds returns the union of all volume bounds.
func (c *Catalog) Bounds() Bounds { return c.bounds }

// Lookup returns the first volume whose name matches after normalisation
// (case, whitespace and Unicode form are ignored).
func (c *Catalog) Lookup(name string) (Volume, bool) {
	positions := c.byKey[nameKey(name)]
	if len(positions) == 0 {
		return Volume{}, false
	}
	return c.volumes[positions[0]], true
}

// ByName returns the volumes named exactly name, one per class.
func (c *Catalog) ByName(name string) []Volume {
	var result []Volume
	for _, pos := range c.byKey[nameKey(name)] {
		if c.volumes[pos].name == name {
			result = append(result, c.volumes[pos])
		}
	}
	return result
}

// ByClass returns the volumes whose class is one of classes.
func (c *Catalog) ByClass(classes ...Class) []Volume {
	var result []Volume
	for _, v := range c.volumes {
		if slices.Contains(classes, v.class) {
			result = append(result, v)
		}
	}
	return result
}

// InAltitudeBand returns the volumes whose vertical extent intersects w.
func (c *Catalog) InAltitudeBand(w Window) []Volume {
	var result []Volume
	for _, v := range c.volumes {
		if v.altitude.Intersects(w) {
			result = append(result, v)
		}
	}
	return result
}

// InBounds returns the volumes whose bounding box intersects b, in catalog
// order.
//
// Example:
//
//	viewport := airspace.Bounds{MinLon: -1.0, MaxLon: 0.5, MinLat: 51.0, MaxLat: 52.0}
//	for _, v := range catalog.InBounds(viewport) {
//	    draw(v)
//	}
func (c *Catalog) InBounds(b Bounds) []Volume {
	var result []Volume
	for _, pos := range c.index.search(b) {
		if v := c.volumes[pos]; v.bounds.Intersects(b) {
			result = append(result, v)
		}
	}
	return result
}

// Containing returns the volumes whose boundary contains p, in catalog
// order.
func (c *Catalog) Containing(p Point) []Volume {
	var result []Volume
	for _, pos := range c.index.search(Bounds{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat}) {
		if v := c.volumes[pos]; v.Contains(p) {
			result = append(result, v)
		}
	}
	return result
}

// Equal reports whether both catalogs hold the same volumes in the same
// order.
func (c *Catalog) Equal(other *Catalog) bool {
	if c == nil || other == nil {
		return c == other
	}
	return slices.EqualFunc(c.volumes, other.volumes, Volume.Equal)
}
