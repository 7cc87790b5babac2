package airspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c := loadUK(t)

	assert.Equal(t,
		[]string{"LONDON CTR", "EGR101", "SOLENT CTA", "D123", "BIGGIN HILL ATZ"},
		volumeNames(c.Volumes()))

	atz, ok := c.Lookup("BIGGIN HILL ATZ")
	require.True(t, ok)
	assert.Equal(t, ClassOther, atz.Class())
	assert.Equal(t, "ATZ", atz.LocalType())
	assert.Equal(t, FormatLegacy, atz.Format())
	assert.Equal(t, "uk.txt", atz.Source())
}

// TestCatalogConflict covers a structured and a legacy record sharing name
// and class: the structured geometry wins, with exactly one conflict.
func TestCatalogConflict(t *testing.T) {
	structuredRing := Ring{
		{Lat: 51.6, Lon: -0.6}, {Lat: 51.6, Lon: -0.1},
		{Lat: 51.3, Lon: -0.1}, {Lat: 51.3, Lon: -0.6},
	}

	orders := map[string][]Source{
		"structured first": ukSources(),
		"legacy first":     {ukSources()[1], ukSources()[0]},
	}

	for name, sources := range orders {
		t.Run(name, func(t *testing.T) {
			c, warnings := LoadCatalog(sources, serialOptions())
			require.Len(t, warnings, 1)
			assert.Equal(t, WarningCatalogConflict, warnings[0].Kind)
			assert.Equal(t, "uk.txt", warnings[0].Source)
			assert.Equal(t, "LONDON CTR", warnings[0].Record)

			got := c.ByName("LONDON CTR")
			require.Len(t, got, 1)
			assert.Equal(t, FormatStructured, got[0].Format())
			assert.True(t, structuredRing.Equal(got[0].Ring()))
		})
	}
}

func TestCatalogDuplicateSameFormat(t *testing.T) {
	second := `airspace:
  - name: london ctr
    class: A
    lower: SFC
    upper: FL50
    geometry: [[0, 0], [0, 1], [1, 1]]
  - name: LONDON CTR
    class: D
    lower: SFC
    upper: FL50
    geometry: [[0, 0], [0, 1], [1, 1]]
`
	c, warnings := LoadCatalog([]Source{
		NewSource("a.yaml", []byte(ukStructured)),
		NewSource("b.yaml", []byte(second)),
	}, serialOptions())

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningCatalogConflict, warnings[0].Kind)
	assert.Equal(t, "b.yaml", warnings[0].Source)

	// Same name in another class is a different volume.
	assert.Len(t, c.ByName("LONDON CTR"), 2)
	v, _ := c.Lookup("LONDON CTR")
	assert.Equal(t, "a.yaml", v.Source())
}

// TestLoadMalformedLegacy covers a directive before any header: the broken
// record is reported once and later records still load.
func TestLoadMalformedLegacy(t *testing.T) {
	text := "AN NO HEADER\nAL SFC\nAH FL50\n" + ukLegacy

	c, warnings := LoadCatalog([]Source{NewSource("broken.txt", []byte(text))}, serialOptions())
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningMalformedRecord, warnings[0].Kind)
	assert.Equal(t, "broken.txt", warnings[0].Source)
	assert.Equal(t, 1, warnings[0].Line)

	assert.Equal(t, 3, c.Len())
	_, ok := c.Lookup("NO HEADER")
	assert.False(t, ok)
}

func TestLoadWarnings(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		want   []WarningKind
	}{
		{
			name:   "empty buffer",
			source: NewSource("empty", nil),
			want:   []WarningKind{WarningEmptySource},
		},
		{
			name:   "empty list",
			source: NewSource("empty.yaml", []byte("airspace: []\n")),
			want:   []WarningKind{WarningEmptySource},
		},
		{
			name:   "only bad records",
			source: NewSource("bad.yaml", []byte("airspace:\n  - {name: X, class: A, lower: SFC, upper: FL50, geometry: [[0, 0], [0, 1]]}\n")),
			want:   []WarningKind{WarningInvalidGeometry, WarningEmptySource},
		},
		{
			name:   "overlay document",
			source: NewSource("zones.yaml", []byte("zones: []\n")),
			want:   []WarningKind{WarningMalformedRecord, WarningEmptySource},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, warnings := LoadCatalog([]Source{tt.source}, serialOptions())
			assert.Equal(t, 0, c.Len())
			assert.Equal(t, tt.want, kinds(warnings))
		})
	}
}

func TestLoadClassFilter(t *testing.T) {
	opts := serialOptions()
	opts.Classes = []Class{ClassDanger, ClassRestricted}

	c, _ := LoadCatalog(ukSources(), opts)
	assert.Equal(t, []string{"EGR101", "D123"}, volumeNames(c.Volumes()))
}

func TestParallelLoadMatchesSerial(t *testing.T) {
	var sources []Source
	for i := 0; i < 8; i++ {
		sources = append(sources, ukSources()...)
	}

	serial, serialWarnings := LoadCatalog(sources, serialOptions())

	opts := DefaultLoadOptions()
	opts.Parallel = true
	opts.Workers = 4
	parallel, parallelWarnings := LoadCatalog(sources, opts)

	assert.True(t, serial.Equal(parallel))
	assert.Equal(t, kinds(serialWarnings), kinds(parallelWarnings))
}

// TestReloadIdempotent covers loading identical content twice: equal
// catalogs, distinct instances.
func TestReloadIdempotent(t *testing.T) {
	a, _ := LoadCatalog(ukSources(), serialOptions())
	b, _ := LoadCatalog(ukSources(), serialOptions())

	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))

	other, _ := LoadCatalog(ukSources()[:1], serialOptions())
	assert.False(t, a.Equal(other))
}

func TestCatalogQueries(t *testing.T) {
	c := loadUK(t)

	t.Run("lookup normalises names", func(t *testing.T) {
		v, ok := c.Lookup("  london   ctr ")
		require.True(t, ok)
		assert.Equal(t, "LONDON CTR", v.Name())

		_, ok = c.Lookup("PARIS CTR")
		assert.False(t, ok)
	})

	t.Run("by name is exact", func(t *testing.T) {
		assert.Len(t, c.ByName("LONDON CTR"), 1)
		assert.Empty(t, c.ByName("london ctr"))
	})

	t.Run("by class", func(t *testing.T) {
		assert.Equal(t, []string{"LONDON CTR", "D123"}, volumeNames(c.ByClass(ClassA, ClassDanger)))
		assert.Empty(t, c.ByClass(ClassB))
	})

	t.Run("altitude band", func(t *testing.T) {
		got := c.InAltitudeBand(Window{Lower: 3000, Upper: 5000})
		assert.Equal(t, []string{"EGR101", "SOLENT CTA", "D123"}, volumeNames(got))
	})

	t.Run("in bounds", func(t *testing.T) {
		london := Bounds{MinLon: -0.7, MaxLon: -0.05, MinLat: 51.2, MaxLat: 51.7}
		assert.Equal(t, []string{"LONDON CTR"}, volumeNames(c.InBounds(london)))

		south := Bounds{MinLon: -2, MaxLon: 2, MinLat: 50, MaxLat: 51.05}
		assert.Equal(t, []string{"EGR101", "SOLENT CTA", "D123"}, volumeNames(c.InBounds(south)))
	})

	t.Run("containing", func(t *testing.T) {
		assert.Equal(t, []string{"LONDON CTR"}, volumeNames(c.Containing(Point{Lat: 51.45, Lon: -0.35})))
		assert.Equal(t, []string{"BIGGIN HILL ATZ"}, volumeNames(c.Containing(Point{Lat: 51.33, Lon: 0.03})))
		assert.Empty(t, c.Containing(Point{Lat: 40, Lon: 10}))
	})

	t.Run("bounds", func(t *testing.T) {
		b := c.Bounds()
		assert.Equal(t, -1.5, b.MinLon)
		assert.Equal(t, 51.6, b.MaxLat)
	})
}

func TestVolumeImmutable(t *testing.T) {
	c := loadUK(t)
	v, _ := c.Lookup("LONDON CTR")

	ring := v.Ring()
	ring[0] = Point{Lat: 0, Lon: 0}

	again, _ := c.Lookup("LONDON CTR")
	assert.Equal(t, Point{Lat: 51.6, Lon: -0.6}, again.Ring()[0])
}
