package airspace

import (
	"slices"

	"github.com/dhconnelly/rtreego"
)

// volumeIndex answers lateral queries over a catalog with an R-tree. It
// stores catalog positions so results can be returned in catalog order.
type volumeIndex struct {
	rtree *rtreego.Rtree
}

// indexedVolume wraps a catalog position for R-tree storage.
type indexedVolume struct {
	pos    int
	bounds Bounds
}

// Bounds implements rtreego.Spatial.
func (v *indexedVolume) Bounds() rtreego.Rect {
	return boundsRect(v.bounds)
}

// boundsRect converts geographic bounds to an R-tree rectangle. The R-tree
// rejects zero-length sides, so degenerate boxes (a query point, a ring
// along one meridian) are given a small epsilon, about 11m at the equator.
func boundsRect(b Bounds) rtreego.Rect {
	const epsilon = 0.0001

	lonLength := b.MaxLon - b.MinLon
	latLength := b.MaxLat - b.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{lonLength, latLength})
	return rect
}

// newVolumeIndex builds the index (2D, 25-50 children per node).
func newVolumeIndex(volumes []Volume) *volumeIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for i, v := range volumes {
		rtree.Insert(&indexedVolume{pos: i, bounds: v.bounds})
	}
	return &volumeIndex{rtree: rtree}
}

// search returns the catalog positions whose bounds intersect b, ascending.
func (idx *volumeIndex) search(b Bounds) []int {
	spatials := idx.rtree.SearchIntersect(boundsRect(b))

	positions := make([]int, 0, len(spatials))
	for _, s := range spatials {
		positions = append(positions, s.(*indexedVolume).pos)
	}
	slices.Sort(positions)
	return positions
}
