package crs

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// zoneSpatial adapts a zoneEntry to rtreego.Spatial, the same adapter shape
// as the teacher's ChartEntry.Bounds() in pkg/s57/index.go.
type zoneSpatial struct {
	entry zoneEntry
}

func (z zoneSpatial) Bounds() rtreego.Rect {
	min := z.entry.bounds.Min
	lengths := []float64{
		z.entry.bounds.Max[0] - z.entry.bounds.Min[0],
		z.entry.bounds.Max[1] - z.entry.bounds.Min[1],
	}
	rect, err := rtreego.NewRect(rtreego.Point{min[0], min[1]}, lengths)
	if err != nil {
		// Registry rectangles are fixed positive-extent constants; a
		// malformed rect here means the registry table itself is broken.
		panic("crs: invalid registry rectangle: " + err.Error())
	}
	return rect
}

var zoneIndex = buildZoneIndex()

func buildZoneIndex() *rtreego.Rtree {
	tree := rtreego.NewTree(2, 4, 8)
	for _, e := range registry {
		tree.Insert(zoneSpatial{entry: e})
	}
	return tree
}

// Autodetect selects the plane-rectangular zone whose approximate coverage
// rectangle contains (centroidX, centroidY), per spec §4.3. Ties (more than
// one matching rectangle) resolve to the lowest zone number. Returns
// ok=false if no zone matches, in which case the caller emits the grid
// without projection metadata.
func Autodetect(centroidX, centroidY float64) (Zone, bool) {
	point := rtreego.Point{centroidX, centroidY}
	// A degenerate (zero-size) search rect anchored at the point; combined
	// with SearchIntersect this finds every registry rectangle containing
	// the point, matching ChartIndex.Query's intersection-search shape.
	searchRect, err := rtreego.NewRect(point, []float64{1e-9, 1e-9})
	if err != nil {
		return 0, false
	}

	results := zoneIndex.SearchIntersect(searchRect)
	best := Zone(0)
	found := false
	for _, r := range results {
		zs, ok := r.(zoneSpatial)
		if !ok {
			continue
		}
		if !zs.entry.bounds.Contains(orb.Point{centroidX, centroidY}) {
			continue
		}
		if !found || zs.entry.zone < best {
			best = zs.entry.zone
			found = true
		}
	}
	return best, found
}

// Centroid computes the arithmetic mean of a set of (x, y) points — the
// "centroid of the union of all surface points" from spec §4.3. Returns
// ok=false for an empty set.
func Centroid(xs, ys []float64) (x, y float64, ok bool) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, 0, false
	}
	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += xs[i]
		sy += ys[i]
	}
	return sx / float64(n), sy / float64(n), true
}
