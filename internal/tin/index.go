package tin

import "math"

// barycentricEpsilon is the absolute tolerance on signed sub-triangle areas
// used by the containment test: points on a shared edge fall within this
// tolerance of zero and are accepted, so a point on a shared edge may
// resolve to either adjacent triangle. Interpolated z agrees on the edge
// regardless of which one wins.
const barycentricEpsilon = 1e-9

// Index is a uniform-grid bucket index over a TIN's triangle bounding
// boxes, built once and read-only afterward. Cell count is roughly
// sqrt(faceCount) per axis, matching the spec's area-based sizing; a face
// is registered in every cell its bounding box overlaps.
type Index struct {
	tin *TIN

	minX, minY float64
	cellW, cellH float64
	cols, rows   int

	buckets [][]int // cell index -> face indices
}

// BuildIndex constructs a spatial index over t. t must outlive the index;
// the index holds no copy of the point/face tables.
func BuildIndex(t *TIN) *Index {
	minX, minY, maxX, maxY, _, _, ok := t.Bounds()
	idx := &Index{tin: t}
	if !ok || len(t.Faces) == 0 {
		idx.cols, idx.rows = 1, 1
		idx.cellW, idx.cellH = 1, 1
		idx.buckets = make([][]int, 1)
		return idx
	}

	n := len(t.Faces)
	side := int(math.Ceil(math.Sqrt(float64(n))))
	if side < 1 {
		side = 1
	}

	width := maxX - minX
	height := maxY - minY
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	idx.minX, idx.minY = minX, minY
	idx.cols, idx.rows = side, side
	idx.cellW = width / float64(side)
	idx.cellH = height / float64(side)
	idx.buckets = make([][]int, side*side)

	for fi, f := range t.Faces {
		a, b, c := t.Points[f.P1], t.Points[f.P2], t.Points[f.P3]
		bbox := triangleBounds(a, b, c)
		c0, r0 := idx.cellOf(bbox.Min[0], bbox.Min[1])
		c1, r1 := idx.cellOf(bbox.Max[0], bbox.Max[1])
		for r := r0; r <= r1; r++ {
			for col := c0; col <= c1; col++ {
				cell := r*idx.cols + col
				idx.buckets[cell] = append(idx.buckets[cell], fi)
			}
		}
	}
	return idx
}

func (idx *Index) cellOf(x, y float64) (col, row int) {
	col = int((x - idx.minX) / idx.cellW)
	row = int((y - idx.minY) / idx.cellH)
	if col < 0 {
		col = 0
	}
	if col >= idx.cols {
		col = idx.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= idx.rows {
		row = idx.rows - 1
	}
	return
}

// Query returns the index of the first face (in the TIN's Faces order)
// whose triangle contains (x, y), and the three barycentric weights for
// vertices P1, P2, P3 in that order. ok is false if no face contains the
// point.
func (idx *Index) Query(x, y float64) (faceIdx int, w1, w2, w3 float64, ok bool) {
	if len(idx.tin.Faces) == 0 {
		return 0, 0, 0, 0, false
	}
	col, row := idx.cellOf(x, y)
	cell := row*idx.cols + col
	for _, fi := range idx.buckets[cell] {
		f := idx.tin.Faces[fi]
		a, b, c := idx.tin.Points[f.P1], idx.tin.Points[f.P2], idx.tin.Points[f.P3]
		w1, w2, w3, ok = barycentric(x, y, a, b, c)
		if ok {
			return fi, w1, w2, w3, true
		}
	}
	return 0, 0, 0, 0, false
}

// barycentric computes the barycentric weights of (x, y) with respect to
// triangle (a, b, c) in that fixed vertex order, per the spec's
// determinism contract ("vertex A, B, C"). ok is false for a degenerate
// triangle or a point outside (within barycentricEpsilon tolerance).
func barycentric(x, y float64, a, b, c Point) (w1, w2, w3 float64, ok bool) {
	denom := area2(a, b, c)
	if math.Abs(denom) < degenerateAreaEpsilon {
		return 0, 0, 0, false
	}
	p := Point{x, y, 0}
	a1 := area2(p, b, c)
	a2 := area2(a, p, c)
	a3 := area2(a, b, p)
	w1 = a1 / denom
	w2 = a2 / denom
	w3 = 1 - w1 - w2

	// Bring the sub-areas to the triangle's own orientation so the test
	// holds for either winding.
	if denom < 0 {
		a1, a2, a3 = -a1, -a2, -a3
	}
	if a1 < -barycentricEpsilon || a2 < -barycentricEpsilon || a3 < -barycentricEpsilon {
		return 0, 0, 0, false
	}
	return w1, w2, w3, true
}

// Interpolate returns the barycentric-weighted z of the triangle at
// faceIdx, applying the fixed "vertex A, B, C" summation order.
func (idx *Index) Interpolate(faceIdx int, w1, w2, w3 float64) float64 {
	f := idx.tin.Faces[faceIdx]
	a, b, c := idx.tin.Points[f.P1], idx.tin.Points[f.P2], idx.tin.Points[f.P3]
	return w1*a.Z + w2*b.Z + w3*c.Z
}
