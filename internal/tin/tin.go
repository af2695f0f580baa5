// Package tin holds the in-memory triangulated-surface model and its
// spatial index: a flat point table, a flat face table (indices, not
// pointers), and a uniform-grid bucket index over triangle bounding boxes.
package tin

import (
	"github.com/paulmach/orb"

	"github.com/jgeotech/landxmldem/internal/ingest"
)

// Point is a resolved vertex: (x, y, z) in the surface's source units.
type Point struct {
	X, Y, Z float64
}

// Face is a triangle referencing three indices into the owning TIN's Points.
type Face struct {
	P1, P2, P3 int
}

// TIN is the flat, owned representation of a Surface, built once and never
// mutated. Cyclic references and pointer graphs are deliberately avoided:
// a Face holds integer indices, not pointers to Point.
type TIN struct {
	Points []Point
	Faces  []Face
}

// FromSurface copies an ingest.Surface's point and face tables into a TIN.
// Ingest already resolved face point-ids to indices, so this is a type
// conversion, not a resolution step.
func FromSurface(s ingest.Surface) *TIN {
	t := &TIN{
		Points: make([]Point, len(s.Points)),
		Faces:  make([]Face, len(s.Faces)),
	}
	for i, p := range s.Points {
		t.Points[i] = Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	for i, f := range s.Faces {
		t.Faces[i] = Face{P1: f.P1, P2: f.P2, P3: f.P3}
	}
	return t
}

// Bounds returns the TIN's planar (x, y) extent and z range. ok is false
// for an empty TIN. The (x, y) extent is accumulated with orb.Bound.Union
// rather than hand-rolled min/max bookkeeping; z has no orb analog, so it's
// tracked alongside in plain floats.
func (t *TIN) Bounds() (minX, minY, maxX, maxY, minZ, maxZ float64, ok bool) {
	if len(t.Points) == 0 {
		return 0, 0, 0, 0, 0, 0, false
	}
	p0 := t.Points[0]
	bound := orb.Bound{Min: orb.Point{p0.X, p0.Y}, Max: orb.Point{p0.X, p0.Y}}
	minZ, maxZ = p0.Z, p0.Z
	for _, p := range t.Points[1:] {
		bound = bound.Union(orb.Bound{Min: orb.Point{p.X, p.Y}, Max: orb.Point{p.X, p.Y}})
		if p.Z < minZ {
			minZ = p.Z
		}
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	return bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1], minZ, maxZ, true
}

// triangleBounds returns the (x, y) bounding box of triangle (a, b, c),
// built by unioning each vertex's degenerate point-bound rather than by
// hand-rolled min/max calls.
func triangleBounds(a, b, c Point) orb.Bound {
	bound := orb.Bound{Min: orb.Point{a.X, a.Y}, Max: orb.Point{a.X, a.Y}}
	bound = bound.Union(orb.Bound{Min: orb.Point{b.X, b.Y}, Max: orb.Point{b.X, b.Y}})
	bound = bound.Union(orb.Bound{Min: orb.Point{c.X, c.Y}, Max: orb.Point{c.X, c.Y}})
	return bound
}

// area2 returns twice the signed area of triangle (a, b, c); zero means the
// triangle is degenerate. Orientation is not assumed (spec design note: do
// not impose a winding convention), so callers compare against a small
// epsilon rather than a sign.
func area2(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

const degenerateAreaEpsilon = 1e-10
