// Package ingest streams a LandXML/J-LandXML document and materializes the
// handful of semantic entities the raster pipeline needs: surfaces (TINs)
// and coordinate-system metadata. It never builds a DOM (spec §4.1, §9).
package ingest

import "github.com/jgeotech/landxmldem/internal/crs"

// Point3D is one vertex of a surface, as read from a Pnts/P element.
type Point3D struct {
	ID   int
	X, Y, Z float64
}

// Face references three points of the containing surface by index into its
// Points slice (not by the raw LandXML point id — those are resolved during
// ingestion, spec §9: "eliminating pointer graphs").
type Face struct {
	P1, P2, P3 int
}

// SurfaceType classifies a Surface. It is inferred from the Surface's
// @name (or @desc) by classifySurfaceType, not read from Definition/@surfType.
type SurfaceType int

const (
	SurfaceTypeOther SurfaceType = iota
	SurfaceTypeExistingGround
	SurfaceTypeDesignGround
)

func (t SurfaceType) String() string {
	switch t {
	case SurfaceTypeExistingGround:
		return "ExistingGround"
	case SurfaceTypeDesignGround:
		return "DesignGround"
	default:
		return "Other"
	}
}

// Surface is a single TIN surface: a name, a type, and its resolved point
// and face tables.
type Surface struct {
	Name    string
	Desc    string
	Type    SurfaceType
	Points  []Point3D
	Faces   []Face
}

// CoordinateSystem is the parsed CoordinateSystem element, standard LandXML
// attributes plus the J-LandXML vertical-datum extension (spec §3, §4.2).
type CoordinateSystem struct {
	Name   string
	Desc   string
	EPSGCode    int  // 0 = unset
	Proj4String string

	HorizontalDatum crs.HorizontalDatum
	VerticalDatum   crs.VerticalDatum

	PlaneZone crs.Zone // 0 = unset

	DifferTP    float64 // meters, signed offset from Tokyo Peil
	HasDifferTP bool

	// Properties carries every Feature/Property the element had, keyed by
	// @label, even ones not promoted to a typed field above (spec §9:
	// "Only recognized labels ... promote to typed fields").
	Properties map[string]string
}

// Warning is a non-fatal problem recorded during ingestion (spec §7b/§7c):
// a dropped surface, a CRS ambiguity, a tolerated attribute-parse failure.
// The library never logs these itself; it hands them back to the caller.
type Warning struct {
	Kind    string
	Message string
}

// LandXML is the ingester's top-level result.
type LandXML struct {
	Version          string
	CoordinateSystem *CoordinateSystem // nil if absent; unparseable attributes leave their fields unset and add a Warning
	Surfaces         []Surface
	Warnings         []Warning
}
