package landxmldem

import (
	"io"

	"github.com/jgeotech/landxmldem/geotiff"
	"github.com/jgeotech/landxmldem/internal/crs"
	"github.com/jgeotech/landxmldem/internal/ingest"
	"github.com/jgeotech/landxmldem/internal/tin"
	"github.com/jgeotech/landxmldem/raster"
)

// HorizontalDatum, VerticalDatum, and Zone are re-exported from the
// internal registry so callers can inspect a Document's CoordinateSystem
// without importing an internal package.
type (
	HorizontalDatum = crs.HorizontalDatum
	VerticalDatum   = crs.VerticalDatum
	Zone            = crs.Zone
)

const (
	HorizontalDatumUnspecified = crs.HorizontalDatumUnspecified
	HorizontalDatumJGD2000     = crs.HorizontalDatumJGD2000
	HorizontalDatumJGD2011     = crs.HorizontalDatumJGD2011
	HorizontalDatumTD          = crs.HorizontalDatumTD

	VerticalDatumUnspecified = crs.VerticalDatumUnspecified
	VerticalDatumTP          = crs.VerticalDatumTP
	VerticalDatumKP          = crs.VerticalDatumKP
	VerticalDatumSP          = crs.VerticalDatumSP
	VerticalDatumYP          = crs.VerticalDatumYP
	VerticalDatumAP          = crs.VerticalDatumAP
	VerticalDatumOP          = crs.VerticalDatumOP
	VerticalDatumTPW         = crs.VerticalDatumTPW
	VerticalDatumBSL         = crs.VerticalDatumBSL
)

// SurfaceType classifies a Surface, per the inferred rule in DESIGN.md
// (the grammar itself carries no dedicated type attribute).
type SurfaceType = ingest.SurfaceType

const (
	SurfaceTypeOther          = ingest.SurfaceTypeOther
	SurfaceTypeExistingGround = ingest.SurfaceTypeExistingGround
	SurfaceTypeDesignGround   = ingest.SurfaceTypeDesignGround
)

// Warning is a non-fatal problem recorded while loading a document: a
// dropped surface, a CRS ambiguity, a tolerated attribute-parse failure.
// This library never logs; callers decide what, if anything, to do with
// these.
type Warning struct {
	Kind    string
	Message string
}

// CoordinateSystem is the resolved CoordinateSystem element of a document.
type CoordinateSystem struct {
	Name, Desc  string
	EPSGCode    int
	Proj4String string

	HorizontalDatum HorizontalDatum
	VerticalDatum   VerticalDatum
	PlaneZone       Zone

	DifferTP    float64
	HasDifferTP bool

	Properties map[string]string
}

// Surface is a parsed TIN surface: a name, an inferred type, and its
// point/face tables. The TIN itself is held internally; use
// Document.RasterizeSurface to turn it into a DemGrid.
type Surface struct {
	Name string
	Desc string
	Type SurfaceType

	tin *tin.TIN
}

// PointCount returns the number of vertices in the surface.
func (s Surface) PointCount() int { return len(s.tin.Points) }

// FaceCount returns the number of triangles in the surface.
func (s Surface) FaceCount() int { return len(s.tin.Faces) }

// Document is the result of Load: a document's coordinate-system
// metadata and its surfaces.
type Document struct {
	Version          string
	CoordinateSystem *CoordinateSystem
	Warnings         []Warning

	surfaces []Surface
}

// Surfaces returns the document's parsed surfaces.
func (d *Document) Surfaces() []Surface { return d.surfaces }

// Load streams r as a LandXML/J-LandXML document. It never holds the
// whole document in memory: only one surface's point/face tables are
// buffered at a time while it is being read.
func Load(r io.Reader) (*Document, error) {
	parsed, err := ingest.Ingest(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Version:  parsed.Version,
		surfaces: make([]Surface, len(parsed.Surfaces)),
	}
	for _, w := range parsed.Warnings {
		doc.Warnings = append(doc.Warnings, Warning{Kind: w.Kind, Message: w.Message})
	}
	for i, s := range parsed.Surfaces {
		doc.surfaces[i] = Surface{
			Name: s.Name,
			Desc: s.Desc,
			Type: s.Type,
			tin:  tin.FromSurface(s),
		}
	}
	if parsed.CoordinateSystem != nil {
		cs := parsed.CoordinateSystem
		doc.CoordinateSystem = &CoordinateSystem{
			Name: cs.Name, Desc: cs.Desc,
			EPSGCode: cs.EPSGCode, Proj4String: cs.Proj4String,
			HorizontalDatum: cs.HorizontalDatum,
			VerticalDatum:   cs.VerticalDatum,
			PlaneZone:       cs.PlaneZone,
			DifferTP:        cs.DifferTP, HasDifferTP: cs.HasDifferTP,
			Properties: cs.Properties,
		}
	}
	return doc, nil
}

// ResolveEPSG returns the EPSG authority code that should tag surface's
// rasterized output: the document's explicit CoordinateSystem if it
// carries one, otherwise the zone autodetected from the centroid of the
// union of every surface's points in the document (not just s's own),
// matching the "centroid of the union of all surface points" rule. ok is
// false if neither source resolves.
func (d *Document) ResolveEPSG(s Surface) (epsg int, autodetected bool, ok bool) {
	if d.CoordinateSystem != nil && d.CoordinateSystem.EPSGCode != 0 {
		return d.CoordinateSystem.EPSGCode, false, true
	}
	cx, cy, hasCentroid := d.centroid()
	if !hasCentroid {
		return 0, false, false
	}
	zone, found := crs.Autodetect(cx, cy)
	if !found {
		return 0, false, false
	}
	return zone.EPSG(), true, true
}

// centroid returns the centroid of every point across every surface in
// the document, via crs.Centroid.
func (d *Document) centroid() (x, y float64, ok bool) {
	var xs, ys []float64
	for _, s := range d.surfaces {
		for _, p := range s.tin.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	return crs.Centroid(xs, ys)
}

// RasterizeOptions controls grid geometry and parallelism. It mirrors
// raster.RasterizeOptions but omits DifferTP/EPSGCode, which
// RasterizeSurface fills in from the document's CoordinateSystem.
type RasterizeOptions struct {
	Bounds  *raster.GridBounds
	Workers int
	Cancel  <-chan struct{}
}

// DefaultRasterizeOptions returns options with full-surface bounds and
// hardware-concurrency parallelism.
func DefaultRasterizeOptions() RasterizeOptions {
	return RasterizeOptions{Workers: 0}
}

// RasterizeSurface computes a DemGrid for s at resolution r (world units
// per pixel). The document's vertical-datum correction is applied last
// (per spec §4.5), and the grid is tagged with the document's CRS or, if
// absent, the autodetected zone.
func (d *Document) RasterizeSurface(s Surface, r float64, opts RasterizeOptions) (*raster.DemGrid, error) {
	rOpts := raster.RasterizeOptions{
		Bounds:  opts.Bounds,
		Workers: opts.Workers,
		Cancel:  opts.Cancel,
	}
	if d.CoordinateSystem != nil && d.CoordinateSystem.HasDifferTP {
		rOpts.DifferTP = d.CoordinateSystem.DifferTP
		rOpts.HasDifferTP = true
	}
	if epsg, _, ok := d.ResolveEPSG(s); ok {
		rOpts.EPSGCode = epsg
	}
	return raster.Rasterize(s.tin, r, rOpts)
}

// WriteGeoTIFF writes grid to path as a single-band float32 GeoTIFF with
// LZW compression and 256x256 tiling. On any failure the target path is
// removed before the error is returned.
func WriteGeoTIFF(grid *raster.DemGrid, path string) error {
	return geotiff.Write(grid, path, geotiff.DefaultOptions())
}
