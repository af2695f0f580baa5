package landxmldem

import (
	"github.com/jgeotech/landxmldem/internal/crs"
	"github.com/jgeotech/landxmldem/internal/ingest"
	"github.com/jgeotech/landxmldem/raster"
)

// Error types surfaced across the library boundary (spec §6's error-code
// table). They are defined in the package that owns the failure and
// re-exported here so callers never need to import an internal package.
type (
	XmlError                  = ingest.XmlError
	XmlKind                   = ingest.XmlKind
	SemanticError             = ingest.SemanticError
	MissingPointReferenceError = ingest.MissingPointReferenceError
	UnknownSurfaceTypeError   = ingest.UnknownSurfaceTypeError

	InvalidZoneNameError = crs.InvalidZoneNameError
	CrsUnresolvedError   = crs.UnresolvedError

	UnsupportedResolutionError = raster.UnsupportedResolutionError
	EmptySurfaceError          = raster.EmptySurfaceError
	InvalidGridIndexError      = raster.InvalidGridIndexError
	InvalidGridSizeError       = raster.InvalidGridSizeError
	InvalidResolutionError     = raster.InvalidResolutionError
)

const (
	XmlKindUnexpected  = ingest.XmlKindUnexpected
	XmlKindUnclosedTag = ingest.XmlKindUnclosedTag
	XmlKindBadEncoding = ingest.XmlKindBadEncoding
	XmlKindTruncated   = ingest.XmlKindTruncated
)
