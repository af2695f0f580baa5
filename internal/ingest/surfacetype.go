package ingest

import "strings"

// classifySurfaceType infers SurfaceType from a Surface/@name, since the
// grammar LandXML carries no dedicated type attribute for it (spec §6's
// Surface[@name, @desc?] has none, and neither does the upstream model this
// library's grammar was distilled from). Names containing "existing" map to
// ExistingGround; names containing "design", "finish", or "proposed" map to
// DesignGround; anything else is Other. Matching is case-insensitive and
// checks desc as a fallback when name doesn't match.
func classifySurfaceType(name, desc string) SurfaceType {
	if t, ok := matchSurfaceTypeName(name); ok {
		return t
	}
	if t, ok := matchSurfaceTypeName(desc); ok {
		return t
	}
	return SurfaceTypeOther
}

func matchSurfaceTypeName(s string) (SurfaceType, bool) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "existing"):
		return SurfaceTypeExistingGround, true
	case strings.Contains(lower, "design"), strings.Contains(lower, "finish"), strings.Contains(lower, "proposed"):
		return SurfaceTypeDesignGround, true
	default:
		return SurfaceTypeOther, false
	}
}
