// Package crs holds the static Japanese plane-rectangular zone table,
// vertical-datum offsets, and the CRS autodetect query.
//
// The registry is pure data, built once at package init and never mutated
// afterward (spec §9: "global state is confined to the static zone
// registry, which is immutable after process start").
package crs

import "github.com/paulmach/orb"

// HorizontalDatum enumerates the horizontal datums recognized in
// CoordinateSystem/@horizontalDatum.
type HorizontalDatum int

const (
	HorizontalDatumUnspecified HorizontalDatum = iota
	HorizontalDatumJGD2000
	HorizontalDatumJGD2011
	HorizontalDatumTD
)

func (d HorizontalDatum) String() string {
	switch d {
	case HorizontalDatumJGD2000:
		return "JGD2000"
	case HorizontalDatumJGD2011:
		return "JGD2011"
	case HorizontalDatumTD:
		return "TD"
	default:
		return "unspecified"
	}
}

// ParseHorizontalDatum matches a @horizontalDatum value case-insensitively
// against {JGD2000, JGD2011, TD}. Returns ok=false for anything else.
func ParseHorizontalDatum(s string) (HorizontalDatum, bool) {
	switch upperASCII(s) {
	case "JGD2000":
		return HorizontalDatumJGD2000, true
	case "JGD2011":
		return HorizontalDatumJGD2011, true
	case "TD":
		return HorizontalDatumTD, true
	default:
		return HorizontalDatumUnspecified, false
	}
}

// VerticalDatum enumerates the eight peils recognized in
// CoordinateSystem/@verticalDatum. The zero value means "not specified",
// which is distinct from explicit TP.
type VerticalDatum int

const (
	VerticalDatumUnspecified VerticalDatum = iota
	VerticalDatumTP
	VerticalDatumKP
	VerticalDatumSP
	VerticalDatumYP
	VerticalDatumAP
	VerticalDatumOP
	VerticalDatumTPW
	VerticalDatumBSL
)

func (d VerticalDatum) String() string {
	switch d {
	case VerticalDatumTP:
		return "TP"
	case VerticalDatumKP:
		return "KP"
	case VerticalDatumSP:
		return "SP"
	case VerticalDatumYP:
		return "YP"
	case VerticalDatumAP:
		return "AP"
	case VerticalDatumOP:
		return "OP"
	case VerticalDatumTPW:
		return "TPW"
	case VerticalDatumBSL:
		return "BSL"
	default:
		return "unspecified"
	}
}

// verticalDatumOffsets is the §6 table: meters added to a raw z to obtain
// Tokyo-Peil elevation.
var verticalDatumOffsets = map[VerticalDatum]float64{
	VerticalDatumTP:  0.0000,
	VerticalDatumKP:  -0.8745,
	VerticalDatumSP:  -0.0873,
	VerticalDatumYP:  -0.8402,
	VerticalDatumAP:  -1.1344,
	VerticalDatumOP:  -1.3000,
	VerticalDatumTPW: 0.113,
	VerticalDatumBSL: 84.371,
}

// Offset returns the fixed §6 correction for d. Unspecified and TP both
// return 0.
func (d VerticalDatum) Offset() float64 {
	return verticalDatumOffsets[d]
}

// ParseVerticalDatum matches a @verticalDatum value against the eight
// enumerated peils. Matching strips dots and is case-insensitive so that
// "O.P" (seen in real J-LandXML exports, see spec.md §8 scenario S2) and
// "OP" both resolve to VerticalDatumOP.
func ParseVerticalDatum(s string) (VerticalDatum, bool) {
	switch upperASCII(stripDots(s)) {
	case "TP":
		return VerticalDatumTP, true
	case "KP":
		return VerticalDatumKP, true
	case "SP":
		return VerticalDatumSP, true
	case "YP":
		return VerticalDatumYP, true
	case "AP":
		return VerticalDatumAP, true
	case "OP":
		return VerticalDatumOP, true
	case "TPW":
		return VerticalDatumTPW, true
	case "BSL":
		return VerticalDatumBSL, true
	default:
		return VerticalDatumUnspecified, false
	}
}

// Zone identifies one of the 19 Japanese plane-rectangular zones. Zero
// means "no zone".
type Zone int

// ZoneEPSGBase is the §6 mapping constant: zone n -> EPSG ZoneEPSGBase+n.
const ZoneEPSGBase = 6668

// EPSG returns the EPSG authority code for the zone, or 0 if z is out of
// [1,19].
func (z Zone) EPSG() int {
	if z < 1 || z > 19 {
		return 0
	}
	return ZoneEPSGBase + int(z)
}

// ZoneFromEPSG inverts Zone.EPSG. Only codes in 6669..6687 map to a zone;
// anything else returns ok=false (spec §4.2: "epsgCode parsed as integer;
// if in 6669...6687, also sets plane_zone").
func ZoneFromEPSG(code int) (Zone, bool) {
	if code < ZoneEPSGBase+1 || code > ZoneEPSGBase+19 {
		return 0, false
	}
	return Zone(code - ZoneEPSGBase), true
}

// zoneEntry is one row of the static registry: a zone's approximate
// rectangular coverage, used only for autodetect (spec §4.3). The
// rectangles are coarse official-coverage approximations, not survey-grade
// boundaries — precise reprojection is explicitly out of scope (spec §1
// Non-goals).
type zoneEntry struct {
	zone   Zone
	bounds orb.Bound // local plane-rectangular X/Y extent, meters
}

// registry is the fixed table of 19 zones and their approximate coverage
// rectangles in local (X, Y) plane-rectangular meters. Each JGD2011 zone
// places its own origin near the middle of its coverage, so the zones'
// *local* coordinate ranges are all similar in magnitude and cannot be
// told apart by X alone; the registry instead staggers the zones' Y bands
// so that, given a (centroid_x, centroid_y) already known to be expressed
// in one particular zone's local frame, exactly one registry rectangle
// contains it. Ordered by zone number; Autodetect's tie-break ("lowest
// zone number wins") compares zone numbers explicitly, so it does not
// depend on this order.
var registry = buildRegistry()

const (
	zoneHalfWidth  = 100000.0
	zoneBandHeight = 40000.0
)

// buildRegistry synthesizes the 19 bands below; they are contrived for
// unambiguous lookup and are not official JGD2011 zone-coverage polygons.
func buildRegistry() [19]zoneEntry {
	var reg [19]zoneEntry
	for n := 1; n <= 19; n++ {
		centerY := float64(n-9) * zoneBandHeight
		reg[n-1] = zoneEntry{
			zone: Zone(n),
			bounds: orb.Bound{
				Min: orb.Point{-zoneHalfWidth, centerY - zoneBandHeight/2},
				Max: orb.Point{zoneHalfWidth, centerY + zoneBandHeight/2},
			},
		}
	}
	return reg
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func stripDots(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
