package ingest

import (
	"strconv"
	"strings"

	"github.com/jgeotech/landxmldem/internal/crs"
)

// rawCoordinateSystem accumulates the CoordinateSystem element's attributes
// and Feature/Property children as the ingester walks past it; it is
// converted to the public CoordinateSystem (and a list of warnings) once
// the end-tag is seen.
type rawCoordinateSystem struct {
	attrs      map[string]string
	properties map[string]string
}

func newRawCoordinateSystem() *rawCoordinateSystem {
	return &rawCoordinateSystem{
		attrs:      make(map[string]string),
		properties: make(map[string]string),
	}
}

// resolveCoordinateSystem implements spec §4.2: the attribute table,
// horizontalCoordinateSystemName regex, differTP property, and the
// epsgCode/horizontalCoordinateSystemName tie-break.
func resolveCoordinateSystem(raw *rawCoordinateSystem) (*CoordinateSystem, []Warning) {
	var warnings []Warning
	cs := &CoordinateSystem{
		Name:       raw.attrs["name"],
		Desc:       raw.attrs["desc"],
		Proj4String: raw.attrs["proj4String"],
		Properties: raw.properties,
	}

	var epspZone, hcsnZone crs.Zone
	haveEpspZone, haveHcsnZone := false, false

	if v, ok := raw.attrs["epsgCode"]; ok {
		code, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    "crs-attribute",
				Message: "epsgCode is not an integer: " + v,
			})
		} else {
			cs.EPSGCode = code
			if zone, ok := crs.ZoneFromEPSG(code); ok {
				epspZone = zone
				haveEpspZone = true
			}
		}
	}

	if v, ok := raw.attrs["horizontalCoordinateSystemName"]; ok {
		zone, err := crs.ParseZoneName(v)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    "crs-attribute",
				Message: "horizontalCoordinateSystemName did not parse: " + v,
			})
		} else {
			hcsnZone = zone
			haveHcsnZone = true
		}
	}

	switch {
	case haveEpspZone && haveHcsnZone:
		cs.PlaneZone = epspZone
		if epspZone != hcsnZone {
			warnings = append(warnings, Warning{
				Kind: "crs-ambiguous",
				Message: "epsgCode and horizontalCoordinateSystemName disagree on zone; epsgCode wins",
			})
		}
	case haveEpspZone:
		cs.PlaneZone = epspZone
	case haveHcsnZone:
		cs.PlaneZone = hcsnZone
		if cs.EPSGCode == 0 {
			cs.EPSGCode = hcsnZone.EPSG()
		}
	}

	if v, ok := raw.attrs["horizontalDatum"]; ok {
		if d, ok := crs.ParseHorizontalDatum(v); ok {
			cs.HorizontalDatum = d
		} else {
			warnings = append(warnings, Warning{
				Kind:    "crs-attribute",
				Message: "unrecognized horizontalDatum: " + v,
			})
		}
	}

	if v, ok := raw.attrs["verticalDatum"]; ok {
		if d, ok := crs.ParseVerticalDatum(v); ok {
			cs.VerticalDatum = d
		} else {
			warnings = append(warnings, Warning{
				Kind:    "crs-attribute",
				Message: "unrecognized verticalDatum: " + v,
			})
		}
	}

	if v, ok := raw.properties["differTP"]; ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    "crs-attribute",
				Message: "differTP is not a number: " + v,
			})
		} else {
			cs.DifferTP = f
			cs.HasDifferTP = true
		}
	}

	if cs.VerticalDatum != crs.VerticalDatumTP && cs.VerticalDatum != crs.VerticalDatumUnspecified && !cs.HasDifferTP {
		cs.DifferTP = cs.VerticalDatum.Offset()
		cs.HasDifferTP = true
		warnings = append(warnings, Warning{
			Kind:    "crs-vertical-datum",
			Message: "verticalDatum is not TP but differTP is absent; using the datum's fixed offset",
		})
	}

	return cs, warnings
}
