package crs

import "regexp"

// zoneNameRe implements spec §4.2's horizontalCoordinateSystemName grammar:
// `^\s*(\d{1,2})\s*\(\s*X\s*,\s*Y\s*\)\s*$`.
var zoneNameRe = regexp.MustCompile(`^\s*(\d{1,2})\s*\(\s*X\s*,\s*Y\s*\)\s*$`)

// ParseZoneName parses a horizontalCoordinateSystemName value such as
// "9(X,Y)" (arbitrary interior whitespace tolerated) into a Zone. Per spec
// §8 property 3, "0(X,Y)", "20(X,Y)", and anything not matching the grammar
// all fail with InvalidZoneNameError.
func ParseZoneName(s string) (Zone, error) {
	m := zoneNameRe.FindStringSubmatch(s)
	if m == nil {
		return 0, &InvalidZoneNameError{Name: s}
	}
	n := 0
	for i := 0; i < len(m[1]); i++ {
		n = n*10 + int(m[1][i]-'0')
	}
	if n < 1 || n > 19 {
		return 0, &InvalidZoneNameError{Name: s}
	}
	return Zone(n), nil
}
