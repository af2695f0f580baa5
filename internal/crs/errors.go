package crs

import "fmt"

// InvalidZoneNameError indicates horizontalCoordinateSystemName did not
// match the §4.2 regex, or matched a zone number outside [1,19].
type InvalidZoneNameError struct {
	Name string
}

func (e *InvalidZoneNameError) Error() string {
	return fmt.Sprintf("invalid plane-rectangular zone name: %q", e.Name)
}

// UnresolvedError indicates the document had no resolvable CRS and
// autodetect could not select a zone either (spec §4.3: "If no zone
// matches, the grid is emitted without projection metadata").
type UnresolvedError struct {
	Reason string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("coordinate system unresolved: %s", e.Reason)
}
