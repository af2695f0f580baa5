package raster

import "fmt"

// InvalidGridIndexError is returned by DemGrid.Set for an out-of-range
// (row, col).
type InvalidGridIndexError struct {
	Row, Col       int
	MaxRow, MaxCol int
}

func (e *InvalidGridIndexError) Error() string {
	return fmt.Sprintf("grid index (%d,%d) out of range [0,%d)x[0,%d)", e.Row, e.Col, e.MaxRow, e.MaxCol)
}

// InvalidGridSizeError is returned by DemGrid.Validate when Values' length
// doesn't match Rows*Cols.
type InvalidGridSizeError struct {
	Expected, Actual int
}

func (e *InvalidGridSizeError) Error() string {
	return fmt.Sprintf("grid values length %d, want %d", e.Actual, e.Expected)
}

// InvalidResolutionError is returned when a cell size is non-positive.
type InvalidResolutionError struct {
	CellX, CellY float64
}

func (e *InvalidResolutionError) Error() string {
	return fmt.Sprintf("invalid resolution: cell_x=%v cell_y=%v", e.CellX, e.CellY)
}

// UnsupportedResolutionError is returned by Rasterize for resolution <= 0.
type UnsupportedResolutionError struct {
	Resolution float64
}

func (e *UnsupportedResolutionError) Error() string {
	return fmt.Sprintf("unsupported resolution %v: must be positive", e.Resolution)
}

// EmptySurfaceError is returned by Rasterize when the TIN has no points.
type EmptySurfaceError struct{}

func (e *EmptySurfaceError) Error() string { return "surface is empty: no points to rasterize" }
