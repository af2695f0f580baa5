package raster

import (
	"runtime"
	"sync"

	"github.com/jgeotech/landxmldem/internal/tin"
)

// RasterizeOptions controls grid geometry and parallelism.
type RasterizeOptions struct {
	// Bounds overrides the TIN's tight XY extent when set.
	Bounds *GridBounds

	// DifferTP, when HasDifferTP is true, is added to every interpolated
	// value last, after barycentric interpolation (spec §4.5).
	DifferTP    float64
	HasDifferTP bool

	// EPSGCode tags the resulting grid; 0 leaves it untagged.
	EPSGCode int

	// Workers bounds row-parallelism. 0 defaults to runtime.NumCPU().
	Workers int

	// Cancel, if non-nil, is checked between rows; a closed channel stops
	// rasterization early and returns a partially filled grid with no
	// error (the caller decides whether to discard it).
	Cancel <-chan struct{}
}

// DefaultRasterizeOptions returns options with full-TIN bounds, no
// vertical correction, and hardware-concurrency parallelism.
func DefaultRasterizeOptions() RasterizeOptions {
	return RasterizeOptions{Workers: runtime.NumCPU()}
}

// Rasterize computes a DemGrid for t at resolution r (world units per
// pixel), per the §4.5 grid-geometry contract: pixel (row, col) samples
// the world coordinate of its center, rows are independent, and the
// output is bit-exact regardless of how many workers ran.
func Rasterize(t *tin.TIN, r float64, opts RasterizeOptions) (*DemGrid, error) {
	if r <= 0 {
		return nil, &UnsupportedResolutionError{Resolution: r}
	}

	var bounds GridBounds
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	} else {
		minX, minY, maxX, maxY, minZ, maxZ, ok := t.Bounds()
		if !ok {
			return nil, &EmptySurfaceError{}
		}
		bounds = GridBounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, MinZ: minZ, MaxZ: maxZ}
	}

	rows, cols := bounds.GridSize(r)
	if rows <= 0 || cols <= 0 {
		return nil, &EmptySurfaceError{}
	}

	originX := bounds.MinX + 0.5*r
	originY := bounds.MaxY - 0.5*r

	grid := NewDemGrid(rows, cols, originX, originY, r, r, bounds)
	grid.EPSGCode = opts.EPSGCode

	idx := tin.BuildIndex(t)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	rasterizeRowRange := func(rowStart, rowEnd int) {
		for row := rowStart; row < rowEnd; row++ {
			if opts.Cancel != nil {
				select {
				case <-opts.Cancel:
					return
				default:
				}
			}
			y := originY - float64(row)*r
			base := row * cols
			for col := 0; col < cols; col++ {
				x := originX + float64(col)*r
				faceIdx, w1, w2, w3, ok := idx.Query(x, y)
				if !ok {
					grid.Values[base+col] = Nodata
					continue
				}
				z := idx.Interpolate(faceIdx, w1, w2, w3)
				if opts.HasDifferTP {
					z += opts.DifferTP
				}
				grid.Values[base+col] = float32(z)
			}
		}
	}

	if workers == 1 {
		rasterizeRowRange(0, rows)
		return grid, nil
	}

	// Fork-join row partition: each worker owns a disjoint, contiguous
	// range of rows and writes only that range's slice of Values, so no
	// locking is required (spec §5: "row-disjoint slices").
	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= rows {
			break
		}
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			rasterizeRowRange(start, end)
		}(start, end)
	}
	wg.Wait()

	return grid, nil
}
