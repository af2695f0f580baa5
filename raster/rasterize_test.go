package raster

import (
	"math"
	"testing"

	"github.com/jgeotech/landxmldem/internal/ingest"
	"github.com/jgeotech/landxmldem/internal/tin"
)

func quadSurface() *tin.TIN {
	return tin.FromSurface(ingest.Surface{
		Points: []ingest.Point3D{
			{X: 0, Y: 0, Z: 100},
			{X: 100, Y: 0, Z: 101},
			{X: 0, Y: 100, Z: 102},
			{X: 100, Y: 100, Z: 103},
		},
		Faces: []ingest.Face{
			{P1: 0, P2: 1, P3: 2},
			{P1: 1, P2: 3, P3: 2},
		},
	})
}

func TestRasterizeS1Minimal(t *testing.T) {
	grid, err := Rasterize(quadSurface(), 50.0, RasterizeOptions{Workers: 1})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if grid.Rows != 2 || grid.Cols != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", grid.Rows, grid.Cols)
	}
	if grid.OriginX != 25.0 || grid.OriginY != 75.0 {
		t.Errorf("origin = (%v, %v), want (25, 75)", grid.OriginX, grid.OriginY)
	}

	// The four vertices are exactly coplanar (z = 100 + 0.01x + 0.02y fits
	// all of them), so barycentric interpolation reproduces that plane
	// exactly at every pixel center regardless of which diagonal splits
	// the quad.
	const tol = 1e-6
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			x, y, ok := grid.GridToWorld(r, c)
			if !ok {
				t.Fatalf("GridToWorld(%d,%d) not ok", r, c)
			}
			want := float32(100 + 0.01*x + 0.02*y)
			got := grid.Values[r*2+c]
			if math.Abs(float64(got-want)) > tol {
				t.Errorf("value[%d][%d] = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestGeoTransformConsistency(t *testing.T) {
	grid, err := Rasterize(quadSurface(), 50.0, RasterizeOptions{Workers: 1})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	gt := grid.GeoTransform()

	// Inverse of the geotransform maps (origin_x, origin_y) to (0.5, 0.5).
	px := (grid.OriginX - gt[0]) / gt[1]
	py := (grid.OriginY - gt[3]) / gt[5]
	if math.Abs(px-0.5) > 1e-9 || math.Abs(py-0.5) > 1e-9 {
		t.Errorf("inverse geotransform of origin = (%v, %v), want (0.5, 0.5)", px, py)
	}

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			wx, wy, ok := grid.GridToWorld(row, col)
			if !ok {
				t.Fatalf("GridToWorld(%d,%d) not ok", row, col)
			}
			wantX := grid.OriginX + float64(col)*grid.CellX
			wantY := grid.OriginY - float64(row)*grid.CellY
			if wx != wantX || wy != wantY {
				t.Errorf("GridToWorld(%d,%d) = (%v,%v), want (%v,%v)", row, col, wx, wy, wantX, wantY)
			}
		}
	}
}

func TestVerticalCorrection(t *testing.T) {
	grid, err := Rasterize(quadSurface(), 50.0, RasterizeOptions{Workers: 1, HasDifferTP: true, DifferTP: -1.3})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	plain, err := Rasterize(quadSurface(), 50.0, RasterizeOptions{Workers: 1})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	for i, v := range grid.Values {
		if v == Nodata {
			continue
		}
		want := plain.Values[i] - 1.3
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Errorf("value[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestRasterizeHoleProducesNodata(t *testing.T) {
	// A coarse triangulated disk of radius 5 centered at origin; corners of
	// a [-10,10]^2 bound are outside it and should rasterize to nodata.
	surf := ingest.Surface{
		Points: []ingest.Point3D{
			{ID: 1, X: 5, Y: 0, Z: 1},
			{ID: 2, X: 0, Y: 5, Z: 1},
			{ID: 3, X: -5, Y: 0, Z: 1},
			{ID: 4, X: 0, Y: -5, Z: 1},
			{ID: 5, X: 0, Y: 0, Z: 10},
		},
		Faces: []ingest.Face{
			{P1: 4, P2: 0, P3: 1},
			{P1: 4, P2: 1, P3: 2},
			{P1: 4, P2: 2, P3: 3},
			{P1: 4, P2: 3, P3: 0},
		},
	}
	tn := tin.FromSurface(surf)
	bounds := GridBounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: 0, MaxZ: 10}
	grid, err := Rasterize(tn, 1.0, RasterizeOptions{Bounds: &bounds, Workers: 1})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	row, col, ok := grid.WorldToGrid(-9.5, -9.5)
	if !ok {
		t.Fatal("expected (-9.5,-9.5) to fall inside the grid")
	}
	if v, hasValue := grid.At(row, col); hasValue {
		t.Errorf("corner value = %v, want nodata", v)
	}
	row, col, ok = grid.WorldToGrid(0, 0)
	if !ok {
		t.Fatal("expected origin to fall inside the grid")
	}
	if _, hasValue := grid.At(row, col); !hasValue {
		t.Error("expected a finite value near the mesh center")
	}
}

func TestRasterizeDeterministicAcrossWorkerCounts(t *testing.T) {
	serial, err := Rasterize(quadSurface(), 5.0, RasterizeOptions{Workers: 1})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	parallel, err := Rasterize(quadSurface(), 5.0, RasterizeOptions{Workers: 8})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(serial.Values) != len(parallel.Values) {
		t.Fatalf("length mismatch: %d vs %d", len(serial.Values), len(parallel.Values))
	}
	for i := range serial.Values {
		if serial.Values[i] != parallel.Values[i] {
			t.Errorf("value[%d] differs: serial=%v parallel=%v", i, serial.Values[i], parallel.Values[i])
		}
	}
}

func TestRasterizeRejectsNonPositiveResolution(t *testing.T) {
	if _, err := Rasterize(quadSurface(), 0, RasterizeOptions{}); err == nil {
		t.Fatal("expected an error for resolution 0")
	}
	if _, err := Rasterize(quadSurface(), -1, RasterizeOptions{}); err == nil {
		t.Fatal("expected an error for negative resolution")
	}
}

func TestRasterizeRejectsEmptySurface(t *testing.T) {
	empty := tin.FromSurface(ingest.Surface{})
	if _, err := Rasterize(empty, 1.0, RasterizeOptions{}); err == nil {
		t.Fatal("expected an error for an empty surface")
	}
}
