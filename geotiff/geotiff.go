// Package geotiff writes a raster.DemGrid to a single-band float32
// GeoTIFF file via cgo bindings to libgdal. There is no pure-Go writer in
// this stack capable of the tiled/LZW-compressed output this library
// targets, so the C library is called directly.
package geotiff

/*
#cgo LDFLAGS: -lgdal
#include "gdal.h"
#include "cpl_string.h"
#include "ogr_srs_api.h"
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/jgeotech/landxmldem/raster"
)

var registerOnce sync.Once

func ensureRegistered() {
	registerOnce.Do(func() {
		C.GDALAllRegister()
	})
}

// Options controls tiling and compression of the written file. The
// defaults match spec §4.6: LZW compression, 256x256 tiles.
type Options struct {
	TileSize    int
	Compression string
}

// DefaultOptions returns Options{TileSize: 256, Compression: "LZW"}.
func DefaultOptions() Options {
	return Options{TileSize: 256, Compression: "LZW"}
}

// Write emits grid as a single-band float32 GeoTIFF at path. On any
// failure the target path is unlinked before the error is returned, so no
// partially written file is left behind (spec §7).
func Write(grid *raster.DemGrid, path string, opts Options) error {
	ensureRegistered()

	if err := grid.Validate(); err != nil {
		return fmt.Errorf("geotiff: invalid grid: %w", err)
	}

	driverName := C.CString("GTiff")
	defer C.free(unsafe.Pointer(driverName))
	driver := C.GDALGetDriverByName(driverName)
	if driver == nil {
		return fmt.Errorf("geotiff: GTiff driver not available")
	}

	createOpts := buildCreateOptions(opts)
	defer C.CSLDestroy(createOpts)

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	ds := C.GDALCreate(driver, cPath, C.int(grid.Cols), C.int(grid.Rows), 1, C.GDT_Float32, createOpts)
	if ds == nil {
		return unlinkAndError(path, fmt.Errorf("geotiff: GDALCreate failed for %s: %s", path, lastGDALError()))
	}
	defer C.GDALClose(ds)

	gt := grid.GeoTransform()
	var cgt [6]C.double
	for i, v := range gt {
		cgt[i] = C.double(v)
	}
	if C.GDALSetGeoTransform(ds, &cgt[0]) != C.CE_None {
		return unlinkAndError(path, fmt.Errorf("geotiff: failed to set geotransform: %s", lastGDALError()))
	}

	if grid.EPSGCode != 0 {
		srs := C.OSRNewSpatialReference(nil)
		defer C.OSRDestroySpatialReference(srs)
		if C.OSRImportFromEPSG(srs, C.int(grid.EPSGCode)) != C.OGRERR_NONE {
			return unlinkAndError(path, fmt.Errorf("geotiff: unknown EPSG code %d", grid.EPSGCode))
		}
		var wkt *C.char
		if C.OSRExportToWkt(srs, &wkt) != C.OGRERR_NONE {
			return unlinkAndError(path, fmt.Errorf("geotiff: failed to export WKT for EPSG %d", grid.EPSGCode))
		}
		defer C.CPLFree(unsafe.Pointer(wkt))
		if C.GDALSetProjection(ds, wkt) != C.CE_None {
			return unlinkAndError(path, fmt.Errorf("geotiff: failed to set projection: %s", lastGDALError()))
		}
	}

	band := C.GDALGetRasterBand(ds, 1)
	if band == nil {
		return unlinkAndError(path, fmt.Errorf("geotiff: failed to get raster band"))
	}
	if C.GDALSetRasterNoDataValue(band, C.double(raster.Nodata)) != C.CE_None {
		return unlinkAndError(path, fmt.Errorf("geotiff: failed to set nodata: %s", lastGDALError()))
	}

	err := C.GDALRasterIO(
		band,
		C.GF_Write,
		0, 0,
		C.int(grid.Cols), C.int(grid.Rows),
		unsafe.Pointer(&grid.Values[0]),
		C.int(grid.Cols), C.int(grid.Rows),
		C.GDT_Float32,
		0, 0,
	)
	if err != C.CE_None {
		return unlinkAndError(path, fmt.Errorf("geotiff: raster write failed: %s", lastGDALError()))
	}

	C.GDALFlushCache(ds)
	return nil
}

func buildCreateOptions(opts Options) **C.char {
	var list **C.char
	if opts.Compression != "" {
		kv := C.CString("COMPRESS=" + opts.Compression)
		defer C.free(unsafe.Pointer(kv))
		list = C.CSLAddString(list, kv)
	}
	if opts.TileSize > 0 {
		list = addIntOption(list, "TILED", "YES")
		list = addIntOption(list, "BLOCKXSIZE", itoa(opts.TileSize))
		list = addIntOption(list, "BLOCKYSIZE", itoa(opts.TileSize))
	}
	return list
}

func addIntOption(list **C.char, key, value string) **C.char {
	kv := C.CString(key + "=" + value)
	defer C.free(unsafe.Pointer(kv))
	return C.CSLAddString(list, kv)
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

func lastGDALError() string {
	return C.GoString(C.CPLGetLastErrorMsg())
}

func unlinkAndError(path string, err error) error {
	os.Remove(path)
	return err
}
