// Package landxmldem provides a clean public API for converting
// triangulated ground surfaces in Japanese LandXML/J-LandXML terrain
// exchange files into georeferenced GeoTIFF digital elevation models.
//
// Load streams a document and returns its coordinate-system metadata and
// surface list without ever materializing a DOM. RasterizeSurface turns
// one surface into a DemGrid by barycentric interpolation over its
// triangles; WriteGeoTIFF writes that grid to a single-band float32
// GeoTIFF with a bit-exact geotransform.
//
// Example:
//
//	doc, err := landxmldem.Load(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	surface := doc.Surfaces()[0]
//	grid, err := doc.RasterizeSurface(surface, 1.0, landxmldem.DefaultRasterizeOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := landxmldem.WriteGeoTIFF(grid, "out.tif"); err != nil {
//	    log.Fatal(err)
//	}
package landxmldem
