package plotrec

import "math"

// geometry is a render request resolved to concrete device units.
type geometry struct {
	// pixelW, pixelH are the output raster dimensions.
	pixelW, pixelH int
	// physW, physH are the output physical dimensions in inches.
	physW, physH float64
	// dpi is the effective output density.
	dpi float64
}

// resolveUnits converts a logical size and pixel ratio into device units
// for the given format. Logical sizes are expressed in base-density
// pixels: a raster render multiplies them by the ratio and raises the
// density to match, so a plot requested at 400x300 with ratio 2 comes
// out 800x600 at twice the base DPI. A vector render has no pixels to
// scale, so the ratio instead grows the physical page: width*ratio
// base-pixels converted to inches.
//
// resolveUnits panics with a FormatError on an undefined format.
func resolveUnits(width, height, ratio, base float64, f Format) geometry {
	g := geometry{
		pixelW: int(math.Round(width * ratio)),
		pixelH: int(math.Round(height * ratio)),
		dpi:    base * ratio,
	}
	if f.Vector() {
		g.physW = width * ratio / base
		g.physH = height * ratio / base
	} else {
		g.physW = width / base
		g.physH = height / base
	}
	return g
}
