// Package plotrec records plots as replayable display lists and
// renders them to files in multiple formats.
//
// A plot is drawn once onto a shadow device, which captures drawing
// commands instead of pixels. The captured recording is stored under an
// opaque id and can be rendered any number of times afterwards, at any
// size, pixel density and format, without re-executing the plotting
// logic:
//
//	eng := plotrec.NewEngine()
//	dc, err := eng.Canvas()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dc.SetRGB(0, 0, 0)
//	dc.DrawLine(0, 0, 400, 300)
//	dc.Stroke()
//
//	if err := eng.Record("p1"); err != nil {
//	    log.Fatal(err)
//	}
//	path, err := eng.Render("p1", 400, 300, 2, plotrec.PNG)
//	// path is <outputdir>/render-p1.png, 800x600 pixels.
//
// Raster formats (PNG, JPEG, TIFF) scale the pixel grid by the
// requested ratio; vector formats (SVG, PDF) scale the physical page
// instead. The importing package gets all backends; programs that only
// need one can import the backend sub-packages selectively and use the
// recording package directly.
package plotrec

import (
	// Register the standard output backends.
	_ "github.com/gogpu/plotrec/backends/pdf"
	_ "github.com/gogpu/plotrec/backends/raster"
	_ "github.com/gogpu/plotrec/backends/svg"
)
