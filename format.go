package plotrec

import (
	"fmt"
	"strings"
)

// Format identifies an output file format for rendering.
type Format int

const (
	// PNG is lossless raster output.
	PNG Format = iota
	// JPEG is lossy raster output.
	JPEG
	// TIFF is lossless raster output with deflate compression.
	TIFF
	// SVG is scalable vector output.
	SVG
	// PDF is paged vector output.
	PDF
)

// ParseFormat converts a format name or file extension ("png", ".svg",
// "JPG") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "tiff", "tif":
		return TIFF, nil
	case "svg":
		return SVG, nil
	case "pdf":
		return PDF, nil
	default:
		return 0, fmt.Errorf("plotrec: unknown format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case TIFF:
		return "tiff"
	case SVG:
		return "svg"
	case PDF:
		return "pdf"
	}
	panic(&FormatError{Format: f})
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpeg"
	}
	return f.String()
}

// Vector reports whether the format is resolution-independent.
func (f Format) Vector() bool {
	switch f {
	case SVG, PDF:
		return true
	case PNG, JPEG, TIFF:
		return false
	}
	panic(&FormatError{Format: f})
}

// backendName returns the registered backend that produces the format.
func (f Format) backendName() string {
	switch f {
	case PNG, JPEG, TIFF:
		return "raster"
	case SVG:
		return "svg"
	case PDF:
		return "pdf"
	}
	panic(&FormatError{Format: f})
}
