package raster

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/plotrec/recording"
)

// curveSegments is the flattening resolution for Bezier curves.
const curveSegments = 16

// polyline is a flattened subpath.
type polyline struct {
	pts    []recording.Point
	closed bool
}

// rasterize fills a path (already in pixel coordinates) into a coverage
// mask the size of the output image.
func (b *Backend) rasterize(p *recording.Path) *image.Alpha {
	z := vector.NewRasterizer(b.surf.PixelWidth, b.surf.PixelHeight)
	for _, pl := range flattenPath(p) {
		if len(pl.pts) < 2 {
			continue
		}
		z.MoveTo(float32(pl.pts[0].X), float32(pl.pts[0].Y))
		for _, pt := range pl.pts[1:] {
			z.LineTo(float32(pt.X), float32(pt.Y))
		}
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, b.surf.PixelWidth, b.surf.PixelHeight))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// flattenPath reduces a path to polylines, subdividing curves.
func flattenPath(p *recording.Path) []polyline {
	var out []polyline
	var cur polyline
	var start recording.Point
	var pos recording.Point

	flush := func() {
		if len(cur.pts) > 1 {
			out = append(out, cur)
		}
		cur = polyline{}
	}

	for _, el := range p.Elements() {
		switch e := el.(type) {
		case recording.MoveTo:
			flush()
			start = e.Point
			pos = e.Point
			cur.pts = append(cur.pts, e.Point)
		case recording.LineTo:
			cur.pts = append(cur.pts, e.Point)
			pos = e.Point
		case recording.QuadTo:
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				cur.pts = append(cur.pts, quadPoint(pos, e.Control, e.Point, t))
			}
			pos = e.Point
		case recording.CubicTo:
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				cur.pts = append(cur.pts, cubicPoint(pos, e.Control1, e.Control2, e.Point, t))
			}
			pos = e.Point
		case recording.Close:
			cur.pts = append(cur.pts, start)
			cur.closed = true
			flush()
			pos = start
		}
	}
	flush()
	return out
}

func quadPoint(p0, c, p1 recording.Point, t float64) recording.Point {
	u := 1 - t
	return recording.Pt(
		u*u*p0.X+2*u*t*c.X+t*t*p1.X,
		u*u*p0.Y+2*u*t*c.Y+t*t*p1.Y,
	)
}

func cubicPoint(p0, c1, c2, p1 recording.Point, t float64) recording.Point {
	u := 1 - t
	return recording.Pt(
		u*u*u*p0.X+3*u*u*t*c1.X+3*u*t*t*c2.X+t*t*t*p1.X,
		u*u*u*p0.Y+3*u*u*t*c1.Y+3*u*t*t*c2.Y+t*t*t*p1.Y,
	)
}

// applyDash splits polylines into on-segments of the dash pattern.
func applyDash(lines []polyline, pattern []float64, offset float64) []polyline {
	total := 0.0
	for _, d := range pattern {
		total += d
	}
	if total <= 0 {
		return lines
	}

	var out []polyline
	for _, pl := range lines {
		pos := math.Mod(offset, total)
		if pos < 0 {
			pos += total
		}
		idx := 0
		for pos >= pattern[idx] {
			pos -= pattern[idx]
			idx = (idx + 1) % len(pattern)
		}
		on := idx%2 == 0
		remain := pattern[idx] - pos

		var cur []recording.Point
		if on {
			cur = append(cur, pl.pts[0])
		}
		for i := 1; i < len(pl.pts); i++ {
			a, b := pl.pts[i-1], pl.pts[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			walked := 0.0
			for segLen-walked > remain {
				walked += remain
				t := walked / segLen
				pt := recording.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
				if on {
					cur = append(cur, pt)
					if len(cur) > 1 {
						out = append(out, polyline{pts: cur})
					}
					cur = nil
				} else {
					cur = []recording.Point{pt}
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				remain = pattern[idx]
			}
			remain -= segLen - walked
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, polyline{pts: cur})
		}
	}
	return out
}

// strokeOutline builds a fillable outline for a stroked set of
// polylines: one quad per segment plus round joins at interior vertices.
// Caps follow the stroke style; joins always render rounded.
func strokeOutline(lines []polyline, width float64, lineCap recording.LineCap) *recording.Path {
	half := width / 2
	out := recording.NewPath()

	for _, pl := range lines {
		n := len(pl.pts)
		if n < 2 {
			continue
		}
		for i := 1; i < n; i++ {
			appendSegmentQuad(out, pl.pts[i-1], pl.pts[i], half, lineCap, i == 1 && !pl.closed, i == n-1 && !pl.closed)
		}
		// Round joins cover the notches between adjacent quads.
		for i := 1; i < n-1; i++ {
			appendCircle(out, pl.pts[i], half)
		}
		if pl.closed {
			appendCircle(out, pl.pts[0], half)
		} else if lineCap == recording.LineCapRound {
			appendCircle(out, pl.pts[0], half)
			appendCircle(out, pl.pts[n-1], half)
		}
	}
	return out
}

// appendSegmentQuad extrudes one segment to a quad of the stroke width.
// Square caps extend the first/last quad by the half width.
func appendSegmentQuad(out *recording.Path, a, b recording.Point, half float64, lineCap recording.LineCap, first, last bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux := dx / length
	uy := dy / length
	if lineCap == recording.LineCapSquare {
		if first {
			a = recording.Pt(a.X-ux*half, a.Y-uy*half)
		}
		if last {
			b = recording.Pt(b.X+ux*half, b.Y+uy*half)
		}
	}
	// Unit normal.
	nx := -uy * half
	ny := ux * half

	out.MoveTo(a.X+nx, a.Y+ny)
	out.LineTo(b.X+nx, b.Y+ny)
	out.LineTo(b.X-nx, b.Y-ny)
	out.LineTo(a.X-nx, a.Y-ny)
	out.ClosePath()
}

// appendCircle adds a circle as a polygon subpath.
func appendCircle(out *recording.Path, c recording.Point, r float64) {
	const segs = 16
	for i := 0; i < segs; i++ {
		t := 2 * math.Pi * float64(i) / segs
		x := c.X + r*math.Cos(t)
		y := c.Y + r*math.Sin(t)
		if i == 0 {
			out.MoveTo(x, y)
		} else {
			out.LineTo(x, y)
		}
	}
	out.ClosePath()
}
