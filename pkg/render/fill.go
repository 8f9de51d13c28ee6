package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// flatEpsilon is the Y difference below which two vertices count as lying
// on the same row.
const flatEpsilon = 1.0

// FillTriangle rasterizes t through the current transform with the current
// draw color.
//
// t is expected in view space: the eye sits at the origin looking down -Z.
// Triangles whose normal points away from the eye are culled. The rest are
// cut into at most two triangles with a horizontal edge and filled row by
// row with interpolated depth. Degenerate input draws whatever the
// interpolation yields.
func (r *Renderer) FillTriangle(t math3d.Triangle) {
	r.stats.Submitted++

	normal := t.Normal()
	centroid := t.Centroid()
	if normal.Dot(centroid) >= 0 {
		r.stats.Culled++
		return
	}

	c := r.shade(normal, centroid)

	s := t.Transform(r.transform)
	top, mid, bot := sortByY(s.P1, s.P2, s.P3)

	switch {
	case mid.Y-top.Y < flatEpsilon:
		r.fillFlatTop(top, mid, bot, c)
	case bot.Y-mid.Y < flatEpsilon:
		r.fillFlatBottom(top, mid, bot, c)
	default:
		r.stats.Split++
		f := (mid.Y - top.Y) / (bot.Y - top.Y)
		v4 := math3d.V3(
			top.X+(bot.X-top.X)*f,
			mid.Y,
			top.Z+(bot.Z-top.Z)*f,
		)
		r.fillFlatBottom(top, mid, v4, c)
		r.fillFlatTop(mid, v4, bot, c)
	}
}

// shade returns the fill color for a triangle with the given normal and
// centroid. The draw color itself is never modified.
func (r *Renderer) shade(normal, centroid math3d.Vec3) Color {
	if r.lighting != FlatShading {
		return r.color
	}
	toLight := r.light.Sub(centroid).Normalize()
	return Shade(r.color, math.Max(0, toLight.Dot(normal)))
}

// sortByY orders three points by ascending Y.
func sortByY(a, b, c math3d.Vec3) (top, mid, bot math3d.Vec3) {
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	if b.Y < a.Y {
		a, b = b, a
	}
	return a, b, c
}

// fillFlatTop fills a triangle whose edge v1-v2 is horizontal and whose apex
// v3 lies below it.
func (r *Renderer) fillFlatTop(v1, v2, v3 math3d.Vec3, c Color) {
	r.scan(v1, v3, v2, v3, math.Min(v1.Y, v2.Y), v3.Y, c)
}

// fillFlatBottom fills a triangle whose apex v1 lies above the horizontal
// edge v2-v3.
func (r *Renderer) fillFlatBottom(v1, v2, v3 math3d.Vec3, c Color) {
	r.scan(v1, v2, v1, v3, v1.Y, math.Max(v2.Y, v3.Y), c)
}

// scan fills every pixel row in [yStart, yEnd] between edges a0-a1 and
// b0-b1. Rows outside the texture are skipped before any work is done.
func (r *Renderer) scan(a0, a1, b0, b1 math3d.Vec3, yStart, yEnd float64, c Color) {
	y0 := math.Max(math.Ceil(yStart), 0)
	y1 := math.Min(math.Floor(yEnd), float64(r.tex.Height-1))
	if !(y0 <= y1) {
		return
	}

	for y := y0; y <= y1; y++ {
		xl, zl := edgeAt(a0, a1, y)
		xr, zr := edgeAt(b0, b1, y)
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}
		r.tex.SetRow(int(math.Round(xl)), int(math.Round(xr)), int(y), zl, zr, c)
	}
}

// edgeAt returns X and Z of edge a-b at row y. A horizontal edge yields a.
func edgeAt(a, b math3d.Vec3, y float64) (x, z float64) {
	dy := b.Y - a.Y
	if dy == 0 {
		return a.X, a.Z
	}
	t := (y - a.Y) / dy
	return a.X + (b.X-a.X)*t, a.Z + (b.Z-a.Z)*t
}
