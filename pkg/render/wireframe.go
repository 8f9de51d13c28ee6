package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// pointRadius is the half width of the square DrawPoint fills.
const pointRadius = 3

// DrawLine draws a segment between p1 and p2 through the current transform.
// Lines ignore the depth buffer: they are always visible and leave depths
// untouched.
func (r *Renderer) DrawLine(p1, p2 math3d.Vec3) {
	a := r.transform.MulVec3(p1)
	b := r.transform.MulVec3(p2)

	x0, y0, x1, y1, ok := clipSegment(a.X, a.Y, b.X, b.Y,
		float64(r.tex.Width-1), float64(r.tex.Height-1))
	if !ok {
		return
	}
	r.bresenham(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
		r.color)
}

// bresenham plots an integer line in any octant.
func (r *Renderer) bresenham(x0, y0, x1, y1 int, c Color) {
	adx := abs(x1 - x0)
	ady := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	if adx >= ady {
		err := adx / 2
		y := y0
		for x := x0; ; x += sx {
			r.tex.PlotPixel(x, y, c)
			if x == x1 {
				return
			}
			err -= ady
			if err < 0 {
				y += sy
				err += adx
			}
		}
	}

	err := ady / 2
	x := x0
	for y := y0; ; y += sy {
		r.tex.PlotPixel(x, y, c)
		if y == y1 {
			return
		}
		err -= adx
		if err < 0 {
			x += sx
			err += ady
		}
	}
}

// clipSegment clips a segment to the rectangle [0, maxX] x [0, maxY]
// (Liang-Barsky). It reports false when nothing of the segment is inside or
// an end is not finite.
func clipSegment(x0, y0, x1, y1, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// DrawPoint draws a small square centred on p through the current transform.
// Unlike lines, points are depth tested at p's transformed depth.
func (r *Renderer) DrawPoint(p math3d.Vec3) {
	s := r.transform.MulVec3(p)
	if math.IsNaN(s.X) || math.IsNaN(s.Y) || math.IsInf(s.X, 0) || math.IsInf(s.Y, 0) {
		return
	}
	x := int(math.Round(s.X))
	y := int(math.Round(s.Y))
	for dy := -pointRadius; dy <= pointRadius; dy++ {
		r.tex.SetRow(x-pointRadius, x+pointRadius, y+dy, s.Z, s.Z, r.color)
	}
}

// DrawWireframe draws the three edges of t. No culling is done, so hidden
// edges show through.
func (r *Renderer) DrawWireframe(t math3d.Triangle) {
	r.DrawLine(t.P1, t.P2)
	r.DrawLine(t.P2, t.P3)
	r.DrawLine(t.P3, t.P1)
}

// DrawAxes draws the coordinate axes of the current transform's space from
// origin, colored red, green and blue for X, Y and Z.
func (r *Renderer) DrawAxes(origin math3d.Vec3, length float64) {
	axes := [3]struct {
		dir math3d.Vec3
		c   Color
	}{
		{math3d.V3(length, 0, 0), ColorRed},
		{math3d.V3(0, length, 0), ColorGreen},
		{math3d.V3(0, 0, length), ColorBlue},
	}
	for _, a := range axes {
		r.WithColor(a.c, func() {
			r.DrawLine(origin, origin.Add(a.dir))
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
