package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Texture is a depth-buffered canvas: a row-major grid of pixels with one
// depth value per pixel. Depth starts at +Inf, which every write beats.
//
// Within one frame the depth of a pixel only ever decreases; Clear resets
// pixels and depths together.
type Texture struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
	depth  []float64    // Row-major depth data, same layout as Pixels
}

// NewTexture creates a black texture with every depth at +Inf.
func NewTexture(width, height int) *Texture {
	t := &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		depth:  make([]float64, width*height),
	}
	t.Clear()
	return t
}

// Clear resets every pixel to black and every depth to +Inf.
func (t *Texture) Clear() {
	n := len(t.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fills both buffers in O(log n) copies.
	t.Pixels[0] = ColorBlack
	t.depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(t.Pixels[i:], t.Pixels[:i])
		copy(t.depth[i:], t.depth[:i])
	}
}

func (t *Texture) inBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// SetPixel writes c at (x, y) if the point is inside the texture and z is
// strictly closer than the stored depth. Ties keep the earlier pixel.
func (t *Texture) SetPixel(x, y int, z float64, c color.RGBA) {
	if !t.inBounds(x, y) {
		return
	}
	t.SetPixelNoCheck(x, y, z, c)
}

// SetPixelNoCheck is SetPixel without the bounds check. The caller
// guarantees (x, y) is inside the texture.
func (t *Texture) SetPixelNoCheck(x, y int, z float64, c color.RGBA) {
	i := y*t.Width + x
	if z < t.depth[i] {
		t.depth[i] = z
		t.Pixels[i] = c
	}
}

// SetRow fills the span [x1, x2] of row y. Depth is interpolated linearly
// from z1 at x1 to z2 at x2, using the unclamped ends, and each pixel is
// depth tested. The span is clipped to the texture width. Rows outside the
// texture, spans entirely off it and spans with x2 <= x1 draw nothing.
func (t *Texture) SetRow(x1, x2, y int, z1, z2 float64, c color.RGBA) {
	if y < 0 || y >= t.Height {
		return
	}
	if x2 < 0 || x1 >= t.Width {
		return
	}
	if x2 <= x1 {
		return
	}

	start := clampInt(x1, 0, t.Width-1)
	end := clampInt(x2, 0, t.Width-1)
	span := float64(x2 - x1)
	for x := start; x <= end; x++ {
		s := float64(x-x1) / span
		t.SetPixelNoCheck(x, y, z1*(1-s)+z2*s, c)
	}
}

// PlotPixel writes c at (x, y) without a depth test and without touching the
// depth buffer. Out of bounds writes are ignored.
func (t *Texture) PlotPixel(x, y int, c color.RGBA) {
	if !t.inBounds(x, y) {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Pixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (t *Texture) Pixel(x, y int) color.RGBA {
	if !t.inBounds(x, y) {
		return color.RGBA{}
	}
	return t.Pixels[y*t.Width+x]
}

// Depth returns the depth at (x, y), +Inf if out of bounds.
func (t *Texture) Depth(x, y int) float64 {
	if !t.inBounds(x, y) {
		return math.Inf(1)
	}
	return t.depth[y*t.Width+x]
}

// ToImage converts the texture to a standard Go image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			img.SetRGBA(x, y, t.Pixels[y*t.Width+x])
		}
	}
	return img
}

// SavePNG saves the texture as a PNG file.
func (t *Texture) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, t.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
