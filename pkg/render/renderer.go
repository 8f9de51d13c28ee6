// Package render provides the software rasterizer: a depth-buffered canvas,
// a scanline triangle filler, line and point drawing, and the camera that
// produces the projection they draw through.
package render

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
)

// LightingMode selects how FillTriangle colors a triangle.
type LightingMode int

const (
	// NoShading fills with the draw color as is.
	NoShading LightingMode = iota
	// FlatShading scales the draw color by the cosine between the triangle
	// normal and the direction to the light.
	FlatShading
)

func (m LightingMode) String() string {
	switch m {
	case NoShading:
		return "none"
	case FlatShading:
		return "flat"
	default:
		return fmt.Sprintf("LightingMode(%d)", int(m))
	}
}

// Stats counts what happened to the triangles submitted since the last Clear.
type Stats struct {
	Submitted int // Triangles passed to FillTriangle
	Culled    int // Back-facing triangles skipped
	Split     int // Triangles split into a flat-bottom and a flat-top half
}

// Drawn returns the number of triangles that were rasterized.
func (s Stats) Drawn() int {
	return s.Submitted - s.Culled
}

// Renderer rasterizes into a Texture it owns and hands finished frames to a
// Screen.
//
// The current transform and draw color are session state read by every draw
// call. Use WithTransform and WithColor to override them for a scoped set of
// calls. A Renderer is not safe for concurrent use.
type Renderer struct {
	screen    Screen
	tex       *Texture
	transform math3d.Mat4
	color     Color
	light     math3d.Vec3
	lighting  LightingMode
	stats     Stats
}

// NewRenderer creates a renderer whose texture matches the screen size.
// It starts with the identity transform, a white draw color, no shading and
// the light at the origin.
func NewRenderer(screen Screen) *Renderer {
	w, h := screen.Width(), screen.Height()
	Logger().Debug("renderer created", "width", w, "height", h)
	return &Renderer{
		screen:    screen,
		tex:       NewTexture(w, h),
		transform: math3d.Identity(),
		color:     ColorWhite,
		lighting:  NoShading,
	}
}

// Width returns the texture width.
func (r *Renderer) Width() int { return r.tex.Width }

// Height returns the texture height.
func (r *Renderer) Height() int { return r.tex.Height }

// Texture returns the canvas the renderer draws into.
func (r *Renderer) Texture() *Texture { return r.tex }

// Stats returns the counters for the current frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Clear resets the canvas and the frame statistics.
func (r *Renderer) Clear() {
	r.tex.Clear()
	r.stats = Stats{}
}

// Display presents the canvas on the screen. A presentation failure is
// returned unchanged apart from wrapping.
func (r *Renderer) Display() error {
	if err := r.screen.Present(r.tex.Pixels, r.tex.Width, r.tex.Height); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	Logger().Debug("frame presented",
		"submitted", r.stats.Submitted,
		"culled", r.stats.Culled,
		"split", r.stats.Split)
	return nil
}

// Transform returns the current transform.
func (r *Renderer) Transform() math3d.Mat4 { return r.transform }

// SetTransform replaces the current transform.
func (r *Renderer) SetTransform(m math3d.Mat4) { r.transform = m }

// ClearTransform resets the current transform to the identity.
func (r *Renderer) ClearTransform() { r.transform = math3d.Identity() }

// Translate left-multiplies a translation onto the current transform.
func (r *Renderer) Translate(v math3d.Vec3) {
	r.transform = math3d.Translate(v).Mul(r.transform)
}

// RotateX left-multiplies a rotation about X onto the current transform.
func (r *Renderer) RotateX(theta float64) {
	r.transform = math3d.RotateX(theta).Mul(r.transform)
}

// RotateY left-multiplies a rotation about Y onto the current transform.
func (r *Renderer) RotateY(theta float64) {
	r.transform = math3d.RotateY(theta).Mul(r.transform)
}

// RotateZ left-multiplies a rotation about Z onto the current transform.
func (r *Renderer) RotateZ(theta float64) {
	r.transform = math3d.RotateZ(theta).Mul(r.transform)
}

// Scale left-multiplies a scaling onto the current transform.
func (r *Renderer) Scale(x, y, z float64) {
	r.transform = math3d.Scale(math3d.V3(x, y, z)).Mul(r.transform)
}

// Perspective left-multiplies the pinhole projection onto the current
// transform.
func (r *Renderer) Perspective() {
	r.transform = math3d.Pinhole().Mul(r.transform)
}

// Color returns the current draw color.
func (r *Renderer) Color() Color { return r.color }

// SetColor sets the draw color.
func (r *Renderer) SetColor(c Color) { r.color = c }

// LightPos returns the light position.
func (r *Renderer) LightPos() math3d.Vec3 { return r.light }

// SetLightPos sets the light position, in the same space as the triangles
// passed to FillTriangle.
func (r *Renderer) SetLightPos(p math3d.Vec3) { r.light = p }

// Lighting returns the lighting mode.
func (r *Renderer) Lighting() LightingMode { return r.lighting }

// SetLighting sets the lighting mode.
func (r *Renderer) SetLighting(m LightingMode) { r.lighting = m }

// WithTransform runs fn with m as the current transform. The previous
// transform is restored when fn returns or panics.
func (r *Renderer) WithTransform(m math3d.Mat4, fn func()) {
	prev := r.transform
	defer func() { r.transform = prev }()
	r.transform = m
	fn()
}

// WithColor runs fn with c as the draw color. The previous color is restored
// when fn returns or panics.
func (r *Renderer) WithColor(c Color, fn func()) {
	prev := r.color
	defer func() { r.color = prev }()
	r.color = c
	fn()
}
