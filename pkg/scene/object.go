// Package scene places triangle meshes in the world and renders them through
// a camera.
package scene

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// Object is a named triangle list in model space with its own placement.
//
// The placement is kept as three accumulated transforms composed as
// translation × rotation × scaling, so rotations always turn the object about
// its own origin whatever translations came before. Each mutator
// left-multiplies onto its matching accumulator.
type Object struct {
	Name      string
	Triangles []math3d.Triangle

	translation math3d.Mat4
	rotation    math3d.Mat4
	scaling     math3d.Mat4

	world math3d.Mat4
	dirty bool
}

// NewObject creates an object with identity placement.
func NewObject(name string, tris []math3d.Triangle) *Object {
	return &Object{
		Name:        name,
		Triangles:   tris,
		translation: math3d.Identity(),
		rotation:    math3d.Identity(),
		scaling:     math3d.Identity(),
		world:       math3d.Identity(),
	}
}

// Translate moves the object by v.
func (o *Object) Translate(v math3d.Vec3) {
	o.translation = math3d.Translate(v).Mul(o.translation)
	o.dirty = true
}

// Scale scales the object about its origin.
func (o *Object) Scale(x, y, z float64) {
	o.scaling = math3d.Scale(math3d.V3(x, y, z)).Mul(o.scaling)
	o.dirty = true
}

// RotateX turns the object about its X axis.
func (o *Object) RotateX(theta float64) {
	o.rotation = math3d.RotateX(theta).Mul(o.rotation)
	o.dirty = true
}

// RotateY turns the object about its Y axis.
func (o *Object) RotateY(theta float64) {
	o.rotation = math3d.RotateY(theta).Mul(o.rotation)
	o.dirty = true
}

// RotateZ turns the object about its Z axis.
func (o *Object) RotateZ(theta float64) {
	o.rotation = math3d.RotateZ(theta).Mul(o.rotation)
	o.dirty = true
}

// Translated is Translate for chaining.
func (o *Object) Translated(v math3d.Vec3) *Object {
	o.Translate(v)
	return o
}

// Scaled is Scale for chaining.
func (o *Object) Scaled(x, y, z float64) *Object {
	o.Scale(x, y, z)
	return o
}

// RotatedX is RotateX for chaining.
func (o *Object) RotatedX(theta float64) *Object {
	o.RotateX(theta)
	return o
}

// RotatedY is RotateY for chaining.
func (o *Object) RotatedY(theta float64) *Object {
	o.RotateY(theta)
	return o
}

// RotatedZ is RotateZ for chaining.
func (o *Object) RotatedZ(theta float64) *Object {
	o.RotateZ(theta)
	return o
}

// WorldTransform returns translation × rotation × scaling. The product is
// cached until the next mutator call.
func (o *Object) WorldTransform() math3d.Mat4 {
	if o.dirty {
		o.world = o.translation.Mul(o.rotation).Mul(o.scaling)
		o.dirty = false
	}
	return o.world
}

// Render fills every triangle, mapped into world space, through r.
func (o *Object) Render(r *render.Renderer) {
	o.fill(r, o.WorldTransform())
}

// RenderView is Render with the camera view applied after the world
// transform, so triangles reach r in eye space.
func (o *Object) RenderView(r *render.Renderer, view math3d.Mat4) {
	o.fill(r, view.Mul(o.WorldTransform()))
}

// RenderWireframe draws the edges of every triangle in eye space.
func (o *Object) RenderWireframe(r *render.Renderer, view math3d.Mat4) {
	m := view.Mul(o.WorldTransform())
	for _, t := range o.Triangles {
		r.DrawWireframe(t.Transform(m))
	}
}

func (o *Object) fill(r *render.Renderer, m math3d.Mat4) {
	for _, t := range o.Triangles {
		r.FillTriangle(t.Transform(m))
	}
}
