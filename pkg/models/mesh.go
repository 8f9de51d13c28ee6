// Package models loads triangle meshes for the scanline rasterizer.
//
// Three formats are understood: the plain triangle list (a count followed by
// one vertex per line), Wavefront OBJ, and glTF 2.0 (.gltf and .glb). Every
// loader produces a Mesh: a named, ordered list of triangles in model space.
package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Mesh is a named list of triangles with an axis-aligned bounding box.
type Mesh struct {
	Name      string
	Triangles []math3d.Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates a mesh from tris and computes its bounds.
func NewMesh(name string, tris []math3d.Triangle) *Mesh {
	m := &Mesh{
		Name:      name,
		Triangles: tris,
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
// An empty mesh has zero bounds.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].P1
	m.BoundsMax = m.Triangles[0].P1

	for _, t := range m.Triangles {
		for _, p := range t.Vertices() {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Transform applies a transformation matrix to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Normalize centres the mesh on the origin and scales it uniformly so its
// largest dimension is 2, i.e. it fits the [-1, 1] cube.
func (m *Mesh) Normalize() {
	size := m.Size()
	largest := max(size.X, size.Y, size.Z)
	if largest == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(2 / largest).
		Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]math3d.Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
