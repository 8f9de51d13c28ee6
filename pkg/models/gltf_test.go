package models

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
)

func intPtr(i int) *int { return &i }

// quadDocument builds a glTF document holding a unit quad as two indexed
// triangles.
func quadDocument() *gltf.Document {
	var buf []byte
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2, 1, 3, 2} {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 48},
			{Buffer: 0, ByteOffset: 48, ByteLength: 12},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: intPtr(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: intPtr(1), ComponentType: gltf.ComponentUshort, Count: 6, Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    intPtr(1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
	}
}

func TestMeshFromDocumentIndexed(t *testing.T) {
	mesh, err := meshFromDocument("quad.glb", quadDocument())
	require.NoError(t, err)

	require.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math3d.Tri(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)), mesh.Triangles[0])
	assert.Equal(t, math3d.Tri(math3d.V3(1, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0)), mesh.Triangles[1])
	assert.Equal(t, math3d.V3(1, 1, 0), mesh.BoundsMax)

	// Counter-clockwise faces keep their winding.
	for _, tri := range mesh.Triangles {
		assert.True(t, tri.Normal().ApproxEqual(math3d.V3(0, 0, 1), 1e-12))
	}
}

func TestMeshFromDocumentSequential(t *testing.T) {
	doc := quadDocument()
	doc.Meshes[0].Primitives[0].Indices = nil
	doc.Accessors[0].Count = 3

	mesh, err := meshFromDocument("tri", doc)
	require.NoError(t, err)
	require.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, math3d.V3(0, 1, 0), mesh.Triangles[0].P3)
}

func TestMeshFromDocumentStride(t *testing.T) {
	doc := quadDocument()
	// Read every other position: 0, 2.
	doc.BufferViews[0].ByteStride = 24
	doc.Accessors[0].Count = 2
	doc.Meshes[0].Primitives[0].Indices = nil

	_, err := meshFromDocument("strided", doc)
	assert.ErrorIs(t, err, ErrEmpty, "two vertices make no triangle")

	positions, err := readVec3Accessor(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)}, positions)
}

func TestMeshFromDocumentSkipsLines(t *testing.T) {
	doc := quadDocument()
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines

	_, err := meshFromDocument("lines", doc)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMeshFromDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*gltf.Document)
	}{
		{"no buffer view", func(d *gltf.Document) { d.Accessors[0].BufferView = nil }},
		{"no data", func(d *gltf.Document) { d.Buffers[0].Data = nil }},
		{"past buffer end", func(d *gltf.Document) { d.Accessors[0].Count = 40 }},
		{"index out of range", func(d *gltf.Document) { d.Accessors[0].Count = 2 }},
		{"wrong position type", func(d *gltf.Document) { d.Accessors[0].Type = gltf.AccessorVec2 }},
		{"wrong index type", func(d *gltf.Document) { d.Accessors[1].ComponentType = gltf.ComponentFloat }},
		{"missing accessor", func(d *gltf.Document) { d.Meshes[0].Primitives[0].Indices = intPtr(9) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := quadDocument()
			tc.mutate(doc)

			_, err := meshFromDocument("bad", doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), `process mesh "quad"`)
		})
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
