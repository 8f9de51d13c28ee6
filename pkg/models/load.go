package models

import (
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/pkg/render"
)

// Load picks a loader by file extension: .glb and .gltf are glTF, .obj is
// Wavefront OBJ, and anything else is read as a triangle list.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		mesh, err = LoadGLTF(path)
	case ".obj":
		mesh, err = LoadOBJ(path)
	default:
		mesh, err = LoadTriangles(path)
	}
	if err != nil {
		return nil, err
	}

	render.Logger().Info("mesh loaded",
		"path", path,
		"triangles", mesh.TriangleCount(),
		"size", mesh.Size())
	return mesh, nil
}
