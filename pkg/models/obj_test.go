package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
)

const quadOBJ = `# a unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0 1.0
vt 0 0
vn 0 0 1
usemtl none
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ("quad", strings.NewReader(quadOBJ))
	require.NoError(t, err)

	require.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math3d.Tri(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 1, 0)), mesh.Triangles[0])
	assert.Equal(t, math3d.Tri(math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0)), mesh.Triangles[1])

	// Winding is preserved.
	for _, tri := range mesh.Triangles {
		assert.True(t, tri.Normal().ApproxEqual(math3d.V3(0, 0, 1), 1e-12))
	}
}

func TestParseOBJIndexForms(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3//1 -2//1 -1//1
f 1/2 2/2 3/2
f 1 2 3
`
	mesh, err := ParseOBJ("forms", strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, mesh.TriangleCount())
	assert.Equal(t, mesh.Triangles[0], mesh.Triangles[1])
	assert.Equal(t, mesh.Triangles[1], mesh.Triangles[2])
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"short vertex", "v 1 2\n", 1},
		{"bad coordinate", "v 1 2 z\n", 1},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", 3},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", 4},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", 4},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ("bad", strings.NewReader(tc.src))
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
		})
	}

	_, err := ParseOBJ("empty", strings.NewReader("v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, "quad.obj", mesh.Name)
	assert.Equal(t, 2, mesh.TriangleCount())

	_, err = LoadOBJ("/nonexistent/path.obj")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
