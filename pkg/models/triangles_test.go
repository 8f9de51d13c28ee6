package models

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestParseTriangles(t *testing.T) {
	src := `# two triangles
2   # count

0 0 0
1 0 0   # trailing comment
0 1 0
  1 1 1
2.5 -1e2 3
-0 .5 7
`
	mesh, err := ParseTriangles("pair", strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "pair", mesh.Name)
	require.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, math3d.Tri(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)), mesh.Triangles[0])
	assert.Equal(t, math3d.V3(2.5, -100, 3), mesh.Triangles[1].P2)
	assert.Equal(t, math3d.V3(0, -100, 0), mesh.BoundsMin)
	assert.Equal(t, math3d.V3(2.5, 1, 7), mesh.BoundsMax)
}

func TestParseTrianglesZero(t *testing.T) {
	mesh, err := ParseTriangles("none", strings.NewReader("0\n"))
	require.NoError(t, err)
	assert.Zero(t, mesh.TriangleCount())
}

func TestParseTrianglesErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sentinel error
		line     int
	}{
		{"empty", "", ErrEmpty, 0},
		{"only comments", "# nothing\n\n   # here\n", ErrEmpty, 0},
		{"bad count", "two\n", nil, 1},
		{"negative count", "-1\n", nil, 1},
		{"count with extra fields", "1 2\n", nil, 1},
		{"bad coordinate", "1\n0 0 0\n0 x 0\n0 0 1\n", nil, 3},
		{"two coordinates", "1\n0 0 0\n0 0\n0 0 1\n", nil, 3},
		{"four coordinates", "1\n\n0 0 0 0\n", nil, 3},
		{"partial triangle", "1\n0 0 0\n1 0 0\n0 1 0\n1 1 1\n", ErrIncompleteTriangle, 0},
		{"too few triangles", "2\n0 0 0\n1 0 0\n0 1 0\n", ErrTriangleCount, 0},
		{"too many triangles", "0\n0 0 0\n1 0 0\n0 1 0\n", ErrTriangleCount, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTriangles("bad", strings.NewReader(tc.src))
			require.Error(t, err)

			if tc.sentinel != nil {
				assert.ErrorIs(t, err, tc.sentinel)
				return
			}
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
			assert.Contains(t, err.Error(), "line "+strconv.Itoa(tc.line))
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	_, err := ParseTriangles("bad", strings.NewReader("1\n0 0 nope\n"))

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestLoadTriangles(t *testing.T) {
	mesh, err := LoadTriangles("../../res/cube.mesh")
	require.NoError(t, err)

	assert.Equal(t, "cube.mesh", mesh.Name)
	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Equal(t, math3d.V3(-0.5, -0.5, -0.5), mesh.BoundsMin)
	assert.Equal(t, math3d.V3(0.5, 0.5, 0.5), mesh.BoundsMax)

	// Every face points away from the centre.
	for i, tri := range mesh.Triangles {
		assert.Positive(t, tri.Normal().Dot(tri.Centroid()), "triangle %d", i)
	}
}

func TestLoadTrianglesErrors(t *testing.T) {
	_, err := LoadTriangles("/nonexistent/path.mesh")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "short.mesh")
	require.NoError(t, os.WriteFile(path, []byte("3\n0 0 0\n1 0 0\n0 1 0\n"), 0o644))
	_, err = LoadTriangles(path)
	assert.ErrorIs(t, err, ErrTriangleCount)
	assert.Contains(t, err.Error(), "declared 3, found 1")
	assert.Contains(t, err.Error(), path)
}
