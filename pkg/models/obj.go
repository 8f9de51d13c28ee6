package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ParseOBJ reads the geometry of a Wavefront OBJ file. Only vertex
// positions (v) and faces (f) are used; polygons are triangulated as a fan
// around their first vertex. Everything else is skipped.
func ParseOBJ(name string, r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)

	var positions []math3d.Vec3
	var tris []math3d.Triangle
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			// An optional fourth (w) component is ignored.
			if len(fields) != 4 && len(fields) != 5 {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("vertex wants 3 coordinates, got %d", len(fields)-1)}
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			positions = append(positions, v)

		case "f":
			if len(fields) < 4 {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("face wants at least 3 vertices, got %d", len(fields)-1)}
			}
			idx := make([]int, len(fields)-1)
			for i, f := range fields[1:] {
				n, err := objIndex(f, len(positions))
				if err != nil {
					return nil, &ParseError{Line: line, Err: err}
				}
				idx[i] = n
			}
			for i := 1; i+1 < len(idx); i++ {
				tris = append(tris, math3d.Tri(
					positions[idx[0]],
					positions[idx[i]],
					positions[idx[i+1]],
				))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if len(tris) == 0 {
		return nil, ErrEmpty
	}
	return NewMesh(name, tris), nil
}

// objIndex resolves one face vertex reference ("7", "7/1", "7//3", "-1/2/3")
// to a 0-based position index. Negative references count back from the most
// recent vertex.
func objIndex(ref string, count int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad vertex index %q: %w", ref, err)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("vertex index %d out of range (have %d)", n, count)
	}
}

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}
