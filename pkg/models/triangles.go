package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Errors returned by ParseTriangles.
var (
	ErrEmpty              = errors.New("no triangle count")
	ErrIncompleteTriangle = errors.New("vertex count is not a multiple of 3")
	ErrTriangleCount      = errors.New("triangle count mismatch")
)

// ParseError reports a malformed line.
type ParseError struct {
	Line int   // 1-based line number
	Err  error // What was wrong with it
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseTriangles reads the triangle list format:
//
//	# a comment
//	2          # number of triangles
//	0 0 0      # one vertex per line
//	1 0 0
//	0 1 0
//	...
//
// The first line holding anything but a comment is the triangle count. Each
// following non-blank line is a vertex of three whitespace separated numbers,
// and every three vertices form a triangle in order.
func ParseTriangles(name string, r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)

	declared := -1
	var verts []math3d.Vec3
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

		if declared < 0 {
			if len(fields) != 1 {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("want a triangle count, got %q", text)}
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			if n < 0 {
				return nil, &ParseError{Line: line, Err: fmt.Errorf("negative triangle count %d", n)}
			}
			declared = n
			continue
		}

		v, err := parseVertex(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		verts = append(verts, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if declared < 0 {
		return nil, ErrEmpty
	}
	if len(verts)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices", ErrIncompleteTriangle, len(verts))
	}
	if got := len(verts) / 3; got != declared {
		return nil, fmt.Errorf("%w: declared %d, found %d", ErrTriangleCount, declared, got)
	}

	tris := make([]math3d.Triangle, 0, declared)
	for i := 0; i < len(verts); i += 3 {
		tris = append(tris, math3d.Tri(verts[i], verts[i+1], verts[i+2]))
	}
	return NewMesh(name, tris), nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// LoadTriangles loads a triangle list file.
func LoadTriangles(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open triangles: %w", err)
	}
	defer f.Close()

	mesh, err := ParseTriangles(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}
