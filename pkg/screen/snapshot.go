package screen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/taigrr/scanline/pkg/render"
)

// ErrUnsupportedFormat is returned by NewSnapshot for file extensions it
// has no encoder for.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type encodeFunc func(io.Writer, image.Image) error

// Snapshot writes every frame to an image file. A "%d" in the path pattern
// is replaced by the frame number, counting from 0; without one each frame
// overwrites the last.
type Snapshot struct {
	pattern       string
	width, height int
	encode        encodeFunc
	frames        int
	img           *image.RGBA
}

// NewSnapshot creates a snapshot sink. The encoder is picked from the
// pattern's extension: .png or .bmp.
func NewSnapshot(pattern string, width, height int) (*Snapshot, error) {
	var enc encodeFunc
	switch ext := strings.ToLower(filepath.Ext(pattern)); ext {
	case ".png":
		enc = png.Encode
	case ".bmp":
		enc = bmp.Encode
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &Snapshot{
		pattern: pattern,
		width:   width,
		height:  height,
		encode:  enc,
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

func (s *Snapshot) Width() int  { return s.width }
func (s *Snapshot) Height() int { return s.height }

// Frames returns the number of frames written.
func (s *Snapshot) Frames() int { return s.frames }

// Path returns the file frame n is written to.
func (s *Snapshot) Path(n int) string {
	return strings.Replace(s.pattern, "%d", strconv.Itoa(n), 1)
}

// Present encodes the frame to the next file.
func (s *Snapshot) Present(pixels []color.RGBA, width, height int) error {
	if err := checkSize(len(pixels), width, height, s.width, s.height); err != nil {
		return err
	}

	for i, c := range pixels {
		copy(s.img.Pix[i*4:i*4+4], []uint8{c.R, c.G, c.B, c.A})
	}

	path := s.Path(s.frames)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := s.encode(f, s.img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	render.Logger().Debug("snapshot written", "path", path, "frame", s.frames)
	s.frames++
	return nil
}
