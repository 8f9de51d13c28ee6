package screen

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ramp maps perceptual lightness to characters, darkest first.
const ramp = " .:-=+*#%@"

// Text writes every frame as ASCII art, one character per pixel, framed by
// a bar of dashes above and below and a bar on each side.
type Text struct {
	w             io.Writer
	width, height int
}

// NewText creates a text sink of the given pixel size writing to w.
func NewText(w io.Writer, width, height int) *Text {
	return &Text{w: w, width: width, height: height}
}

func (t *Text) Width() int  { return t.width }
func (t *Text) Height() int { return t.height }

// Present writes one frame.
func (t *Text) Present(pixels []color.RGBA, width, height int) error {
	if err := checkSize(len(pixels), width, height, t.width, t.height); err != nil {
		return err
	}

	bw := bufio.NewWriter(t.w)
	bar := strings.Repeat("-", width+4)
	row := make([]byte, width)

	fmt.Fprintln(bw, bar)
	for y := range height {
		for x := range width {
			row[x] = Glyph(pixels[y*width+x])
		}
		fmt.Fprintf(bw, "| %s |\n", row)
	}
	fmt.Fprintln(bw, bar)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text frame: %w", err)
	}
	return nil
}

// Glyph returns the ramp character for c's CIE L* lightness. Transparent
// and black pixels are blank.
func Glyph(c color.RGBA) byte {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return ramp[0]
	}
	l, _, _ := col.Lab()
	i := int(l*float64(len(ramp)-1) + 0.5)
	i = max(0, min(i, len(ramp)-1))
	return ramp[i]
}
