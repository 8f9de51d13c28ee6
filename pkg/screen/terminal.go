package screen

import (
	"fmt"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// CellSetter is the part of an ultraviolet screen the Terminal sink draws
// into. uv.Screen and *uv.Terminal both satisfy it.
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// displayer is implemented by *uv.Terminal.
type displayer interface {
	Display() error
}

// Terminal blits frames into a cell grid with upper half blocks: every cell
// shows two pixels, the upper one as foreground and the lower one as
// background, so the pixel height is twice the number of rows.
type Terminal struct {
	scr        CellSetter
	cols, rows int
}

// NewTerminal creates a terminal sink covering cols x rows cells of scr.
func NewTerminal(scr CellSetter, cols, rows int) *Terminal {
	return &Terminal{scr: scr, cols: cols, rows: rows}
}

func (t *Terminal) Width() int  { return t.cols }
func (t *Terminal) Height() int { return t.rows * 2 }

// Present draws the frame and, when the target can, flushes it to the
// terminal.
func (t *Terminal) Present(pixels []color.RGBA, width, height int) error {
	if err := checkSize(len(pixels), width, height, t.Width(), t.Height()); err != nil {
		return err
	}

	for row := range t.rows {
		top := pixels[row*2*width:]
		bot := pixels[(row*2+1)*width:]
		for col := range t.cols {
			t.scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(top[col]),
					Bg: rgbaToColor(bot[col]),
				},
			})
		}
	}

	if d, ok := t.scr.(displayer); ok {
		if err := d.Display(); err != nil {
			return fmt.Errorf("display terminal: %w", err)
		}
	}
	return nil
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
