package window

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/screen"
)

func TestWindowPresent(t *testing.T) {
	w := New("test", 2, 1, 0, 60)
	assert.Equal(t, 2, w.Width())
	assert.Equal(t, 1, w.Height())
	assert.Equal(t, 1, w.scale, "scale is at least 1")

	w2, h2 := w.Layout(640, 480)
	assert.Equal(t, [2]int{2, 1}, [2]int{w2, h2})

	require.NoError(t, w.Present([]color.RGBA{render.ColorRed, render.ColorBlue}, 2, 1))
	assert.Equal(t, []uint8{255, 0, 0, 255, 0, 0, 255, 255}, w.img.Pix)

	assert.ErrorIs(t, w.Present(make([]color.RGBA, 4), 2, 2), screen.ErrSizeMismatch)
}
