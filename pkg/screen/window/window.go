// Package window shows frames in a desktop window through ebiten.
package window

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/screen"
)

// keyNames maps polled keys to the names the terminal reports for them, so
// one key handler serves both backends.
var keyNames = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeyP, "p"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyX, "x"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyEscape, "esc"},
	{ebiten.KeyArrowUp, "up"},
	{ebiten.KeyArrowDown, "down"},
	{ebiten.KeyArrowLeft, "left"},
	{ebiten.KeyArrowRight, "right"},
}

// UpdateFunc advances the application by one tick. keys holds the names of
// the keys pressed since the previous tick. A non-nil error closes the
// window and is returned from Run.
type UpdateFunc func(keys []string) error

// Window is a render.Screen backed by an ebiten window. It also implements
// ebiten.Game: ebiten drives the loop and calls back into the UpdateFunc
// passed to Run.
type Window struct {
	title         string
	width, height int
	scale         int
	tps           int

	mu  sync.Mutex
	img *image.RGBA

	fbImg  *ebiten.Image
	update UpdateFunc
	keys   []string
}

// New creates a window sink with a width x height pixel canvas. The window
// opens scale times larger than the canvas.
func New(title string, width, height, scale, tps int) *Window {
	return &Window{
		title:  title,
		width:  width,
		height: height,
		scale:  max(scale, 1),
		tps:    tps,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (w *Window) Width() int  { return w.width }
func (w *Window) Height() int { return w.height }

// Present copies the frame. It is shown on the next Draw.
func (w *Window) Present(pixels []color.RGBA, width, height int) error {
	if width != w.width || height != w.height || len(pixels) != width*height {
		return screen.ErrSizeMismatch
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	dst := w.img.Pix
	for i, c := range pixels {
		j := i * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = c.A
	}
	return nil
}

// Run opens the window and blocks until it is closed or update fails.
func (w *Window) Run(update UpdateFunc) error {
	w.update = update
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	if w.tps > 0 {
		ebiten.SetTPS(w.tps)
	}
	render.Logger().Debug("window opened", "title", w.title, "width", w.width, "height", w.height)
	return ebiten.RunGame(w)
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.keys = w.pollKeys(w.keys[:0])
	if w.update == nil {
		return nil
	}
	return w.update(w.keys)
}

func (w *Window) pollKeys(dst []string) []string {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		dst = append(dst, "ctrl+c")
	}
	for _, k := range keyNames {
		if inpututil.IsKeyJustPressed(k.key) {
			dst = append(dst, k.name)
		}
	}
	return dst
}

// Draw implements ebiten.Game.
func (w *Window) Draw(scr *ebiten.Image) {
	if w.fbImg == nil {
		w.fbImg = ebiten.NewImage(w.width, w.height)
	}
	w.mu.Lock()
	w.fbImg.WritePixels(w.img.Pix)
	w.mu.Unlock()
	scr.DrawImage(w.fbImg, nil)
}

// Layout implements ebiten.Game. The logical screen is the canvas; ebiten
// scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
