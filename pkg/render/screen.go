package render

import "image/color"

// Screen is the presentation sink a Renderer draws for. It reports the pixel
// size the renderer should allocate and accepts finished frames.
//
// pixels is row-major, width*height long, and only valid for the duration of
// the call.
type Screen interface {
	Width() int
	Height() int
	Present(pixels []color.RGBA, width, height int) error
}
