// Package screen provides the presentation sinks a render.Renderer draws
// for: an ASCII dump, a half-block terminal blit and image snapshots.
// The desktop window lives in the window subpackage so that the ebiten
// dependency stays out of headless builds.
package screen

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned by Present when the frame does not have the
// size the sink reported.
var ErrSizeMismatch = errors.New("frame size mismatch")

func checkSize(pixels, width, height, wantW, wantH int) error {
	if width != wantW || height != wantH || pixels != width*height {
		return fmt.Errorf("%w: got %dx%d (%d pixels), want %dx%d",
			ErrSizeMismatch, width, height, pixels, wantW, wantH)
	}
	return nil
}
