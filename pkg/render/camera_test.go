package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestCameraProjection(t *testing.T) {
	cam := NewCamera()
	proj := cam.ProjectionMatrix(64, 32)

	// The axis lands in the centre.
	p := proj.MulVec3(math3d.V3(0, 0, -5))
	assert.True(t, p.ApproxEqual(math3d.V3(32, 16, -0.2), 1e-9), "got %v", p)

	// With a 90 degree FOV, 45 degrees up reaches the top of the shorter side.
	p = proj.MulVec3(math3d.V3(0, 1, -1))
	assert.InDelta(t, 0.0, p.Y, 1e-9)

	// And 45 degrees right is half the height right of centre.
	p = proj.MulVec3(math3d.V3(1, 0, -1))
	assert.InDelta(t, 48.0, p.X, 1e-9)

	cam.SetFOV(math.Pi / 3)
	p = cam.ProjectionMatrix(64, 32).MulVec3(math3d.V3(0, 1, -1))
	assert.Less(t, p.Y, 0.0, "narrower FOV magnifies")
}

func TestCameraViewMatrix(t *testing.T) {
	cam := NewCamera()
	assert.Equal(t, math3d.Identity(), cam.ViewMatrix())

	cam.SetPosition(math3d.V3(0, 0, 10))
	p := cam.ViewMatrix().MulVec3(math3d.Zero3())
	assert.True(t, p.ApproxEqual(math3d.V3(0, 0, -10), 1e-9), "got %v", p)

	cam.SetPosition(math3d.V3(10, 0, 0))
	cam.LookAt(math3d.Zero3())
	p = cam.ViewMatrix().MulVec3(math3d.Zero3())
	assert.True(t, p.ApproxEqual(math3d.V3(0, 0, -10), 1e-9), "got %v", p)
	assert.True(t, cam.Forward().ApproxEqual(math3d.V3(-1, 0, 0), 1e-9))
}

func TestCameraMovement(t *testing.T) {
	cam := NewCamera()

	cam.MoveForward(2)
	assert.True(t, cam.Position.ApproxEqual(math3d.V3(0, 0, -2), 1e-9))

	cam.MoveRight(3)
	assert.True(t, cam.Position.ApproxEqual(math3d.V3(3, 0, -2), 1e-9))

	cam.Rotate(10, 0, 0)
	assert.Less(t, cam.Pitch, math.Pi/2)

	cam.SetRotation(0, math.Pi/2, 0)
	assert.True(t, cam.Forward().ApproxEqual(math3d.V3(-1, 0, 0), 1e-9))
}

func TestWorldToScreen(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.WorldToScreen(math3d.V3(0, 0, -4), 40, 20)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
	assert.InDelta(t, -0.25, depth, 1e-9)

	_, _, _, ok = cam.WorldToScreen(math3d.V3(0, 0, 4), 40, 20)
	assert.False(t, ok, "behind the eye")

	_, _, _, ok = cam.WorldToScreen(math3d.V3(100, 0, -1), 40, 20)
	assert.False(t, ok, "off screen")
}
