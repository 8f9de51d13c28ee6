package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Camera is a viewpoint with a position, an orientation and a field of view.
// It produces the view transform that maps world space into the eye space
// FillTriangle expects, and the projection that maps eye space onto pixels.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)

	FOV float64 // Vertical field of view in radians

	// Cached matrices (computed on demand)
	viewMatrix   math3d.Mat4
	projMatrix   math3d.Mat4
	projW, projH int
	viewDirty    bool
	projDirty    bool
}

// NewCamera creates a camera at the origin looking down -Z with a 90 degree
// field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:       math.Pi / 2,
		viewDirty: true,
		projDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetRotation sets the camera rotation (pitch, yaw, roll in radians).
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.Pitch = pitch
	c.Yaw = yaw
	c.Roll = roll
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// ViewMatrix returns the world-to-eye transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the eye-to-pixel transform for a width x height
// canvas: the pinhole projection scaled so the field of view spans the
// shorter side, Y flipped so up is up, and centred.
func (c *Camera) ProjectionMatrix(width, height int) math3d.Mat4 {
	if c.projDirty || width != c.projW || height != c.projH {
		c.projW, c.projH = width, height
		c.computeProjectionMatrix()
		c.projDirty = false
	}
	return c.projMatrix
}

func (c *Camera) computeViewMatrix() {
	// View = Rotation^-1 * Translation(-position)
	rot := math3d.RotateZ(-c.Roll).Mul(
		math3d.RotateX(-c.Pitch)).Mul(
		math3d.RotateY(-c.Yaw))

	trans := math3d.Translate(c.Position.Negate())

	c.viewMatrix = rot.Mul(trans)
}

func (c *Camera) computeProjectionMatrix() {
	w, h := float64(c.projW), float64(c.projH)
	s := math.Min(w, h) / 2 / math.Tan(c.FOV/2)
	c.projMatrix = math3d.Translate(math3d.V3(w/2, h/2, 0)).
		Mul(math3d.Scale(math3d.V3(s, -s, 1))).
		Mul(math3d.Pinhole())
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
	c.viewDirty = true
}

// Rotate rotates the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw
	c.Roll += deltaRoll

	// Clamp pitch to avoid gimbal lock issues
	const maxPitch = math.Pi/2 - 0.01
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	c.viewDirty = true
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
	c.Roll = 0

	c.viewDirty = true
}

// WorldToScreen projects a world point onto a width x height canvas.
// visible is false for points behind the eye or outside the canvas.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	eye := c.ViewMatrix().MulVec3(p)
	if eye.Z >= 0 {
		return 0, 0, 0, false
	}
	s := c.ProjectionMatrix(width, height).MulVec3(eye)
	if s.X < 0 || s.X >= float64(width) || s.Y < 0 || s.Y >= float64(height) {
		return 0, 0, 0, false
	}
	return s.X, s.Y, s.Z, true
}
