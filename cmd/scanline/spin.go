package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/scene"
)

// axis is one rotation axis: a constant spin plus an impulse velocity that a
// critically damped spring pulls back to zero.
type axis struct {
	spin     float64 // radians per second
	velocity float64 // impulse, radians per second
	accel    float64 // spring velocity of velocity
	spring   harmonica.Spring
}

func newAxis(fps int, spin float64) axis {
	return axis{
		spin: spin,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns the angle to turn by over dt and decays the impulse.
func (a *axis) step(dt float64) float64 {
	d := (a.spin + a.velocity) * dt
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return d
}

// spinner turns one object every tick.
type spinner struct {
	obj     *scene.Object
	x, y, z axis
}

func newSpinner(obj *scene.Object, fps int, spin [3]float64) *spinner {
	return &spinner{
		obj: obj,
		x:   newAxis(fps, spin[0]),
		y:   newAxis(fps, spin[1]),
		z:   newAxis(fps, spin[2]),
	}
}

func (s *spinner) step(dt float64) {
	s.obj.RotateX(s.x.step(dt))
	s.obj.RotateY(s.y.step(dt))
	s.obj.RotateZ(s.z.step(dt))
}

func (s *spinner) impulse(x, y, z float64) {
	s.x.velocity += x
	s.y.velocity += y
	s.z.velocity += z
}
