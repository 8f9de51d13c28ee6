package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

const (
	torque       = 3.0  // radians per second added by one spin key press
	moveStep     = 0.5  // camera units per arrow key press
	turnStep     = 0.05 // camera radians per arrow key press
	degToRadians = math.Pi / 180
)

// errQuit stops a run loop without failing the command.
var errQuit = errors.New("quit")

// app is the harness state shared by every backend: the scene, the spin of
// each object and the pause/step flags. It is driven from a single
// goroutine.
type app struct {
	scene    *scene.Scene
	spinners []*spinner
	r        *render.Renderer

	color    render.Color
	lighting render.LightingMode
	dt       float64

	paused    bool
	step      bool
	frames    int
	maxFrames int
}

// newApp loads every configured object and builds the scene.
func newApp(cfg *config.Config) (*app, error) {
	if len(cfg.Objects) == 0 {
		return nil, fmt.Errorf("%w: no objects (pass a mesh or add [[objects]] to the config)", config.ErrInvalid)
	}

	a := &app{
		scene: scene.New(),
		color: render.RGB(cfg.Lighting.Color[0], cfg.Lighting.Color[1], cfg.Lighting.Color[2]),
		dt:    1 / float64(cfg.FPS),
	}
	if cfg.Lighting.Mode == config.LightingFlat {
		a.lighting = render.FlatShading
	}
	a.scene.Light = vec(cfg.Lighting.Position)
	a.scene.Camera.SetPosition(vec(cfg.Camera.Position))
	a.scene.Camera.SetFOV(cfg.Camera.FOVRadians())

	for _, oc := range cfg.Objects {
		mesh, err := models.Load(oc.Mesh)
		if err != nil {
			return nil, err
		}
		if oc.Normalize {
			mesh.Normalize()
		}
		name := oc.Name
		if name == "" {
			name = mesh.Name
		}

		obj := scene.NewObject(name, mesh.Triangles).
			Scaled(oc.Scale[0], oc.Scale[1], oc.Scale[2]).
			RotatedX(oc.Rotate[0] * degToRadians).
			RotatedY(oc.Rotate[1] * degToRadians).
			RotatedZ(oc.Rotate[2] * degToRadians).
			Translated(vec(oc.Translate))
		a.scene.Add(obj)
		a.spinners = append(a.spinners, newSpinner(obj, cfg.FPS, oc.Spin))
	}
	return a, nil
}

// setScreen points the app at a new sink, replacing the renderer.
func (a *app) setScreen(s render.Screen) {
	a.r = render.NewRenderer(s)
	a.r.SetColor(a.color)
	a.r.SetLighting(a.lighting)
}

// handleKey applies one key press. It reports whether the key quits.
func (a *app) handleKey(name string) bool {
	cam := a.scene.Camera
	switch name {
	case "esc", "q", "ctrl+c":
		return true
	case "p":
		a.paused = !a.paused
		render.Logger().Debug("pause toggled", "paused", a.paused)
	case "space":
		a.step = true
	case "w":
		a.impulse(-torque, 0, 0)
	case "s":
		a.impulse(torque, 0, 0)
	case "a":
		a.impulse(0, -torque, 0)
	case "d":
		a.impulse(0, torque, 0)
	case "x":
		a.scene.Wireframe = !a.scene.Wireframe
	case "l":
		if a.lighting == render.FlatShading {
			a.lighting = render.NoShading
		} else {
			a.lighting = render.FlatShading
		}
		if a.r != nil {
			a.r.SetLighting(a.lighting)
		}
	case "up":
		cam.MoveForward(moveStep)
	case "down":
		cam.MoveForward(-moveStep)
	case "left":
		cam.Rotate(0, turnStep, 0)
	case "right":
		cam.Rotate(0, -turnStep, 0)
	}
	return false
}

func (a *app) impulse(x, y, z float64) {
	for _, s := range a.spinners {
		s.impulse(x, y, z)
	}
}

// tick advances the world by one fixed timestep and presents a frame. While
// paused it does nothing unless a step was requested. done reports that the
// frame limit was reached.
func (a *app) tick() (done bool, err error) {
	if a.paused && !a.step {
		return false, nil
	}
	a.step = false

	for _, s := range a.spinners {
		s.step(a.dt)
	}
	if err := a.scene.Render(a.r); err != nil {
		return false, err
	}
	a.frames++

	stats := a.r.Stats()
	render.Logger().Debug("frame",
		"n", a.frames,
		"drawn", stats.Drawn(),
		"culled", stats.Culled,
		"split", stats.Split)

	return a.maxFrames > 0 && a.frames >= a.maxFrames, nil
}

func vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
