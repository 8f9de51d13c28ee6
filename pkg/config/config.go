// Package config loads the scene and harness configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backends accepted for screen.backend.
const (
	BackendText     = "text"
	BackendTerminal = "terminal"
	BackendSnapshot = "snapshot"
	BackendWindow   = "window"
)

// Lighting modes accepted for lighting.mode.
const (
	LightingNone = "none"
	LightingFlat = "flat"
)

// Config is the top level configuration.
type Config struct {
	FPS      int      `toml:"fps"`
	Screen   Screen   `toml:"screen"`
	Lighting Lighting `toml:"lighting"`
	Camera   Camera   `toml:"camera"`
	Objects  []Object `toml:"objects"`
}

// Screen selects and sizes the presentation sink.
type Screen struct {
	Backend string `toml:"backend"`
	// Width and Height are in pixels. The terminal backend sizes itself from
	// the terminal instead.
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// Output is the snapshot path pattern; "%d" becomes the frame number.
	Output string `toml:"output"`
}

type Lighting struct {
	Mode     string     `toml:"mode"`
	Position [3]float64 `toml:"position"`
	Color    [3]uint8   `toml:"color"`
}

type Camera struct {
	Position [3]float64 `toml:"position"`
	// FOV in degrees.
	FOV float64 `toml:"fov"`
}

// Object places one mesh in the scene. Transforms are applied scale first,
// then rotation, then translation.
type Object struct {
	Name string `toml:"name"`
	Mesh string `toml:"mesh"`
	// Normalize centres the mesh on its origin and scales its largest
	// dimension to 2 before the object transforms apply.
	Normalize bool       `toml:"normalize"`
	Scale     [3]float64 `toml:"scale"`
	Translate [3]float64 `toml:"translate"`
	// Rotate is the initial rotation about X, Y and Z in degrees.
	Rotate [3]float64 `toml:"rotate"`
	// Spin is the angular velocity about X, Y and Z in radians per second.
	Spin [3]float64 `toml:"spin"`
}

// DefaultObject is the object used when a mesh is given without a config
// file: the mesh normalized, scaled by 3 and placed twenty units in front of
// the camera, spinning.
func DefaultObject(mesh string) Object {
	return Object{
		Mesh:      mesh,
		Normalize: true,
		Scale:     [3]float64{3, 3, 3},
		Translate: [3]float64{0, 0, -20},
		Rotate:    [3]float64{45, 0, 0},
		Spin:      [3]float64{1, 1, 0},
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		FPS: 60,
		Screen: Screen{
			Backend: BackendTerminal,
			Width:   160,
			Height:  90,
			Title:   "scanline",
			Output:  "frame-%d.png",
		},
		Lighting: Lighting{
			Mode:     LightingFlat,
			Position: [3]float64{10, 0, 10},
			Color:    [3]uint8{200, 200, 200},
		},
		Camera: Camera{FOV: 90},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.TrimSpace(strict.String()))
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for i := range cfg.Objects {
		cfg.Objects[i].applyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults gives an object without a scale unit scale.
func (o *Object) applyDefaults() {
	if o.Scale == [3]float64{} {
		o.Scale = [3]float64{1, 1, 1}
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return invalid("fps", c.FPS)
	}

	switch c.Screen.Backend {
	case BackendText, BackendTerminal, BackendSnapshot, BackendWindow:
	default:
		return invalid("screen.backend", c.Screen.Backend)
	}
	if c.Screen.Width <= 0 {
		return invalid("screen.width", c.Screen.Width)
	}
	if c.Screen.Height <= 0 {
		return invalid("screen.height", c.Screen.Height)
	}
	if c.Screen.Backend == BackendSnapshot && c.Screen.Output == "" {
		return invalid("screen.output", c.Screen.Output)
	}

	switch c.Lighting.Mode {
	case LightingNone, LightingFlat:
	default:
		return invalid("lighting.mode", c.Lighting.Mode)
	}
	if !finite(c.Lighting.Position[:]...) {
		return invalid("lighting.position", c.Lighting.Position)
	}

	if !finite(c.Camera.Position[:]...) {
		return invalid("camera.position", c.Camera.Position)
	}
	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		return invalid("camera.fov", c.Camera.FOV)
	}

	for i, o := range c.Objects {
		field := fmt.Sprintf("objects[%d]", i)
		if o.Mesh == "" {
			return invalid(field+".mesh", o.Mesh)
		}
		if !finite(o.Scale[:]...) || !finite(o.Translate[:]...) ||
			!finite(o.Rotate[:]...) || !finite(o.Spin[:]...) {
			return fmt.Errorf("%w: %s has a non-finite transform", ErrInvalid, field)
		}
	}
	return nil
}

// FOVRadians returns the camera field of view in radians.
func (c Camera) FOVRadians() float64 {
	return c.FOV * math.Pi / 180
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalid, field, value)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
