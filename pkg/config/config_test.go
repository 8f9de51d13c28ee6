package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendTerminal, cfg.Screen.Backend)
	assert.Equal(t, LightingFlat, cfg.Lighting.Mode)
	assert.InDelta(t, math.Pi/2, cfg.Camera.FOVRadians(), 1e-12)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
fps = 30
[screen]
backend = "text"
width = 40
[[objects]]
mesh = "a.obj"
rotate = [90.0, 0.0, 0.0]
`))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, BackendText, cfg.Screen.Backend)
	assert.Equal(t, 40, cfg.Screen.Width)
	assert.Equal(t, 90, cfg.Screen.Height, "kept from defaults")
	require.Len(t, cfg.Objects, 1)
	assert.Equal(t, [3]float64{1, 1, 1}, cfg.Objects[0].Scale, "unit scale when unset")
	assert.Equal(t, [3]float64{90, 0, 0}, cfg.Objects[0].Rotate)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[screen]\nbackend = \"text\"\ncolour = 3\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(strings.NewReader("fps = = 3"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"fps", func(c *Config) { c.FPS = 0 }, "fps"},
		{"backend", func(c *Config) { c.Screen.Backend = "vga" }, "screen.backend"},
		{"width", func(c *Config) { c.Screen.Width = -1 }, "screen.width"},
		{"height", func(c *Config) { c.Screen.Height = 0 }, "screen.height"},
		{"snapshot output", func(c *Config) {
			c.Screen.Backend = BackendSnapshot
			c.Screen.Output = ""
		}, "screen.output"},
		{"lighting", func(c *Config) { c.Lighting.Mode = "phong" }, "lighting.mode"},
		{"light position", func(c *Config) { c.Lighting.Position[1] = math.NaN() }, "lighting.position"},
		{"camera position", func(c *Config) { c.Camera.Position[2] = math.Inf(1) }, "camera.position"},
		{"fov low", func(c *Config) { c.Camera.FOV = 0 }, "camera.fov"},
		{"fov high", func(c *Config) { c.Camera.FOV = 180 }, "camera.fov"},
		{"mesh", func(c *Config) { c.Objects = []Object{{}} }, "objects[0].mesh"},
		{"transform", func(c *Config) {
			o := DefaultObject("m.obj")
			o.Spin[0] = math.NaN()
			c.Objects = []Object{o}
		}, "objects[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("../../res/scanline.toml")
	require.NoError(t, err)
	require.Len(t, cfg.Objects, 2)
	assert.Equal(t, "cube", cfg.Objects[0].Name)
	assert.Equal(t, [3]uint8{200, 200, 200}, cfg.Lighting.Color)
	assert.Equal(t, [3]float64{1.5, 1.5, 1.5}, cfg.Objects[1].Scale)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("fps = -1\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), bad)
}

func TestDefaultObject(t *testing.T) {
	o := DefaultObject("res/cube.mesh")
	assert.Equal(t, "res/cube.mesh", o.Mesh)
	assert.True(t, o.Normalize)
	cfg := Default()
	cfg.Objects = append(cfg.Objects, o)
	assert.NoError(t, cfg.Validate())
}
