// scanline - software scanline rasterizer
// Renders triangle meshes on the CPU and shows them as ASCII text, in the
// terminal, as image files or in a desktop window.
//
// Controls (terminal and window):
//
//	P           - Pause / resume
//	Space       - Step one frame while paused
//	W/S/A/D     - Spin impulse (pitch/yaw)
//	Arrows      - Move / turn the camera
//	X           - Toggle wireframe
//	L           - Toggle flat lighting
//	Esc/Q       - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/render"
)

var version = "dev"

type options struct {
	configPath string
	backend    string
	width      int
	height     int
	fps        int
	frames     int
	out        string
	wireframe  bool
	flat       bool
	verbose    bool
}

func main() {
	cmd := newCommand()
	if err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "scanline [flags] [mesh]",
		Short: "Render triangle meshes with a software scanline rasterizer",
		Long: `scanline rasterizes triangle meshes on the CPU and presents the frames
as ASCII text, half-block terminal cells, PNG/BMP snapshots or a desktop
window. Meshes may be triangle lists, Wavefront OBJ or glTF files.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			setupLogger(opts.verbose, cfg.Screen.Backend)
			return run(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	f.StringVarP(&opts.backend, "backend", "b", "", "presentation backend: text, terminal, snapshot or window")
	f.IntVar(&opts.width, "width", 0, "canvas width in pixels")
	f.IntVar(&opts.height, "height", 0, "canvas height in pixels")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second")
	f.IntVarP(&opts.frames, "frames", "n", 0, "stop after this many frames (0 runs until quit)")
	f.StringVarP(&opts.out, "out", "o", "", `snapshot path; "%d" is replaced by the frame number`)
	f.BoolVar(&opts.wireframe, "wireframe", false, "draw triangle edges instead of filling")
	f.BoolVar(&opts.flat, "flat", false, "enable flat lighting")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	return cmd
}

// resolveConfig loads the config file, if any, and applies the flags the
// user set on top of it.
func resolveConfig(cmd *cobra.Command, opts options, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	if len(args) == 1 {
		cfg.Objects = []config.Object{config.DefaultObject(args[0])}
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Screen.Backend = opts.backend
	}
	if flags.Changed("width") {
		cfg.Screen.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Screen.Height = opts.height
	}
	if flags.Changed("fps") {
		cfg.FPS = opts.fps
	}
	if flags.Changed("out") {
		cfg.Screen.Output = opts.out
	}
	if opts.flat {
		cfg.Lighting.Mode = config.LightingFlat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.frames < 0 {
		return nil, fmt.Errorf("%w: frames = %d", config.ErrInvalid, opts.frames)
	}
	return cfg, nil
}

// setupLogger installs a text handler on stderr. The terminal backend only
// logs warnings so records do not draw over the frame.
func setupLogger(verbose bool, backend string) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if backend == config.BackendTerminal && !verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	render.SetLogger(logger)
}
