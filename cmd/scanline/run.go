package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/screen"
	"github.com/taigrr/scanline/pkg/screen/window"
)

// terminalKeys are the key names forwarded from the terminal. Each entry
// lists the spellings that map to the first one.
var terminalKeys = [][]string{
	{"esc", "escape"},
	{"ctrl+c"},
	{"q"},
	{"p"},
	{"space"},
	{"w"},
	{"s"},
	{"a"},
	{"d"},
	{"x"},
	{"l"},
	{"up"},
	{"down"},
	{"left"},
	{"right"},
}

// run builds the app and drives it on the configured backend.
func run(ctx context.Context, cfg *config.Config, opts options) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	a.maxFrames = opts.frames
	a.scene.Wireframe = opts.wireframe

	logger := render.Logger()
	logger.Info("starting",
		"backend", cfg.Screen.Backend,
		"objects", len(a.scene.Objects),
		"lighting", a.lighting)

	switch cfg.Screen.Backend {
	case config.BackendText:
		a.setScreen(screen.NewText(os.Stdout, cfg.Screen.Width, cfg.Screen.Height))
		err = runHeadless(ctx, a, cfg.FPS)
	case config.BackendSnapshot:
		snap, serr := screen.NewSnapshot(cfg.Screen.Output, cfg.Screen.Width, cfg.Screen.Height)
		if serr != nil {
			return serr
		}
		a.setScreen(snap)
		err = runHeadless(ctx, a, cfg.FPS)
		logger.Info("snapshots written", "frames", snap.Frames(), "last", snap.Path(max(snap.Frames()-1, 0)))
	case config.BackendWindow:
		err = runWindow(ctx, a, cfg)
	default:
		err = runTerminal(ctx, a, cfg.FPS)
	}

	if err != nil {
		logger.Error("render failed", "error", err, "frames", a.frames)
		return err
	}
	logger.Info("done", "frames", a.frames)
	return nil
}

// runHeadless ticks at a fixed rate until the frame limit, or until ctx is
// cancelled.
func runHeadless(ctx context.Context, a *app, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		done, err := a.tick()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

type size struct{ cols, rows int }

// runTerminal renders into the terminal. One goroutine forwards terminal
// events while the frame loop owns the app.
func runTerminal(ctx context.Context, a *app, fps int) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			render.Logger().Warn("terminal shutdown", "error", err)
		}
	}()

	a.setScreen(screen.NewTerminal(term, cols, rows))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	keys := make(chan string, 16)
	resizes := make(chan size, 1)

	g.Go(func() error {
		events := term.Events()
		for {
			var ev any
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				ev = e
			}

			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resizes <- size{ev.Width, ev.Height}:
				case <-ctx.Done():
					return nil
				}
			case uv.KeyPressEvent:
				for _, names := range terminalKeys {
					if !ev.MatchString(names...) {
						continue
					}
					select {
					case keys <- names[0]:
					case <-ctx.Done():
						return nil
					}
					break
				}
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case k := <-keys:
				if a.handleKey(k) {
					return nil
				}
				continue
			case sz := <-resizes:
				term.Erase()
				term.Resize(sz.cols, sz.rows)
				a.setScreen(screen.NewTerminal(term, sz.cols, sz.rows))
				render.Logger().Debug("terminal resized", "cols", sz.cols, "rows", sz.rows)
			case <-ticker.C:
			}

			done, err := a.tick()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	})

	return g.Wait()
}

// runWindow hands the loop to ebiten, which calls back once per tick.
func runWindow(ctx context.Context, a *app, cfg *config.Config) error {
	w := window.New(cfg.Screen.Title, cfg.Screen.Width, cfg.Screen.Height, 2, cfg.FPS)
	a.setScreen(w)

	err := w.Run(func(keys []string) error {
		if ctx.Err() != nil {
			return errQuit
		}
		for _, k := range keys {
			if a.handleKey(k) {
				return errQuit
			}
		}
		done, err := a.tick()
		if err != nil {
			return err
		}
		if done {
			return errQuit
		}
		return nil
	})
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
