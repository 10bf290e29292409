package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

const (
	orbitStep = 0.08 // Radians of yaw or pitch velocity per key press
	zoomStep  = 0.25 // Units of zoom velocity per key press
)

// viewer is the terminal front end. Everything in it is owned by the render
// loop; input arrives as actions over a channel.
type viewer struct {
	app      *app
	term     *uv.Terminal
	screen   *render.TerminalRenderer
	fb       *render.Framebuffer
	orbit    *OrbitControl
	hud      *HUD
	width    int // Cells
	height   int // Cells
	showHUD  bool
	quitting bool
}

// action mutates the viewer on the render goroutine.
type action func(v *viewer)

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.term.Erase()
	v.term.Resize(width, height)
	v.screen = render.NewTerminalRenderer(v.term, width, height)
	v.fb = v.app.framebuffer(v.screen.FramebufferSize())
}

// keyAction maps a pressed key to an action, or nil for keys without one.
func keyAction(ev uv.KeyPressEvent) action {
	for p := range shade.PlanetType(shade.PlanetCount) {
		if ev.MatchString(fmt.Sprint(int(p) + 1)) {
			return func(v *viewer) { v.app.selectPlanet(p) }
		}
	}
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return func(v *viewer) { v.quitting = true }
	case ev.MatchString("x"):
		return func(v *viewer) { v.app.renderer.Wireframe = !v.app.renderer.Wireframe }
	case ev.MatchString("?", "shift+/"):
		return func(v *viewer) { v.showHUD = !v.showHUD }
	case ev.MatchString("r"):
		return func(v *viewer) {
			v.orbit.Reset()
			v.app.resetCamera()
		}
	case ev.MatchString("a", "left"):
		return func(v *viewer) { v.orbit.Push(-orbitStep, 0, 0) }
	case ev.MatchString("d", "right"):
		return func(v *viewer) { v.orbit.Push(orbitStep, 0, 0) }
	case ev.MatchString("w", "up"):
		return func(v *viewer) { v.orbit.Push(0, orbitStep, 0) }
	case ev.MatchString("s", "down"):
		return func(v *viewer) { v.orbit.Push(0, -orbitStep, 0) }
	case ev.MatchString("+", "="):
		return func(v *viewer) { v.orbit.Push(0, 0, zoomStep) }
	case ev.MatchString("-", "_"):
		return func(v *viewer) { v.orbit.Push(0, 0, -zoomStep) }
	}
	return nil
}

// runTerminal draws the planet in the terminal with half-block pixels until
// the user quits or ctx is cancelled.
func runTerminal(ctx context.Context, a *app) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()

	v := &viewer{
		app:   a,
		term:  term,
		orbit: NewOrbitControl(a.cfg.FPS),
		hud:   NewHUD(a.source, a.renderer.TriangleCount()),
	}
	v.resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan action, 64)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events := term.Events()
		for {
			var act action
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					w, h := ev.Width, ev.Height
					act = func(v *viewer) { v.resize(w, h) }
				case uv.KeyPressEvent:
					act = keyAction(ev)
				case uv.MouseWheelEvent:
					switch ev.Button {
					case uv.MouseWheelUp:
						act = func(v *viewer) { v.orbit.Push(0, 0, zoomStep) }
					case uv.MouseWheelDown:
						act = func(v *viewer) { v.orbit.Push(0, 0, -zoomStep) }
					}
				}
			}
			if act == nil {
				continue
			}
			select {
			case actions <- act:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		return v.loop(ctx, actions)
	})

	return g.Wait()
}

// loop renders frames at the configured rate, applying pending actions
// before each one.
func (v *viewer) loop(ctx context.Context, actions <-chan action) error {
	targetDuration := time.Second / time.Duration(v.app.cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case act := <-actions:
				act(v)
			default:
				break drain
			}
		}
		if v.quitting {
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		v.orbit.Apply(v.app.camera)
		stats := v.app.frame(v.fb, dt)

		v.screen.Render(v.fb)
		if err := v.screen.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		v.hud.UpdateFPS()
		v.hud.Render(os.Stdout, v.width, v.height, v.showHUD, v.app.clock.Planet, stats, v.app.renderer.Wireframe)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
