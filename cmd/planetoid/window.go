package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

var planetKeys = [shade.PlanetCount]ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
}

// windowGame presents frames in a desktop window. Ebiten calls Update at
// a fixed tick rate and Draw once per displayed frame.
type windowGame struct {
	app   *app
	fb    *render.Framebuffer
	orbit *OrbitControl
	hud   *HUD
	dt    float64 // Seconds per tick
	title string
}

// runWindow opens a window sized to the configured framebuffer and blocks
// until it closes.
func runWindow(a *app) error {
	g := &windowGame{
		app:   a,
		fb:    a.framebuffer(a.cfg.Width, a.cfg.Height),
		orbit: NewOrbitControl(a.cfg.FPS),
		hud:   NewHUD(a.source, a.renderer.TriangleCount()),
		dt:    1 / float64(a.cfg.FPS),
	}

	ebiten.SetWindowTitle("planetoid")
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetTPS(a.cfg.FPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *windowGame) Update() error {
	for i, key := range planetKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.app.selectPlanet(shade.PlanetType(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.app.renderer.Wireframe = !g.app.renderer.Wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.orbit.Reset()
		g.app.resetCamera()
	}

	// Held keys keep pushing, so scale by the tick length
	push := func(yaw, pitch, zoom float64) {
		g.orbit.Push(yaw*g.dt, pitch*g.dt, zoom*g.dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		push(-orbitStep*10, 0, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		push(orbitStep*10, 0, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		push(0, orbitStep*10, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		push(0, -orbitStep*10, 0)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.orbit.Push(0, 0, dy*zoomStep)
	}

	g.orbit.Apply(g.app.camera)
	g.app.frame(g.fb, g.dt)
	g.hud.UpdateFPS()

	title := fmt.Sprintf("planetoid - %s - %.0f FPS", g.app.clock.Planet, g.hud.FPS())
	if title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.fb.ToImage().Pix)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
