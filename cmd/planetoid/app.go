package main

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/models"
	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/scene"
	"github.com/taigrr/planetoid/pkg/shade"
)

// app is the state shared by the terminal, window and export front ends.
type app struct {
	cfg      Config
	logger   *slog.Logger
	source   string
	renderer *scene.Renderer
	clock    *scene.Clock
	camera   *render.Camera
	bg       color.RGBA
	stats    scene.FrameStats
}

// newApp loads the mesh and builds the renderer. An empty meshPath uses
// the built-in icosphere.
func newApp(cfg Config, meshPath string, logger *slog.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, _ := cfg.BackgroundColor()
	planet, _ := cfg.PlanetType()

	mesh, source, err := loadMesh(meshPath, cfg.Subdivisions)
	if err != nil {
		return nil, err
	}
	logger.Info("mesh loaded",
		"source", source,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
	)

	r := scene.NewMeshRenderer(mesh)
	r.Pipeline = cfg.Pipeline()
	r.Light = render.Light{Position: cfg.Light.Vec3()}
	r.Band = scene.RingBand{Inner: cfg.Ring.Inner, Outer: cfg.Ring.Outer}
	r.Logger = logger

	return &app{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		renderer: r,
		clock:    scene.NewClock(planet),
		camera:   cfg.NewCamera(cfg.Width, cfg.Height),
		bg:       bg,
	}, nil
}

// loadMesh reads the mesh at path and fits it to the unit sphere the
// shaders expect.
func loadMesh(path string, subdivisions int) (*models.Mesh, string, error) {
	if path == "" {
		return models.NewIcosphere(max(subdivisions, 0)), "icosphere", nil
	}
	mesh, err := models.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load mesh: %w", err)
	}
	mesh.Fit(1)
	if !mesh.HasNormals() {
		mesh.CalculateSmoothNormals()
	}
	return mesh, filepath.Base(path), nil
}

// framebuffer allocates a width x height target and points the camera's
// aspect ratio at it.
func (a *app) framebuffer(width, height int) *render.Framebuffer {
	fb := render.NewFramebuffer(width, height)
	fb.SetBackground(a.bg)
	if width > 0 && height > 0 {
		a.camera.SetAspectRatio(float64(width) / float64(height))
	}
	a.logger.Debug("framebuffer resized", "width", width, "height", height)
	return fb
}

// frame advances the clock by dt seconds and renders into fb.
func (a *app) frame(fb *render.Framebuffer, dt float64) scene.FrameStats {
	a.clock.Advance(dt)
	u := a.clock.Uniforms(a.camera, math3d.Identity(), fb.Width, fb.Height)
	a.stats = a.renderer.RenderFrame(fb, u)
	return a.stats
}

// selectPlanet switches planets, logging the change.
func (a *app) selectPlanet(p shade.PlanetType) {
	if a.clock.Planet == p || !a.clock.SelectPlanet(p) {
		return
	}
	a.logger.Info("planet selected", "planet", p)
}

// resetCamera puts the camera back where the config placed it.
func (a *app) resetCamera() {
	a.camera.SetPosition(a.cfg.Camera.Position.Vec3())
	a.camera.SetTarget(a.cfg.Camera.Target.Vec3())
}

// newLogger writes text logs to the file at path, or to fallback when path
// is empty. The returned function closes the file.
func newLogger(path string, level slog.Level, fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w, closeFn = f, f.Close
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}
