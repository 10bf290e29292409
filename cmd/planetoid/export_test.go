package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/scene"
	"github.com/taigrr/planetoid/pkg/shade"
)

func testApp(t *testing.T, planet shade.PlanetType) *app {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 48
	cfg.Subdivisions = 1
	cfg.Planet = planet.String()
	a, err := newApp(cfg, "", slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a
}

func TestExportFrames(t *testing.T) {
	a := testApp(t, shade.Ringed)
	dir := filepath.Join(t.TempDir(), "out")

	if err := exportFrames(context.Background(), a, dir, 3, io.Discard); err != nil {
		t.Fatalf("exportFrames: %v", err)
	}

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("%s is %dx%d, want 64x48", name, b.Dx(), b.Dy())
		}
	}

	// First frame at t=0, then one fixed step per frame
	want := 2 / float64(a.cfg.FPS)
	if d := a.clock.Time - want; d > 1e-12 || d < -1e-12 {
		t.Errorf("clock time = %v, want %v", a.clock.Time, want)
	}
}

func TestExportFramesErrors(t *testing.T) {
	a := testApp(t, shade.Rocky)
	if err := exportFrames(context.Background(), a, t.TempDir(), 0, io.Discard); err == nil {
		t.Error("zero frames accepted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := exportFrames(ctx, a, t.TempDir(), 2, io.Discard); err == nil {
		t.Error("cancelled export succeeded")
	}
}

func TestLoadMesh(t *testing.T) {
	mesh, source, err := loadMesh("", 0)
	if err != nil || source != "icosphere" || mesh.TriangleCount() != 20 {
		t.Errorf("built-in mesh = %v, %q, %v", mesh, source, err)
	}

	if _, _, err := loadMesh(filepath.Join(t.TempDir(), "missing.obj"), 0); err == nil {
		t.Error("missing mesh loaded")
	}

	path := filepath.Join(t.TempDir(), "tri.obj")
	obj := "v 10 0 0\nv 14 0 0\nv 12 2 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	mesh, source, err = loadMesh(path, 0)
	if err != nil {
		t.Fatalf("loadMesh: %v", err)
	}
	if source != "tri.obj" {
		t.Errorf("source = %q", source)
	}
	if r := mesh.BoundingRadius(); r < 0.999 || r > 1.001 {
		t.Errorf("loaded mesh radius = %v, want 1", r)
	}
	if !mesh.HasNormals() {
		t.Error("loaded mesh has no normals")
	}
}

func TestAppSelectPlanet(t *testing.T) {
	a := testApp(t, shade.Rocky)
	a.selectPlanet(shade.Icy)
	if a.clock.Planet != shade.Icy {
		t.Errorf("planet = %v, want icy", a.clock.Planet)
	}
	a.selectPlanet(shade.PlanetType(9))
	if a.clock.Planet != shade.Icy {
		t.Errorf("unknown planet changed selection to %v", a.clock.Planet)
	}
}

func TestHUDRender(t *testing.T) {
	h := NewHUD("icosphere", 80)
	stats := scene.FrameStats{Passes: []scene.PassStats{
		{Mode: render.ModeBody, Fragments: 120, Written: 100},
		{Mode: render.ModeRing, Culled: true},
	}}

	var hidden bytes.Buffer
	h.Render(&hidden, 80, 24, false, shade.Ringed, stats, false)
	if strings.Contains(hidden.String(), "ringed") {
		t.Error("hidden HUD drew the planet name")
	}
	if !strings.Contains(hidden.String(), clearLine) {
		t.Error("hidden HUD did not clear its rows")
	}

	var shown bytes.Buffer
	h.Render(&shown, 80, 24, true, shade.Ringed, stats, true)
	out := shown.String()
	for _, want := range []string{"4 ringed", "80 tris", "120 frags", "100 px", "1 culled", "[✓] X-Ray"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD output missing %q", want)
		}
	}
}

func TestOrbitControlDecays(t *testing.T) {
	cam := render.NewCamera()
	o := NewOrbitControl(60)
	o.Push(0.1, 0, 0)

	yaw0, _, _ := cam.Orbit()
	for range 120 {
		o.Apply(cam)
	}
	yaw1, _, _ := cam.Orbit()
	if yaw1 == yaw0 {
		t.Error("camera did not orbit")
	}
	if v := o.Yaw.Velocity; v > 1e-3 || v < -1e-3 {
		t.Errorf("yaw velocity after 2s = %v, want ~0", v)
	}

	o.Push(0, 0, 1)
	o.Reset()
	if o.Zoom.Velocity != 0 {
		t.Errorf("Reset left zoom velocity %v", o.Zoom.Velocity)
	}
}
