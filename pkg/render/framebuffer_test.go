package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/planetoid/pkg/math3d"
)

var (
	red   = RGB(255, 0, 0)
	green = RGB(0, 255, 0)
	blue  = RGB(0, 0, 255)
)

func TestFramebufferDepthTest(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	if !fb.Point(1, 2, red, 5) {
		t.Fatal("first write rejected")
	}
	if !fb.Point(1, 2, blue, 3) {
		t.Fatal("nearer write rejected")
	}
	if fb.Point(1, 2, green, 4) {
		t.Fatal("farther write accepted")
	}

	if got := fb.GetPixel(1, 2); got != blue {
		t.Errorf("pixel = %v, want blue", got)
	}
	if got := fb.Depth(1, 2); got != 3 {
		t.Errorf("depth = %v, want 3", got)
	}
}

func TestFramebufferEqualDepthRejected(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Point(0, 0, red, 1)
	if fb.Point(0, 0, green, 1) {
		t.Error("equal depth write accepted")
	}
	if got := fb.GetPixel(0, 0); got != red {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestFramebufferIdempotentWrites(t *testing.T) {
	a := NewFramebuffer(3, 3)
	b := NewFramebuffer(3, 3)

	a.Point(1, 1, red, 0.5)
	b.Point(1, 1, red, 0.5)
	b.Point(1, 1, red, 0.5)

	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
	if a.Depth(1, 1) != b.Depth(1, 1) {
		t.Errorf("depth differs: %v vs %v", a.Depth(1, 1), b.Depth(1, 1))
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	points := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}}
	for _, p := range points {
		if fb.Point(p[0], p[1], red, 0) {
			t.Errorf("Point(%d, %d) accepted out of bounds", p[0], p[1])
		}
		if got := fb.GetPixel(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("GetPixel(%d, %d) = %v, want zero", p[0], p[1], got)
		}
		if got := fb.Depth(p[0], p[1]); got != FarDepth {
			t.Errorf("Depth(%d, %d) = %v, want FarDepth", p[0], p[1], got)
		}
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(5, 7)
	bg := RGB(30, 30, 30)
	fb.SetBackground(bg)
	fb.Point(2, 3, red, -1)
	fb.Clear()

	for y := range fb.Height {
		for x := range fb.Width {
			if got := fb.GetPixel(x, y); got != bg {
				t.Fatalf("pixel (%d,%d) = %v after clear", x, y, got)
			}
			if got := fb.Depth(x, y); got != FarDepth {
				t.Fatalf("depth (%d,%d) = %v after clear", x, y, got)
			}
		}
	}

	// Any finite depth wins after a clear.
	if !fb.Point(2, 3, green, 1e300) {
		t.Error("write after clear rejected")
	}
}

func TestFramebufferZeroSize(t *testing.T) {
	fb := NewFramebuffer(0, 0)
	fb.Clear()
	if fb.Point(0, 0, red, 0) {
		t.Error("write into empty framebuffer accepted")
	}
	neg := NewFramebuffer(-3, 2)
	if neg.Width != 0 || len(neg.Pixels) != 0 {
		t.Errorf("negative width gave %d pixels", len(neg.Pixels))
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	white := RGB(255, 255, 255)
	fb.DrawLine(1, 1, 8, 5, white)

	if fb.GetPixel(1, 1) != white || fb.GetPixel(8, 5) != white {
		t.Error("line endpoints not drawn")
	}
	count := 0
	for _, p := range fb.Pixels {
		if p == white {
			count++
		}
	}
	// Bresenham visits max(dx, dy)+1 pixels.
	if count != 8 {
		t.Errorf("line drew %d pixels, want 8", count)
	}
	if fb.Depth(4, 3) != FarDepth {
		t.Error("overlay line touched the depth buffer")
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(6, 4)
	fb.SetBackground(RGB(10, 20, 30))
	fb.Clear()
	fb.Point(3, 2, red, 0)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestColorFromVec(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want color.RGBA
	}{
		{"black", math3d.V3(0, 0, 0), RGB(0, 0, 0)},
		{"white", math3d.V3(1, 1, 1), RGB(255, 255, 255)},
		{"clamped", math3d.V3(-0.5, 2, 0.5), RGB(0, 255, 128)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ColorFromVec(tc.in); got != tc.want {
				t.Errorf("ColorFromVec(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#1e1e1e")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if got != RGB(30, 30, 30) {
		t.Errorf("got %v, want 30,30,30", got)
	}
	if _, err := ParseHexColor("nope"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestTerminalFramebufferSize(t *testing.T) {
	w, h := NewTerminalRenderer(nil, 80, 24).FramebufferSize()
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize = %d x %d, want 80 x 48", w, h)
	}
}
