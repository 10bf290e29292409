// Package render implements the software pipeline of the planet renderer:
// vertex transform, triangle rasterization, a depth-tested framebuffer and
// the surfaces that present it.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// FarDepth is the depth every pixel holds after Clear.
const FarDepth = math.MaxFloat64

// Framebuffer is a color buffer paired with a depth buffer.
// In the terminal one framebuffer row is half a character cell (▀).
type Framebuffer struct {
	Width      int          // Width in pixels
	Height     int          // Height in pixels
	Pixels     []color.RGBA // Row-major pixel data
	Background color.RGBA   // Color restored by Clear

	depth []float64
}

// NewFramebuffer creates a cleared framebuffer with a black background.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]color.RGBA, width*height),
		Background: ColorBlack,
		depth:      make([]float64, width*height),
	}
	fb.Clear()
	return fb
}

// Bounds returns the pixel rectangle covered by the framebuffer.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// SetBackground changes the color used by subsequent Clear calls.
func (fb *Framebuffer) SetBackground(c color.RGBA) {
	fb.Background = c
}

// Clear resets every pixel to the background and every depth to FarDepth.
func (fb *Framebuffer) Clear() {
	fill(fb.Pixels, fb.Background)
	fill(fb.depth, FarDepth)
}

// fill sets every element of s to v by copy-doubling.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// Point writes c at (x, y) if the pixel is in bounds and depth is strictly
// nearer than what is stored there. It reports whether the write happened.
func (fb *Framebuffer) Point(x, y int, c color.RGBA, depth float64) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if !(depth < fb.depth[i]) {
		return false
	}
	fb.depth[i] = depth
	fb.Pixels[i] = c
	return true
}

// Depth returns the stored depth at (x, y), or FarDepth out of bounds.
func (fb *Framebuffer) Depth(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return FarDepth
	}
	return fb.depth[y*fb.Width+x]
}

// SetPixel sets a pixel at (x, y) to the given color, ignoring depth.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws an overlay line from (x0, y0) to (x1, y1) using
// Bresenham's algorithm. Overlay lines ignore the depth buffer.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
