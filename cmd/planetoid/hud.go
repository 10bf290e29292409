package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/planetoid/pkg/scene"
	"github.com/taigrr/planetoid/pkg/shade"
)

// ANSI escape codes for positioning and styling
const (
	reset     = "\x1b[0m"
	bold      = "\x1b[1m"
	dim       = "\x1b[2m"
	bgBlack   = "\x1b[40m"
	fgWhite   = "\x1b[97m"
	fgGreen   = "\x1b[92m"
	fgCyan    = "\x1b[96m"
	clearLine = "\x1b[2K"
)

// HUD renders an overlay with frame rate, planet and pass statistics.
type HUD struct {
	source    string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD for a mesh named source.
func NewHUD(source string, polyCount int) *HUD {
	return &HUD{
		source:    source,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS counts a frame (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// planetAccent picks a distinct foreground color per planet, evenly spaced
// around the HCL hue circle.
func planetAccent(p shade.PlanetType) string {
	hue := float64(p) * 360 / shade.PlanetCount
	r, g, b := colorful.Hcl(hue, 0.6, 0.75).Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Render draws the overlay on the top and bottom rows of a width x height
// cell terminal. The rows are always cleared so hiding the HUD works.
func (h *HUD) Render(w io.Writer, width, height int, show bool, planet shade.PlanetType, stats scene.FrameStats, wire bool) {
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	var b strings.Builder
	b.WriteString(moveTo(1, 1) + clearLine)
	b.WriteString(moveTo(height, 1) + clearLine)

	if show {
		// Top left: FPS
		fmt.Fprintf(&b, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

		// Top middle: planet
		name := fmt.Sprintf("%d %s", int(planet)+1, planet)
		titleCol := max((width-len(name)-2)/2, 1)
		fmt.Fprintf(&b, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, planetAccent(planet), name, reset)

		// Top right: triangle count
		polys := fmt.Sprintf("%d tris", h.polyCount)
		fmt.Fprintf(&b, "%s%s%s%s %s %s", moveTo(1, max(width-len(polys)-1, 1)), bgBlack, fgCyan, bold, polys, reset)

		// Bottom: pass statistics and toggles
		total := stats.Total()
		check := "[ ]"
		if wire {
			check = "[✓]"
		}
		fmt.Fprintf(&b, "%s%s%s %s %d frags %d px %d culled  %s X-Ray %s",
			moveTo(height, 1), bgBlack, fgWhite, h.source, total.Fragments, total.Written, stats.CulledPasses(), check, reset)

		hint := "1-5: planet"
		fmt.Fprintf(&b, "%s%s%s%s %s %s", moveTo(height, max(width-len(hint)-1, 1)), bgBlack, dim, fgWhite, hint, reset)
	}

	io.WriteString(w, b.String())
}
