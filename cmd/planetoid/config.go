package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/planetoid/pkg/math3d"
	"github.com/taigrr/planetoid/pkg/render"
	"github.com/taigrr/planetoid/pkg/shade"
)

// maxConfigSize guards against pointing -config at something that is not a
// config file.
const maxConfigSize = 1 << 20

// Vector is a YAML-friendly 3D vector.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 converts v to a math3d vector.
func (v Vector) Vec3() math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}

// CameraConfig places the orbit camera.
type CameraConfig struct {
	Position Vector  `yaml:"position"`
	Target   Vector  `yaml:"target"`
	FOV      float64 `yaml:"fov"` // Degrees
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
}

// RingConfig mirrors render.RingShape.
type RingConfig struct {
	BaseRadius float64 `yaml:"base_radius"`
	Wobble     float64 `yaml:"wobble"`
	WobbleFreq float64 `yaml:"wobble_freq"`
	Thickness  float64 `yaml:"thickness"`
	Spin       float64 `yaml:"spin"`
	Inner      float64 `yaml:"inner"`
	Outer      float64 `yaml:"outer"`
}

// MoonConfig mirrors render.MoonOrbit.
type MoonConfig struct {
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
	Bob     float64 `yaml:"bob"`
	BobFreq float64 `yaml:"bob_freq"`
	Scale   float64 `yaml:"scale"`
}

// Config holds every tunable of the viewer. Fields missing from a config
// file keep their defaults.
type Config struct {
	Width        int          `yaml:"width"`  // Pixels; window and export only
	Height       int          `yaml:"height"` // Pixels; window and export only
	FPS          int          `yaml:"fps"`
	Background   string       `yaml:"background"`
	Planet       string       `yaml:"planet"`
	Subdivisions int          `yaml:"subdivisions"` // Built-in icosphere detail
	Window       bool         `yaml:"window"`
	LogLevel     string       `yaml:"log_level"`
	Camera       CameraConfig `yaml:"camera"`
	Light        Vector       `yaml:"light"`
	Ring         RingConfig   `yaml:"ring"`
	Moon         MoonConfig   `yaml:"moon"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	ring := render.DefaultRingShape
	moon := render.DefaultMoonOrbit
	light := render.DefaultLight.Position
	return Config{
		Width:        800,
		Height:       600,
		FPS:          60,
		Background:   "30,30,40",
		Planet:       shade.Rocky.String(),
		Subdivisions: 3,
		LogLevel:     "info",
		Camera: CameraConfig{
			Position: Vector{Z: 8},
			FOV:      60,
			Near:     0.1,
			Far:      100,
		},
		Light: Vector{light.X, light.Y, light.Z},
		Ring: RingConfig{
			BaseRadius: ring.BaseRadius,
			Wobble:     ring.Wobble,
			WobbleFreq: ring.WobbleFreq,
			Thickness:  ring.Thickness,
			Spin:       ring.Spin,
			Inner:      1.6,
			Outer:      2.4,
		},
		Moon: MoonConfig{
			Radius:  moon.Radius,
			Speed:   moon.Speed,
			Bob:     moon.Bob,
			BobFreq: moon.BobFreq,
			Scale:   moon.Scale,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be clamped into something useful.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.PlanetType(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near %v far %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Ring.Inner > c.Ring.Outer {
		return fmt.Errorf("ring band inner %v exceeds outer %v", c.Ring.Inner, c.Ring.Outer)
	}
	return nil
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (color.RGBA, error) {
	return ParseBackground(c.Background)
}

// PlanetType parses Planet.
func (c Config) PlanetType() (shade.PlanetType, error) {
	p, ok := shade.ParsePlanet(c.Planet)
	if !ok {
		return 0, fmt.Errorf("unknown planet %q", c.Planet)
	}
	return p, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// Pipeline builds the ring and moon geometry.
func (c Config) Pipeline() render.Pipeline {
	return render.Pipeline{
		Ring: render.RingShape{
			BaseRadius: c.Ring.BaseRadius,
			Wobble:     c.Ring.Wobble,
			WobbleFreq: c.Ring.WobbleFreq,
			Thickness:  c.Ring.Thickness,
			Spin:       c.Ring.Spin,
		},
		Moon: render.MoonOrbit{
			Radius:  c.Moon.Radius,
			Speed:   c.Moon.Speed,
			Bob:     c.Moon.Bob,
			BobFreq: c.Moon.BobFreq,
			Scale:   c.Moon.Scale,
		},
	}
}

// NewCamera builds the camera for a width x height framebuffer.
func (c Config) NewCamera(width, height int) *render.Camera {
	cam := render.NewCamera()
	cam.SetPosition(c.Camera.Position.Vec3())
	cam.SetTarget(c.Camera.Target.Vec3())
	if c.Camera.FOV > 0 {
		cam.SetFOV(c.Camera.FOV * math.Pi / 180)
	}
	cam.SetClipPlanes(c.Camera.Near, c.Camera.Far)
	if width > 0 && height > 0 {
		cam.SetAspectRatio(float64(width) / float64(height))
	}
	return cam
}

// ParseBackground accepts the "R,G,B" form or a "#rrggbb" hex color.
func ParseBackground(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := render.ParseHexColor(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("background %q: %w", s, err)
		}
		return c, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("background %q: want R,G,B or #rrggbb", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("background %q: %w", s, err)
		}
		rgb[i] = uint8(n)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}

// options are the command-line flags. Only flags the user actually set
// override the config file.
type options struct {
	fps     int
	bg      string
	planet  string
	width   int
	height  int
	window  bool
	export  string
	frames  int
	config  string
	logPath string
	verbose bool
}

func (o *options) register(fs *flag.FlagSet) {
	def := DefaultConfig()
	fs.IntVar(&o.fps, "fps", def.FPS, "Target FPS")
	fs.StringVar(&o.bg, "bg", def.Background, "Background color (R,G,B or #rrggbb)")
	fs.StringVar(&o.planet, "planet", def.Planet, "Initial planet (name or 0-4)")
	fs.IntVar(&o.width, "width", def.Width, "Framebuffer width for -window and -export")
	fs.IntVar(&o.height, "height", def.Height, "Framebuffer height for -window and -export")
	fs.BoolVar(&o.window, "window", false, "Open a desktop window instead of drawing in the terminal")
	fs.StringVar(&o.export, "export", "", "Write a PNG sequence to this directory and exit")
	fs.IntVar(&o.frames, "frames", 120, "Number of frames for -export")
	fs.StringVar(&o.config, "config", "", "Path to a YAML config file")
	fs.StringVar(&o.logPath, "log", "", "Write logs to this file")
	fs.BoolVar(&o.verbose, "v", false, "Debug logging")
}

// apply copies the explicitly set flags of fs over cfg.
func (o *options) apply(cfg *Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.FPS = o.fps
		case "bg":
			cfg.Background = o.bg
		case "planet":
			cfg.Planet = o.planet
		case "width":
			cfg.Width = o.width
		case "height":
			cfg.Height = o.height
		case "window":
			cfg.Window = o.window
		case "v":
			if o.verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
}
