// planetoid - Procedural Planet Viewer
// Renders a mesh as one of five procedurally shaded planets on a CPU
// rasterizer, in the terminal, in a window or to a PNG sequence.
//
// Controls:
//
//	1-5         - Select planet (rocky, gaseous, bioluminescent, ringed, icy)
//	W/S/A/D     - Orbit the camera (arrow keys work too)
//	Scroll, +/- - Zoom in/out
//	R           - Reset camera
//	X           - Toggle wireframe overlay (x-ray)
//	?           - Toggle HUD overlay (FPS, planet, fragment counts)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	var opts options
	opts.register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "planetoid - Procedural Planet Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: planetoid [options] [mesh.obj|mesh.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a mesh a built-in icosphere is used.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-5         - Select planet\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(&opts, flag.CommandLine, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options, fs *flag.FlagSet, meshPath string) error {
	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return err
	}
	opts.apply(&cfg, fs)
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()

	// The terminal front end owns stderr's screen, so only log there when
	// another front end is running
	var fallback io.Writer = os.Stderr
	if opts.export == "" && !cfg.Window {
		fallback = io.Discard
	}
	logger, closeLog, err := newLogger(opts.logPath, level, fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(cfg, meshPath, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.export != "":
		return exportFrames(ctx, a, opts.export, opts.frames, os.Stderr)
	case cfg.Window:
		return runWindow(a)
	default:
		return runTerminal(ctx, a)
	}
}
