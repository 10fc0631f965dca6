// snapshot renders a view of the Mandelbrot set headlessly.
// It runs the engine for a while, then saves the frame as BMP or PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/annotate"
	"github.com/marben/mandex/internal/cli"
)

func main() {
	log.Printf("Starting snapshot...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	opts := cli.Defaults()
	opts.Width, opts.Height = 1920, 1080
	opts.Register(flag.CommandLine)
	out := flag.String("o", "mandel.png", "output file, .bmp or .png")
	dur := flag.Duration("for", 2*time.Second, "how long the workers iterate before the frame is taken")
	ops := flag.String("ops", "", "comma separated ops applied to the start region, e.g. zoomIn,zoomIn,moveLeft")
	label := flag.Bool("label", false, "print the region and stats onto the image")
	flag.Parse()
	opts.SetupLogging()

	// Step 1: Resolve the viewport
	v := opts.Viewport()
	if err := applyOps(&v, *ops, mandel.DefaultConfig()); err != nil {
		return err
	}

	// Step 2: Start the engine
	log.Printf("Computing %dx%d at %s for %s...", v.Width, v.Height, v.Region, *dur)
	engine, err := opts.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	if err := engine.Run(v); err != nil {
		return fmt.Errorf("engine.Run: %w", err)
	}
	defer engine.Close()

	// Step 3: Let the workers iterate
	time.Sleep(*dur)

	// Step 4: Render the front buffer
	frame := mandel.NewFrame(v.Width, v.Height)
	if err := engine.DrawFrame(frame); err != nil {
		return fmt.Errorf("engine.DrawFrame: %w", err)
	}
	stats := engine.Stats()
	log.Printf("Escaped %d of %d points after %d iterations", stats.Escaped, stats.Points, stats.Iterations)
	if *label {
		annotate.Label(frame, v.Region.String(), fmt.Sprintf("%s, %.1f%% escaped", *dur, 100*stats.Progress()))
	}

	// Step 5: Save the image
	log.Printf("Saving image to %q...", *out)
	if err := cli.SaveFrame(*out, frame); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	log.Printf("Image saved to %q", *out)
	return nil
}

// applyOps parses a comma separated op list and moves v accordingly.
func applyOps(v *mandel.Viewport, list string, cfg mandel.Config) error {
	if list == "" {
		return nil
	}
	for _, name := range strings.Split(list, ",") {
		op, err := mandel.ParseOp(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if !op.Navigates() {
			return fmt.Errorf("op %v does not navigate", op)
		}
		v.Apply(op, cfg.MoveRate, cfg.ZoomRate)
	}
	return nil
}
