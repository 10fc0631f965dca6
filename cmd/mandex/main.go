// mandex is the interactive desktop explorer.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/marben/mandex/internal/cli"
)

// frame pacing of the window: a 30ms period, rounded to whole ticks per second
const tps = 33

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	opts := cli.Defaults()
	opts.Register(flag.CommandLine)
	flag.Parse()
	opts.SetupLogging()

	engine, err := opts.NewEngine()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	start := opts.Viewport()
	if err := engine.Run(start); err != nil {
		return fmt.Errorf("engine.Run: %w", err)
	}
	defer engine.Close()

	ebiten.SetWindowSize(start.Width, start.Height)
	ebiten.SetWindowTitle("mandex")
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(NewGame(engine, start)); err != nil {
		return fmt.Errorf("ebiten.RunGame: %w", err)
	}
	return nil
}
