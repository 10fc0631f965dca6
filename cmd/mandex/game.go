package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/internal/cli"
)

var keyOps = []struct {
	key ebiten.Key
	op  mandel.Op
}{
	{ebiten.KeyArrowUp, mandel.MoveUp},
	{ebiten.KeyArrowDown, mandel.MoveDown},
	{ebiten.KeyArrowLeft, mandel.MoveLeft},
	{ebiten.KeyArrowRight, mandel.MoveRight},
	{ebiten.KeyI, mandel.ZoomIn},
	{ebiten.KeyO, mandel.ZoomOut},
	{ebiten.KeyP, mandel.Snapshot},
	{ebiten.KeyEscape, mandel.Quit},
}

// Game shows the engine's front buffer every frame and turns key presses
// into engine ops.
type Game struct {
	engine *mandel.Engine
	start  mandel.Viewport

	frame     *mandel.Frame
	pix       []byte
	offscreen *ebiten.Image
	hud       bool
}

func NewGame(engine *mandel.Engine, start mandel.Viewport) *Game {
	return &Game{
		engine:    engine,
		start:     start,
		frame:     mandel.NewFrame(start.Width, start.Height),
		pix:       make([]byte, 0, start.Points()*4),
		offscreen: ebiten.NewImage(start.Width, start.Height),
		hud:       true,
	}
}

// repeatingKeyPressed fires on the press and then every few ticks while
// the key is held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 15
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}

func (g *Game) Update() error {
	for _, k := range keyOps {
		if !k.op.Navigates() {
			if !inpututil.IsKeyJustPressed(k.key) {
				continue
			}
		} else if !repeatingKeyPressed(k.key) {
			continue
		}

		switch k.op {
		case mandel.Quit:
			return ebiten.Termination
		case mandel.Snapshot:
			g.snapshot()
		default:
			if err := g.engine.Apply(k.op); err != nil {
				return err
			}
		}
	}

	// Reset to the start view
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.engine.Change(g.start); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	return nil
}

// snapshot saves the current frame as <unix time>.bmp in the working directory.
func (g *Game) snapshot() {
	name := fmt.Sprintf("%d.bmp", time.Now().Unix())
	if err := cli.SaveFrame(name, g.frame); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	log.Printf("snapshot saved to %q", name)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.engine.DrawFrame(g.frame); err != nil {
		return
	}
	g.pix = g.frame.AppendRGBA(g.pix[:0])
	g.offscreen.WritePixels(g.pix)
	screen.DrawImage(g.offscreen, nil)

	if g.hud {
		s := g.engine.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"%s\nescaped %.1f%%  iterations %d  changes %d\nTPS %.0f  FPS %.0f\narrows: pan  i/o: zoom  p: snapshot  r: reset  h: hud  esc: quit",
			g.engine.Viewport().Region, 100*s.Progress(), s.Iterations, s.Changes, ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.start.Width, g.start.Height
}
