package main

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/internal/wire"
)

// errViewerLeft ends a session whose viewer sent Quit.
var errViewerLeft = errors.New("viewer left")

// viewers streams the explorer to websocket connections and feeds their
// navigation commands back into it. All viewers share one explorer.
type viewers struct {
	explorer mandel.Explorer
	interval time.Duration

	active int
	m      sync.Mutex
}

func newViewers(explorer mandel.Explorer, interval time.Duration) *viewers {
	return &viewers{explorer: explorer, interval: interval}
}

func (v *viewers) incActive() {
	v.m.Lock()
	v.active++
	n := v.active
	v.m.Unlock()

	log.Printf("viewers: %d", n)
}

func (v *viewers) decActive() {
	v.m.Lock()
	v.active--
	n := v.active
	v.m.Unlock()

	log.Printf("viewers: %d", n)
}

func (v *viewers) count() int {
	v.m.Lock()
	defer v.m.Unlock()
	return v.active
}

// serve runs one viewer session until the connection fails, the viewer
// quits or ctx is canceled.
func (v *viewers) serve(ctx context.Context, c *websocket.Conn) error {
	v.incActive()
	defer v.decActive()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.readCommands(ctx, c) })
	g.Go(func() error { return v.pushFrames(ctx, c) })

	err := g.Wait()
	if errors.Is(err, errViewerLeft) {
		return nil
	}
	return err
}

func (v *viewers) readCommands(ctx context.Context, c *websocket.Conn) error {
	for {
		var cmd wire.Command
		if err := wsjson.Read(ctx, c, &cmd); err != nil {
			return err
		}
		if cmd.Op == mandel.Quit {
			return errViewerLeft
		}
		if err := v.explorer.Apply(cmd.Op); err != nil {
			return err
		}
	}
}

// pushFrames sends the hello message, then a full frame as tiles followed
// by the stats on every tick.
func (v *viewers) pushFrames(ctx context.Context, c *websocket.Conn) error {
	vp := v.explorer.Viewport()
	hello := wire.Message{Type: wire.TypeHello, Width: vp.Width, Height: vp.Height, Region: vp.Region.String()}
	if err := wsjson.Write(ctx, c, hello); err != nil {
		return err
	}

	frame := mandel.NewFrame(vp.Width, vp.Height)
	tiles := wire.Tiles(frame.Bounds(), wire.TileSize, wire.TileSize)
	var buf []byte

	t := time.NewTicker(v.interval)
	defer t.Stop()
	for {
		if err := v.explorer.Draw(frame.Pix); err != nil {
			return err
		}
		for _, r := range tiles {
			buf = wire.AppendTile(buf[:0], frame, r)
			if err := c.Write(ctx, websocket.MessageBinary, buf); err != nil {
				return err
			}
		}

		stats := v.explorer.Stats()
		msg := wire.Message{Type: wire.TypeStats, Region: v.explorer.Viewport().Region.String(), Stats: &stats}
		if err := wsjson.Write(ctx, c, msg); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
