package main

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/internal/wire"
)

// fakeExplorer paints every pixel with one color and records ops.
type fakeExplorer struct {
	color mandel.Color

	mu       sync.Mutex
	viewport mandel.Viewport
	ops      []mandel.Op
}

func (f *fakeExplorer) Apply(op mandel.Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
	if op == mandel.ZoomIn {
		f.viewport.ZoomIn(mandel.DefaultZoomRate)
	}
	return nil
}

func (f *fakeExplorer) Viewport() mandel.Viewport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewport
}

func (f *fakeExplorer) Draw(dst []mandel.Color) error {
	for i := range dst {
		dst[i] = f.color
	}
	return nil
}

func (f *fakeExplorer) Stats() mandel.Stats {
	return mandel.Stats{Workers: 2, Points: f.Viewport().Points()}
}

func (f *fakeExplorer) recorded() []mandel.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mandel.Op(nil), f.ops...)
}

func startServer(t *testing.T, ex mandel.Explorer) (*viewers, string) {
	t.Helper()
	v := newViewers(ex, 5*time.Millisecond)
	srv := httptest.NewServer(newMux(t.TempDir(), v))
	t.Cleanup(srv.Close)
	return v, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestViewers_StreamsFrames(t *testing.T) {
	ex := &fakeExplorer{color: mandel.RGB(10, 20, 30), viewport: mandel.NewViewport(100, 70, mandel.Classic)}
	_, url := startServer(t, ex)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.CloseNow()

	var hello wire.Message
	if err := wsjson.Read(ctx, c, &hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != wire.TypeHello || hello.Width != 100 || hello.Height != 70 || hello.Region != mandel.Classic.String() {
		t.Fatalf("hello = %+v", hello)
	}

	covered := 0
	for covered < 100*70 {
		typ, data, err := c.Read(ctx)
		if err != nil {
			t.Fatalf("read tile: %v", err)
		}
		if typ != websocket.MessageBinary {
			t.Fatalf("got %v message before the first frame completed", typ)
		}
		r, pix, err := wire.DecodeTile(data)
		if err != nil {
			t.Fatalf("DecodeTile: %v", err)
		}
		if got := mandel.RGB(pix[0], pix[1], pix[2]); got != ex.color {
			t.Fatalf("tile %v color = %#08x", r, uint32(got))
		}
		covered += r.Dx() * r.Dy()
	}

	var stats wire.Message
	if err := wsjson.Read(ctx, c, &stats); err != nil {
		t.Fatalf("read stats: %v", err)
	}
	if stats.Type != wire.TypeStats || stats.Stats == nil || stats.Stats.Points != 100*70 {
		t.Errorf("stats = %+v", stats)
	}

	c.Close(websocket.StatusNormalClosure, "")
}

func TestViewers_AppliesCommands(t *testing.T) {
	ex := &fakeExplorer{viewport: mandel.NewViewport(8, 8, mandel.Classic)}
	v, url := startServer(t, ex)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.CloseNow()
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := c.Read(ctx); err != nil {
				return
			}
		}
	}()

	if err := wsjson.Write(ctx, c, wire.Command{Op: mandel.ZoomIn}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := wsjson.Write(ctx, c, wire.Command{Op: mandel.MoveUp}); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for len(ex.recorded()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("ops = %v, want [zoomIn moveUp]", ex.recorded())
		}
		time.Sleep(time.Millisecond)
	}
	if ops := ex.recorded(); ops[0] != mandel.ZoomIn || ops[1] != mandel.MoveUp {
		t.Errorf("ops = %v", ops)
	}
	if v.count() != 1 {
		t.Errorf("active viewers = %d, want 1", v.count())
	}

	// Quit ends the session from the server side.
	if err := wsjson.Write(ctx, c, wire.Command{Op: mandel.Quit}); err != nil {
		t.Fatalf("write quit: %v", err)
	}
	select {
	case <-readDone:
	case <-time.After(5 * time.Second):
		t.Fatal("connection still open after quit")
	}

	deadline = time.Now().Add(5 * time.Second)
	for v.count() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("active viewers = %d after quit", v.count())
		}
		time.Sleep(time.Millisecond)
	}
}
