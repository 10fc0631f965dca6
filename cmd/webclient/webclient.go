//go:build js && wasm

// webclient.go is a WASM viewer for the explorer server.
// It draws the frames the server pushes and sends keyboard navigation back.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"syscall/js"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandex"
	"github.com/marben/mandex/internal/wire"
)

// keyOps maps KeyboardEvent.key values to navigation ops.
var keyOps = map[string]mandel.Op{
	"ArrowUp":    mandel.MoveUp,
	"ArrowDown":  mandel.MoveDown,
	"ArrowLeft":  mandel.MoveLeft,
	"ArrowRight": mandel.MoveRight,
	"i":          mandel.ZoomIn,
	"o":          mandel.ZoomOut,
	"q":          mandel.Quit,
}

func main() {
	logScreenf("Starting WASM viewer...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + loc.Get("host").String() + "/ws"

	// Step 2: Connect to server via WebSocket
	ctx := context.Background()
	logScreenf("Connecting to explorer server at %s...", websocketUrl)
	c, _, err := websocket.Dial(ctx, websocketUrl, nil)
	if err != nil {
		logFatalf("Dial: %v", err)
	}
	logScreenf("WebSocket connected.")

	// Step 3: Forward key presses to the server
	ops := make(chan mandel.Op, 16)
	listenKeys(ops)
	go func() {
		for op := range ops {
			if err := wsjson.Write(ctx, c, wire.Command{Op: op}); err != nil {
				logScreenf("send %v: %v", op, err)
				return
			}
		}
	}()

	// Step 4: Draw whatever the server sends until it goes away
	if err := receiveLoop(ctx, c); err != nil {
		logScreenf("Disconnected: %v", err)
	}
	select {}
}

// receiveLoop handles server messages: tiles are drawn, text messages
// resize the canvas or update the HUD.
func receiveLoop(ctx context.Context, c *websocket.Conn) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			return err
		}

		if typ == websocket.MessageBinary {
			r, pix, err := wire.DecodeTile(data)
			if err != nil {
				return err
			}
			drawTile(r, pix)
			continue
		}

		var msg wire.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("bad message: %w", err)
		}
		switch msg.Type {
		case wire.TypeHello:
			initCanvas(msg.Width, msg.Height, "#3a3a6e")
			logScreenf("Viewport %dx%d at %s", msg.Width, msg.Height, msg.Region)
		case wire.TypeStats:
			hudSet("region", msg.Region)
			if s := msg.Stats; s != nil {
				hudSet("workers", s.Workers)
				hudSet("progress", fmt.Sprintf("%.1f%%", 100*s.Progress()))
				hudSet("iterations", s.Iterations)
				hudSet("changes", s.Changes)
			}
		}
	}
}

// listenKeys sends the op of every mapped key press to ops, dropping presses
// while ops is full.
func listenKeys(ops chan<- mandel.Op) {
	doc := js.Global().Get("document")
	doc.Call("addEventListener", "keydown", js.FuncOf(func(this js.Value, args []js.Value) any {
		op, ok := keyOps[args[0].Get("key").String()]
		if !ok {
			return nil
		}
		args[0].Call("preventDefault")
		select {
		case ops <- op:
		default:
		}
		return nil
	}))
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

func hudSet(id string, v any) {
	js.Global().Get("document").Call("getElementById", id).Set("textContent", v)
}
