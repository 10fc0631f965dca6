//go:build js && wasm

package main

import (
	"image"
	"syscall/js"
)

func initCanvas(width, height int, color string) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "canvas")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// drawTile puts the RGBA pixels of r onto the canvas.
func drawTile(r image.Rectangle, pix []byte) {
	document := js.Global().Get("document")
	ctx := document.Call("getElementById", "canvas").Call("getContext", "2d")

	jsData := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsData, pix)

	// ImageData expects the width and height of the buffer provided
	imageData := js.Global().Get("ImageData").New(jsData, r.Dx(), r.Dy())
	ctx.Call("putImageData", imageData, r.Min.X, r.Min.Y)
}
