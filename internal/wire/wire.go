// Package wire defines the messages exchanged between the explorer server and
// its browser viewers.
//
// Text messages are JSON. The server sends a "hello" once per connection and
// "stats" after every frame; viewers send Commands. Binary messages carry one
// frame tile each: a 16-byte little-endian header (x, y, width, height)
// followed by width*height RGBA pixels.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	mandel "github.com/marben/mandex"
)

// TileSize is the edge of the square tiles frames are split into.
const TileSize = 64

const tileHeaderLen = 16

const (
	TypeHello = "hello"
	TypeStats = "stats"
)

var ErrShortTile = errors.New("wire: short tile message")

// Message is sent by the server as a text message.
type Message struct {
	Type   string        `json:"type"`
	Width  int           `json:"width,omitempty"`
	Height int           `json:"height,omitempty"`
	Region string        `json:"region,omitempty"`
	Stats  *mandel.Stats `json:"stats,omitempty"`
}

// Command is sent by a viewer to navigate.
type Command struct {
	Op mandel.Op `json:"op"`
}

// Tiles splits r into tiles of size w × h.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func Tiles(r image.Rectangle, w, h int) []image.Rectangle {
	if w <= 0 || h <= 0 {
		panic("tile dimensions must be positive")
	}

	var tiles []image.Rectangle
	for y := r.Min.Y; y < r.Max.Y; y += h {
		for x := r.Min.X; x < r.Max.X; x += w {
			tiles = append(tiles, image.Rect(x, y, min(x+w, r.Max.X), min(y+h, r.Max.Y)))
		}
	}
	return tiles
}

// AppendTile appends the tile message for the part r of f to dst.
func AppendTile(dst []byte, f *mandel.Frame, r image.Rectangle) []byte {
	r = r.Intersect(f.Bounds())
	dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Min.X))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Min.Y))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Dx()))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, c := range f.Pix[y*f.Width+r.Min.X : y*f.Width+r.Max.X] {
			cr, cg, cb, ca := c.Bytes()
			dst = append(dst, cr, cg, cb, ca)
		}
	}
	return dst
}

// DecodeTile returns the rectangle and RGBA pixels of a tile message.
// pix aliases b.
func DecodeTile(b []byte) (r image.Rectangle, pix []byte, err error) {
	if len(b) < tileHeaderLen {
		return r, nil, ErrShortTile
	}
	le := binary.LittleEndian
	x, y := int(le.Uint32(b[0:])), int(le.Uint32(b[4:]))
	w, h := int(le.Uint32(b[8:])), int(le.Uint32(b[12:]))
	pix = b[tileHeaderLen:]
	if len(pix) != w*h*4 {
		return r, nil, fmt.Errorf("%w: %dx%d tile with %d bytes", ErrShortTile, w, h, len(pix))
	}
	return image.Rect(x, y, x+w, y+h), pix, nil
}
