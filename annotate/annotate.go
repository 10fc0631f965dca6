// Package annotate draws short text captions onto rendered frames.
package annotate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	padding    = 4
	lineHeight = 13
	ascent     = 11
)

var (
	Foreground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Background = color.RGBA{0x00, 0x00, 0x00, 0xc0}
)

// Bounds returns the rectangle Label covers for lines, anchored at the origin.
func Bounds(lines ...string) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := 0
	for _, l := range lines {
		w = max(w, d.MeasureString(l).Ceil())
	}
	return image.Rect(0, 0, w+2*padding, len(lines)*lineHeight+2*padding)
}

// Label draws lines in the top-left corner of dst over a translucent box and
// returns the area it covered, clipped to dst.
func Label(dst draw.Image, lines ...string) image.Rectangle {
	r := Bounds(lines...).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}
	draw.Draw(dst, r, image.NewUniform(Background), image.Point{}, draw.Over)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(Foreground), Face: basicfont.Face7x13}
	for i, l := range lines {
		d.Dot = fixed.P(r.Min.X+padding, r.Min.Y+padding+ascent+i*lineHeight)
		d.DrawString(l)
	}
	return r
}
