package mandel

import (
	"image"
	"image/color"
)

// Color is a packed 0xRRGGBBAA pixel.
type Color uint32

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xff)
}

// ColorOf converts any color.Color to an opaque Color.
func ColorOf(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Bytes returns the four 8-bit channels of c.
func (c Color) Bytes() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8, a8 := c.Bytes()
	r, g, b, a = uint32(r8), uint32(g8), uint32(b8), uint32(a8)
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Render writes pal[points[i].Diverged() % len(pal)] to dst[i] for every point.
// It only reads points and may run while workers iterate them.
// dst must be at least as long as points and pal must not be empty.
func Render(dst []Color, points []Point, pal Palette) {
	n := uint64(len(pal))
	dst = dst[:len(points)]
	for i := range points {
		dst[i] = pal[points[i].Diverged()%n]
	}
}

// Frame is a pixel buffer the renderer draws into.
type Frame struct {
	Pix           []Color
	Width, Height int
}

// NewFrame allocates a w x h frame.
func NewFrame(w, h int) *Frame {
	return &Frame{Pix: make([]Color, w*h), Width: w, Height: h}
}

func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	return f.Pix[y*f.Width+x]
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return
	}
	f.Pix[y*f.Width+x] = ColorOf(c)
}

// AppendRGBA appends the frame as R, G, B, A bytes, the layout of image.RGBA.Pix.
func (f *Frame) AppendRGBA(dst []byte) []byte {
	for _, c := range f.Pix {
		r, g, b, a := c.Bytes()
		dst = append(dst, r, g, b, a)
	}
	return dst
}

// RGBA copies the frame into a new image.RGBA.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	img.Pix = f.AppendRGBA(img.Pix[:0])
	return img
}
