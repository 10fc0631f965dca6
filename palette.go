package mandel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Palette is the color lookup table of the renderer, indexed by divergence
// count modulo its length.
type Palette []Color

// Style selects how NewPalette fills a palette.
type Style int

const (
	// StyleRandom picks every color at random. Filaments look sharp.
	StyleRandom Style = iota
	// StyleSmooth blends between random key colors and wraps around, so the
	// modulo lookup gives smooth bands.
	StyleSmooth
	// StyleSpectrum walks the hue wheel once.
	StyleSpectrum
)

// smoothSegment is the number of entries between two key colors of StyleSmooth.
const smoothSegment = 64

var styleNames = map[Style]string{
	StyleRandom:   "random",
	StyleSmooth:   "smooth",
	StyleSpectrum: "spectrum",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses a style name as printed by Style.String.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown palette style %q", name)
}

// NewPalette generates depth colors in the given style. A nil rng uses a
// randomly seeded source.
func NewPalette(depth int, style Style, rng *rand.Rand) (Palette, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: depth %d", ErrEmptyPalette, depth)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pal := make(Palette, depth)
	switch style {
	case StyleRandom:
		for i := range pal {
			pal[i] = Color(rng.Uint32() | 0xff)
		}
	case StyleSmooth:
		fillSmooth(pal, rng)
	case StyleSpectrum:
		for i := range pal {
			pal[i] = hsv(float64(i)/float64(depth), 1, 1)
		}
	default:
		return nil, fmt.Errorf("unknown palette style %d", int(style))
	}
	return pal, nil
}

// fillSmooth places a random key color every smoothSegment entries and
// interpolates linearly in between. The last segment blends back into the
// first key.
func fillSmooth(pal Palette, rng *rand.Rand) {
	depth := len(pal)
	keys := make([]Color, (depth+smoothSegment-1)/smoothSegment)
	for i := range keys {
		keys[i] = Color(rng.Uint32() | 0xff)
	}

	for i := range pal {
		seg := i / smoothSegment
		start := seg * smoothSegment
		segLen := min(smoothSegment, depth-start)
		t := float64(i-start) / float64(segLen)
		pal[i] = lerp(keys[seg], keys[(seg+1)%len(keys)], t)
	}
}

func lerp(a, b Color, t float64) Color {
	ar, ag, ab, _ := a.Bytes()
	br, bg, bb, _ := b.Bytes()
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// hsv converts a hue/saturation/value triple in [0,1] to an opaque color.
func hsv(h, s, v float64) Color {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return RGB(uint8(r*255), uint8(g*255), uint8(b*255))
}
