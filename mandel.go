package mandel

import (
	"fmt"
	"sort"
)

// Default navigation rates, as a fraction of the visible span.
const (
	DefaultMoveRate = 0.1
	DefaultZoomRate = 0.05
)

// Region is the visible rectangle of the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Classic – the whole set, the explorer's start view
	Classic = Region{
		Xmin: -2.5,
		Xmax: 1.0,
		Ymin: -1.0,
		Ymax: 1.0,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}
)

// Regions maps flag-friendly names to the landmark regions.
var Regions = map[string]Region{
	"classic":  Classic,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"minibrot": SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
}

// RegionNames returns the keys of Regions in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(Regions))
	for n := range Regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupRegion returns the named landmark region.
func LookupRegion(name string) (Region, error) {
	r, ok := Regions[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %v)", name, RegionNames())
	}
	return r, nil
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", r.Xmin, r.Xmax, r.Ymin, r.Ymax)
}

// Span returns the width and height of r.
func (r Region) Span() (dx, dy float64) {
	return r.Xmax - r.Xmin, r.Ymax - r.Ymin
}

// MoveUp shifts r towards smaller y by rate of its height.
// Row 0 of the pixel grid is Ymin, so this moves the view up on screen.
func (r *Region) MoveUp(rate float64) {
	d := (r.Ymax - r.Ymin) * rate
	r.Ymax -= d
	r.Ymin -= d
}

func (r *Region) MoveDown(rate float64) {
	d := (r.Ymax - r.Ymin) * rate
	r.Ymax += d
	r.Ymin += d
}

func (r *Region) MoveLeft(rate float64) {
	d := (r.Xmax - r.Xmin) * rate
	r.Xmax -= d
	r.Xmin -= d
}

func (r *Region) MoveRight(rate float64) {
	d := (r.Xmax - r.Xmin) * rate
	r.Xmax += d
	r.Xmin += d
}

// ZoomIn moves every edge of r inwards by rate of the span on that axis.
// There is no clamping: repeated zooming can collapse or invert r.
func (r *Region) ZoomIn(rate float64) {
	d := (r.Xmax - r.Xmin) * rate
	r.Xmax -= d
	r.Xmin += d
	d = (r.Ymax - r.Ymin) * rate
	r.Ymax -= d
	r.Ymin += d
}

// ZoomOut moves every edge of r outwards by rate of the span on that axis.
func (r *Region) ZoomOut(rate float64) {
	d := (r.Xmax - r.Xmin) * rate
	r.Xmax += d
	r.Xmin -= d
	d = (r.Ymax - r.Ymin) * rate
	r.Ymax += d
	r.Ymin -= d
}

// Viewport maps a Width x Height pixel grid onto a Region.
type Viewport struct {
	Width, Height int
	Region
}

// NewViewport returns a viewport of w x h pixels over r.
func NewViewport(w, h int, r Region) Viewport {
	return Viewport{Width: w, Height: h, Region: r}
}

// Points returns the number of pixels in v.
func (v Viewport) Points() int {
	return v.Width * v.Height
}

func (v Viewport) validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	return nil
}

// At returns the complex value of pixel (x, y).
func (v Viewport) At(x, y int) complex128 {
	sx := (v.Xmax - v.Xmin) / float64(v.Width)
	sy := (v.Ymax - v.Ymin) / float64(v.Height)
	return complex(float64(x)*sx+v.Xmin, float64(y)*sy+v.Ymin)
}

// Init resets every point of points to the start state for v.
// points must hold exactly v.Points() elements in row-major order.
func (v Viewport) Init(points []Point) {
	if len(points) != v.Points() {
		panic(fmt.Sprintf("mandel: Init with %d points for %dx%d viewport", len(points), v.Width, v.Height))
	}
	v.initRange(points, 0, len(points))
}

// initRange resets points[lo:hi] for v.
func (v Viewport) initRange(points []Point, lo, hi int) {
	sx := (v.Xmax - v.Xmin) / float64(v.Width)
	sy := (v.Ymax - v.Ymin) / float64(v.Height)
	for i := lo; i < hi; i++ {
		x, y := i%v.Width, i/v.Width
		points[i].Reset(complex(float64(x)*sx+v.Xmin, float64(y)*sy+v.Ymin))
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d %s", v.Width, v.Height, v.Region)
}
