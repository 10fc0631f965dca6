package mandel

import "sync/atomic"

// DefaultBatch is the number of iterations a worker gives each point per pass.
const DefaultBatch = 100

// escapeRadius2 is the squared escape radius.
const escapeRadius2 = 4.0

// Point is the escape-time state of one pixel.
//
// iterations and diverged are accessed atomically: the owning worker writes
// them, the renderer and Stats read them concurrently. The remaining fields
// belong to whoever currently owns the point (a worker, or the control
// goroutine while re-initializing).
type Point struct {
	// 64-bit atomics first for alignment on 32-bit platforms.
	iterations uint64
	diverged   uint64

	c        complex128
	z        complex128
	zr2, zi2 float64
}

// NewPoint returns a point for the constant c in its start state.
func NewPoint(c complex128) Point {
	var p Point
	p.Reset(c)
	return p
}

// Reset puts p back into its start state for the constant c.
func (p *Point) Reset(c complex128) {
	p.c = c
	p.z = 0
	p.zr2, p.zi2 = 0, 0
	atomic.StoreUint64(&p.iterations, 0)
	atomic.StoreUint64(&p.diverged, 0)
}

// C returns the constant of p.
func (p *Point) C() complex128 { return p.c }

// Z returns the current iterate of p.
func (p *Point) Z() complex128 { return p.z }

// Iterations returns the number of iterations performed on p.
func (p *Point) Iterations() uint64 {
	return atomic.LoadUint64(&p.iterations)
}

// Diverged returns 0 while p is bounded, otherwise the 1-based iteration at
// which |z| first exceeded 2.
func (p *Point) Diverged() uint64 {
	return atomic.LoadUint64(&p.diverged)
}

// Escaped reports whether p has diverged.
func (p *Point) Escaped() bool {
	return p.Diverged() != 0
}

// Step performs a single iteration and reports whether p has escaped.
func (p *Point) Step() bool {
	p.Iterate(1)
	return p.Escaped()
}

// Iterate advances p by up to n iterations of z = z² + c, stopping at the
// first iteration with |z|² > 4. It is a no-op on an escaped point.
func (p *Point) Iterate(n int) {
	if n <= 0 || atomic.LoadUint64(&p.diverged) != 0 {
		return
	}

	cr, ci := real(p.c), imag(p.c)
	zr, zi := real(p.z), imag(p.z)
	zr2, zi2 := p.zr2, p.zi2
	it := p.iterations
	escaped := false

	for ; n > 0; n-- {
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		zr2 = zr * zr
		zi2 = zi * zi
		it++
		if zr2+zi2 > escapeRadius2 {
			escaped = true
			break
		}
	}

	p.z = complex(zr, zi)
	p.zr2, p.zi2 = zr2, zi2
	atomic.StoreUint64(&p.iterations, it)
	if escaped {
		atomic.StoreUint64(&p.diverged, it)
	}
}

// Iterate advances every point by up to n iterations. Points are independent,
// so disjoint sub-slices may be iterated concurrently.
func Iterate(points []Point, n int) {
	for i := range points {
		points[i].Iterate(n)
	}
}
