package mandel

import "testing"

// =============================================================================
// Single point iteration
// =============================================================================

func TestPoint_InteriorNeverDiverges(t *testing.T) {
	for _, c := range []complex128{0, -1, -2} {
		p := NewPoint(c)
		const batches, batch = 50, 100
		for range batches {
			p.Iterate(batch)
		}
		if p.Escaped() {
			t.Errorf("c=%v: escaped at %d, want bounded", c, p.Diverged())
		}
		if got := p.Iterations(); got != batches*batch {
			t.Errorf("c=%v: Iterations() = %d, want %d", c, got, batches*batch)
		}
	}
}

func TestPoint_DivergenceStep(t *testing.T) {
	tests := []struct {
		name string
		c    complex128
		want uint64
	}{
		// |c|² = 8 > 4 after the first step.
		{"far outside", 2 + 2i, 1},
		// z = 1, 2, 5: |z|² == 4 on step 2 is not yet escaped.
		{"boundary is not escape", 1, 3},
		// z = 2i, -4+2i
		{"imaginary", 2i, 2},
		{"slow escape", 0.5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPoint(tt.c)
			p.Iterate(DefaultBatch)
			if got := p.Diverged(); got != tt.want {
				t.Errorf("Diverged() = %d, want %d", got, tt.want)
			}
			if got := p.Iterations(); got != tt.want {
				t.Errorf("Iterations() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPoint_IterateAfterEscapeIsNoop(t *testing.T) {
	p := NewPoint(2 + 2i)
	p.Iterate(10)
	z, it, d := p.Z(), p.Iterations(), p.Diverged()

	p.Iterate(10)
	if !p.Step() {
		t.Error("Step() = false on escaped point")
	}
	if p.Z() != z || p.Iterations() != it || p.Diverged() != d {
		t.Errorf("escaped point changed: z %v->%v it %d->%d diverged %d->%d",
			z, p.Z(), it, p.Iterations(), d, p.Diverged())
	}
}

func TestPoint_BatchSizeDoesNotChangeResult(t *testing.T) {
	cs := []complex128{0.3 + 0.5i, -0.75 + 0.1i, 0.26, -1.25 + 0.02i, 0.5}
	for _, c := range cs {
		stepped := NewPoint(c)
		batched := NewPoint(c)
		for range 700 {
			stepped.Step()
		}
		for range 100 {
			batched.Iterate(7)
		}
		if stepped.Diverged() != batched.Diverged() || stepped.Iterations() != batched.Iterations() {
			t.Errorf("c=%v: step (%d,%d) != batch (%d,%d)", c,
				stepped.Diverged(), stepped.Iterations(), batched.Diverged(), batched.Iterations())
		}
		if stepped.Z() != batched.Z() {
			t.Errorf("c=%v: z %v != %v", c, stepped.Z(), batched.Z())
		}
	}
}

func TestPoint_IterateZero(t *testing.T) {
	p := NewPoint(0.25)
	p.Iterate(0)
	p.Iterate(-3)
	if p.Iterations() != 0 {
		t.Errorf("Iterations() = %d, want 0", p.Iterations())
	}
}

func TestPoint_Reset(t *testing.T) {
	p := NewPoint(2 + 2i)
	p.Iterate(5)
	p.Reset(0.1i)
	if p.C() != 0.1i || p.Z() != 0 || p.Iterations() != 0 || p.Diverged() != 0 {
		t.Errorf("after Reset: c=%v z=%v it=%d div=%d", p.C(), p.Z(), p.Iterations(), p.Diverged())
	}
}

// =============================================================================
// Slice iteration
// =============================================================================

func TestIterate_Slice(t *testing.T) {
	pts := []Point{NewPoint(0), NewPoint(2 + 2i), NewPoint(1)}
	Iterate(pts, 10)
	Iterate(pts, 10)

	if pts[0].Iterations() != 20 || pts[0].Escaped() {
		t.Errorf("pts[0]: it=%d escaped=%v, want 20 bounded", pts[0].Iterations(), pts[0].Escaped())
	}
	if pts[1].Diverged() != 1 {
		t.Errorf("pts[1].Diverged() = %d, want 1", pts[1].Diverged())
	}
	if pts[2].Diverged() != 3 {
		t.Errorf("pts[2].Diverged() = %d, want 3", pts[2].Diverged())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkIterate_Interior(b *testing.B) {
	pts := make([]Point, 1024)
	for i := range pts {
		pts[i].Reset(complex(-0.1, float64(i)/4096))
	}
	for b.Loop() {
		Iterate(pts, DefaultBatch)
	}
}
