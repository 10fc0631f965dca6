package mandel

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Engine continuously computes the escape times of a viewport on a pool of
// worker goroutines and renders them on demand.
//
// Run, Change, Apply, SetPalette and Close are serialized internally and may
// be called from several goroutines. Draw and Stats never wait for workers.
type Engine struct {
	cfg Config

	// spawn starts a worker goroutine. Replaced in tests to simulate failures.
	spawn func(fn func()) error

	mu       sync.Mutex
	running  bool
	viewport Viewport
	back     *buffer
	workers  []*worker
	changes  uint64

	front   atomic.Pointer[buffer]
	palette atomic.Pointer[Palette]
}

// New returns an idle engine. Call Run to start computing.
func New(cfg Config, pal Palette) (*Engine, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		spawn: goSpawn,
	}
	if err := e.SetPalette(pal); err != nil {
		return nil, err
	}
	return e, nil
}

func goSpawn(fn func()) error {
	go fn()
	return nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run allocates the point buffers for v and starts one worker per configured
// core. On error nothing is left running and Run may be retried.
func (e *Engine) Run(v Viewport) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return ErrAlreadyRunning
	}
	if err := v.validate(); err != nil {
		return err
	}
	if v.Width > e.cfg.MaxPoints/v.Height {
		return fmt.Errorf("%w: %dx%d exceeds %d points", ErrAllocation, v.Width, v.Height, e.cfg.MaxPoints)
	}
	n := v.Points()

	parts, err := Split(n, e.cfg.Workers)
	if err != nil {
		return err
	}
	front, err := allocPoints(n)
	if err != nil {
		return err
	}
	back, err := allocPoints(n)
	if err != nil {
		return err
	}
	v.Init(front)
	fb, bb := &buffer{points: front}, &buffer{points: back}

	workers := make([]*worker, len(parts))
	for i, p := range parts {
		w := newWorker(i, p, e.cfg.Batch, &assignment{buf: fb, view: v})
		if err := e.spawn(w.loop); err != nil {
			// unwind in reverse start order
			for j := i - 1; j >= 0; j-- {
				workers[j].stop()
			}
			Logger().Warn("worker start failed, rolled back", "worker", i, "stopped", i, "err", err)
			return fmt.Errorf("%w: worker %d: %v", ErrWorkerStart, i, err)
		}
		workers[i] = w
	}

	e.viewport = v
	e.back = bb
	e.workers = workers
	e.changes = 0
	e.front.Store(fb)
	e.running = true

	Logger().Info("engine started", "workers", len(workers), "points", n, "batch", e.cfg.Batch, "viewport", v.String())
	return nil
}

func allocPoints(n int) (pts []Point, err error) {
	defer func() {
		if r := recover(); r != nil {
			pts, err = nil, fmt.Errorf("%w: %d points: %v", ErrAllocation, n, r)
		}
	}()
	return make([]Point, n), nil
}

// Change switches the engine to v. v must have the pixel size given to Run;
// only its region may differ. Workers keep running and pick up the new
// buffer before their next point.
func (e *Engine) Change(v Viewport) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return ErrNotRunning
	}
	if v.Width != e.viewport.Width || v.Height != e.viewport.Height {
		return fmt.Errorf("%w: %dx%d, running %dx%d", ErrViewportSize, v.Width, v.Height, e.viewport.Width, e.viewport.Height)
	}
	e.viewport = v
	e.swap()
	return nil
}

// Apply moves the viewport according to op using the configured rates.
// Ops that do not navigate are ignored.
func (e *Engine) Apply(op Op) error {
	if !op.Navigates() {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return ErrNotRunning
	}
	e.viewport.Apply(op, e.cfg.MoveRate, e.cfg.ZoomRate)
	e.swap()
	return nil
}

// swap makes the back buffer the front one for the current viewport.
// Must be called with mu held.
//
// swap never waits for workers. A worker that missed the previous redirect
// may still be inside next; its partition is left alone and the worker
// resets it itself before iterating the new assignment.
func (e *Engine) swap() {
	next := e.back
	e.back = e.front.Load()

	deferred := make([]bool, len(e.workers))
	for i, w := range e.workers {
		if w.holds(next) {
			deferred[i] = true
			continue
		}
		e.viewport.initRange(next.points, w.part.Lo, w.part.Hi)
	}

	e.front.Store(next)
	for i, w := range e.workers {
		w.src.Store(&assignment{buf: next, view: e.viewport, reinit: deferred[i]})
	}
	e.changes++

	Logger().Debug("viewport changed", "viewport", e.viewport.String(), "generation", e.changes)
}

// Viewport returns the viewport currently being computed.
func (e *Engine) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// SetPalette replaces the palette used by Draw. The palette is copied.
func (e *Engine) SetPalette(pal Palette) error {
	if len(pal) == 0 {
		return ErrEmptyPalette
	}
	p := slices.Clone(pal)
	e.palette.Store(&p)
	return nil
}

// Palette returns the palette used by Draw.
func (e *Engine) Palette() Palette {
	return *e.palette.Load()
}

// Draw renders the front buffer into dst, which must hold one Color per pixel.
// It does not synchronize with the workers: it shows whatever they have
// computed so far.
func (e *Engine) Draw(dst []Color) error {
	b := e.front.Load()
	if b == nil {
		return ErrNotRunning
	}
	if len(dst) != len(b.points) {
		return fmt.Errorf("%w: %d pixels for %d points", ErrBufferSize, len(dst), len(b.points))
	}
	Render(dst, b.points, *e.palette.Load())
	return nil
}

// DrawFrame renders into f.
func (e *Engine) DrawFrame(f *Frame) error {
	return e.Draw(f.Pix)
}

// Close stops all workers, waits for them and releases the buffers.
// Closing an idle engine is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	for _, w := range e.workers {
		w.signal()
	}
	var passes uint64
	for _, w := range e.workers {
		w.join()
		passes += w.passes.Load()
	}

	Logger().Info("engine stopped", "workers", len(e.workers), "passes", passes, "changes", e.changes)

	e.workers = nil
	e.back = nil
	e.front.Store(nil)
	e.running = false
	return nil
}

// Running reports whether the workers are running.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Partitions returns the index ranges assigned to the workers.
func (e *Engine) Partitions() []Partition {
	e.mu.Lock()
	defer e.mu.Unlock()
	parts := make([]Partition, len(e.workers))
	for i, w := range e.workers {
		parts[i] = w.part
	}
	return parts
}

// WorkerStates returns the lifecycle state of every worker.
func (e *Engine) WorkerStates() []WorkerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	states := make([]WorkerState, len(e.workers))
	for i, w := range e.workers {
		states[i] = w.State()
	}
	return states
}

// Stats is a snapshot of the engine's progress.
type Stats struct {
	Workers    int    `json:"workers"`
	Points     int    `json:"points"`
	Escaped    int    `json:"escaped"`
	Iterations uint64 `json:"iterations"`
	Passes     uint64 `json:"passes"`
	Changes    uint64 `json:"changes"`
}

// Progress returns the fraction of points that have escaped.
func (s Stats) Progress() float64 {
	if s.Points == 0 {
		return 0
	}
	return float64(s.Escaped) / float64(s.Points)
}

// Stats scans the front buffer. Counts are approximate while workers run.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	s := Stats{Workers: len(e.workers), Changes: e.changes}
	for _, w := range e.workers {
		s.Passes += w.passes.Load()
	}
	e.mu.Unlock()

	b := e.front.Load()
	if b == nil {
		return s
	}
	s.Points = len(b.points)
	for i := range b.points {
		p := &b.points[i]
		s.Iterations += p.Iterations()
		if p.Escaped() {
			s.Escaped++
		}
	}
	return s
}
