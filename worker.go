package mandel

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// WorkerState is the lifecycle state of a worker goroutine.
type WorkerState int32

const (
	// Running workers iterate their partition until their run flag is cleared.
	Running WorkerState = iota
	// Stopping workers have had their run flag cleared and finish the current pass.
	Stopping
	// Joined workers have returned and been waited for.
	Joined
)

func (s WorkerState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Joined:
		return "joined"
	}
	return fmt.Sprintf("WorkerState(%d)", int32(s))
}

// buffer is one of the two point arrays of the engine.
type buffer struct {
	points []Point
}

// assignment tells a worker which buffer to iterate. A new assignment is
// published on every viewport change, so a worker detects a redirect by
// pointer even when the buffer stays the same.
type assignment struct {
	buf  *buffer
	view Viewport

	// reinit is set when the control goroutine skipped the worker's
	// partition because the worker still held buf. The worker resets the
	// partition for view itself before iterating it.
	reinit bool
}

// worker iterates a fixed partition of whichever buffer src points at.
//
// src is written by the control goroutine on every viewport change. The
// worker publishes the buffer it is about to touch in hazard and re-checks
// src afterwards, so the control goroutine can tell which partitions of a
// buffer are still in use before it re-initializes it.
type worker struct {
	id    int
	part  Partition
	batch int

	src    atomic.Pointer[assignment]
	hazard atomic.Pointer[buffer]
	reset  atomic.Pointer[assignment] // last assignment whose partition the worker reset
	run    atomic.Bool
	state  atomic.Int32
	passes atomic.Uint64

	done chan struct{}
}

func newWorker(id int, part Partition, batch int, src *assignment) *worker {
	w := &worker{
		id:    id,
		part:  part,
		batch: batch,
		done:  make(chan struct{}),
	}
	w.src.Store(src)
	w.run.Store(true)
	w.state.Store(int32(Running))
	return w
}

// loop is the goroutine body. The run flag is checked once per pass.
func (w *worker) loop() {
	defer close(w.done)
	for w.run.Load() {
		w.pass()
	}
	w.hazard.Store(nil)
}

// pass gives every point of the partition one batch of iterations. It returns
// early when the worker has been redirected.
func (w *worker) pass() {
	a := w.acquire()
	if w.pending(a) {
		a.view.initRange(a.buf.points, w.part.Lo, w.part.Hi)
		w.reset.Store(a)
	}
	pts := a.buf.points[w.part.Lo:w.part.Hi]
	if len(pts) == 0 {
		runtime.Gosched()
		return
	}
	for i := range pts {
		if w.src.Load() != a {
			return
		}
		pts[i].Iterate(w.batch)
	}
	w.passes.Add(1)
}

// acquire returns the current assignment after publishing its buffer as hazard.
func (w *worker) acquire() *assignment {
	for {
		a := w.src.Load()
		w.hazard.Store(a.buf)
		if w.src.Load() == a {
			return a
		}
	}
}

// pending reports whether the partition of a still waits for the worker to
// reset it.
func (w *worker) pending(a *assignment) bool {
	return a.reinit && w.reset.Load() != a
}

// holds reports whether the worker may still be touching b.
func (w *worker) holds(b *buffer) bool {
	return w.hazard.Load() == b
}

// signal clears the run flag. The worker stops after its current pass.
func (w *worker) signal() {
	w.state.Store(int32(Stopping))
	w.run.Store(false)
}

// join waits for the worker goroutine to return.
func (w *worker) join() {
	<-w.done
	w.state.Store(int32(Joined))
}

func (w *worker) stop() {
	w.signal()
	w.join()
}

func (w *worker) State() WorkerState {
	return WorkerState(w.state.Load())
}
