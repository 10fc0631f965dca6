package mandel

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidViewport is returned for viewports with non-positive pixel dimensions.
	ErrInvalidViewport = errors.New("invalid viewport")

	// ErrAllocation is returned when the point buffers cannot be allocated.
	// Nothing allocated by the failed call is kept.
	ErrAllocation = errors.New("allocation failed")

	// ErrWorkerStart is returned when a worker could not be started.
	// Workers started before the failure have been stopped and joined.
	ErrWorkerStart = errors.New("worker start failed")

	ErrAlreadyRunning = errors.New("engine already running")
	ErrNotRunning     = errors.New("engine not running")

	// ErrViewportSize is returned by Change when the pixel size differs from the running one.
	ErrViewportSize = errors.New("viewport size differs from running engine")

	// ErrBufferSize is returned by Draw when the target has the wrong length.
	ErrBufferSize = errors.New("pixel buffer size mismatch")

	ErrEmptyPalette = errors.New("empty palette")
)
