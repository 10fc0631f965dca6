package mandel

import (
	"fmt"
	"runtime"
)

// DefaultMaxPoints caps the pixel count of a viewport (two buffers of 64-byte
// points, so 2 GiB at the default).
const DefaultMaxPoints = 1 << 24

// Config holds the engine's control-time parameters.
type Config struct {
	// Workers is the number of worker goroutines. 0 means runtime.NumCPU().
	Workers int

	// Batch is the number of iterations per point per worker pass. 0 means DefaultBatch.
	Batch int

	// MoveRate and ZoomRate are used by Apply. 0 means the defaults.
	MoveRate float64
	ZoomRate float64

	// MaxPoints is the largest viewport Run will allocate for. 0 means DefaultMaxPoints.
	MaxPoints int
}

// DefaultConfig returns the configuration used by the explorer binaries.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		Batch:     DefaultBatch,
		MoveRate:  DefaultMoveRate,
		ZoomRate:  DefaultZoomRate,
		MaxPoints: DefaultMaxPoints,
	}
}

// withDefaults fills zero fields and validates the result.
func (c Config) withDefaults() (Config, error) {
	d := DefaultConfig()
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
	if c.Batch == 0 {
		c.Batch = d.Batch
	}
	if c.MoveRate == 0 {
		c.MoveRate = d.MoveRate
	}
	if c.ZoomRate == 0 {
		c.ZoomRate = d.ZoomRate
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = d.MaxPoints
	}

	switch {
	case c.Workers < 0:
		return c, fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.Batch < 0:
		return c, fmt.Errorf("%w: batch %d", ErrInvalidConfig, c.Batch)
	case c.MaxPoints < 0:
		return c, fmt.Errorf("%w: max points %d", ErrInvalidConfig, c.MaxPoints)
	}
	return c, nil
}
