package mandel

import "fmt"

// Partition is the half-open index range [Lo, Hi) of the point array owned by
// one worker.
type Partition struct {
	Lo, Hi int
}

// Len returns the number of points in p.
func (p Partition) Len() int { return p.Hi - p.Lo }

func (p Partition) String() string {
	return fmt.Sprintf("[%d, %d)", p.Lo, p.Hi)
}

// Split divides [0, points) into workers contiguous partitions. The first
// workers-1 partitions hold points/workers elements, the last one takes the
// remainder. With more workers than points the leading partitions are empty.
func Split(points, workers int) ([]Partition, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: %d workers", ErrInvalidConfig, workers)
	}
	if points < 0 {
		return nil, fmt.Errorf("%w: %d points", ErrInvalidConfig, points)
	}

	per := points / workers
	parts := make([]Partition, workers)
	lo := 0
	for i := range workers - 1 {
		parts[i] = Partition{Lo: lo, Hi: lo + per}
		lo += per
	}
	parts[workers-1] = Partition{Lo: lo, Hi: points}
	return parts, nil
}
