package algorithms

import "errors"

var (
	// ErrNotConverged marks an iterative result that hit its iteration cap.
	// The last estimate is still returned.
	ErrNotConverged = errors.New("iteration cap reached before convergence")
	// ErrUndefined marks a quantity whose denominator is zero, such as the
	// modularity of a graph without edge weight.
	ErrUndefined           = errors.New("value undefined for this graph")
	ErrIncompletePartition = errors.New("partition does not cover every vertex")
	ErrInvalidResolution   = errors.New("resolution must be positive")
	ErrInvalidDamping      = errors.New("damping factor must be in [0, 1)")
	ErrInvalidIterations   = errors.New("iteration cap must be positive")
)
