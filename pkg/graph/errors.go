package graph

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID           = errors.New("vertex id is empty")
	ErrSelfLoop          = errors.New("self-loop edges are not allowed")
	ErrNonPositiveWeight = errors.New("edge weight must be positive")
	ErrVertexNotFound    = errors.New("vertex not found")
)

// EdgeError reports a rejected edge
type EdgeError struct {
	Source string
	Target string
	Weight float64
	Cause  error
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge (%s, %s, %g): %v", e.Source, e.Target, e.Weight, e.Cause)
}

func (e *EdgeError) Unwrap() error {
	return e.Cause
}
