package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrNoInput        = errors.New("no interaction source or edge list given")
	ErrUnknownMethod  = errors.New("unknown community detection method")
	ErrNotAssortative = errors.New("community labels are not assortative")
)

// StageError reports the stage a run failed in
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Warning is a non-fatal problem raised by a stage
type Warning struct {
	Stage string
	Err   error
}

func (w Warning) Error() string {
	return w.Stage + ": " + w.Err.Error()
}

func (w Warning) Unwrap() error {
	return w.Err
}
