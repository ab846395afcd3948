package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMaximal reports taps whose cycle from state 1 is not the
	// declared sequence length.
	ErrNotMaximal    = errors.New("table: taps are not maximal")
	ErrTableTooLarge = errors.New("table: reverse table too large")
	ErrInvalidRange  = errors.New("table: invalid sample range")
	ErrFormat        = errors.New("table: bad table file")
)

// CycleError describes where a cycle-completeness walk went wrong.
type CycleError struct {
	Register string
	Step     uint64
	State    uint32
	Reason   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("table: %s is not maximal: %s (step %d, state %#x)",
		e.Register, e.Reason, e.Step, e.State)
}

func (e *CycleError) Unwrap() error {
	return ErrNotMaximal
}
