package scene

import (
	"errors"
	"fmt"
)

// Sentinel causes of a fatal manager error.
var (
	ErrPopRoot           = errors.New("pop would empty the scene stack")
	ErrNilScene          = errors.New("transition to a nil scene")
	ErrUnknownTransition = errors.New("unknown transition kind")
	ErrHalted            = errors.New("scene manager halted")
	ErrClosed            = errors.New("scene manager closed")
)

// FatalError reports a violated stack invariant. The manager halts after
// returning one.
type FatalError struct {
	Op    string // Transition kind that failed
	Scene string // Scene that requested it
	Depth int    // Stack depth at the time
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("scene: %s requested by %q at depth %d: %v", e.Op, e.Scene, e.Depth, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
