package frame

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTornDown is the panic value for a tick or event after Teardown.
	ErrTornDown = errors.New("frame: driver used after teardown")

	// ErrNotStarted indicates an operation that needs a started driver.
	ErrNotStarted = errors.New("frame: driver not started")
)

// TickError wraps the failure that stopped the loop.
type TickError struct {
	Tick    int
	Time    time.Time
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
