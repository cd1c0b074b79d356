package nodewire

import (
	"errors"
	"fmt"
)

// Sentinel errors for chain traversal.
var (
	// ErrCycleDetected indicates a reroute chain loops back on itself.
	// This signals graph corruption, not a missing entity.
	ErrCycleDetected = errors.New("reroute chain cycle detected")
)

// ChainError reports the segment at which a chain walk detected a cycle.
type ChainError struct {
	// SegmentID is the reroute id that was visited twice.
	SegmentID int64
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	return fmt.Sprintf("reroute chain cycle detected at reroute %d", e.SegmentID)
}

// Unwrap returns ErrCycleDetected for errors.Is support.
func (e *ChainError) Unwrap() error {
	return ErrCycleDetected
}
