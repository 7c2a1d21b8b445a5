package probe

import (
	"errors"
	"fmt"
)

// ErrPreconditionNotMet matches every PreconditionError via errors.Is.
var ErrPreconditionNotMet = errors.New("precondition not met")

// PreconditionError reports that no accelerator is visible to the process.
// It is the only failure the probe itself raises.
type PreconditionError struct {
	Backend string
}

// NoGPUMessage returns the fixed failure message for backend.
func NoGPUMessage(backend string) string {
	return fmt.Sprintf("No GPU detected by %s!", backend)
}

func (e *PreconditionError) Error() string {
	return NoGPUMessage(e.Backend)
}

// Is lets errors.Is(err, ErrPreconditionNotMet) match.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionNotMet
}
