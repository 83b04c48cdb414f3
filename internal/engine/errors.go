package engine

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gcsim/internal/config"
)

var (
	// ErrUnknownObject is returned when a step names an object that was never
	// allocated.
	ErrUnknownObject = errors.New("unknown object")
	// ErrReleasedObject is returned when a step names an object the host has
	// already released.
	ErrReleasedObject = errors.New("object already released")
	// ErrDuplicateObject is returned when an object name is allocated twice.
	ErrDuplicateObject = errors.New("object already allocated")
)

// ExpectationError reports a step whose resulting object count differs from
// the one the scenario expected.
type ExpectationError struct {
	Kind     config.StepKind
	Step     string
	Expected int
	Actual   int
}

// Error implements the error interface for ExpectationError.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %s %q: expected %d registered objects, got %d", e.Kind, e.Step, e.Expected, e.Actual)
}
