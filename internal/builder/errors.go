package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrExecutableNotFound marks a run request for a project that has no
	// built executable yet.
	ErrExecutableNotFound = errors.New("no executable found, build the project first")

	// ErrExamplesFailed marks a batch example build where at least one
	// example did not build.
	ErrExamplesFailed = errors.New("some examples failed to build")
)

// StageError reports which external stage of which component failed.
type StageError struct {
	Target string // "sdk", "board", or "<category>/<name>"
	Stage  Stage
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Target, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// PrerequisiteError reports a build requested before an upstream
// component it hard-requires was built.
type PrerequisiteError struct {
	Missing string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s is not built, build it first", e.Missing)
}
