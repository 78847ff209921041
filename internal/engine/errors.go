package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRuntime indicates no container runtime binary was found.
	ErrNoRuntime = errors.New("no container runtime found (need docker or podman)")

	// ErrNoConfig indicates an inspected image has no configuration record.
	ErrNoConfig = errors.New("image has no configuration record")
)

// CommandError wraps a failed engine CLI invocation with its stderr text.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed (exit %d): %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed (exit %d): %v", e.Command, e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
