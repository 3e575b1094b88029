package launcher

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand is returned when no server command is configured.
var ErrEmptyCommand = errors.New("server command cannot be empty")

// ErrCommandNotFound is returned when the server binary cannot be located.
var ErrCommandNotFound = errors.New("server command not found")

// ErrUnsupportedMode is returned for unknown launch modes.
var ErrUnsupportedMode = errors.New("unsupported launch mode")

// ExitError carries the exit code of a server that ended unsuccessfully.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("server exited with code %d", e.Code)
}

// ExitCode returns the exit code the launcher process should exit with.
func (e *ExitError) ExitCode() int {
	return e.Code
}
