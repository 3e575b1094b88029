//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

// platformExec is nil where process replacement is unavailable, which makes
// ExecLauncher spawn the server instead.
//
//nolint:gochecknoglobals // platform hook
var platformExec ExecFunc

func forwardedSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func isolateProcessGroup(*exec.Cmd) {}

func exitCode(exitErr *exec.ExitError) int {
	code := exitErr.ExitCode()
	if code < 0 {
		return 1
	}

	return code
}
