package launcher

import (
	"context"
	"fmt"
	"os"
)

// ExecFunc replaces the current process image.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// ExecLauncher replaces the current process with the server.
// On success Launch never returns.
type ExecLauncher struct {
	// Exec defaults to the platform exec call.
	Exec ExecFunc
}

// Launch implements Launcher.
func (l *ExecLauncher) Launch(ctx context.Context, spec Spec) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("launch %s: %w", spec.Path, err)
	}

	execFn := l.Exec
	if execFn == nil {
		execFn = platformExec
	}

	if execFn == nil {
		return (&SpawnLauncher{}).Launch(ctx, spec)
	}

	// exec has no working directory argument, so the server inherits ours.
	restore, err := enterDir(spec.Dir)
	if err != nil {
		return err
	}

	err = execFn(spec.Path, spec.Args, spec.Env)
	if err != nil {
		restore()

		return fmt.Errorf("exec %s: %w", spec.Path, err)
	}

	return nil
}

// enterDir changes into dir and returns a func changing back.
func enterDir(dir string) (func(), error) {
	if dir == "" {
		return func() {}, nil
	}

	previous, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	err = os.Chdir(dir)
	if err != nil {
		return nil, fmt.Errorf("change directory to %s: %w", dir, err)
	}

	return func() { _ = os.Chdir(previous) }, nil
}
