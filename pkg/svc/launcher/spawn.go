package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultStopGrace is how long a cancelled server may take to exit before it is killed.
const DefaultStopGrace = 10 * time.Second

// SpawnLauncher runs the server as a child process and waits for it.
// On unix the child gets its own process group, so a terminal interrupt
// reaches it once, through the launcher's signal forwarding.
type SpawnLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// StopGrace defaults to DefaultStopGrace.
	StopGrace time.Duration
}

// Launch implements Launcher. It returns nil when the server exits with code 0
// and an *ExitError carrying the code otherwise.
func (l *SpawnLauncher) Launch(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Path) //nolint:gosec // server command is operator configuration
	cmd.Args = spec.Args
	cmd.Env = spec.Env
	cmd.Dir = spec.Dir
	isolateProcessGroup(cmd)
	cmd.Stdin = valueOr[io.Reader](l.Stdin, os.Stdin)
	cmd.Stdout = valueOr[io.Writer](l.Stdout, os.Stdout)
	cmd.Stderr = valueOr[io.Writer](l.Stderr, os.Stderr)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = l.StopGrace
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultStopGrace
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, forwardedSignals()...)
	defer signal.Stop(signals)

	err := cmd.Start()
	if err != nil {
		return fmt.Errorf("start %s: %w", spec.Path, err)
	}

	exited := make(chan struct{})

	var group errgroup.Group

	group.Go(func() error {
		defer close(exited)

		return cmd.Wait()
	})

	group.Go(func() error {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-exited:
				return nil
			}
		}
	})

	err = group.Wait()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitCode(exitErr)}
	}

	return fmt.Errorf("wait for %s: %w", spec.Path, err)
}

func valueOr[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}

	return value
}
