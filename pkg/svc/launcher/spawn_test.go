//go:build unix

package launcher_test

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/devantler-tech/credboot/pkg/svc/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellSpec(t *testing.T, script string, env ...string) launcher.Spec {
	t.Helper()

	path, err := exec.LookPath("sh")
	require.NoError(t, err)

	return launcher.Spec{Path: path, Args: []string{"sh", "-c", script}, Env: env}
}

func TestSpawnLauncher_Success(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	spawn := &launcher.SpawnLauncher{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	err := spawn.Launch(context.Background(), shellSpec(t, `printf '%s:%s' "$HOST" "$PORT"`, "HOST=0.0.0.0", "PORT=7860"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7860", stdout.String())
}

func TestSpawnLauncher_WorkingDirectory(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	dir := t.TempDir()
	spec := shellSpec(t, "pwd -P")
	spec.Dir = dir

	spawn := &launcher.SpawnLauncher{Stdout: &stdout}

	require.NoError(t, spawn.Launch(context.Background(), spec))
	assert.NotEmpty(t, stdout.String())
}

func TestSpawnLauncher_PropagatesExitCode(t *testing.T) {
	t.Parallel()

	spawn := &launcher.SpawnLauncher{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := spawn.Launch(context.Background(), shellSpec(t, "exit 3"))

	var exitErr *launcher.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}

func TestSpawnLauncher_CancelInterruptsServer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	spawn := &launcher.SpawnLauncher{StopGrace: time.Second}

	start := time.Now()
	err := spawn.Launch(ctx, shellSpec(t, "exec sleep 30"))

	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestSpawnLauncher_StartFailure(t *testing.T) {
	t.Parallel()

	spawn := &launcher.SpawnLauncher{}

	err := spawn.Launch(context.Background(), launcher.Spec{
		Path: "/nonexistent/credboot-server",
		Args: []string{"credboot-server"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start /nonexistent/credboot-server")
}

func TestSpawnLauncher_ChildHasOwnProcessGroup(t *testing.T) {
	t.Parallel()

	if runtime.GOOS != "linux" {
		t.Skip("reads the process group from /proc")
	}

	var stdout bytes.Buffer

	spawn := &launcher.SpawnLauncher{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	// Field 5 of /proc/<pid>/stat is the process group id.
	err := spawn.Launch(context.Background(), shellSpec(t, `echo "$$ $(cut -d' ' -f5 /proc/$$/stat)"`))
	require.NoError(t, err)

	fields := strings.Fields(stdout.String())
	require.Len(t, fields, 2)

	pid, err := strconv.Atoi(fields[0])
	require.NoError(t, err)

	pgid, err := strconv.Atoi(fields[1])
	require.NoError(t, err)

	assert.Equal(t, pid, pgid, "the server leads its own process group")
	assert.NotEqual(t, syscall.Getpgrp(), pgid)
}
