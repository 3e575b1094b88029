package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/envvar"
)

// Spec is a fully resolved server invocation.
type Spec struct {
	// Path is the absolute path of the binary.
	Path string
	// Args is the argument vector, including argv[0].
	Args []string
	// Env is the environment in "KEY=value" form.
	Env []string
	// Dir is the working directory. Empty keeps the current one.
	Dir string
}

// Launcher starts the server described by a Spec.
//
//go:generate mockery
type Launcher interface {
	Launch(ctx context.Context, spec Spec) error
}

// Factory creates launchers for a launch mode.
//
//go:generate mockery
type Factory interface {
	Create(mode v1alpha1.LaunchMode) (Launcher, error)
}

// DefaultFactory creates the launchers shipped with credboot.
type DefaultFactory struct{}

// Create implements Factory.
func (DefaultFactory) Create(mode v1alpha1.LaunchMode) (Launcher, error) {
	return New(mode)
}

// New returns the launcher for mode.
func New(mode v1alpha1.LaunchMode) (Launcher, error) {
	switch mode {
	case v1alpha1.LaunchExec, "":
		return &ExecLauncher{}, nil
	case v1alpha1.LaunchSpawn:
		return &SpawnLauncher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// Resolve builds a Spec from the server configuration.
//
// HOST and PORT are exported into environ so the server and ${HOST}/${PORT}
// placeholders in the command see the configured bind address. The binary
// is looked up in PATH unless it contains a path separator.
func Resolve(server v1alpha1.ServerSpec, environ []string) (Spec, error) {
	if len(server.Command) == 0 || strings.TrimSpace(server.Command[0]) == "" {
		return Spec{}, ErrEmptyCommand
	}

	env := setEnv(environ, "HOST", server.Host)
	env = setEnv(env, "PORT", strconv.Itoa(server.Port))

	args := envvar.ExpandAll(server.Command, envvar.MapLookup(envMap(env)))

	path, err := exec.LookPath(args[0])
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %s: %w", ErrCommandNotFound, args[0], err)
	}

	return Spec{
		Path: path,
		Args: args,
		Env:  env,
		Dir:  server.Dir,
	}, nil
}

// setEnv returns a copy of environ with key set to value.
func setEnv(environ []string, key, value string) []string {
	result := make([]string, 0, len(environ)+1)
	prefix := key + "="

	for _, entry := range environ {
		if !strings.HasPrefix(entry, prefix) {
			result = append(result, entry)
		}
	}

	return append(result, prefix+value)
}

func envMap(environ []string) map[string]string {
	values := make(map[string]string, len(environ))

	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if found {
			values[key] = value
		}
	}

	return values
}
