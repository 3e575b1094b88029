package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/envvar"
)

// Source resolves the decoded credential.
type Source interface {
	// Resolve returns the credential bytes, ErrNotProvided when it is absent,
	// or ErrMalformed when it cannot be decoded.
	Resolve(ctx context.Context) ([]byte, error)
	// Describe names the origin of the credential for user-facing messages.
	Describe() string
}

// LookupFunc resolves environment variables.
type LookupFunc func(string) (string, bool)

// EnvSource reads a base64 payload from an environment variable.
type EnvSource struct {
	Name   string
	Lookup LookupFunc
}

// NewEnvSource creates an EnvSource reading from the process environment.
func NewEnvSource(name string) *EnvSource {
	return &EnvSource{Name: name, Lookup: os.LookupEnv}
}

// Resolve implements Source. Unset and empty variables are both ErrNotProvided.
func (s *EnvSource) Resolve(ctx context.Context) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.Describe(), err)
	}

	value, ok := envvar.LookupNonEmpty(s.Name, s.Lookup)
	if !ok {
		return nil, fmt.Errorf("%w: %s is unset or empty", ErrNotProvided, s.Name)
	}

	decoded, err := Decode([]byte(value), v1alpha1.EncodingBase64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	return decoded, nil
}

// Describe implements Source.
func (s *EnvSource) Describe() string {
	return "environment variable " + s.Name
}

// FileSource reads a mounted secret file.
type FileSource struct {
	Path     string
	Encoding v1alpha1.Encoding
}

// Resolve implements Source. A missing or empty file is ErrNotProvided.
func (s *FileSource) Resolve(ctx context.Context) ([]byte, error) {
	data, err := readOptionalFile(ctx, s.Path)
	if err != nil {
		return nil, err
	}

	decoded, err := Decode(data, s.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	return decoded, nil
}

// Describe implements Source.
func (s *FileSource) Describe() string {
	return "file " + s.Path
}

// readOptionalFile reads path, mapping a missing or blank file to ErrNotProvided.
func readOptionalFile(ctx context.Context, path string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotProvided, path)
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrNotProvided, path)
	}

	return data, nil
}
