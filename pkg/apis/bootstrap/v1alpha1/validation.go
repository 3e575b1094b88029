package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
)

const maxPort = 65535

// Validate checks the configuration for values that would make provisioning or
// launching impossible. All problems are reported together.
func (c *Config) Validate() error {
	return errors.Join(
		c.Credential.Validate(),
		c.Server.Validate(),
	)
}

// Validate checks a CredentialSpec.
func (s *CredentialSpec) Validate() error {
	var errs []error

	if !s.Source.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSource, s.Source))
	}

	if !s.Encoding.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidEncoding, s.Encoding))
	}

	if strings.TrimSpace(s.Output) == "" {
		errs = append(errs, ErrEmptyOutput)
	}

	if s.Mode&^0o777 != 0 {
		errs = append(errs, fmt.Errorf("%w: %#o", ErrInvalidMode, uint32(s.Mode)))
	}

	switch s.Source {
	case SourceEnv:
		if s.Env == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSourceEnv, s.Source))
		}
	case SourceFile:
		if s.File == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSourceFile, s.Source))
		}
	case SourceSops:
		if s.File == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSourceFile, s.Source))
		}

		if !s.SopsFormat.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSopsFormat, s.SopsFormat))
		}
	case SourceAge:
		if s.Env == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSourceEnv, s.Source))
		}

		if s.AgeIdentity == "" && s.AgeIdentityEnv == "" {
			errs = append(errs, ErrMissingAgeIdentity)
		}
	}

	return errors.Join(errs...)
}

// Validate checks a ServerSpec.
func (s *ServerSpec) Validate() error {
	var errs []error

	if len(s.Command) == 0 || strings.TrimSpace(s.Command[0]) == "" {
		errs = append(errs, ErrEmptyCommand)
	}

	if s.Port < 1 || s.Port > maxPort {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, s.Port))
	}

	if !s.Launch.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLaunchMode, s.Launch))
	}

	return errors.Join(errs...)
}
