package credential

import (
	"fmt"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
)

// Factory creates credential sources from configuration.
//
//go:generate mockery
type Factory interface {
	Create(spec v1alpha1.CredentialSpec) (Source, error)
}

// DefaultFactory builds the sources shipped with credboot.
// A nil Lookup reads the process environment.
type DefaultFactory struct {
	Lookup LookupFunc
}

// Create implements Factory.
func (f DefaultFactory) Create(spec v1alpha1.CredentialSpec) (Source, error) {
	switch spec.Source {
	case v1alpha1.SourceEnv, "":
		source := NewEnvSource(spec.Env)
		if f.Lookup != nil {
			source.Lookup = f.Lookup
		}

		return source, nil
	case v1alpha1.SourceFile:
		return &FileSource{Path: spec.File, Encoding: spec.Encoding}, nil
	case v1alpha1.SourceSops:
		return NewSopsSource(spec), nil
	case v1alpha1.SourceAge:
		source := NewAgeSource(spec)
		if f.Lookup != nil {
			source.Lookup = f.Lookup
		}

		return source, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, spec.Source)
	}
}
