package di

import (
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/devantler-tech/credboot/pkg/svc/launcher"
	"github.com/devantler-tech/credboot/pkg/svc/readiness"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command and tests.
// It registers default implementations for the credential, launcher and readiness factories.
func NewRuntime() *Runtime {
	return New(
		provideCredentialFactory,
		provideLauncherFactory,
		provideReadinessFactory,
	)
}

// provideCredentialFactory registers the credential source factory dependency.
func provideCredentialFactory(i Injector) error {
	do.Provide(i, func(Injector) (credential.Factory, error) {
		return credential.DefaultFactory{}, nil
	})

	return nil
}

// provideLauncherFactory registers the server launcher factory dependency.
func provideLauncherFactory(i Injector) error {
	do.Provide(i, func(Injector) (launcher.Factory, error) {
		return launcher.DefaultFactory{}, nil
	})

	return nil
}

// provideReadinessFactory registers the readiness prober factory dependency.
func provideReadinessFactory(i Injector) error {
	do.Provide(i, func(Injector) (readiness.Factory, error) {
		return readiness.DefaultFactory{}, nil
	})

	return nil
}
