package di

import (
	"fmt"

	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/devantler-tech/credboot/pkg/svc/launcher"
	"github.com/devantler-tech/credboot/pkg/svc/readiness"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveCredentialFactory retrieves the credential source factory from the injector.
func ResolveCredentialFactory(injector Injector) (credential.Factory, error) {
	factory, err := do.Invoke[credential.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve credential factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveLauncherFactory retrieves the server launcher factory from the injector.
func ResolveLauncherFactory(injector Injector) (launcher.Factory, error) {
	factory, err := do.Invoke[launcher.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve launcher factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveReadinessFactory retrieves the readiness prober factory from the injector.
func ResolveReadinessFactory(injector Injector) (readiness.Factory, error) {
	factory, err := do.Invoke[readiness.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve readiness factory dependency: %w", err)
	}

	return factory, nil
}

// Services bundles the factories command handlers work with.
type Services struct {
	Credentials credential.Factory
	Launchers   launcher.Factory
	Probers     readiness.Factory
}

// ResolveServices resolves every factory in Services.
func ResolveServices(injector Injector) (Services, error) {
	credentials, err := ResolveCredentialFactory(injector)
	if err != nil {
		return Services{}, err
	}

	launchers, err := ResolveLauncherFactory(injector)
	if err != nil {
		return Services{}, err
	}

	probers, err := ResolveReadinessFactory(injector)
	if err != nil {
		return Services{}, err
	}

	return Services{Credentials: credentials, Launchers: launchers, Probers: probers}, nil
}

// Handler decorators.

// WithServices decorates a handler to resolve Services before it runs.
func WithServices(
	handler func(cmd *cobra.Command, services Services) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		services, err := ResolveServices(injector)
		if err != nil {
			return err
		}

		return handler(cmd, services)
	}
}
