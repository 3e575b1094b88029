package di_test

import (
	"testing"

	"github.com/devantler-tech/credboot/pkg/di"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/devantler-tech/credboot/pkg/svc/launcher"
	"github.com/devantler-tech/credboot/pkg/svc/readiness"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvers_MissingDependencies(t *testing.T) {
	t.Parallel()

	injector := do.New()

	_, err := di.ResolveCredentialFactory(injector)
	require.ErrorContains(t, err, "resolve credential factory dependency")

	_, err = di.ResolveLauncherFactory(injector)
	require.ErrorContains(t, err, "resolve launcher factory dependency")

	_, err = di.ResolveReadinessFactory(injector)
	require.ErrorContains(t, err, "resolve readiness factory dependency")

	_, err = di.ResolveServices(injector)
	require.ErrorContains(t, err, "resolve credential factory dependency")
}

func TestResolveServices(t *testing.T) {
	t.Parallel()

	injector := do.New()
	credentials := credential.DefaultFactory{}

	do.ProvideValue[credential.Factory](injector, credentials)
	do.ProvideValue[launcher.Factory](injector, launcher.DefaultFactory{})
	do.ProvideValue[readiness.Factory](injector, readiness.DefaultFactory{})

	services, err := di.ResolveServices(injector)
	require.NoError(t, err)

	assert.Equal(t, credentials, services.Credentials)
	assert.Equal(t, launcher.DefaultFactory{}, services.Launchers)
	assert.Equal(t, readiness.DefaultFactory{}, services.Probers)
}

func TestWithServices(t *testing.T) {
	t.Parallel()

	var received di.Services

	runE := di.RunEWithRuntime(di.NewRuntime(), di.WithServices(
		func(_ *cobra.Command, services di.Services) error {
			received = services

			return nil
		},
	))

	require.NoError(t, runE(&cobra.Command{Use: "test"}, nil))

	assert.NotNil(t, received.Credentials)
	assert.NotNil(t, received.Launchers)
	assert.NotNil(t, received.Probers)
}

func TestWithServices_ResolveError(t *testing.T) {
	t.Parallel()

	called := false

	runE := di.RunEWithRuntime(di.New(), di.WithServices(
		func(*cobra.Command, di.Services) error {
			called = true

			return nil
		},
	))

	require.Error(t, runE(&cobra.Command{Use: "test"}, nil))
	assert.False(t, called)
}
