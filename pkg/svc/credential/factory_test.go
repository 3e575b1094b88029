package credential_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFactory_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source v1alpha1.Source
		want   any
	}{
		{source: v1alpha1.SourceEnv, want: &credential.EnvSource{}},
		{source: "", want: &credential.EnvSource{}},
		{source: v1alpha1.SourceFile, want: &credential.FileSource{}},
		{source: v1alpha1.SourceSops, want: &credential.SopsSource{}},
		{source: v1alpha1.SourceAge, want: &credential.AgeSource{}},
	}

	for _, test := range tests {
		t.Run(string(test.source), func(t *testing.T) {
			t.Parallel()

			spec := v1alpha1.NewCredentialSpec()
			spec.Source = test.source

			source, err := credential.DefaultFactory{}.Create(spec)

			require.NoError(t, err)
			assert.IsType(t, test.want, source)
		})
	}
}

func TestDefaultFactory_UnknownSource(t *testing.T) {
	t.Parallel()

	spec := v1alpha1.NewCredentialSpec()
	spec.Source = "vault"

	_, err := credential.DefaultFactory{}.Create(spec)

	require.ErrorIs(t, err, credential.ErrUnsupportedSource)
}

//nolint:paralleltest // uses t.Setenv
func TestDefaultFactory_EnvSourceDefaultsToProcessEnvironment(t *testing.T) {
	t.Setenv("CREDBOOT_FACTORY_COOKIES", base64.StdEncoding.EncodeToString([]byte("cookie")))

	spec := v1alpha1.NewCredentialSpec()
	spec.Env = "CREDBOOT_FACTORY_COOKIES"

	source, err := credential.DefaultFactory{}.Create(spec)
	require.NoError(t, err)

	got, err := source.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cookie", string(got))
}
