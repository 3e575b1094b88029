package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Set(t *testing.T) {
	t.Parallel()

	var source v1alpha1.Source

	require.NoError(t, source.Set("SOPS"))
	assert.Equal(t, v1alpha1.SourceSops, source)
	assert.Equal(t, "sops", source.String())
	assert.Equal(t, "Source", source.Type())

	err := source.Set("vault")
	require.ErrorIs(t, err, v1alpha1.ErrInvalidSource)
	assert.Contains(t, err.Error(), "valid options: env, file, sops, age")
	assert.Equal(t, v1alpha1.SourceSops, source, "failed Set must not change the value")
}

func TestEncoding_Set(t *testing.T) {
	t.Parallel()

	var encoding v1alpha1.Encoding

	require.NoError(t, encoding.Set("raw"))
	assert.Equal(t, v1alpha1.EncodingRaw, encoding)
	require.ErrorIs(t, encoding.Set("hex"), v1alpha1.ErrInvalidEncoding)
}

func TestSopsFormat_Set(t *testing.T) {
	t.Parallel()

	var format v1alpha1.SopsFormat

	require.NoError(t, format.Set("Dotenv"))
	assert.Equal(t, v1alpha1.SopsFormatDotenv, format)
	require.ErrorIs(t, format.Set("ini"), v1alpha1.ErrInvalidSopsFormat)
}

func TestLaunchMode_Set(t *testing.T) {
	t.Parallel()

	var mode v1alpha1.LaunchMode

	require.NoError(t, mode.Set("spawn"))
	assert.Equal(t, v1alpha1.LaunchSpawn, mode)
	assert.True(t, mode.IsValid())
	require.ErrorIs(t, mode.Set("fork"), v1alpha1.ErrInvalidLaunchMode)
}
