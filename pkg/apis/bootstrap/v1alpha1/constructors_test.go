package v1alpha1_test

import (
	"testing"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()

	assert.Equal(t, v1alpha1.Kind, cfg.Kind)
	assert.Equal(t, v1alpha1.APIVersion, cfg.APIVersion)
	assert.Equal(t, v1alpha1.SourceEnv, cfg.Credential.Source)
	assert.Equal(t, "YOUTUBE_COOKIES_BASE64", cfg.Credential.Env)
	assert.Equal(t, "/app/cookies.txt", cfg.Credential.Output)
	assert.True(t, cfg.Credential.Strict)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7860, cfg.Server.Port)
	assert.Equal(t, v1alpha1.LaunchExec, cfg.Server.Launch)
	assert.Equal(t, []string{"uvicorn", "api:app", "--host", "${HOST}", "--port", "${PORT}"}, cfg.Server.Command)
	require.NoError(t, cfg.Validate())
}

func TestDeepCopy_IsIndependent(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()

	clone, err := cfg.DeepCopy()
	require.NoError(t, err)
	require.Equal(t, cfg, clone)

	clone.Server.Command[0] = "gunicorn"
	clone.Credential.Output = "/tmp/other.txt"

	assert.Equal(t, "uvicorn", cfg.Server.Command[0])
	assert.Equal(t, "/app/cookies.txt", cfg.Credential.Output)
}

func TestDeepCopy_Nil(t *testing.T) {
	t.Parallel()

	var cfg *v1alpha1.Config

	clone, err := cfg.DeepCopy()

	require.NoError(t, err)
	assert.Nil(t, clone)
}

func TestReadinessAddress(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewConfig()
	assert.Equal(t, "127.0.0.1:7860", cfg.ReadinessAddress())

	cfg.Readiness.Address = "app:8080"
	assert.Equal(t, "app:8080", cfg.ReadinessAddress())
}
