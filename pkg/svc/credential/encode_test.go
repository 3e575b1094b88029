package credential_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/credboot/pkg/envvar"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Base64IsReadByEnvSource(t *testing.T) {
	t.Parallel()

	payload, err := credential.Encode([]byte(cookieJar))
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "\n", "payload fits a single environment variable line")

	source := &credential.EnvSource{
		Name:   "YOUTUBE_COOKIES_BASE64",
		Lookup: envvar.MapLookup(map[string]string{"YOUTUBE_COOKIES_BASE64": string(payload)}),
	}

	decoded, err := source.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(decoded))
}

func TestEncode_AgeIsReadByAgeSource(t *testing.T) {
	t.Parallel()

	identity := newIdentity(t)

	payload, err := credential.Encode([]byte(cookieJar), identity.Recipient().String())
	require.NoError(t, err)
	assert.Contains(t, string(payload), "-----BEGIN AGE ENCRYPTED FILE-----")

	source := &credential.AgeSource{
		Env:         "COOKIES_AGE",
		IdentityEnv: "AGE_KEY",
		Lookup: envvar.MapLookup(map[string]string{
			"COOKIES_AGE": string(payload),
			"AGE_KEY":     identity.String(),
		}),
	}

	decoded, err := source.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(decoded))
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	_, err := credential.Encode(nil)
	require.ErrorIs(t, err, credential.ErrMalformed)

	_, err = credential.Encode([]byte(cookieJar), "not-a-recipient")
	require.ErrorContains(t, err, "parse age recipients")
}
