package credential_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/devantler-tech/credboot/pkg/envvar"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encryptForAge(t *testing.T, recipient age.Recipient, plaintext string, armored bool) string {
	t.Helper()

	var buf bytes.Buffer

	if armored {
		armorWriter := armor.NewWriter(&buf)

		writer, err := age.Encrypt(armorWriter, recipient)
		require.NoError(t, err)

		_, err = writer.Write([]byte(plaintext))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		require.NoError(t, armorWriter.Close())

		return buf.String()
	}

	writer, err := age.Encrypt(&buf, recipient)
	require.NoError(t, err)

	_, err = writer.Write([]byte(plaintext))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newIdentity(t *testing.T) *age.X25519Identity {
	t.Helper()

	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	return identity
}

func TestAgeSource_Resolve(t *testing.T) {
	t.Parallel()

	identity := newIdentity(t)

	tests := []struct {
		name    string
		armored bool
	}{
		{name: "armored payload", armored: true},
		{name: "base64 payload", armored: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			source := &credential.AgeSource{
				Env:         "COOKIES_AGE",
				IdentityEnv: "SOPS_AGE_KEY",
				Lookup: envvar.MapLookup(map[string]string{
					"COOKIES_AGE":  encryptForAge(t, identity.Recipient(), cookieJar, test.armored),
					"SOPS_AGE_KEY": "# created: test\n" + identity.String() + "\n",
				}),
			}

			got, err := source.Resolve(context.Background())

			require.NoError(t, err)
			assert.Equal(t, cookieJar, string(got))
		})
	}
}

func TestAgeSource_IdentityFile(t *testing.T) {
	t.Parallel()

	identity := newIdentity(t)
	keyPath := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(keyPath, []byte(identity.String()+"\n"), 0o600))

	source := &credential.AgeSource{
		Env:          "COOKIES_AGE",
		IdentityFile: keyPath,
		Lookup: envvar.MapLookup(map[string]string{
			"COOKIES_AGE": encryptForAge(t, identity.Recipient(), cookieJar, true),
		}),
	}

	got, err := source.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got))
}

func TestAgeSource_Errors(t *testing.T) {
	t.Parallel()

	identity := newIdentity(t)
	other := newIdentity(t)
	payload := encryptForAge(t, identity.Recipient(), cookieJar, true)

	tests := []struct {
		name    string
		source  *credential.AgeSource
		wantErr error
	}{
		{
			name: "payload unset",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityEnv: "KEY",
				Lookup: envvar.MapLookup(map[string]string{"KEY": identity.String()}),
			},
			wantErr: credential.ErrNotProvided,
		},
		{
			name: "identity unset",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityEnv: "KEY",
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": payload}),
			},
			wantErr: credential.ErrNoIdentity,
		},
		{
			name: "no identity configured",
			source: &credential.AgeSource{
				Env:    "COOKIES_AGE",
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": payload}),
			},
			wantErr: credential.ErrNoIdentity,
		},
		{
			name: "identity file missing",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityFile: filepath.Join(t.TempDir(), "missing.txt"),
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": payload}),
			},
			wantErr: credential.ErrNoIdentity,
		},
		{
			name: "garbage identity",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityEnv: "KEY",
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": payload, "KEY": "not-a-key"}),
			},
			wantErr: credential.ErrNoIdentity,
		},
		{
			name: "wrong identity",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityEnv: "KEY",
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": payload, "KEY": other.String()}),
			},
			wantErr: credential.ErrMalformed,
		},
		{
			name: "payload not age",
			source: &credential.AgeSource{
				Env: "COOKIES_AGE", IdentityEnv: "KEY",
				Lookup: envvar.MapLookup(map[string]string{"COOKIES_AGE": "???", "KEY": identity.String()}),
			},
			wantErr: credential.ErrMalformed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := test.source.Resolve(context.Background())

			require.ErrorIs(t, err, test.wantErr)
		})
	}
}
