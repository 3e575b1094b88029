package provisioner_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/credboot/pkg/envvar"
	"github.com/devantler-tech/credboot/pkg/svc/credential"
	"github.com/devantler-tech/credboot/pkg/svc/provisioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	envName   = "YOUTUBE_COOKIES_BASE64"
	cookieJar = "# Netscape HTTP Cookie File\n" +
		".youtube.com\tTRUE\t/\tTRUE\t1893456000\tSAPISID\tabc\n"
)

var errPermission = errors.New("permission denied")

type failingSource struct{ err error }

func (s failingSource) Resolve(context.Context) ([]byte, error) { return nil, s.err }
func (s failingSource) Describe() string                        { return "failing source" }

func envSource(values map[string]string) *credential.EnvSource {
	return &credential.EnvSource{Name: envName, Lookup: envvar.MapLookup(values)}
}

func newProvisioner(
	t *testing.T,
	source credential.Source,
	strict bool,
) (*provisioner.Provisioner, string, *bytes.Buffer) {
	t.Helper()

	output := filepath.Join(t.TempDir(), "app", "cookies.txt")
	out := &bytes.Buffer{}

	prov := provisioner.New(source, provisioner.Options{
		Output:  output,
		Mode:    0o600,
		Strict:  strict,
		Inspect: true,
		Writer:  out,
		Now: func() time.Time {
			return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		},
	})

	return prov, output, out
}

func TestProvision_WritesDecodedBytes(t *testing.T) {
	t.Parallel()

	source := envSource(map[string]string{envName: base64.StdEncoding.EncodeToString([]byte(cookieJar))})
	prov, output, out := newProvisioner(t, source, true)

	result, err := prov.Provision(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, output, result.Path)
	assert.Equal(t, len(cookieJar), result.Bytes)
	require.NotNil(t, result.Report)
	assert.Equal(t, []string{"SAPISID"}, result.Report.AuthCookies)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got))

	assert.Contains(t, out.String(), fmt.Sprintf("ℹ created %s (%d bytes) from environment variable %s", output, len(cookieJar), envName))
	assert.NotContains(t, out.String(), "⚠")
}

func TestProvision_MissingOrEmptyWarnsWithoutCreatingFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "unset", values: nil},
		{name: "empty string", values: map[string]string{envName: ""}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			prov, output, out := newProvisioner(t, envSource(test.values), true)

			result, err := prov.Provision(context.Background())
			require.NoError(t, err)

			assert.False(t, result.Created)
			require.ErrorIs(t, result.Skipped, credential.ErrNotProvided)
			assert.NoFileExists(t, output)
			assert.Contains(t, out.String(), "⚠ environment variable "+envName+" is not set")
			assert.Contains(t, out.String(), "downloads that need cookies may fail")
		})
	}
}

func TestProvision_IsIdempotent(t *testing.T) {
	t.Parallel()

	source := envSource(map[string]string{envName: base64.StdEncoding.EncodeToString([]byte(cookieJar))})
	prov, output, _ := newProvisioner(t, source, true)

	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o750))
	require.NoError(t, os.WriteFile(output, []byte("stale content from a previous start\n"), 0o600))

	for range 2 {
		_, err := prov.Provision(context.Background())
		require.NoError(t, err)
	}

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got))
}

func TestProvision_MalformedIsFatalInStrictMode(t *testing.T) {
	t.Parallel()

	prov, output, _ := newProvisioner(t, envSource(map[string]string{envName: "bm90 IGJhc2U2*"}), true)

	result, err := prov.Provision(context.Background())

	require.ErrorIs(t, err, provisioner.ErrProvisionFailed)
	require.ErrorIs(t, err, credential.ErrMalformed)
	assert.False(t, result.Created)
	assert.NoFileExists(t, output)
}

func TestProvision_MalformedKeepsPreviousFile(t *testing.T) {
	t.Parallel()

	prov, output, _ := newProvisioner(t, envSource(map[string]string{envName: "%%%"}), true)

	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o750))
	require.NoError(t, os.WriteFile(output, []byte(cookieJar), 0o600))

	_, err := prov.Provision(context.Background())
	require.Error(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got), "a failed decode must not truncate the existing file")
}

func TestProvision_MalformedIsSkippedInLenientMode(t *testing.T) {
	t.Parallel()

	prov, output, out := newProvisioner(t, envSource(map[string]string{envName: "%%%"}), false)

	result, err := prov.Provision(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Created)
	require.ErrorIs(t, result.Skipped, credential.ErrMalformed)
	assert.NoFileExists(t, output)
	assert.Contains(t, out.String(), "⚠ ignoring unusable credential")
}

func TestProvision_OtherSourceErrorsAreFatal(t *testing.T) {
	t.Parallel()

	prov, _, _ := newProvisioner(t, failingSource{err: errPermission}, false)

	_, err := prov.Provision(context.Background())

	require.ErrorIs(t, err, provisioner.ErrProvisionFailed)
	require.ErrorIs(t, err, errPermission)
}

func TestProvision_WritesThroughSymlink(t *testing.T) {
	t.Parallel()

	source := envSource(map[string]string{envName: base64.StdEncoding.EncodeToString([]byte(cookieJar))})
	prov, output, _ := newProvisioner(t, source, true)

	volume := filepath.Join(t.TempDir(), "volume-cookies.txt")
	require.NoError(t, os.WriteFile(volume, []byte("stale\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o750))
	require.NoError(t, os.Symlink(volume, output))

	result, err := prov.Provision(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Created)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got))

	got, err = os.ReadFile(volume)
	require.NoError(t, err)
	assert.Equal(t, cookieJar, string(got))
}

func TestProvision_WriteFailureIsFatal(t *testing.T) {
	t.Parallel()

	source := envSource(map[string]string{envName: base64.StdEncoding.EncodeToString([]byte(cookieJar))})
	out := &bytes.Buffer{}

	// The output path is an existing directory, which cannot be replaced by a file.
	prov := provisioner.New(source, provisioner.Options{Output: t.TempDir(), Writer: out})

	_, err := prov.Provision(context.Background())

	require.ErrorIs(t, err, provisioner.ErrProvisionFailed)
}

func TestProvision_InspectionWarnings(t *testing.T) {
	t.Parallel()

	notCookies := "just some text\n"
	source := envSource(map[string]string{envName: base64.StdEncoding.EncodeToString([]byte(notCookies))})
	prov, output, out := newProvisioner(t, source, true)

	result, err := prov.Provision(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Created, "inspection findings never block provisioning")
	assert.Contains(t, out.String(), "⚠ "+output+": cookie file contains no cookies")
}
