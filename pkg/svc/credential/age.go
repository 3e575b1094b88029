package credential

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/envvar"
	"github.com/devantler-tech/credboot/pkg/fsutil"
)

// maxAgePlaintext bounds the decrypted credential size.
const maxAgePlaintext = 16 << 20

// AgeSource reads an age-encrypted payload from an environment variable.
//
// The payload is either ASCII-armored ("-----BEGIN AGE ENCRYPTED FILE-----") or
// the base64 encoding of the binary age file. Identities come from IdentityFile,
// or from the IdentityEnv variable when no file is configured.
type AgeSource struct {
	Env          string
	IdentityFile string
	IdentityEnv  string
	Lookup       LookupFunc
}

// NewAgeSource creates an AgeSource reading from the process environment.
func NewAgeSource(spec v1alpha1.CredentialSpec) *AgeSource {
	return &AgeSource{
		Env:          spec.Env,
		IdentityFile: spec.AgeIdentity,
		IdentityEnv:  spec.AgeIdentityEnv,
		Lookup:       os.LookupEnv,
	}
}

// Resolve implements Source.
func (s *AgeSource) Resolve(ctx context.Context) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.Describe(), err)
	}

	payload, ok := envvar.LookupNonEmpty(s.Env, s.Lookup)
	if !ok {
		return nil, fmt.Errorf("%w: %s is unset or empty", ErrNotProvided, s.Env)
	}

	identities, err := s.identities()
	if err != nil {
		return nil, err
	}

	ciphertext, err := ageCiphertext(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Env, err)
	}

	plaintextReader, err := age.Decrypt(ciphertext, identities...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decrypt: %w", ErrMalformed, s.Env, err)
	}

	plaintext, err := io.ReadAll(io.LimitReader(plaintextReader, maxAgePlaintext+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read plaintext: %w", ErrMalformed, s.Env, err)
	}

	if len(plaintext) > maxAgePlaintext {
		return nil, fmt.Errorf("%w: %s: plaintext exceeds %d bytes", ErrMalformed, s.Env, maxAgePlaintext)
	}

	decoded, err := Decode(plaintext, v1alpha1.EncodingRaw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Env, err)
	}

	return decoded, nil
}

// Describe implements Source.
func (s *AgeSource) Describe() string {
	return "age-encrypted environment variable " + s.Env
}

func (s *AgeSource) identities() ([]age.Identity, error) {
	var (
		reader io.Reader
		origin string
	)

	switch {
	case s.IdentityFile != "":
		path, err := fsutil.ExpandHomePath(s.IdentityFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoIdentity, err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration.
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrNoIdentity, path, err)
		}

		reader, origin = bytes.NewReader(data), path
	case s.IdentityEnv != "":
		value, ok := envvar.LookupNonEmpty(s.IdentityEnv, s.Lookup)
		if !ok {
			return nil, fmt.Errorf("%w: %s is unset or empty", ErrNoIdentity, s.IdentityEnv)
		}

		reader, origin = strings.NewReader(value), s.IdentityEnv
	default:
		return nil, ErrNoIdentity
	}

	identities, err := age.ParseIdentities(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrNoIdentity, origin, err)
	}

	return identities, nil
}

func ageCiphertext(payload string) (io.Reader, error) {
	trimmed := strings.TrimSpace(payload)
	if strings.HasPrefix(trimmed, armor.Header) {
		return armor.NewReader(strings.NewReader(trimmed + "\n")), nil
	}

	binary, err := Decode([]byte(trimmed), v1alpha1.EncodingBase64)
	if err != nil {
		return nil, fmt.Errorf("payload is neither armored nor base64: %w", err)
	}

	return bytes.NewReader(binary), nil
}
