package credential

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/getsops/sops/v3/decrypt"
	"sigs.k8s.io/yaml"
)

// DecryptFunc decrypts a SOPS document given its store format.
type DecryptFunc func(data []byte, format string) ([]byte, error)

// SopsSource reads a SOPS-encrypted document.
//
// Without a Key the decrypted plaintext is the credential itself (typically a
// binary-format file wrapping cookies.txt). With a Key, the named top-level value
// of the decrypted yaml, json or dotenv document is decoded using Encoding.
//
// Key material is located by SOPS itself (SOPS_AGE_KEY, SOPS_AGE_KEY_FILE,
// cloud KMS credentials, ...).
type SopsSource struct {
	Path     string
	Format   v1alpha1.SopsFormat
	Key      string
	Encoding v1alpha1.Encoding
	Decrypt  DecryptFunc
}

// NewSopsSource creates a SopsSource using the SOPS decrypt library.
func NewSopsSource(spec v1alpha1.CredentialSpec) *SopsSource {
	return &SopsSource{
		Path:     spec.File,
		Format:   spec.SopsFormat,
		Key:      spec.SopsKey,
		Encoding: spec.Encoding,
		Decrypt:  decrypt.Data,
	}
}

// Resolve implements Source.
func (s *SopsSource) Resolve(ctx context.Context) ([]byte, error) {
	data, err := readOptionalFile(ctx, s.Path)
	if err != nil {
		return nil, err
	}

	decryptFn := s.Decrypt
	if decryptFn == nil {
		decryptFn = decrypt.Data
	}

	format := s.Format
	if format == "" {
		format = v1alpha1.SopsFormatBinary
	}

	plaintext, err := decryptFn(data, string(format))
	if err != nil {
		return nil, fmt.Errorf("%w: decrypt %s: %w", ErrMalformed, s.Path, err)
	}

	if s.Key == "" {
		decoded, decodeErr := Decode(plaintext, v1alpha1.EncodingRaw)
		if decodeErr != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, decodeErr)
		}

		return decoded, nil
	}

	value, err := extractKey(plaintext, format, s.Key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	decoded, err := Decode([]byte(value), s.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s[%s]: %w", s.Path, s.Key, err)
	}

	return decoded, nil
}

// Describe implements Source.
func (s *SopsSource) Describe() string {
	if s.Key != "" {
		return fmt.Sprintf("SOPS document %s (key %s)", s.Path, s.Key)
	}

	return "SOPS document " + s.Path
}

func extractKey(plaintext []byte, format v1alpha1.SopsFormat, key string) (string, error) {
	switch format {
	case v1alpha1.SopsFormatYAML, v1alpha1.SopsFormatJSON:
		return extractStructuredKey(plaintext, key)
	case v1alpha1.SopsFormatDotenv:
		return extractDotenvKey(plaintext, key)
	case v1alpha1.SopsFormatBinary:
		return "", fmt.Errorf("%w: %s documents have no keys", v1alpha1.ErrInvalidSopsFormat, format)
	default:
		return "", fmt.Errorf("%w: %q", v1alpha1.ErrInvalidSopsFormat, format)
	}
}

func extractStructuredKey(plaintext []byte, key string) (string, error) {
	var document map[string]any

	err := yaml.Unmarshal(plaintext, &document)
	if err != nil {
		return "", fmt.Errorf("%w: parse decrypted document: %w", ErrMalformed, err)
	}

	raw, ok := document[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: value of %s is %T, not a string", ErrMalformed, key, raw)
	}

	return value, nil
}

func extractDotenvKey(plaintext []byte, key string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(plaintext))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(plaintext)+1, bufio.MaxScanTokenSize))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(name) == key {
			return value, nil
		}
	}

	err := scanner.Err()
	if err != nil {
		return "", fmt.Errorf("%w: scan dotenv document: %w", ErrMalformed, err)
	}

	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}
