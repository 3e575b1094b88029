package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Source Types ---

// Source selects where the credential blob is read from.
type Source string

const (
	// SourceEnv reads a base64 blob from an environment variable.
	SourceEnv Source = "env"
	// SourceFile reads a mounted secret file.
	SourceFile Source = "file"
	// SourceSops reads a SOPS-encrypted document.
	SourceSops Source = "sops"
	// SourceAge reads an age-encrypted payload from an environment variable.
	SourceAge Source = "age"
)

// ValidSources returns supported credential sources.
func ValidSources() []Source {
	return []Source{SourceEnv, SourceFile, SourceSops, SourceAge}
}

// Set parses and validates a source value (pflag.Value).
func (s *Source) Set(value string) error {
	parsed, err := parseEnum(value, ValidSources(), ErrInvalidSource)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// IsValid reports whether the source is supported.
func (s *Source) IsValid() bool { return slices.Contains(ValidSources(), *s) }

// String returns the string representation of the Source.
func (s *Source) String() string { return string(*s) }

// Type returns the flag type name.
func (s *Source) Type() string { return "Source" }

// --- Encoding Types ---

// Encoding describes how a credential payload is represented before decoding.
type Encoding string

const (
	// EncodingBase64 is standard base64 text; whitespace is ignored.
	EncodingBase64 Encoding = "base64"
	// EncodingRaw is the credential itself.
	EncodingRaw Encoding = "raw"
)

// ValidEncodings returns supported payload encodings.
func ValidEncodings() []Encoding {
	return []Encoding{EncodingBase64, EncodingRaw}
}

// Set parses and validates an encoding value (pflag.Value).
func (e *Encoding) Set(value string) error {
	parsed, err := parseEnum(value, ValidEncodings(), ErrInvalidEncoding)
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}

// IsValid reports whether the encoding is supported.
func (e *Encoding) IsValid() bool { return slices.Contains(ValidEncodings(), *e) }

// String returns the string representation of the Encoding.
func (e *Encoding) String() string { return string(*e) }

// Type returns the flag type name.
func (e *Encoding) Type() string { return "Encoding" }

// --- SOPS Formats ---

// SopsFormat is the store format of a SOPS-encrypted document.
type SopsFormat string

const (
	// SopsFormatBinary is a SOPS-wrapped opaque file.
	SopsFormatBinary SopsFormat = "binary"
	// SopsFormatYAML is a SOPS-encrypted YAML document.
	SopsFormatYAML SopsFormat = "yaml"
	// SopsFormatJSON is a SOPS-encrypted JSON document.
	SopsFormatJSON SopsFormat = "json"
	// SopsFormatDotenv is a SOPS-encrypted dotenv file.
	SopsFormatDotenv SopsFormat = "dotenv"
)

// ValidSopsFormats returns supported SOPS formats.
func ValidSopsFormats() []SopsFormat {
	return []SopsFormat{SopsFormatBinary, SopsFormatYAML, SopsFormatJSON, SopsFormatDotenv}
}

// Set parses and validates a SOPS format value (pflag.Value).
func (f *SopsFormat) Set(value string) error {
	parsed, err := parseEnum(value, ValidSopsFormats(), ErrInvalidSopsFormat)
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

// IsValid reports whether the format is supported.
func (f *SopsFormat) IsValid() bool { return slices.Contains(ValidSopsFormats(), *f) }

// String returns the string representation of the SopsFormat.
func (f *SopsFormat) String() string { return string(*f) }

// Type returns the flag type name.
func (f *SopsFormat) Type() string { return "SopsFormat" }

// --- Launch Modes ---

// LaunchMode selects how control is transferred to the server.
type LaunchMode string

const (
	// LaunchExec replaces the current process with the server.
	LaunchExec LaunchMode = "exec"
	// LaunchSpawn runs the server as a child, forwarding signals and the exit code.
	LaunchSpawn LaunchMode = "spawn"
)

// ValidLaunchModes returns supported launch modes.
func ValidLaunchModes() []LaunchMode {
	return []LaunchMode{LaunchExec, LaunchSpawn}
}

// Set parses and validates a launch mode value (pflag.Value).
func (m *LaunchMode) Set(value string) error {
	parsed, err := parseEnum(value, ValidLaunchModes(), ErrInvalidLaunchMode)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// IsValid reports whether the launch mode is supported.
func (m *LaunchMode) IsValid() bool { return slices.Contains(ValidLaunchModes(), *m) }

// String returns the string representation of the LaunchMode.
func (m *LaunchMode) String() string { return string(*m) }

// Type returns the flag type name.
func (m *LaunchMode) Type() string { return "LaunchMode" }

func parseEnum[T ~string](value string, valid []T, sentinel error) (T, error) {
	for _, candidate := range valid {
		if strings.EqualFold(value, string(candidate)) {
			return candidate, nil
		}
	}

	names := make([]string, 0, len(valid))
	for _, candidate := range valid {
		names = append(names, string(candidate))
	}

	var zero T

	return zero, fmt.Errorf("%w: %s (valid options: %s)", sentinel, value, strings.Join(names, ", "))
}
