package v1alpha1

import "errors"

// ErrInvalidSource is returned when an unknown credential source is specified.
var ErrInvalidSource = errors.New("invalid credential source")

// ErrInvalidEncoding is returned when an unknown payload encoding is specified.
var ErrInvalidEncoding = errors.New("invalid credential encoding")

// ErrInvalidSopsFormat is returned when an unknown SOPS document format is specified.
var ErrInvalidSopsFormat = errors.New("invalid SOPS format")

// ErrInvalidLaunchMode is returned when an unknown launch mode is specified.
var ErrInvalidLaunchMode = errors.New("invalid launch mode")

// ErrEmptyOutput is returned when no credential output path is configured.
var ErrEmptyOutput = errors.New("credential output path cannot be empty")

// ErrMissingSourceFile is returned when a file-backed source has no file configured.
var ErrMissingSourceFile = errors.New("credential source requires a file")

// ErrMissingSourceEnv is returned when an env-backed source has no variable configured.
var ErrMissingSourceEnv = errors.New("credential source requires an environment variable")

// ErrMissingAgeIdentity is returned when the age source has no identity configured.
var ErrMissingAgeIdentity = errors.New("age source requires an identity file or identity variable")

// ErrInvalidPort is returned when the server port is outside 1-65535.
var ErrInvalidPort = errors.New("invalid server port")

// ErrEmptyCommand is returned when no server command is configured.
var ErrEmptyCommand = errors.New("server command cannot be empty")

// ErrInvalidMode is returned when the credential file mode has bits outside 0777.
var ErrInvalidMode = errors.New("invalid credential file mode")
