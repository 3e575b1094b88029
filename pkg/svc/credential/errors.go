package credential

import "errors"

// ErrNotProvided is returned when the credential is absent or empty.
var ErrNotProvided = errors.New("credential not provided")

// ErrMalformed is returned when a credential payload cannot be decoded or decrypted.
var ErrMalformed = errors.New("malformed credential")

// ErrNoIdentity is returned when no age identity could be loaded.
var ErrNoIdentity = errors.New("no age identity available")

// ErrKeyNotFound is returned when a SOPS document does not contain the requested key.
var ErrKeyNotFound = errors.New("key not found in decrypted document")

// ErrUnsupportedSource is returned by the factory for unknown sources.
var ErrUnsupportedSource = errors.New("unsupported credential source")
