package configmanager

import "errors"

// ErrUnexpectedKind is returned when a config file declares another document kind.
var ErrUnexpectedKind = errors.New("unexpected configuration kind")

// ErrInvalidFileMode is returned for file modes that are not octal permission bits.
var ErrInvalidFileMode = errors.New("invalid file mode")
