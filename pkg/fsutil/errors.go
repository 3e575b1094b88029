package fsutil

import "errors"

// ErrEmptyOutputPath is returned when a write is requested without a destination.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// ErrNotRegularFile is returned when the write target exists but is not a regular file.
var ErrNotRegularFile = errors.New("target exists and is not a regular file")
