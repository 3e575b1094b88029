package readiness

import "errors"

// ErrTimeoutExceeded is returned when the server is not ready within the deadline.
var ErrTimeoutExceeded = errors.New("timeout exceeded")

// ErrEmptyAddress is returned when no address is given to probe.
var ErrEmptyAddress = errors.New("address cannot be empty")
