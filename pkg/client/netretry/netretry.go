// Package netretry classifies transient network errors and computes backoff
// delays for polling loops such as the server readiness probe.
package netretry

import (
	"context"
	"errors"
	"io"
	"net"
	"regexp"
	"strings"
	"syscall"
	"time"
)

// httpStatusCodePattern matches 5xx gateway codes at word boundaries so a
// port such as ":5000" does not count.
var httpStatusCodePattern = regexp.MustCompile(`\b50[0-4]\b`)

// transientErrnos are the socket errors a starting server produces.
//
//nolint:gochecknoglobals // read-only lookup table
var transientErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.ETIMEDOUT,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
}

// transientMessages cover errors that only surface as text, e.g. after
// crossing a process boundary.
//
//nolint:gochecknoglobals // read-only lookup table
var transientMessages = []string{
	"Internal Server Error", "Bad Gateway",
	"Service Unavailable", "Gateway Timeout",
	"connection reset by peer", "connection refused",
	"i/o timeout", "TLS handshake timeout",
	"unexpected EOF", "no such host",
}

// IsRetryable reports whether err is a transient network failure worth
// another attempt. Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && (dnsErr.IsNotFound || dnsErr.IsTemporary) {
		return true
	}

	message := err.Error()
	for _, pattern := range transientMessages {
		if strings.Contains(message, pattern) {
			return true
		}
	}

	return httpStatusCodePattern.MatchString(message)
}

// ExponentialDelay returns min(baseWait * 2^(attempt-1), maxWait).
// Attempts below 1 are treated as the first attempt.
func ExponentialDelay(
	attempt int,
	baseWait, maxWait time.Duration,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	// Shifting past 30 would overflow long before any sane maxWait.
	shift := min(attempt-1, 30)

	delay := baseWait * time.Duration(1<<shift)
	if delay <= 0 || delay > maxWait {
		return maxWait
	}

	return delay
}
