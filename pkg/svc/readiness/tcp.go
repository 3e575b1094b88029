package readiness

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/devantler-tech/credboot/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/credboot/pkg/client/netretry"
)

// Prober waits until an address is reachable.
//
//go:generate mockery
type Prober interface {
	Wait(ctx context.Context, address string) error
}

// TCPProber probes an address by opening TCP connections.
type TCPProber struct {
	// Timeout bounds the whole wait. Zero waits until the context is done.
	Timeout time.Duration
	// Interval caps the delay between attempts.
	Interval time.Duration
}

// NewTCPProber creates a TCPProber.
func NewTCPProber(timeout, interval time.Duration) *TCPProber {
	return &TCPProber{Timeout: timeout, Interval: interval}
}

// Wait implements Prober.
func (p *TCPProber) Wait(ctx context.Context, address string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	return WaitForTCP(ctx, address, p.Interval)
}

// WaitForTCP blocks until address accepts a TCP connection or ctx is done.
// Transient dial errors such as "connection refused" are retried; anything
// else, like an unparsable address, fails immediately.
func WaitForTCP(ctx context.Context, address string, interval time.Duration) error {
	if address == "" {
		return ErrEmptyAddress
	}

	dialer := &net.Dialer{}

	err := PollForReadiness(ctx, 0, interval, func(ctx context.Context) (bool, error) {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			if netretry.IsRetryable(err) || ctx.Err() != nil {
				return false, nil
			}

			return false, fmt.Errorf("dial %s: %w", address, err)
		}

		_ = conn.Close()

		return true, nil
	})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", address, err)
	}

	return nil
}

// Factory creates probers from configuration.
//
//go:generate mockery
type Factory interface {
	Create(spec v1alpha1.ReadinessSpec) Prober
}

// DefaultFactory creates TCPProbers.
type DefaultFactory struct{}

// Create implements Factory.
func (DefaultFactory) Create(spec v1alpha1.ReadinessSpec) Prober {
	return NewTCPProber(spec.Timeout, spec.Interval)
}
