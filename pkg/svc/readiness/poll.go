package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devantler-tech/credboot/pkg/client/netretry"
)

// minPollDelay is the first backoff step.
const minPollDelay = 100 * time.Millisecond

// CheckFunc reports whether the target is ready. A non-nil error stops polling.
type CheckFunc func(ctx context.Context) (bool, error)

// PollForReadiness calls check until it reports ready, returns an error, or the
// deadline passes. Delays between attempts grow exponentially up to interval.
// A zero deadline waits until ctx is done.
func PollForReadiness(
	ctx context.Context,
	deadline time.Duration,
	interval time.Duration,
	check CheckFunc,
) error {
	if deadline > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	baseDelay := min(minPollDelay, interval)
	if baseDelay <= 0 {
		baseDelay = minPollDelay
	}

	maxDelay := max(interval, baseDelay)

	for attempt := 1; ; attempt++ {
		ready, err := check(ctx)
		if err != nil {
			return err
		}

		if ready {
			return nil
		}

		timer := time.NewTimer(netretry.ExponentialDelay(attempt, baseDelay, maxDelay))

		select {
		case <-ctx.Done():
			timer.Stop()

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %d attempt(s)", ErrTimeoutExceeded, attempt)
			}

			return fmt.Errorf("readiness polling: %w", ctx.Err())
		case <-timer.C:
		}
	}
}
