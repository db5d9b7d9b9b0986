package clock

import (
	"context"
	"fmt"
	"time"
)

// PollInterval is the delay between two status reads in WaitReady.
var PollInterval = 10 * time.Microsecond

// WaitReady polls c until it reports ready or ctx is done.
func WaitReady(ctx context.Context, c Clock) error {
	if c.Ready() {
		return nil
	}

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
		case <-ticker.C:
			if c.Ready() {
				return nil
			}
		}
	}
}
