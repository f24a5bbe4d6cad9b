// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run polls each poller in turn, back to back, and hands every result to fn.
// gap separates consecutive exchanges. Returns when ctx is done.
// No overlap. No retries.
func Run(ctx context.Context, pollers []*Poller, gap time.Duration, fn func(PollResult)) {
	timer := time.NewTimer(gap)
	defer timer.Stop()

	for {
		for _, p := range pollers {
			if ctx.Err() != nil {
				return
			}
			fn(p.PollOnce())

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(gap)

			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}
}
