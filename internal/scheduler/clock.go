// internal/scheduler/clock.go
package scheduler

import (
	"context"
	"math"
	"time"
)

// Clock supplies time and bounded waits.
type Clock interface {
	Now() time.Time

	// Sleep waits for d or until ctx is done, returning ctx.Err() in
	// the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// RealClock is the wall clock.
func RealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// BackoffPolicy bounds channel reinitialization.
type BackoffPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultBackoff is three attempts, waiting 2s then 4s between them.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{MaxAttempts: 3, InitialDelay: 2 * time.Second, Multiplier: 2}
}

// Delay is the wait after failed attempt n (1-based) before the next one.
func (b BackoffPolicy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	mul := b.Multiplier
	if mul < 1 {
		mul = 1
	}
	d := float64(b.InitialDelay) * math.Pow(mul, float64(n-1))
	if d > float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}
