// internal/scheduler/recovery.go
package scheduler

import (
	"context"
	"fmt"
)

// restart closes both channels and reopens them under the backoff policy.
// Meter totals are untouched; only the failure streaks are cleared.
func (s *Scheduler) restart(ctx context.Context, trigger *meter) error {
	s.setState(Restarting)
	s.log.Warn().
		Str("meter", trigger.id).
		Uint32("consecutive", trigger.tracker.Consecutive()).
		Msg("failure streak reached threshold, restarting channels")

	s.closeAll()

	if err := s.reopen(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.cfg.Metrics.Restart("exhausted")
		s.terminate(fmt.Sprintf("meter restart failed after %d attempts: %v", s.cfg.Backoff.MaxAttempts, err))
		return err
	}

	s.mu.Lock()
	for _, m := range s.meters {
		m.tracker.ResetStreak()
	}
	s.mu.Unlock()

	s.cfg.Metrics.Restart("ok")
	s.log.Info().Msg("channels restarted")
	s.setState(Idle)
	return nil
}

// reopen makes up to MaxAttempts attempts to open both channels, waiting
// Backoff.Delay(n) after failed attempt n. Only ctx cancellation cuts
// the wait short.
func (s *Scheduler) reopen(ctx context.Context) error {
	b := s.cfg.Backoff

	var lastErr error
	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		lastErr = s.openAll()
		if lastErr == nil {
			return nil
		}

		s.log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", b.MaxAttempts).
			Msg("channel open failed")

		if attempt < b.MaxAttempts {
			if err := s.clock.Sleep(ctx, b.Delay(attempt)); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w: %v", ErrRestartExhausted, lastErr)
}

// openAll opens every channel or none.
func (s *Scheduler) openAll() error {
	for _, m := range s.meters {
		if m.poller.Attached() {
			continue
		}
		ch, err := m.open()
		if err != nil {
			s.closeAll()
			return fmt.Errorf("meter %s: %w", m.id, err)
		}
		m.poller.Attach(ch)
	}
	return nil
}

func (s *Scheduler) closeAll() {
	for _, m := range s.meters {
		if err := m.poller.Detach(); err != nil {
			s.log.Warn().Err(err).Str("meter", m.id).Msg("channel close failed")
		}
	}
}

// terminate enters the absorbing state and raises a system alert.
func (s *Scheduler) terminate(reason string) {
	s.setState(Terminated)
	s.log.Error().Str("reason", reason).Msg("scheduler terminated")
	if !s.notifier.SendSystemAlert(reason) {
		s.log.Error().Msg("system alert not delivered")
	}
}
