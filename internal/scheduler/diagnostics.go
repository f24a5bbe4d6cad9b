// internal/scheduler/diagnostics.go
package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/pzem-monitor/internal/metering"
	"github.com/tamzrod/pzem-monitor/internal/status"
	"github.com/tamzrod/pzem-monitor/internal/validate"
)

func (s *Scheduler) maybeDiagnostics(now time.Time) {
	if s.cfg.DiagnosticsInterval <= 0 || now.Sub(s.lastDiag) < s.cfg.DiagnosticsInterval {
		return
	}
	s.lastDiag = now

	s.mu.Lock()
	cycleAvg := s.cycleWindow.Average()
	cycles := s.cycles
	snaps := make([]status.Snapshot, 0, MeterCount)
	for _, m := range s.meters {
		snaps = append(snaps, m.tracker.Snapshot())
	}
	s.mu.Unlock()

	for _, snap := range snaps {
		s.log.Info().EmbedObject(snap).Msg("meter diagnostics")
	}
	s.log.Info().
		Uint64("cycles", cycles).
		Dur("avg_cycle", cycleAvg).
		Msg("cycle diagnostics")
}

// logSample writes one line per poll at debug level.
func (s *Scheduler) logSample(id string, rd metering.EnrichedReading, o status.Outcome, v validate.Outcome, err error, latency time.Duration) {
	var ev *zerolog.Event
	switch o {
	case status.OutcomeSuccess:
		ev = s.log.Debug()
	default:
		ev = s.log.Warn()
	}
	if ev == nil {
		return
	}

	ev = ev.Str("meter", id).
		Stringer("outcome", o).
		Dur("latency", latency)
	if err != nil {
		ev = ev.Err(err)
	}
	if o == status.OutcomeInvalid {
		ev = ev.Stringer("reason", v.Reason)
	}
	ev.Msg(FormatReading(rd, s.cfg.Currency))
}

// shutdown closes the channels and logs a lifetime summary.
func (s *Scheduler) shutdown() {
	s.closeAll()

	uptime := time.Duration(0)
	if !s.started.IsZero() {
		uptime = s.clock.Now().Sub(s.started)
	}

	reports := s.Report()
	s.mu.Lock()
	cycles := s.cycles
	s.mu.Unlock()

	s.log.Info().
		Dur("uptime", uptime).
		Uint64("cycles", cycles).
		Stringer("state", s.State()).
		Msg("scheduler stopped")

	for _, r := range reports {
		ev := s.log.Info().
			EmbedObject(r.Status).
			Float64("lifetime_kwh", r.Energy.LifetimeEnergyKWh).
			Float64("daily_kwh", r.Energy.DailyEnergyKWh).
			Float64("daily_cost", r.DailyCost)
		if r.HasLastValid {
			ev = ev.Str("last_valid", FormatReading(r.LastValid, s.cfg.Currency))
		}
		ev.Msg("meter summary")
	}
}
