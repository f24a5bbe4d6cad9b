// internal/scheduler/rollover.go
package scheduler

import (
	"time"

	"github.com/tamzrod/pzem-monitor/internal/notify"
)

// checkRollover closes the day once per rollover window: it reports both
// meters' daily totals, zeroes them and re-arms threshold alerts.
// The guard interval keeps repeated ticks inside the window from
// resetting twice.
func (s *Scheduler) checkRollover(now time.Time) {
	local := now.In(s.cfg.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.cfg.Location)
	if local.Sub(midnight) >= s.cfg.RolloverWindow {
		return
	}
	if !s.lastRollover.IsZero() && now.Sub(s.lastRollover) <= s.cfg.RolloverGuard {
		return
	}

	s.mu.Lock()
	a, b := s.dailyData(0), s.dailyData(1)
	for _, m := range s.meters {
		m.engine.ResetDaily()
	}
	s.lastRollover = now
	s.mu.Unlock()

	s.gate.Reset()
	s.cfg.Metrics.Rollover()

	s.log.Info().
		Float64("energy_kwh_a", a.EnergyKWh).
		Float64("energy_kwh_b", b.EnergyKWh).
		Msg("daily rollover")

	if !s.notifier.SendDailyReport(a, b) {
		s.log.Warn().Msg("daily report not delivered")
	}
}

func (s *Scheduler) dailyData(i int) notify.DailyData {
	m := s.meters[i]
	return notify.DailyData{
		MeterID:   m.id,
		EnergyKWh: m.state.DailyEnergyKWh,
		Cost:      m.engine.DailyCost(),
	}
}
