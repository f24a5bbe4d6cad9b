// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// MeterCount is the number of meters the monitor drives.
const MeterCount = 2

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted here.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	m := cfg.Monitor

	// ------------------------------------------------------------
	// METERS
	// ------------------------------------------------------------

	if len(m.Meters) != MeterCount {
		return fmt.Errorf("meters: exactly %d required, got %d", MeterCount, len(m.Meters))
	}

	ids := make(map[string]int)
	addrs := make(map[uint8]string)
	devices := make(map[string]string)

	for i, mc := range m.Meters {
		if mc.ID == "" {
			return fmt.Errorf("meters[%d]: id required", i)
		}
		if prev, exists := ids[mc.ID]; exists {
			return fmt.Errorf("meters[%d]: id %q already used by meters[%d]", i, mc.ID, prev)
		}
		ids[mc.ID] = i

		if mc.Address < 1 || mc.Address > 247 {
			return fmt.Errorf("meter %q: address %d out of range 1..247", mc.ID, mc.Address)
		}
		if prev, exists := addrs[mc.Address]; exists {
			return fmt.Errorf(
				"address collision: address=0x%02X used by meters %q and %q",
				mc.Address,
				prev,
				mc.ID,
			)
		}
		addrs[mc.Address] = mc.ID

		s := mc.Serial
		if s.Device == "" {
			return fmt.Errorf("meter %q: serial.device required", mc.ID)
		}
		if prev, exists := devices[s.Device]; exists {
			return fmt.Errorf(
				"device collision: %s used by meters %q and %q",
				s.Device,
				prev,
				mc.ID,
			)
		}
		devices[s.Device] = mc.ID

		if s.BaudRate < 0 || s.DataBits < 0 || s.StopBits < 0 || s.ReadSliceMs < 0 {
			return fmt.Errorf("meter %q: serial settings must not be negative", mc.ID)
		}
		switch s.Parity {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("meter %q: parity %q must be N, E or O", mc.ID, s.Parity)
		}
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	p := m.Poll
	for name, v := range map[string]int{
		"poll.interval_ms":                p.IntervalMs,
		"poll.response_timeout_ms":        p.ResponseTimeoutMs,
		"poll.inter_channel_delay_ms":     p.InterChannelDelayMs,
		"poll.pacing_period_ms":           p.PacingPeriodMs,
		"poll.pacing_floor_ms":            p.PacingFloorMs,
		"recovery.initial_backoff_ms":     m.Recovery.InitialBackoffMs,
		"recovery.max_attempts":           m.Recovery.MaxAttempts,
		"billing.alert_check_interval_ms": m.Billing.AlertCheckIntervalMs,
		"rollover.window_minutes":         m.Rollover.WindowMinutes,
		"rollover.guard_hours":            m.Rollover.GuardHours,
		"diagnostics.interval_ms":         m.Diagnostics.IntervalMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}

	// Compare what Normalize will produce, not only explicit values.
	floor, period := p.PacingFloorMs, p.PacingPeriodMs
	if floor == 0 {
		floor = DefaultPacingFloorMs
	}
	if period == 0 {
		period = DefaultPacingPeriodMs
	}
	if floor > period {
		return fmt.Errorf(
			"poll.pacing_floor_ms (%d) exceeds poll.pacing_period_ms (%d)",
			floor,
			period,
		)
	}

	if mul := m.Recovery.Multiplier; mul != 0 && mul < 1 {
		return fmt.Errorf("recovery.multiplier must be >= 1, got %g", mul)
	}

	if m.Rollover.WindowMinutes >= 60*24 {
		return fmt.Errorf("rollover.window_minutes must be less than a day")
	}

	if _, err := m.Rollover.Location(); err != nil {
		return fmt.Errorf("rollover.timezone: %w", err)
	}

	// ------------------------------------------------------------
	// BILLING
	// ------------------------------------------------------------

	b := m.Billing
	for name, v := range map[string]*float64{
		"billing.energy_rate":                b.EnergyRate,
		"billing.daily_energy_threshold_kwh": b.DailyEnergyThresholdKWh,
		"billing.daily_cost_threshold":       b.DailyCostThreshold,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", name, *v)
		}
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if _, err := zerolog.ParseLevel(m.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch m.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format %q must be json or console", m.Log.Format)
	}

	return nil
}
