// cmd/pzem-monitor/common.go
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/tamzrod/pzem-monitor/internal/config"
	"github.com/tamzrod/pzem-monitor/internal/poller"
	"github.com/tamzrod/pzem-monitor/internal/scheduler"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "YAML config file",
	Value:   "/etc/pzem-monitor/monitor.yaml",
	EnvVars: []string{"PZEM_MONITOR_CONFIG"},
}

// loadConfig reads, validates and normalizes path, in that order.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

// newLogger builds the root logger from the log section.
// Validate has already rejected unknown levels and formats.
func newLogger(lc config.LogConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if lc.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// buildMeters returns detached pollers and their factories in config order.
func buildMeters(cfg *config.Config) ([]scheduler.Meter, error) {
	meters := make([]scheduler.Meter, 0, len(cfg.Monitor.Meters))
	for _, m := range cfg.Monitor.Meters {
		p, open, err := poller.Build(m, cfg.Monitor.Poll)
		if err != nil {
			return nil, fmt.Errorf("poller build failed (meter=%s): %w", m.ID, err)
		}
		meters = append(meters, scheduler.Meter{Poller: p, Open: open})
	}
	return meters, nil
}

// schedulerConfig maps the file config onto the scheduler's runtime config.
func schedulerConfig(cfg *config.Config) (scheduler.Config, error) {
	m := cfg.Monitor

	loc, err := m.Rollover.Location()
	if err != nil {
		return scheduler.Config{}, fmt.Errorf("rollover timezone: %w", err)
	}

	sc := scheduler.DefaultConfig()
	sc.PollInterval = m.Poll.Interval()
	sc.InterChannelDelay = m.Poll.InterChannelDelay()
	sc.PacingPeriod = m.Poll.PacingPeriod()
	sc.PacingFloor = m.Poll.PacingFloor()

	sc.RestartThreshold = m.Recovery.RestartThreshold
	sc.Backoff = scheduler.BackoffPolicy{
		MaxAttempts:  m.Recovery.MaxAttempts,
		InitialDelay: m.Recovery.InitialBackoff(),
		Multiplier:   m.Recovery.Multiplier,
	}

	sc.EnergyRate = deref(m.Billing.EnergyRate)
	sc.Currency = m.Billing.Currency
	sc.DailyEnergyThreshold = deref(m.Billing.DailyEnergyThresholdKWh)
	sc.DailyCostThreshold = deref(m.Billing.DailyCostThreshold)
	sc.AlertRetry = m.Billing.AlertCheckInterval()

	sc.RolloverWindow = m.Rollover.Window()
	sc.RolloverGuard = m.Rollover.Guard()
	sc.Location = loc

	sc.DiagnosticsInterval = m.Diagnostics.Interval()
	return sc, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
