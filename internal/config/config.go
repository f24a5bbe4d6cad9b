// internal/config/config.go
package config

import "time"

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

type MonitorConfig struct {
	Meters      []MeterConfig     `yaml:"meters"`
	Poll        PollConfig        `yaml:"poll"`
	Recovery    RecoveryConfig    `yaml:"recovery"`
	Billing     BillingConfig     `yaml:"billing"`
	Rollover    RolloverConfig    `yaml:"rollover"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`
}

// ---- METER ----

type MeterConfig struct {
	ID      string       `yaml:"id"`
	Address uint8        `yaml:"address"`
	Serial  SerialConfig `yaml:"serial"`
}

type SerialConfig struct {
	Device      string `yaml:"device"`
	BaudRate    int    `yaml:"baud_rate"`
	DataBits    int    `yaml:"data_bits"`
	StopBits    int    `yaml:"stop_bits"`
	Parity      string `yaml:"parity"` // N, E or O
	ReadSliceMs int    `yaml:"read_slice_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs          int `yaml:"interval_ms"`
	ResponseTimeoutMs   int `yaml:"response_timeout_ms"`
	InterChannelDelayMs int `yaml:"inter_channel_delay_ms"`
	PacingPeriodMs      int `yaml:"pacing_period_ms"`
	PacingFloorMs       int `yaml:"pacing_floor_ms"`
}

// ---- RECOVERY ----

type RecoveryConfig struct {
	RestartThreshold uint32  `yaml:"restart_threshold"`
	MaxAttempts      int     `yaml:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier"`
}

// ---- BILLING ----

// Pointer fields distinguish "unset" from an explicit zero.
type BillingConfig struct {
	EnergyRate              *float64 `yaml:"energy_rate"`
	Currency                string   `yaml:"currency"`
	DailyEnergyThresholdKWh *float64 `yaml:"daily_energy_threshold_kwh"`
	DailyCostThreshold      *float64 `yaml:"daily_cost_threshold"`
	AlertCheckIntervalMs    int      `yaml:"alert_check_interval_ms"`
}

// ---- ROLLOVER ----

type RolloverConfig struct {
	Timezone      string `yaml:"timezone"` // IANA name, "" or "Local"
	WindowMinutes int    `yaml:"window_minutes"`
	GuardHours    int    `yaml:"guard_hours"`
}

// ---- DIAGNOSTICS ----

type DiagnosticsConfig struct {
	IntervalMs    int    `yaml:"interval_ms"`
	MetricsListen string `yaml:"metrics_listen"` // empty disables /metrics
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (p PollConfig) Interval() time.Duration          { return ms(p.IntervalMs) }
func (p PollConfig) ResponseTimeout() time.Duration   { return ms(p.ResponseTimeoutMs) }
func (p PollConfig) InterChannelDelay() time.Duration { return ms(p.InterChannelDelayMs) }
func (p PollConfig) PacingPeriod() time.Duration      { return ms(p.PacingPeriodMs) }
func (p PollConfig) PacingFloor() time.Duration       { return ms(p.PacingFloorMs) }

func (r RecoveryConfig) InitialBackoff() time.Duration { return ms(r.InitialBackoffMs) }

func (b BillingConfig) AlertCheckInterval() time.Duration { return ms(b.AlertCheckIntervalMs) }

func (s SerialConfig) ReadSlice() time.Duration { return ms(s.ReadSliceMs) }

func (d DiagnosticsConfig) Interval() time.Duration { return ms(d.IntervalMs) }

func (r RolloverConfig) Window() time.Duration { return time.Duration(r.WindowMinutes) * time.Minute }
func (r RolloverConfig) Guard() time.Duration  { return time.Duration(r.GuardHours) * time.Hour }

// Location resolves Timezone. Empty and "Local" mean the host zone.
func (r RolloverConfig) Location() (*time.Location, error) {
	if r.Timezone == "" || r.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(r.Timezone)
}
