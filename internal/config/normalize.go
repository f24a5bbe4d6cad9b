// internal/config/normalize.go
package config

// Defaults for a PZEM-004T pair on 9600 8N1 links.
const (
	DefaultBaudRate    = 9600
	DefaultDataBits    = 8
	DefaultStopBits    = 1
	DefaultParity      = "N"
	DefaultReadSliceMs = 20

	DefaultIntervalMs          = 1000
	DefaultResponseTimeoutMs   = 500
	DefaultInterChannelDelayMs = 200
	DefaultPacingPeriodMs      = 200
	DefaultPacingFloorMs       = 50

	DefaultRestartThreshold = 10
	DefaultMaxAttempts      = 3
	DefaultInitialBackoffMs = 2000
	DefaultMultiplier       = 2.0

	DefaultEnergyRate              = 1.824
	DefaultCurrency                = "GHS"
	DefaultDailyEnergyThresholdKWh = 10.0
	DefaultDailyCostThreshold      = 20.0
	DefaultAlertCheckIntervalMs    = 300_000

	DefaultRolloverWindowMinutes = 5
	DefaultRolloverGuardHours    = 6

	DefaultDiagnosticsIntervalMs = 30_000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	m := &cfg.Monitor

	for i := range m.Meters {
		s := &m.Meters[i].Serial
		setInt(&s.BaudRate, DefaultBaudRate)
		setInt(&s.DataBits, DefaultDataBits)
		setInt(&s.StopBits, DefaultStopBits)
		setInt(&s.ReadSliceMs, DefaultReadSliceMs)
		if s.Parity == "" {
			s.Parity = DefaultParity
		}
	}

	setInt(&m.Poll.IntervalMs, DefaultIntervalMs)
	setInt(&m.Poll.ResponseTimeoutMs, DefaultResponseTimeoutMs)
	setInt(&m.Poll.InterChannelDelayMs, DefaultInterChannelDelayMs)
	setInt(&m.Poll.PacingPeriodMs, DefaultPacingPeriodMs)
	setInt(&m.Poll.PacingFloorMs, DefaultPacingFloorMs)

	if m.Recovery.RestartThreshold == 0 {
		m.Recovery.RestartThreshold = DefaultRestartThreshold
	}
	setInt(&m.Recovery.MaxAttempts, DefaultMaxAttempts)
	setInt(&m.Recovery.InitialBackoffMs, DefaultInitialBackoffMs)
	if m.Recovery.Multiplier == 0 {
		m.Recovery.Multiplier = DefaultMultiplier
	}

	setFloat(&m.Billing.EnergyRate, DefaultEnergyRate)
	setFloat(&m.Billing.DailyEnergyThresholdKWh, DefaultDailyEnergyThresholdKWh)
	setFloat(&m.Billing.DailyCostThreshold, DefaultDailyCostThreshold)
	if m.Billing.Currency == "" {
		m.Billing.Currency = DefaultCurrency
	}
	setInt(&m.Billing.AlertCheckIntervalMs, DefaultAlertCheckIntervalMs)

	setInt(&m.Rollover.WindowMinutes, DefaultRolloverWindowMinutes)
	setInt(&m.Rollover.GuardHours, DefaultRolloverGuardHours)

	setInt(&m.Diagnostics.IntervalMs, DefaultDiagnosticsIntervalMs)

	if m.Log.Level == "" {
		m.Log.Level = DefaultLogLevel
	}
	if m.Log.Format == "" {
		m.Log.Format = DefaultLogFormat
	}
}

// Default returns a normalized config for the stock two-meter wiring.
func Default() *Config {
	cfg := &Config{
		Monitor: MonitorConfig{
			Meters: []MeterConfig{
				{ID: "A", Address: 0x01, Serial: SerialConfig{Device: "/dev/ttyAMA0"}},
				{ID: "B", Address: 0x02, Serial: SerialConfig{Device: "/dev/ttyAMA1"}},
			},
		},
	}
	Normalize(cfg)
	return cfg
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v **float64, def float64) {
	if *v == nil {
		d := def
		*v = &d
	}
}
