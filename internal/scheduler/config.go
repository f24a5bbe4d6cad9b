// internal/scheduler/config.go
package scheduler

import (
	"time"

	"github.com/tamzrod/pzem-monitor/internal/channel"
	"github.com/tamzrod/pzem-monitor/internal/metering"
	"github.com/tamzrod/pzem-monitor/internal/metrics"
	"github.com/tamzrod/pzem-monitor/internal/poller"
	"github.com/tamzrod/pzem-monitor/internal/status"
	"github.com/tamzrod/pzem-monitor/internal/validate"
)

// Config is the runtime config of the scheduler.
type Config struct {
	PollInterval      time.Duration
	InterChannelDelay time.Duration
	PacingPeriod      time.Duration
	PacingFloor       time.Duration

	RestartThreshold uint32
	Backoff          BackoffPolicy

	EnergyRate           float64
	Currency             string
	DailyEnergyThreshold float64 // kWh, <= 0 disables
	DailyCostThreshold   float64 // currency, <= 0 disables
	AlertRetry           time.Duration

	RolloverWindow time.Duration
	RolloverGuard  time.Duration
	Location       *time.Location

	DiagnosticsInterval time.Duration

	Limits validate.Limits

	// Optional hooks.
	Metrics       *metrics.Metrics
	OnStateChange func(from, to State)
	OnSample      func(Sample)
	Heartbeat     func()
}

// DefaultConfig matches the stock two-meter deployment.
func DefaultConfig() Config {
	return Config{
		PollInterval:         time.Second,
		InterChannelDelay:    200 * time.Millisecond,
		PacingPeriod:         200 * time.Millisecond,
		PacingFloor:          50 * time.Millisecond,
		RestartThreshold:     10,
		Backoff:              DefaultBackoff(),
		EnergyRate:           1.824,
		Currency:             "GHS",
		DailyEnergyThreshold: 10,
		DailyCostThreshold:   20,
		AlertRetry:           5 * time.Minute,
		RolloverWindow:       5 * time.Minute,
		RolloverGuard:        6 * time.Hour,
		Location:             time.Local,
		DiagnosticsInterval:  30 * time.Second,
		Limits:               validate.DefaultLimits,
	}
}

// Meter binds a poller to the factory that opens its channel.
type Meter struct {
	Poller *poller.Poller
	Open   channel.Factory
}

// Sample is the result of polling one meter once. Invalid readings are
// delivered alongside their verdict, never dropped.
type Sample struct {
	MeterID    string
	Reading    metering.EnrichedReading
	Outcome    status.Outcome
	Validation validate.Outcome
	Err        error
	Latency    time.Duration
}

// MeterReport is a copy of everything the scheduler knows about one meter.
type MeterReport struct {
	Status    status.Snapshot
	Energy    metering.MeterState
	DailyCost float64

	LastValid    metering.EnrichedReading
	HasLastValid bool
}
