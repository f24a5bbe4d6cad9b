// internal/metering/state.go
package metering

import (
	"time"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

// MeterState holds the energy totals for one meter.
// It is owned by the scheduler and mutated only through an Engine.
type MeterState struct {
	Address uint8

	LifetimeEnergyKWh float64
	DailyEnergyKWh    float64

	// LastSample is zero until the first reading arrives.
	LastSample time.Time
}

// EnrichedReading is a decoded sample plus the meter's running totals.
type EnrichedReading struct {
	codec.Reading

	LifetimeEnergyKWh float64
	DailyEnergyKWh    float64
	DailyCost         float64
}
