// internal/metering/engine.go
package metering

import (
	"time"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

// MaxIntegrationGap is the longest sample interval that still integrates.
// Longer gaps (missed cycles, clock jumps) are dropped rather than
// extrapolated.
const MaxIntegrationGap = 10 * time.Second

// Engine integrates power samples into energy totals for one meter.
type Engine struct {
	state *MeterState
	rate  float64
}

// New binds an engine to state. rate is the price per kWh.
func New(state *MeterState, rate float64) *Engine {
	return &Engine{state: state, rate: rate}
}

// OnReading integrates r into the totals and returns the enriched sample.
// The sample time is always recorded, even when the interval is discarded.
func (e *Engine) OnReading(r codec.Reading, now time.Time) EnrichedReading {
	s := e.state

	if !s.LastSample.IsZero() {
		delta := now.Sub(s.LastSample)
		if delta > 0 && delta <= MaxIntegrationGap {
			kwh := r.PowerW * delta.Seconds() / 3600 / 1000
			s.LifetimeEnergyKWh += kwh
			s.DailyEnergyKWh += kwh
		}
	}
	s.LastSample = now

	return e.enrich(r.At(now))
}

// OnFailure returns an all-zero sample carrying the current totals.
func (e *Engine) OnFailure(now time.Time) EnrichedReading {
	return e.enrich(codec.Reading{Timestamp: now})
}

// ResetDaily zeroes the daily total only.
func (e *Engine) ResetDaily() {
	e.state.DailyEnergyKWh = 0
}

// State returns a copy of the current totals.
func (e *Engine) State() MeterState {
	return *e.state
}

// DailyCost prices the current daily total.
func (e *Engine) DailyCost() float64 {
	return e.state.DailyEnergyKWh * e.rate
}

func (e *Engine) enrich(r codec.Reading) EnrichedReading {
	return EnrichedReading{
		Reading:           r,
		LifetimeEnergyKWh: e.state.LifetimeEnergyKWh,
		DailyEnergyKWh:    e.state.DailyEnergyKWh,
		DailyCost:         e.state.DailyEnergyKWh * e.rate,
	}
}
