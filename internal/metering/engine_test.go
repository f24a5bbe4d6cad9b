package metering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestOnReading_IntegratesFiveSeconds(t *testing.T) {
	st := &MeterState{Address: 0x01}
	e := New(st, 1.824)

	first := e.OnReading(codec.Reading{PowerW: 1000}, t0)
	assert.Equal(t, 0.0, first.LifetimeEnergyKWh, "first sample has no interval")

	got := e.OnReading(codec.Reading{PowerW: 1000}, t0.Add(5*time.Second))

	want := 1000.0 * 5 / 3600 / 1000
	assert.InDelta(t, 0.0013889, want, 1e-6)
	assert.InDelta(t, want, got.LifetimeEnergyKWh, 1e-9)
	assert.InDelta(t, want, got.DailyEnergyKWh, 1e-9)
	assert.InDelta(t, want*1.824, got.DailyCost, 1e-9)
	assert.Equal(t, t0.Add(5*time.Second), st.LastSample)
}

func TestOnReading_SkipsLongGap(t *testing.T) {
	st := &MeterState{Address: 0x01}
	e := New(st, 1.824)

	e.OnReading(codec.Reading{PowerW: 1000}, t0)
	got := e.OnReading(codec.Reading{PowerW: 1000}, t0.Add(15*time.Second))

	assert.Equal(t, 0.0, got.LifetimeEnergyKWh)
	assert.Equal(t, 0.0, got.DailyEnergyKWh)
	assert.Equal(t, t0.Add(15*time.Second), st.LastSample)
}

func TestOnReading_BoundaryAndBackwardsClock(t *testing.T) {
	st := &MeterState{}
	e := New(st, 1)

	e.OnReading(codec.Reading{PowerW: 3600}, t0)
	e.OnReading(codec.Reading{PowerW: 3600}, t0.Add(MaxIntegrationGap))
	assert.InDelta(t, 0.01, st.LifetimeEnergyKWh, 1e-12, "exactly the max gap integrates")

	before := st.LifetimeEnergyKWh
	e.OnReading(codec.Reading{PowerW: 3600}, t0)
	assert.Equal(t, before, st.LifetimeEnergyKWh, "negative interval is discarded")

	e.OnReading(codec.Reading{PowerW: 3600}, t0)
	assert.Equal(t, before, st.LifetimeEnergyKWh, "zero interval is discarded")
}

func TestOnFailure_PreservesTotals(t *testing.T) {
	st := &MeterState{LifetimeEnergyKWh: 12.5, DailyEnergyKWh: 2, LastSample: t0}
	e := New(st, 2)

	got := e.OnFailure(t0.Add(time.Second))
	assert.Equal(t, 0.0, got.VoltageV)
	assert.Equal(t, 0.0, got.PowerW)
	assert.Equal(t, 12.5, got.LifetimeEnergyKWh)
	assert.Equal(t, 2.0, got.DailyEnergyKWh)
	assert.Equal(t, 4.0, got.DailyCost)
	assert.Equal(t, t0, st.LastSample, "failures do not move the sample clock")
}

func TestResetDaily(t *testing.T) {
	st := &MeterState{LifetimeEnergyKWh: 12.5, DailyEnergyKWh: 2, LastSample: t0}
	e := New(st, 2)

	e.ResetDaily()
	require.Equal(t, 0.0, st.DailyEnergyKWh)
	assert.Equal(t, 12.5, st.LifetimeEnergyKWh)
	assert.Equal(t, t0, st.LastSample)
	assert.Equal(t, 0.0, e.DailyCost())
}
