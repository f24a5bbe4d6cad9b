package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pzem-monitor/internal/config"
)

const sampleConfig = `
monitor:
  meters:
    - id: A
      address: 1
      serial:
        device: /dev/ttyUSB0
    - id: B
      address: 2
      serial:
        device: /dev/ttyUSB1
  poll:
    interval_ms: 2000
  billing:
    energy_rate: 2.5
    daily_cost_threshold: 0
  rollover:
    timezone: UTC
  log:
    level: debug
    format: console
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Normalizes(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBaudRate, cfg.Monitor.Meters[0].Serial.BaudRate)
	assert.Equal(t, config.DefaultResponseTimeoutMs, cfg.Monitor.Poll.ResponseTimeoutMs)
	assert.Equal(t, 2000, cfg.Monitor.Poll.IntervalMs)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "monitor:\n  meters: []\n"))
	assert.ErrorContains(t, err, "config validation failed")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config load failed")
}

func TestSchedulerConfig_Maps(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	sc, err := schedulerConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, sc.PollInterval)
	assert.Equal(t, 200*time.Millisecond, sc.InterChannelDelay)
	assert.Equal(t, uint32(config.DefaultRestartThreshold), sc.RestartThreshold)
	assert.Equal(t, config.DefaultMaxAttempts, sc.Backoff.MaxAttempts)
	assert.Equal(t, 2*time.Second, sc.Backoff.InitialDelay)
	assert.InDelta(t, 2.5, sc.EnergyRate, 1e-9)
	assert.Zero(t, sc.DailyCostThreshold)
	assert.InDelta(t, config.DefaultDailyEnergyThresholdKWh, sc.DailyEnergyThreshold, 1e-9)
	assert.Equal(t, 5*time.Minute, sc.AlertRetry)
	assert.Equal(t, time.UTC, sc.Location)
	assert.Equal(t, 6*time.Hour, sc.RolloverGuard)
}

func TestBuildMeters_Detached(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	meters, err := buildMeters(cfg)
	require.NoError(t, err)
	require.Len(t, meters, 2)
	assert.Equal(t, "A", meters[0].Poller.MeterID())
	assert.Equal(t, uint8(2), meters[1].Poller.Address())
	assert.False(t, meters[0].Poller.Attached())
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
