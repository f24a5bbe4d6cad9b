package config

import (
	"strings"
	"testing"
	"time"
)

func TestNormalize_Defaults(t *testing.T) {
	cfg := pair()
	Normalize(cfg)

	m := cfg.Monitor
	if m.Meters[0].Serial.BaudRate != 9600 || m.Meters[1].Serial.Parity != "N" {
		t.Fatalf("serial defaults not applied: %+v", m.Meters[0].Serial)
	}
	if m.Poll.Interval() != time.Second {
		t.Fatalf("interval=%v", m.Poll.Interval())
	}
	if m.Poll.ResponseTimeout() != 500*time.Millisecond {
		t.Fatalf("response timeout=%v", m.Poll.ResponseTimeout())
	}
	if m.Recovery.RestartThreshold != 10 || m.Recovery.MaxAttempts != 3 {
		t.Fatalf("recovery=%+v", m.Recovery)
	}
	if m.Recovery.InitialBackoff() != 2*time.Second || m.Recovery.Multiplier != 2 {
		t.Fatalf("backoff=%+v", m.Recovery)
	}
	if *m.Billing.EnergyRate != 1.824 || *m.Billing.DailyEnergyThresholdKWh != 10 || *m.Billing.DailyCostThreshold != 20 {
		t.Fatalf("billing defaults not applied")
	}
	if m.Rollover.Window() != 5*time.Minute || m.Rollover.Guard() != 6*time.Hour {
		t.Fatalf("rollover=%+v", m.Rollover)
	}
	if m.Diagnostics.Interval() != 30*time.Second {
		t.Fatalf("diagnostics=%v", m.Diagnostics.Interval())
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Poll.IntervalMs = 2500
	cfg.Monitor.Billing.DailyCostThreshold = f64(0)
	Normalize(cfg)

	if cfg.Monitor.Poll.IntervalMs != 2500 {
		t.Fatalf("interval overwritten: %d", cfg.Monitor.Poll.IntervalMs)
	}
	if *cfg.Monitor.Billing.DailyCostThreshold != 0 {
		t.Fatalf("explicit zero threshold overwritten")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParse_StrictFields(t *testing.T) {
	doc := `
monitor:
  meters:
    - id: A
      address: 1
      serial: { device: /dev/ttyS0 }
    - id: B
      address: 2
      serial: { device: /dev/ttyS1, baud_rate: 19200 }
  billing:
    energy_rate: 2.5
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if cfg.Monitor.Meters[1].Serial.BaudRate != 19200 {
		t.Fatalf("baud=%d", cfg.Monitor.Meters[1].Serial.BaudRate)
	}
	if cfg.Monitor.Billing.EnergyRate == nil || *cfg.Monitor.Billing.EnergyRate != 2.5 {
		t.Fatalf("energy_rate not decoded")
	}

	_, err = Parse(strings.NewReader("monitor:\n  bogus: 1\n"))
	if err == nil {
		t.Fatalf("expected unknown field error, got nil")
	}
}
