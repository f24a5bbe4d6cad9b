package config

import (
	"strings"
	"testing"
)

// helper to build a valid two-meter config quickly
func pair() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Meters: []MeterConfig{
				{ID: "A", Address: 0x01, Serial: SerialConfig{Device: "/dev/ttyS0"}},
				{ID: "B", Address: 0x02, Serial: SerialConfig{Device: "/dev/ttyS1"}},
			},
		},
	}
}

func f64(v float64) *float64 { return &v }

// ---- tests ----

func TestValidate_MinimalPairOK(t *testing.T) {
	if err := Validate(pair()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DuplicateAddress(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters[1].Address = 0x01

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected address collision, got nil")
	}
	if !strings.Contains(err.Error(), "address collision") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AddressRange(t *testing.T) {
	for _, a := range []uint8{0, 248, 255} {
		cfg := pair()
		cfg.Monitor.Meters[0].Address = a
		if err := Validate(cfg); err == nil {
			t.Fatalf("address %d: expected error, got nil", a)
		}
	}
}

func TestValidate_MeterCount(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters = cfg.Monitor.Meters[:1]
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected meter count error, got nil")
	}
}

func TestValidate_DuplicateID(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters[1].ID = "A"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duplicate id error, got nil")
	}
}

func TestValidate_SharedDevice(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters[1].Serial.Device = "/dev/ttyS0"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected device collision, got nil")
	}
}

func TestValidate_MissingDevice(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters[0].Serial.Device = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected missing device error, got nil")
	}
}

func TestValidate_BadParity(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Meters[0].Serial.Parity = "X"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Poll.ResponseTimeoutMs = -1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative duration error, got nil")
	}
}

func TestValidate_PacingFloorAbovePeriod(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Poll.PacingPeriodMs = 100
	cfg.Monitor.Poll.PacingFloorMs = 150
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected pacing error, got nil")
	}
}

func TestValidate_PacingFloorAboveDefaultPeriod(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Poll.PacingFloorMs = DefaultPacingPeriodMs + 300
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected pacing error against default period, got nil")
	}
}

func TestValidate_PacingPeriodBelowDefaultFloor(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Poll.PacingPeriodMs = DefaultPacingFloorMs - 10
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected pacing error against default floor, got nil")
	}

	cfg.Monitor.Poll.PacingFloorMs = DefaultPacingFloorMs - 20
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Multiplier(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Recovery.Multiplier = 0.5
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected multiplier error, got nil")
	}
}

func TestValidate_NegativeRate(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Billing.EnergyRate = f64(-1)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected rate error, got nil")
	}

	cfg.Monitor.Billing.EnergyRate = f64(0)
	if err := Validate(cfg); err != nil {
		t.Fatalf("zero rate must be accepted: %v", err)
	}
}

func TestValidate_Timezone(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Rollover.Timezone = "Not/AZone"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected timezone error, got nil")
	}

	cfg.Monitor.Rollover.Timezone = "UTC"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_LogSettings(t *testing.T) {
	cfg := pair()
	cfg.Monitor.Log.Level = "loud"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log level error, got nil")
	}

	cfg = pair()
	cfg.Monitor.Log.Format = "xml"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log format error, got nil")
	}
}
