// internal/validate/validate.go
package validate

import (
	"math"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

// Reason names the first plausibility check a reading failed.
type Reason uint8

const (
	ReasonNone Reason = iota
	VoltageRange
	CurrentRange
	PowerRange
	FrequencyRange
	PowerFactorRange
	PowerCrossCheck
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case VoltageRange:
		return "voltage_range"
	case CurrentRange:
		return "current_range"
	case PowerRange:
		return "power_range"
	case FrequencyRange:
		return "frequency_range"
	case PowerFactorRange:
		return "power_factor_range"
	case PowerCrossCheck:
		return "power_cross_check"
	default:
		return "unknown"
	}
}

// Outcome is Valid when Reason is ReasonNone.
type Outcome struct {
	Reason Reason
}

// Valid is the passing outcome.
var Valid = Outcome{}

// Invalid builds a failing outcome.
func Invalid(r Reason) Outcome { return Outcome{Reason: r} }

func (o Outcome) Valid() bool { return o.Reason == ReasonNone }

func (o Outcome) String() string {
	if o.Valid() {
		return "valid"
	}
	return "invalid(" + o.Reason.String() + ")"
}

// Limits are the plausibility bounds for a single-phase residential supply.
type Limits struct {
	VoltageMin, VoltageMax     float64
	CurrentMax                 float64
	PowerMax                   float64
	FrequencyMin, FrequencyMax float64

	// Cross-check applies only above these, so an idle line is not judged.
	CrossCheckMinVoltage float64
	CrossCheckMinCurrent float64
	CrossCheckTolerance  float64
}

var DefaultLimits = Limits{
	VoltageMin:           180,
	VoltageMax:           280,
	CurrentMax:           100,
	PowerMax:             25000,
	FrequencyMin:         45,
	FrequencyMax:         65,
	CrossCheckMinVoltage: 10,
	CrossCheckMinCurrent: 0.01,
	CrossCheckTolerance:  0.1,
}

// Check judges r against DefaultLimits.
func Check(r codec.Reading) Outcome {
	return DefaultLimits.Check(r)
}

// Check returns the first failed check in priority order, or Valid.
func (l Limits) Check(r codec.Reading) Outcome {
	v, i, p, f, pf := r.VoltageV, r.CurrentA, r.PowerW, r.FrequencyHz, r.PowerFactor

	if v > 0 && (v < l.VoltageMin || v > l.VoltageMax) {
		return Invalid(VoltageRange)
	}
	if i < 0 || i > l.CurrentMax {
		return Invalid(CurrentRange)
	}
	if p < 0 || p > l.PowerMax {
		return Invalid(PowerRange)
	}
	if f > 0 && (f < l.FrequencyMin || f > l.FrequencyMax) {
		return Invalid(FrequencyRange)
	}
	if pf < 0 || pf > 1 {
		return Invalid(PowerFactorRange)
	}

	if v > l.CrossCheckMinVoltage && i > l.CrossCheckMinCurrent {
		expected := v * i * pf
		if math.Abs(p-expected) > l.CrossCheckTolerance*expected {
			return Invalid(PowerCrossCheck)
		}
	}

	return Valid
}
