package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

func reading(v, i, p, f, pf float64) codec.Reading {
	return codec.Reading{VoltageV: v, CurrentA: i, PowerW: p, FrequencyHz: f, PowerFactor: pf}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		in   codec.Reading
		want Outcome
	}{
		{"nominal load", reading(230, 5, 1150, 50, 1.0), Valid},
		{"overvoltage", reading(300, 5, 1150, 50, 1.0), Invalid(VoltageRange)},
		{"undervoltage", reading(150, 0, 0, 50, 0), Invalid(VoltageRange)},
		{"voltage edges", reading(180, 0, 0, 50, 0), Valid},
		{"dead line", reading(0, 0, 0, 0, 0), Valid},
		{"overcurrent", reading(230, 101, 1150, 50, 1.0), Invalid(CurrentRange)},
		{"negative current", reading(230, -1, 0, 50, 0), Invalid(CurrentRange)},
		{"overpower", reading(230, 5, 25001, 50, 1.0), Invalid(PowerRange)},
		{"low frequency", reading(230, 0, 0, 44.9, 0), Invalid(FrequencyRange)},
		{"high frequency", reading(230, 0, 0, 65.1, 0), Invalid(FrequencyRange)},
		{"power factor", reading(230, 0, 0, 50, 1.2), Invalid(PowerFactorRange)},
		{"cross check", reading(230, 5, 500, 50, 1.0), Invalid(PowerCrossCheck)},
		{"cross check tolerance", reading(230, 5, 1150*1.09, 50, 1.0), Valid},
		{"idle line skips cross check", reading(230, 0.005, 40, 50, 0.5), Valid},
		{"voltage beats current", reading(300, 200, 1150, 50, 1.0), Invalid(VoltageRange)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.in)
			assert.Equal(t, tt.want, got, got.String())
		})
	}
}

func TestOutcome_Strings(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.True(t, Valid.Valid())
	assert.Equal(t, "invalid(voltage_range)", Invalid(VoltageRange).String())
	assert.False(t, Invalid(PowerCrossCheck).Valid())
}
