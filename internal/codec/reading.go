// internal/codec/reading.go
package codec

import "time"

// Reading is one decoded meter sample.
type Reading struct {
	VoltageV       float64 // volts
	CurrentA       float64 // amperes
	PowerW         float64 // watts
	DeviceEnergyWh uint32  // meter's own counter, watt-hours
	FrequencyHz    float64 // hertz
	PowerFactor    float64 // 0..1
	Alarm          uint16  // r9, informational

	Timestamp time.Time
}

// At returns a copy of r stamped with t.
func (r Reading) At(t time.Time) Reading {
	r.Timestamp = t
	return r
}

// HasLoad reports whether the sample shows any measurable consumption.
func (r Reading) HasLoad() bool {
	return r.CurrentA > 0.01 || r.PowerW > 0.01
}
