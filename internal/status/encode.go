// internal/status/encode.go
package status

import "github.com/rs/zerolog"

// MarshalZerologObject renders a Snapshot as a structured log object.
func (s Snapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Str("meter", s.MeterID).
		Uint8("address", s.Address).
		Str("health", HealthName(s.Health)).
		Uint16("last_error_code", s.LastErrorCode).
		Uint16("seconds_in_error", s.SecondsInError).
		Uint32("consecutive", s.Faults.Consecutive).
		Uint64("success", s.Faults.Success).
		Uint64("error", s.Faults.Error).
		Uint64("timeout", s.Faults.Timeout).
		Uint64("invalid", s.Faults.Invalid).
		Float64("success_rate", s.Faults.SuccessRate()).
		Dur("avg_latency", s.AvgLatency).
		Dur("max_latency", s.MaxLatency)
}
