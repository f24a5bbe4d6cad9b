// internal/status/constants.go
package status

// ---- WINDOW GEOMETRY ----

// WindowSize is the number of latency samples kept per window.
const WindowSize = 10

// ---- HEALTH CODES ----

// HealthUnknown represents a meter that has not been polled yet.
const HealthUnknown uint16 = 0

// HealthOK represents a meter whose last poll succeeded.
const HealthOK uint16 = 1

// HealthError represents a meter whose last poll failed on the wire.
const HealthError uint16 = 2

// HealthInvalid represents a meter that answered with implausible values.
const HealthInvalid uint16 = 3

// HealthName maps a health code to a log-friendly label.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
