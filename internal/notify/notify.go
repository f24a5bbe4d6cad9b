// internal/notify/notify.go
package notify

// AlertKind selects which daily quantity crossed its threshold.
type AlertKind uint8

const (
	AlertEnergy AlertKind = iota
	AlertCost
)

func (k AlertKind) String() string {
	if k == AlertCost {
		return "cost"
	}
	return "energy"
}

// DailyData is one meter's totals for the day being closed.
type DailyData struct {
	MeterID   string
	EnergyKWh float64
	Cost      float64
}

// Notifier is the delivery-only contract for operator messages.
// Each call reports whether the message was delivered.
// Delivery protocol, rate limiting and retries belong to the implementation.
type Notifier interface {
	SendThresholdAlert(meterID string, kind AlertKind, value, threshold float64) bool
	SendDailyReport(a, b DailyData) bool
	SendSystemAlert(message string) bool
}

// Multi fans a message out to every notifier.
// It reports success if at least one delivery succeeded.
type Multi []Notifier

func (m Multi) SendThresholdAlert(meterID string, kind AlertKind, value, threshold float64) bool {
	ok := false
	for _, n := range m {
		if n.SendThresholdAlert(meterID, kind, value, threshold) {
			ok = true
		}
	}
	return ok
}

func (m Multi) SendDailyReport(a, b DailyData) bool {
	ok := false
	for _, n := range m {
		if n.SendDailyReport(a, b) {
			ok = true
		}
	}
	return ok
}

func (m Multi) SendSystemAlert(message string) bool {
	ok := false
	for _, n := range m {
		if n.SendSystemAlert(message) {
			ok = true
		}
	}
	return ok
}

// Nop discards everything and reports success.
type Nop struct{}

func (Nop) SendThresholdAlert(string, AlertKind, float64, float64) bool { return true }
func (Nop) SendDailyReport(DailyData, DailyData) bool                   { return true }
func (Nop) SendSystemAlert(string) bool                                 { return true }
