// internal/notify/log.go
package notify

import (
	"time"

	"github.com/rs/zerolog"
)

// LogNotifier renders operator messages and writes them to a logger.
// It stands in for an SMS or cellular gateway and always succeeds.
type LogNotifier struct {
	log      zerolog.Logger
	currency string
	now      func() time.Time
}

// NewLogNotifier returns a notifier logging under component=notify.
func NewLogNotifier(log zerolog.Logger, currency string, now func() time.Time) *LogNotifier {
	if now == nil {
		now = time.Now
	}
	return &LogNotifier{
		log:      log.With().Str("component", "notify").Logger(),
		currency: currency,
		now:      now,
	}
}

func (n *LogNotifier) SendThresholdAlert(meterID string, kind AlertKind, value, threshold float64) bool {
	n.log.Warn().
		Str("kind", "threshold").
		Str("meter", meterID).
		Stringer("alert", kind).
		Float64("value", value).
		Float64("threshold", threshold).
		Msg(FormatThresholdAlert(n.now(), meterID, kind, value, threshold, n.currency))
	return true
}

func (n *LogNotifier) SendDailyReport(a, b DailyData) bool {
	// The report closes the previous day.
	day := n.now().AddDate(0, 0, -1)
	n.log.Info().
		Str("kind", "daily_report").
		Float64("energy_kwh_total", a.EnergyKWh+b.EnergyKWh).
		Float64("cost_total", a.Cost+b.Cost).
		Msg(FormatDailyReport(day, a, b, n.currency))
	return true
}

func (n *LogNotifier) SendSystemAlert(message string) bool {
	n.log.Error().
		Str("kind", "system").
		Msg(FormatSystemAlert(n.now(), message))
	return true
}
