// internal/notify/message.go
package notify

import (
	"fmt"
	"strings"
	"time"
)

const (
	stampLayout = "02/01/2006 15:04"
	dateLayout  = "02/01/2006"
)

// FormatThresholdAlert renders the operator text for a crossed threshold.
func FormatThresholdAlert(at time.Time, meterID string, kind AlertKind, value, threshold float64, currency string) string {
	var b strings.Builder

	if kind == AlertCost {
		b.WriteString("COST ALERT\n")
		fmt.Fprintf(&b, "Time: %s\n", at.Format(stampLayout))
		fmt.Fprintf(&b, "Meter %s: %s %.2f\n", meterID, currency, value)
		fmt.Fprintf(&b, "Limit: %s %.2f\n", currency, threshold)
		fmt.Fprintf(&b, "Exceeded by: %s %.2f\n", currency, value-threshold)
	} else {
		b.WriteString("ENERGY ALERT\n")
		fmt.Fprintf(&b, "Time: %s\n", at.Format(stampLayout))
		fmt.Fprintf(&b, "Meter %s: %.1fkWh\n", meterID, value)
		fmt.Fprintf(&b, "Limit: %.1fkWh\n", threshold)
		fmt.Fprintf(&b, "Exceeded by: %.1fkWh\n", value-threshold)
	}
	b.WriteString("Please reduce usage.")

	return b.String()
}

// FormatDailyReport renders the end-of-day summary for both meters.
func FormatDailyReport(day time.Time, a, b DailyData, currency string) string {
	var s strings.Builder

	s.WriteString("DAILY ENERGY REPORT\n")
	fmt.Fprintf(&s, "Date: %s\n\n", day.Format(dateLayout))
	for _, d := range []DailyData{a, b} {
		fmt.Fprintf(&s, "METER %s:\n", d.MeterID)
		fmt.Fprintf(&s, "  Energy: %.1fkWh\n", d.EnergyKWh)
		fmt.Fprintf(&s, "  Cost: %s %.2f\n\n", currency, d.Cost)
	}
	s.WriteString("TOTAL:\n")
	fmt.Fprintf(&s, "  Energy: %.1fkWh\n", a.EnergyKWh+b.EnergyKWh)
	fmt.Fprintf(&s, "  Cost: %s %.2f", currency, a.Cost+b.Cost)

	return s.String()
}

// FormatSystemAlert renders a fault notice.
func FormatSystemAlert(at time.Time, message string) string {
	return fmt.Sprintf(
		"SYSTEM ALERT\nTime: %s\nError: %s\nCheck device immediately.",
		at.Format(stampLayout),
		message,
	)
}
