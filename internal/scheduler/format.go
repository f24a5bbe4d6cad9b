// internal/scheduler/format.go
package scheduler

import (
	"fmt"

	"github.com/tamzrod/pzem-monitor/internal/metering"
)

// FormatReading renders a sample for operators. Idle lines collapse to
// the daily totals.
func FormatReading(rd metering.EnrichedReading, currency string) string {
	if !rd.HasLoad() {
		return fmt.Sprintf("No load - Daily=%.4fkWh (%s %.4f)", rd.DailyEnergyKWh, currency, rd.DailyCost)
	}
	return fmt.Sprintf(
		"V=%.1fV I=%.3fA P=%.1fW E=%.4fkWh F=%.1fHz PF=%.2f Daily=%.4fkWh (%s %.4f)",
		rd.VoltageV,
		rd.CurrentA,
		rd.PowerW,
		rd.LifetimeEnergyKWh,
		rd.FrequencyHz,
		rd.PowerFactor,
		rd.DailyEnergyKWh,
		currency,
		rd.DailyCost,
	)
}
