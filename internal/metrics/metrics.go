// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pzem"

// Metrics exports acquisition counters and energy gauges.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	polls       *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	cycle       prometheus.Histogram
	lifetime    *prometheus.GaugeVec
	daily       *prometheus.GaugeVec
	dailyCost   *prometheus.GaugeVec
	voltage     *prometheus.GaugeVec
	power       *prometheus.GaugeVec
	restarts    *prometheus.CounterVec
	rollovers   prometheus.Counter
	state       prometheus.Gauge
	consecutive *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll outcomes per meter.",
		}, []string{"meter", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_latency_seconds",
			Help:      "Request/response exchange latency.",
			Buckets:   []float64{.05, .1, .15, .2, .3, .4, .5, .75, 1},
		}, []string{"meter"}),
		cycle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_latency_seconds",
			Help:      "Full two-meter cycle latency.",
			Buckets:   []float64{.1, .2, .4, .6, .8, 1, 1.5, 2},
		}),
		lifetime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifetime_energy_kwh",
			Help:      "Energy integrated since process start.",
		}, []string{"meter"}),
		daily: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "daily_energy_kwh",
			Help:      "Energy integrated since the last rollover.",
		}, []string{"meter"}),
		dailyCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "daily_cost",
			Help:      "Daily energy priced at the configured rate.",
		}, []string{"meter"}),
		voltage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "voltage_volts",
			Help:      "Last valid voltage sample.",
		}, []string{"meter"}),
		power: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "power_watts",
			Help:      "Last valid power sample.",
		}, []string{"meter"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Channel restarts by result.",
		}, []string{"result"}),
		rollovers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollovers_total",
			Help:      "Daily rollovers performed.",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_state",
			Help:      "0 idle, 1 polling, 2 restarting, 3 terminated.",
		}),
		consecutive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consecutive_failures",
			Help:      "Current failure streak per meter.",
		}, []string{"meter"}),
	}

	reg.MustRegister(
		m.polls, m.latency, m.cycle,
		m.lifetime, m.daily, m.dailyCost,
		m.voltage, m.power,
		m.restarts, m.rollovers, m.state, m.consecutive,
	)
	return m
}

// ObservePoll records one poll outcome.
func (m *Metrics) ObservePoll(meter, outcome string, latency time.Duration, consecutive uint32) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(meter, outcome).Inc()
	m.latency.WithLabelValues(meter).Observe(latency.Seconds())
	m.consecutive.WithLabelValues(meter).Set(float64(consecutive))
}

// ObserveCycle records a full cycle duration.
func (m *Metrics) ObserveCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.cycle.Observe(d.Seconds())
}

// SetEnergy publishes the running totals of one meter.
func (m *Metrics) SetEnergy(meter string, lifetimeKWh, dailyKWh, dailyCost float64) {
	if m == nil {
		return
	}
	m.lifetime.WithLabelValues(meter).Set(lifetimeKWh)
	m.daily.WithLabelValues(meter).Set(dailyKWh)
	m.dailyCost.WithLabelValues(meter).Set(dailyCost)
}

// SetSample publishes the last valid instantaneous values.
func (m *Metrics) SetSample(meter string, voltage, power float64) {
	if m == nil {
		return
	}
	m.voltage.WithLabelValues(meter).Set(voltage)
	m.power.WithLabelValues(meter).Set(power)
}

// Restart counts a restart attempt sequence by result ("ok" or "exhausted").
func (m *Metrics) Restart(result string) {
	if m == nil {
		return
	}
	m.restarts.WithLabelValues(result).Inc()
}

// Rollover counts a daily rollover.
func (m *Metrics) Rollover() {
	if m == nil {
		return
	}
	m.rollovers.Inc()
}

// SetState publishes the scheduler state code.
func (m *Metrics) SetState(code int) {
	if m == nil {
		return
	}
	m.state.Set(float64(code))
}
