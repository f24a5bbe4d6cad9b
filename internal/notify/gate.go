// internal/notify/gate.go
package notify

import "time"

type gateKey struct {
	meter string
	kind  AlertKind
}

type gateState struct {
	sent        bool
	lastAttempt time.Time
}

// ThresholdGate sends each meter/kind alert at most once between resets.
// A failed delivery is retried no sooner than the retry interval.
type ThresholdGate struct {
	retry time.Duration
	state map[gateKey]*gateState
}

// NewThresholdGate creates a gate with the given retry interval.
func NewThresholdGate(retry time.Duration) *ThresholdGate {
	return &ThresholdGate{
		retry: retry,
		state: make(map[gateKey]*gateState),
	}
}

// Evaluate sends through n when value exceeds threshold and the alert is
// still armed. A threshold of zero or less disables the alert.
// Reports whether a delivery succeeded on this call.
func (g *ThresholdGate) Evaluate(n Notifier, meterID string, kind AlertKind, value, threshold float64, now time.Time) bool {
	if threshold <= 0 || value <= threshold {
		return false
	}

	k := gateKey{meter: meterID, kind: kind}
	st := g.state[k]
	if st == nil {
		st = &gateState{}
		g.state[k] = st
	}

	if st.sent {
		return false
	}
	if !st.lastAttempt.IsZero() && now.Sub(st.lastAttempt) < g.retry {
		return false
	}

	st.lastAttempt = now
	st.sent = n.SendThresholdAlert(meterID, kind, value, threshold)
	return st.sent
}

// Reset re-arms every alert. Called at daily rollover.
func (g *ThresholdGate) Reset() {
	g.state = make(map[gateKey]*gateState)
}
