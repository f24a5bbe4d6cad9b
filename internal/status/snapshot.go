// internal/status/snapshot.go
package status

import "time"

// Snapshot is a point-in-time view of one meter's acquisition health.
// It is a copy; holding it never blocks the scheduler.
type Snapshot struct {
	MeterID string
	Address uint8

	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16

	Faults     FaultCounters
	AvgLatency time.Duration
	MaxLatency time.Duration
}

// Tracker derives a Snapshot from the stream of poll outcomes.
// SecondsInError counts from the first failure of the current streak
// and saturates instead of wrapping.
type Tracker struct {
	snap       Snapshot
	errorSince time.Time
	window     Window
}

// NewTracker starts a tracker in HealthUnknown.
func NewTracker(meterID string, address uint8) *Tracker {
	return &Tracker{
		snap: Snapshot{
			MeterID: meterID,
			Address: address,
			Health:  HealthUnknown,
		},
	}
}

// Observe records one poll. err is the transport or frame error, if any.
func (t *Tracker) Observe(o Outcome, err error, latency time.Duration, now time.Time) {
	t.snap.Faults.Record(o)
	t.window.Add(latency)
	t.snap.AvgLatency = t.window.Average()
	t.snap.MaxLatency = t.window.Max()

	switch o {
	case OutcomeSuccess:
		t.snap.Health = HealthOK
		t.snap.LastErrorCode = 0
		t.snap.SecondsInError = 0
		t.errorSince = time.Time{}
		return
	case OutcomeInvalid:
		// The exchange itself succeeded.
		t.snap.Health = HealthInvalid
		t.snap.LastErrorCode = 0
	default:
		t.snap.Health = HealthError
		t.snap.LastErrorCode = ErrorCode(err)
	}

	if t.errorSince.IsZero() {
		t.errorSince = now
	}
	secs := now.Sub(t.errorSince) / time.Second
	if secs > 65535 {
		secs = 65535
	}
	t.snap.SecondsInError = uint16(secs)
}

// ResetStreak clears the consecutive counter after a successful restart.
func (t *Tracker) ResetStreak() {
	t.snap.Faults.Consecutive = 0
}

// Consecutive is the current failure streak.
func (t *Tracker) Consecutive() uint32 { return t.snap.Faults.Consecutive }

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }
