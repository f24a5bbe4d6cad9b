package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePoll("A", "success", 120*time.Millisecond, 0)
	m.ObservePoll("A", "timeout", 500*time.Millisecond, 1)
	m.ObservePoll("A", "timeout", 500*time.Millisecond, 2)
	m.SetEnergy("A", 1.5, 0.5, 0.912)
	m.Restart("ok")
	m.Rollover()
	m.SetState(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.polls.WithLabelValues("A", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.polls.WithLabelValues("A", "timeout")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.consecutive.WithLabelValues("A")))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.daily.WithLabelValues("A")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.restarts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rollovers))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.state))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePoll("A", "success", time.Millisecond, 0)
		m.ObserveCycle(time.Millisecond)
		m.SetEnergy("A", 1, 1, 1)
		m.SetSample("A", 230, 100)
		m.Restart("ok")
		m.Rollover()
		m.SetState(0)
	})
}
