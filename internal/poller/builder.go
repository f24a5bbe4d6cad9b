// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/tamzrod/pzem-monitor/internal/channel"
	cfg "github.com/tamzrod/pzem-monitor/internal/config"
)

// Build constructs a detached Poller and the factory that opens its port.
// The scheduler owns channel lifecycle: it opens on init, closes and
// reopens on restart.
// No retries, no loops.
func Build(m cfg.MeterConfig, poll cfg.PollConfig) (*Poller, channel.Factory, error) {
	// channel factory: ONE attempt per call
	factory := func() (channel.Channel, error) {
		return channel.OpenSerial(channel.SerialConfig{
			Device:    m.Serial.Device,
			BaudRate:  m.Serial.BaudRate,
			DataBits:  m.Serial.DataBits,
			StopBits:  m.Serial.StopBits,
			Parity:    m.Serial.Parity,
			ReadSlice: m.Serial.ReadSlice(),
		})
	}

	timeout := poll.ResponseTimeout()
	if timeout <= 0 {
		timeout = time.Duration(cfg.DefaultResponseTimeoutMs) * time.Millisecond
	}

	p, err := New(
		Config{
			MeterID:         m.ID,
			Address:         m.Address,
			ResponseTimeout: timeout,
		},
		nil,
	)
	if err != nil {
		return nil, nil, err
	}

	return p, factory, nil
}
