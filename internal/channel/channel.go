// internal/channel/channel.go
package channel

import "time"

// Channel is a byte-oriented duplex link to one meter.
type Channel interface {
	// Send writes a complete frame.
	Send(frame []byte) error

	// Receive collects up to n bytes, returning early once n have arrived.
	// When timeout elapses first, whatever arrived is returned with a nil
	// error. A non-nil error means the transport itself failed.
	Receive(n int, timeout time.Duration) ([]byte, error)

	Close() error
}

// Factory opens a fresh Channel. ONE attempt per call.
type Factory func() (Channel, error)
