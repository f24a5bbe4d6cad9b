// internal/channel/serial.go
package channel

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig describes one RTU serial port.
type SerialConfig struct {
	Device   string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string

	// ReadSlice bounds a single blocking read so Receive can honor its
	// overall timeout.
	ReadSlice time.Duration
}

const maxDrainReads = 16

// Stream implements Channel over any read/write/closer whose reads
// time out. Serial ports opened with OpenSerial are the production case.
type Stream struct {
	mu   sync.Mutex
	port io.ReadWriteCloser
	now  func() time.Time
}

// OpenSerial opens the device described by cfg.
func OpenSerial(cfg SerialConfig) (*Stream, error) {
	if cfg.Device == "" {
		return nil, errors.New("channel: device required")
	}
	if cfg.ReadSlice <= 0 {
		cfg.ReadSlice = 20 * time.Millisecond
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.ReadSlice,
	})
	if err != nil {
		return nil, fmt.Errorf("channel: open %s: %w", cfg.Device, err)
	}
	return NewStream(port), nil
}

// NewStream wraps an already open port.
func NewStream(port io.ReadWriteCloser) *Stream {
	return &Stream{port: port, now: time.Now}
}

// Send discards stale input, then writes frame in full.
func (s *Stream) Send(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return ErrClosed
	}

	s.drain()

	for len(frame) > 0 {
		n, err := s.port.Write(frame)
		if err != nil {
			return fmt.Errorf("channel: write: %w", err)
		}
		if n == 0 {
			return errors.New("channel: short write")
		}
		frame = frame[n:]
	}
	return nil
}

// Receive implements Channel.
func (s *Stream) Receive(n int, timeout time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return nil, ErrClosed
	}

	buf := make([]byte, 0, n)
	tmp := make([]byte, n)
	deadline := s.now().Add(timeout)

	for len(buf) < n && s.now().Before(deadline) {
		k, err := s.port.Read(tmp[:n-len(buf)])
		buf = append(buf, tmp[:k]...)
		if err != nil && !isTimeout(err) {
			return buf, fmt.Errorf("channel: read: %w", err)
		}
	}
	return buf, nil
}

// Close releases the port. Further calls return ErrClosed.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// drain reads until the port reports nothing pending.
// Bounded so a chattering line cannot stall the caller.
func (s *Stream) drain() {
	var tmp [64]byte
	for i := 0; i < maxDrainReads; i++ {
		k, err := s.port.Read(tmp[:])
		if k == 0 || err != nil {
			return
		}
	}
}

// ErrClosed is returned by operations on a closed Stream.
var ErrClosed = errors.New("channel: closed")

func isTimeout(err error) bool {
	if errors.Is(err, serial.ErrTimeout) || errors.Is(err, io.EOF) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
