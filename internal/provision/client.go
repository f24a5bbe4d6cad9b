// internal/provision/client.go
package provision

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

// registerClient is the subset of modbus.Client used here.
type registerClient interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Client is a single RTU master on one serial port.
// It serializes requests because it mutates SlaveId per request.
type Client struct {
	mu       sync.Mutex
	handler  *modbus.RTUClientHandler
	client   registerClient
	setSlave func(uint8)
}

type Config struct {
	Device   string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	Timeout  time.Duration
}

// Dial opens the port. Used for one-shot maintenance, never by the
// polling loop.
func Dial(cfg Config) (*Client, error) {
	if cfg.Device == "" {
		return nil, errors.New("provision: device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.StopBits = cfg.StopBits
	h.Parity = cfg.Parity
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("provision: open %s: %w", cfg.Device, err)
	}

	return &Client{
		handler:  h,
		client:   modbus.NewClient(h),
		setSlave: func(id uint8) { h.SlaveId = id },
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// SetAddress moves the meter answering at oldAddr to newAddr.
// The meter must be the only device on the line.
func (c *Client) SetAddress(oldAddr, newAddr uint8) error {
	if err := checkAddress(oldAddr); err != nil {
		return err
	}
	if err := checkAddress(newAddr); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(oldAddr)
	res, err := c.client.WriteSingleRegister(codec.AddressRegister, uint16(newAddr))
	if err != nil {
		return fmt.Errorf("provision: set address 0x%02X -> 0x%02X: %w", oldAddr, newAddr, deviceError(err))
	}
	if len(res) != 2 || binary.BigEndian.Uint16(res) != uint16(newAddr) {
		return fmt.Errorf("provision: set address: %w", &codec.FrameError{
			Kind: codec.KindEchoMismatch,
			Got:  int(echoValue(res)),
			Want: int(newAddr),
		})
	}
	return nil
}

// ReadRegisters reads the ten measurement registers from addr.
func (c *Client) ReadRegisters(addr uint8) ([codec.RegisterCount]uint16, error) {
	var regs [codec.RegisterCount]uint16
	if err := checkAddress(addr); err != nil {
		return regs, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(addr)
	b, err := c.client.ReadInputRegisters(codec.RegisterStart, codec.RegisterCount)
	if err != nil {
		return regs, fmt.Errorf("provision: read 0x%02X: %w", addr, deviceError(err))
	}
	if len(b) != codec.DataBytes {
		return regs, &codec.FrameError{Kind: codec.KindLengthMismatch, Got: len(b), Want: codec.DataBytes}
	}
	for i := range regs {
		regs[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return regs, nil
}

// Probe reads and decodes one sample from addr.
func (c *Client) Probe(addr uint8) (codec.Reading, error) {
	regs, err := c.ReadRegisters(addr)
	if err != nil {
		return codec.Reading{}, err
	}
	return codec.Decode(regs), nil
}

func checkAddress(a uint8) error {
	if a < codec.MinAddress || a > codec.MaxAddress {
		return fmt.Errorf("provision: address 0x%02X out of range", a)
	}
	return nil
}

// deviceError maps a library exception onto the codec error taxonomy.
func deviceError(err error) error {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return &codec.FrameError{Kind: codec.KindDeviceException, Exception: me.ExceptionCode}
	}
	return err
}

func echoValue(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}
