// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/pzem-monitor/internal/channel"
	"github.com/tamzrod/pzem-monitor/internal/codec"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	MeterID         string
	Address         uint8
	ResponseTimeout time.Duration
}

// ErrDetached is returned when polling without an attached channel.
var ErrDetached = errors.New("poller: no channel attached")

// Poller performs one request/response exchange with one meter.
// It holds no metering state; the scheduler owns that.
type Poller struct {
	cfg Config
	ch  channel.Channel
}

// New creates a poller with immutable config. ch may be nil and attached later.
func New(cfg Config, ch channel.Channel) (*Poller, error) {
	if cfg.MeterID == "" {
		return nil, errors.New("poller: meter id required")
	}
	if cfg.Address < codec.MinAddress || cfg.Address > codec.MaxAddress {
		return nil, errors.New("poller: address out of range")
	}
	if cfg.ResponseTimeout <= 0 {
		return nil, errors.New("poller: response timeout must be > 0")
	}
	return &Poller{cfg: cfg, ch: ch}, nil
}

func (p *Poller) MeterID() string { return p.cfg.MeterID }
func (p *Poller) Address() uint8  { return p.cfg.Address }

// Attach replaces the channel. The previous channel is not closed.
func (p *Poller) Attach(ch channel.Channel) { p.ch = ch }

// Attached reports whether a channel is present.
func (p *Poller) Attached() bool { return p.ch != nil }

// Detach closes and drops the current channel.
func (p *Poller) Detach() error {
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

// PollOnce performs exactly one exchange.
// All-or-nothing: a Reading is returned only if the frame decoded cleanly.
// The exchange is never interrupted once the request is sent.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		MeterID: p.cfg.MeterID,
		Address: p.cfg.Address,
	}

	if p.ch == nil {
		res.Err = ErrDetached
		return res
	}

	if err := p.ch.Send(codec.BuildReadRequest(p.cfg.Address)); err != nil {
		res.Err = err
		return res
	}

	raw, err := p.ch.Receive(codec.ResponseLength, p.cfg.ResponseTimeout)
	res.Raw = raw
	if err != nil {
		res.Err = err
		return res
	}

	rd, err := codec.ParseReadResponse(raw, p.cfg.Address)
	if err != nil {
		res.Err = err
		return res
	}

	// Commit only if the frame decoded
	res.Reading = rd
	return res
}
