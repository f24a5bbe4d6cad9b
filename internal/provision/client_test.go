package provision

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/pzem-monitor/internal/codec"
)

type fakeRegisters struct {
	slave  uint8
	writes map[uint16]uint16
	regs   []byte
	err    error
	echo   []byte
}

func (f *fakeRegisters) ReadInputRegisters(address, quantity uint16) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.regs, nil
}

func (f *fakeRegisters) WriteSingleRegister(address, value uint16) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.writes == nil {
		f.writes = map[uint16]uint16{}
	}
	f.writes[address] = value
	if f.echo != nil {
		return f.echo, nil
	}
	return binary.BigEndian.AppendUint16(nil, value), nil
}

func newFake(f *fakeRegisters) *Client {
	return &Client{client: f, setSlave: func(id uint8) { f.slave = id }}
}

func TestSetAddress_WritesAddressRegister(t *testing.T) {
	f := &fakeRegisters{}
	c := newFake(f)

	require.NoError(t, c.SetAddress(0x01, 0x02))
	assert.Equal(t, uint8(0x01), f.slave)
	assert.Equal(t, uint16(0x02), f.writes[codec.AddressRegister])
}

func TestSetAddress_Rejects(t *testing.T) {
	c := newFake(&fakeRegisters{})
	assert.Error(t, c.SetAddress(0x00, 0x02))
	assert.Error(t, c.SetAddress(0x01, 0xF8))

	c = newFake(&fakeRegisters{echo: []byte{0x00, 0x07}})
	assert.ErrorIs(t, c.SetAddress(0x01, 0x02), codec.ErrEchoMismatch)

	c = newFake(&fakeRegisters{err: &modbus.ModbusError{FunctionCode: 0x86, ExceptionCode: 0x02}})
	err := c.SetAddress(0x01, 0x02)
	var fe *codec.FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, byte(0x02), fe.Exception)
}

func TestProbe_Decodes(t *testing.T) {
	regs := []uint16{2300, 5000, 0, 11500, 0, 7, 0, 500, 100, 0}
	var b []byte
	for _, r := range regs {
		b = binary.BigEndian.AppendUint16(b, r)
	}
	f := &fakeRegisters{regs: b}

	rd, err := newFake(f).Probe(0x02)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), f.slave)
	assert.InDelta(t, 230.0, rd.VoltageV, 1e-9)
	assert.InDelta(t, 5.0, rd.CurrentA, 1e-9)
	assert.Equal(t, uint32(7), rd.DeviceEnergyWh)
}

func TestProbe_Errors(t *testing.T) {
	_, err := newFake(&fakeRegisters{regs: []byte{1, 2}}).Probe(0x01)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)

	boom := errors.New("timeout")
	_, err = newFake(&fakeRegisters{err: boom}).Probe(0x01)
	assert.ErrorIs(t, err, boom)
}
