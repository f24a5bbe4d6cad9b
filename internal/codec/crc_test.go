package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC16_KnownVector(t *testing.T) {
	assert.Equal(t, uint16(0x4B37), CRC16([]byte("123456789")))
}

func TestCRC16_RoundTripIsZero(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0x01, 0x04, 0x00, 0x00, 0x00, 0x0A},
		[]byte("the quick brown fox"),
		{0xFF, 0xFF, 0xFF, 0xFF, 0x80, 0x7F, 0x01},
	}
	for _, in := range inputs {
		framed := AppendCRC(in)
		assert.Equal(t, uint16(0), CRC16(framed), "input % X", in)
		if len(in) > 0 {
			assert.True(t, CheckCRC(framed), "input % X", in)
		}
	}
}

func TestCheckCRC_RequiresPayload(t *testing.T) {
	// A bare checksum carries no address byte.
	framed := AppendCRC(nil)
	assert.Equal(t, Frame{0xFF, 0xFF}, framed)
	assert.Equal(t, uint16(0), CRC16(framed))
	assert.False(t, CheckCRC(framed))
}

func TestCheckCRC_DetectsCorruption(t *testing.T) {
	f := AppendCRC([]byte{0x01, 0x04, 0x00, 0x00, 0x00, 0x0A})
	f[3] ^= 0x01
	assert.False(t, CheckCRC(f))
	assert.False(t, CheckCRC([]byte{0x01}))
}
