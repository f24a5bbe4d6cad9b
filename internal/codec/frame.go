// internal/codec/frame.go
package codec

// Protocol constants for the single supported meter layout.
// These values define the wire format and MUST NOT be configurable.

// ---- FUNCTION CODES ----

const (
	FuncReadInputRegisters   byte = 0x04
	FuncReadInputException   byte = 0x84
	FuncWriteSingleRegister  byte = 0x06
	FuncWriteSingleException byte = 0x86
)

// ---- GEOMETRY ----

const (
	// RegisterStart is the first input register read.
	RegisterStart uint16 = 0x0000

	// RegisterCount is the number of input registers read per poll.
	RegisterCount uint16 = 10

	// DataBytes is the byte count the meter reports for RegisterCount registers.
	DataBytes = 2 * int(RegisterCount)

	// RequestLength is the size of every request frame built here.
	RequestLength = 8

	// ResponseLength is address + function + count + data + crc.
	ResponseLength = 3 + DataBytes + 2

	// AddressRegister is the holding register storing the slave address.
	AddressRegister uint16 = 0x0002
)

// ---- ADDRESSING ----

const (
	MinAddress uint8 = 0x01
	MaxAddress uint8 = 0xF7
)

// Frame is a complete RTU frame including the trailing CRC.
type Frame []byte

// BuildReadRequest builds the fixed read-input-registers request for addr.
func BuildReadRequest(addr uint8) Frame {
	return AppendCRC([]byte{
		addr,
		FuncReadInputRegisters,
		byte(RegisterStart >> 8), byte(RegisterStart),
		byte(RegisterCount >> 8), byte(RegisterCount),
	})
}

// BuildSetAddressRequest builds a write-single-register request that moves
// the meter currently answering at oldAddr to newAddr.
func BuildSetAddressRequest(oldAddr, newAddr uint8) Frame {
	return AppendCRC([]byte{
		oldAddr,
		FuncWriteSingleRegister,
		byte(AddressRegister >> 8), byte(AddressRegister),
		0x00, newAddr,
	})
}
