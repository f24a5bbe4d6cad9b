// internal/codec/crc.go
package codec

import "github.com/sigurn/crc16"

// Modbus CRC16: reflected polynomial 0xA001, seed 0xFFFF.
var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// CRC16 computes the Modbus checksum of b.
func CRC16(b []byte) uint16 {
	return crc16.Checksum(b, crcTable)
}

// AppendCRC returns b with its checksum appended low byte first.
func AppendCRC(b []byte) Frame {
	crc := CRC16(b)
	out := make(Frame, 0, len(b)+2)
	out = append(out, b...)
	return append(out, byte(crc), byte(crc>>8))
}

// CheckCRC reports whether the trailing two bytes of b match the checksum
// of everything before them. At least one payload byte is required.
func CheckCRC(b []byte) bool {
	if len(b) < 3 {
		return false
	}
	n := len(b) - 2
	crc := CRC16(b[:n])
	return b[n] == byte(crc) && b[n+1] == byte(crc>>8)
}
