// internal/codec/errors.go
package codec

import "fmt"

// FrameErrorKind classifies a rejected response frame.
type FrameErrorKind uint8

const (
	KindIncomplete FrameErrorKind = iota + 1
	KindAddressMismatch
	KindFunctionMismatch
	KindLengthMismatch
	KindCrcMismatch
	KindDeviceException
	KindEchoMismatch
)

func (k FrameErrorKind) String() string {
	switch k {
	case KindIncomplete:
		return "incomplete"
	case KindAddressMismatch:
		return "address mismatch"
	case KindFunctionMismatch:
		return "function mismatch"
	case KindLengthMismatch:
		return "length mismatch"
	case KindCrcMismatch:
		return "crc mismatch"
	case KindDeviceException:
		return "device exception"
	case KindEchoMismatch:
		return "echo mismatch"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// FrameError is returned for every response the codec refuses to decode.
// Got and Want carry the offending and expected values where meaningful.
type FrameError struct {
	Kind FrameErrorKind
	Got  int
	Want int

	// Exception is the device exception code (KindDeviceException only).
	Exception byte
}

func (e *FrameError) Error() string {
	switch e.Kind {
	case KindDeviceException:
		return fmt.Sprintf("codec: device exception 0x%02X", e.Exception)
	case KindCrcMismatch:
		return fmt.Sprintf("codec: crc mismatch: got 0x%04X want 0x%04X", e.Got, e.Want)
	case KindIncomplete, KindLengthMismatch:
		return fmt.Sprintf("codec: %s: got %d want %d", e.Kind, e.Got, e.Want)
	default:
		return fmt.Sprintf("codec: %s: got 0x%02X want 0x%02X", e.Kind, e.Got, e.Want)
	}
}

// Is matches on Kind only, so sentinels compare against any instance.
func (e *FrameError) Is(target error) bool {
	t, ok := target.(*FrameError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Code exposes a numeric error code for status reporting.
// Device exceptions report the raw exception byte; other kinds are
// offset by 0x100 so they never collide with device codes.
func (e *FrameError) Code() uint16 {
	if e.Kind == KindDeviceException {
		return uint16(e.Exception)
	}
	return 0x100 + uint16(e.Kind)
}

// Sentinels for errors.Is.
var (
	ErrIncomplete       = &FrameError{Kind: KindIncomplete}
	ErrAddressMismatch  = &FrameError{Kind: KindAddressMismatch}
	ErrFunctionMismatch = &FrameError{Kind: KindFunctionMismatch}
	ErrLengthMismatch   = &FrameError{Kind: KindLengthMismatch}
	ErrCrcMismatch      = &FrameError{Kind: KindCrcMismatch}
	ErrDeviceException  = &FrameError{Kind: KindDeviceException}
	ErrEchoMismatch     = &FrameError{Kind: KindEchoMismatch}
)
