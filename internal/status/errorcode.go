// internal/status/errorcode.go
package status

import "errors"

// ErrorCode is the Code() of the first error in err's chain that has one,
// 0 for nil and 1 otherwise. codec.FrameError is the usual source.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var c interface{ Code() uint16 }
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}
