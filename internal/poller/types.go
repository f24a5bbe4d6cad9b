// internal/poller/types.go
package poller

import (
	"errors"

	"github.com/tamzrod/pzem-monitor/internal/codec"
	"github.com/tamzrod/pzem-monitor/internal/status"
)

// PollResult is the raw result of one exchange.
type PollResult struct {
	MeterID string
	Address uint8

	// Reading is valid only when Err is nil. Timestamp is left unset.
	Reading codec.Reading

	// Raw holds the bytes received, including short reads.
	Raw []byte

	Err error // non-nil means the exchange failed
}

// Classify maps the exchange error to a wire-level outcome.
// A nil error is a provisional success; plausibility is judged later.
func (r PollResult) Classify() status.Outcome {
	switch {
	case r.Err == nil:
		return status.OutcomeSuccess
	case errors.Is(r.Err, codec.ErrIncomplete):
		return status.OutcomeTimeout
	default:
		return status.OutcomeError
	}
}
