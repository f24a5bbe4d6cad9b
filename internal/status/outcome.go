// internal/status/outcome.go
package status

// Outcome classifies one poll of one meter.
type Outcome uint8

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalid
	OutcomeTimeout
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// FaultCounters tracks poll outcomes for one meter.
// Consecutive is the current failure streak; the rest never reset.
type FaultCounters struct {
	Consecutive uint32

	Success uint64
	Error   uint64
	Timeout uint64
	Invalid uint64
}

// Record counts o. Only a success breaks the streak.
func (c *FaultCounters) Record(o Outcome) {
	switch o {
	case OutcomeSuccess:
		c.Success++
		c.Consecutive = 0
		return
	case OutcomeInvalid:
		c.Invalid++
	case OutcomeTimeout:
		c.Timeout++
	default:
		c.Error++
	}
	if c.Consecutive < ^uint32(0) {
		c.Consecutive++
	}
}

// Total is the number of recorded polls.
func (c FaultCounters) Total() uint64 {
	return c.Success + c.Error + c.Timeout + c.Invalid
}

// SuccessRate is the fraction of polls that succeeded, in percent.
// Zero when nothing has been recorded.
func (c FaultCounters) SuccessRate() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Success) / float64(total) * 100
}
