// internal/scheduler/state.go
package scheduler

import "errors"

// State is the acquisition state machine position.
//
//	Idle -> Polling -> Idle                    steady loop
//	Polling -> Restarting -> Idle | Terminated fault path
//	Idle -> Terminated                         init failure
//
// Terminated is absorbing.
type State uint8

const (
	Idle State = iota
	Polling
	Restarting
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Restarting:
		return "restarting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrRestartExhausted is fatal: every reinit attempt failed and the
// scheduler is Terminated. Recovery needs an external restart.
var ErrRestartExhausted = errors.New("scheduler: restart attempts exhausted")
