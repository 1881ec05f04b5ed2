package contracts

import "context"

// SessionState is the lifecycle state of a capture session.
type SessionState int32

const (
	Running SessionState = iota
	Terminating
	Terminated
)

func (s SessionState) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Session is a grabbed keyboard bound to an open virtual MIDI port.
type Session interface {
	// Run translates key events into notes until the exit combo is pressed,
	// ctx is cancelled or an I/O error occurs. The device and the port are
	// always released before Run returns. A clean exit returns nil.
	Run(ctx context.Context) error
	// Close tears the session down without running it. Safe to call more than once.
	Close() error
	State() SessionState
	DeviceName() string
	PortName() string
}
