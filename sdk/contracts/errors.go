package contracts

import "errors"

// Startup errors. Nothing has been acquired, or whatever was acquired has
// already been released, when one of these is returned.
var (
	ErrUnsupportedOS  = errors.New("unsupported operating system")
	ErrInvalidOption  = errors.New("invalid option")
	ErrInvalidLayout  = errors.New("invalid key layout")
	ErrDeviceNotFound = errors.New("input device not found")
	ErrDeviceBusy     = errors.New("input device already grabbed")
	ErrPermission     = errors.New("insufficient privilege for input device")
	ErrNotKeyboard    = errors.New("input device does not report key events")
	ErrPortOpen       = errors.New("error creating virtual MIDI port")
)

// Session errors. Both are fatal: a lost note-off leaves a stuck note and a
// lost key event cannot be reconciled, so neither is retried.
var (
	ErrSinkSend    = errors.New("error sending MIDI message")
	ErrCaptureLost = errors.New("input capture lost")
)
