package contracts

// KeyKind classifies a raw input event.
type KeyKind int

const (
	// KeyOther is any event that is not a key press or release (sync, LED, axis...).
	KeyOther KeyKind = iota
	// KeyPress is a key going down. Autorepeat is reported as further presses.
	KeyPress
	// KeyRelease is a key going up.
	KeyRelease
)

// String returns the name of the kind.
func (k KeyKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRelease:
		return "release"
	}
	return "other"
}

// RawKeyEvent is one event read from a grabbed input device.
type RawKeyEvent struct {
	Keycode int     // Device keycode, X numbering (evdev code + 8).
	Kind    KeyKind // Press, release or anything else.
}

// KeyboardGrabber acquires exclusive access to an input device.
type KeyboardGrabber interface {
	// Grab takes the device identified by deviceID exclusively. A device that is
	// already grabbed fails with ErrDeviceBusy instead of waiting.
	Grab(deviceID int) (GrabbedDevice, error)
	// ListDevices enumerates devices that report key events.
	ListDevices() ([]DeviceInfo, error)
}

// GrabbedDevice is an input device held exclusively by this process.
type GrabbedDevice interface {
	Name() string
	// NextEvent blocks until the device produces an event. After Release it
	// returns an error.
	NextEvent() (RawKeyEvent, error)
	// Release gives the device back to the system and closes it.
	Release() error
}
