package contracts

// DeviceInfo describes an input device that can be grabbed.
type DeviceInfo struct {
	ID   int    // Identifier accepted by KeyboardGrabber.Grab.
	Name string // Device name as reported by the kernel.
	Path string // Device node, e.g. /dev/input/event3.
}
