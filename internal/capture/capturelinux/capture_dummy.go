//go:build !linux
// +build !linux

package capturelinux

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikbd/sdk/contracts"
)

type dummyGrabber struct {
	logger contracts.Logger
}

// NewKeyboardGrabber initializes a dummy input backend for non-Linux systems.
func NewKeyboardGrabber(options *contracts.ClientOptions) (contracts.KeyboardGrabber, error) {
	options.Logger.Debug("Using dummy input backend for non-Linux system")
	return &dummyGrabber{logger: options.Logger}, nil
}

// Grab fails: exclusive keyboard capture is only implemented on Linux.
func (g *dummyGrabber) Grab(deviceID int) (contracts.GrabbedDevice, error) {
	g.logger.Warn("Grab called on dummy input backend")
	return nil, fmt.Errorf("%w: keyboard capture on %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}

// ListDevices fails: exclusive keyboard capture is only implemented on Linux.
func (g *dummyGrabber) ListDevices() ([]contracts.DeviceInfo, error) {
	return nil, fmt.Errorf("%w: keyboard capture on %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}
