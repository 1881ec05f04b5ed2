package midikbd

import (
	"fmt"

	"github.com/leandrodaf/midikbd/internal/engine"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"go.uber.org/multierr"
)

// Start grabs the input device, publishes the virtual MIDI port and returns
// a session ready to Run. Options are validated before anything is acquired;
// if the port cannot be opened the device is released before returning.
//
// deviceID int: Input device identifier, as listed by ListDevices.
// portName string: Name under which the virtual MIDI port is advertised.
// opts ...contracts.Option: A variadic list of option functions to customize the session.
//
// Returns:
//   - contracts.Session: The running session.
//   - error: An error, if any occurred while validating options or acquiring resources.
func Start(deviceID int, portName string, opts ...contracts.Option) (contracts.Session, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	if deviceID < 0 {
		return nil, fmt.Errorf("%w: device id %d is negative", contracts.ErrInvalidOption, deviceID)
	}
	if portName == "" {
		return nil, fmt.Errorf("%w: empty MIDI port name", contracts.ErrInvalidOption)
	}
	cfg, err := buildConfig(options)
	if err != nil {
		return nil, err
	}

	grabber, err := newGrabber(&options)
	if err != nil {
		return nil, err
	}
	opener, err := newOpener(&options)
	if err != nil {
		return nil, err
	}

	device, err := grabber.Grab(deviceID)
	if err != nil {
		return nil, fmt.Errorf("grab device %d: %w", deviceID, err)
	}

	port, err := opener.Open(portName)
	if err != nil {
		if relErr := device.Release(); relErr != nil {
			options.Logger.Error("Failed to release input device after port error",
				options.Logger.Field().Error("error", relErr))
			err = multierr.Append(err, relErr)
		}
		return nil, fmt.Errorf("open MIDI port %q: %w", portName, err)
	}

	options.Logger.Debug("Session started",
		options.Logger.Field().String("device", device.Name()),
		options.Logger.Field().String("port", port.Name()),
		options.Logger.Field().Int("root_note", cfg.Mapper.RootNote()),
		options.Logger.Field().Int("highest_note", cfg.Mapper.Highest()))

	return engine.NewSession(device, port, cfg), nil
}

// ListDevices returns the input devices that can be passed to Start.
func ListDevices(opts ...contracts.Option) ([]contracts.DeviceInfo, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	grabber, err := newGrabber(&options)
	if err != nil {
		return nil, err
	}
	return grabber.ListDevices()
}
