//go:build linux
// +build linux

package capturelinux

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/holoplot/go-evdev"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

const (
	devicePathPrefix = "/dev/input/event"

	// evdev key codes are X keycodes minus 8.
	xKeycodeOffset = 8

	evKeyRelease = 0
	evKeyPress   = 1
	evKeyRepeat  = 2
)

// Grabber takes exclusive hold of evdev devices through EVIOCGRAB.
type Grabber struct {
	logger contracts.Logger
}

// NewKeyboardGrabber returns the evdev input backend.
func NewKeyboardGrabber(options *contracts.ClientOptions) (contracts.KeyboardGrabber, error) {
	return &Grabber{logger: options.Logger}, nil
}

// DevicePath returns the device node of an input device id.
func DevicePath(deviceID int) string {
	return devicePathPrefix + strconv.Itoa(deviceID)
}

// Grab opens /dev/input/event<deviceID> and grabs it. The grab fails
// immediately with ErrDeviceBusy if another client already holds it.
func (g *Grabber) Grab(deviceID int) (contracts.GrabbedDevice, error) {
	path := DevicePath(deviceID)
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}

	if !slices.Contains(dev.CapableTypes(), evdev.EV_KEY) {
		_ = dev.Close()
		return nil, fmt.Errorf("%w: %s", contracts.ErrNotKeyboard, path)
	}

	if err := dev.Grab(); err != nil {
		_ = dev.Close()
		return nil, classify(path, err)
	}

	name, err := dev.Name()
	if err != nil || name == "" {
		name = path
	}
	g.logger.Info("Input device grabbed",
		g.logger.Field().String("device", name),
		g.logger.Field().String("path", path))

	return &grabbedDevice{dev: dev, name: name, path: path, logger: g.logger}, nil
}

// ListDevices enumerates the event devices that report key events. Devices
// that cannot be opened are skipped.
func (g *Grabber) ListDevices() ([]contracts.DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("error listing input devices: %w", err)
	}

	var devices []contracts.DeviceInfo
	for _, p := range paths {
		id, err := strconv.Atoi(strings.TrimPrefix(p.Path, devicePathPrefix))
		if err != nil {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			g.logger.Debug("Skipping unreadable input device",
				g.logger.Field().String("path", p.Path),
				g.logger.Field().Error("error", err))
			continue
		}
		keys := slices.Contains(dev.CapableTypes(), evdev.EV_KEY)
		_ = dev.Close()
		if !keys {
			continue
		}
		devices = append(devices, contracts.DeviceInfo{ID: id, Name: p.Name, Path: p.Path})
	}
	slices.SortFunc(devices, func(a, b contracts.DeviceInfo) int { return a.ID - b.ID })
	return devices, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("%w: %s", contracts.ErrDeviceBusy, path)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return fmt.Errorf("%w: %s", contracts.ErrDeviceNotFound, path)
	case errors.Is(err, fs.ErrPermission), errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%w: %s", contracts.ErrPermission, path)
	}
	return fmt.Errorf("%s: %w", path, err)
}

type grabbedDevice struct {
	dev    *evdev.InputDevice
	name   string
	path   string
	logger contracts.Logger

	releaseOnce sync.Once
	releaseErr  error
}

func (d *grabbedDevice) Name() string { return d.name }

// NextEvent blocks on the device node. Closing the node in Release unblocks it.
func (d *grabbedDevice) NextEvent() (contracts.RawKeyEvent, error) {
	ev, err := d.dev.ReadOne()
	if err != nil {
		return contracts.RawKeyEvent{}, fmt.Errorf("read %s: %w", d.path, err)
	}
	return translate(ev.Type, ev.Code, ev.Value), nil
}

func translate(typ evdev.EvType, code evdev.EvCode, value int32) contracts.RawKeyEvent {
	if typ != evdev.EV_KEY {
		return contracts.RawKeyEvent{Keycode: int(code), Kind: contracts.KeyOther}
	}
	ev := contracts.RawKeyEvent{Keycode: int(code) + xKeycodeOffset}
	switch value {
	case evKeyPress, evKeyRepeat:
		ev.Kind = contracts.KeyPress
	case evKeyRelease:
		ev.Kind = contracts.KeyRelease
	default:
		ev.Kind = contracts.KeyOther
	}
	return ev
}

// Release ungrabs and closes the device. Both steps run even if the first fails.
func (d *grabbedDevice) Release() error {
	d.releaseOnce.Do(func() {
		if err := d.dev.Ungrab(); err != nil && !errors.Is(err, fs.ErrClosed) {
			d.releaseErr = multierr.Append(d.releaseErr, fmt.Errorf("ungrab %s: %w", d.path, err))
		}
		if err := d.dev.Close(); err != nil {
			d.releaseErr = multierr.Append(d.releaseErr, fmt.Errorf("close %s: %w", d.path, err))
		}
	})
	return d.releaseErr
}
