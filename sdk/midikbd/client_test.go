package midikbd

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midikbd/internal/engine"
	"github.com/leandrodaf/midikbd/internal/logger"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDevice struct {
	released int
}

func (d *stubDevice) Name() string { return "stub keyboard" }

func (d *stubDevice) NextEvent() (contracts.RawKeyEvent, error) {
	return contracts.RawKeyEvent{}, errors.New("no events")
}

func (d *stubDevice) Release() error {
	d.released++
	return nil
}

type stubGrabber struct {
	device  *stubDevice
	err     error
	grabbed []int
	devices []contracts.DeviceInfo
}

func (g *stubGrabber) Grab(id int) (contracts.GrabbedDevice, error) {
	g.grabbed = append(g.grabbed, id)
	if g.err != nil {
		return nil, g.err
	}
	return g.device, nil
}

func (g *stubGrabber) ListDevices() ([]contracts.DeviceInfo, error) {
	return g.devices, nil
}

type stubPort struct{ name string }

func (p *stubPort) Name() string                   { return p.name }
func (p *stubPort) Send(contracts.NoteEvent) error { return nil }
func (p *stubPort) Close() error                   { return nil }

type stubOpener struct {
	err    error
	opened []string
}

func (o *stubOpener) Open(name string) (contracts.MIDIPort, error) {
	o.opened = append(o.opened, name)
	if o.err != nil {
		return nil, o.err
	}
	return &stubPort{name: name + " 128:0"}, nil
}

func stubOptions(g *stubGrabber, o *stubOpener, extra ...contracts.Option) []contracts.Option {
	return append([]contracts.Option{
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithGrabber(g),
		contracts.WithOpener(o),
	}, extra...)
}

func TestStart(t *testing.T) {
	g := &stubGrabber{device: &stubDevice{}}
	o := &stubOpener{}

	session, err := Start(3, "kbd", stubOptions(g, o)...)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, g.grabbed)
	assert.Equal(t, []string{"kbd"}, o.opened)
	assert.Equal(t, "stub keyboard", session.DeviceName())
	assert.Equal(t, "kbd 128:0", session.PortName())
	assert.Equal(t, contracts.Running, session.State())

	require.NoError(t, session.Close())
	assert.Equal(t, 1, g.device.released)
}

func TestStartValidatesBeforeGrab(t *testing.T) {
	tests := []struct {
		name     string
		deviceID int
		port     string
		opts     []contracts.Option
		want     error
	}{
		{"negative device", -1, "kbd", nil, contracts.ErrInvalidOption},
		{"empty port", 3, "", nil, contracts.ErrInvalidOption},
		{"root too high", 3, "kbd", []contracts.Option{contracts.WithRootNote(128)}, contracts.ErrInvalidOption},
		{"velocity too high", 3, "kbd", []contracts.Option{contracts.WithVelocity(128)}, contracts.ErrInvalidOption},
		{"channel too high", 3, "kbd", []contracts.Option{contracts.WithChannel(16)}, contracts.ErrInvalidOption},
		{"inverted row", 3, "kbd", []contracts.Option{contracts.WithLayout(contracts.KeyRange{First: 20, Last: 10})}, contracts.ErrInvalidLayout},
		{"bad exit combo", 3, "kbd", []contracts.Option{contracts.WithExitCombo(contracts.ExitComboConfig{Terminator: 54})}, contracts.ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &stubGrabber{device: &stubDevice{}}
			o := &stubOpener{}

			_, err := Start(tt.deviceID, tt.port, stubOptions(g, o, tt.opts...)...)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, g.grabbed)
			assert.Empty(t, o.opened)
		})
	}
}

func TestStartGrabFailure(t *testing.T) {
	g := &stubGrabber{err: contracts.ErrDeviceBusy}
	o := &stubOpener{}

	_, err := Start(3, "kbd", stubOptions(g, o)...)

	assert.ErrorIs(t, err, contracts.ErrDeviceBusy)
	assert.Empty(t, o.opened)
}

func TestStartReleasesDeviceWhenPortFails(t *testing.T) {
	g := &stubGrabber{device: &stubDevice{}}
	o := &stubOpener{err: contracts.ErrPortOpen}

	_, err := Start(3, "kbd", stubOptions(g, o)...)

	assert.ErrorIs(t, err, contracts.ErrPortOpen)
	assert.Equal(t, 1, g.device.released)
}

func TestListDevices(t *testing.T) {
	want := []contracts.DeviceInfo{{ID: 3, Name: "AT keyboard", Path: "/dev/input/event3"}}
	g := &stubGrabber{devices: want}

	got, err := ListDevices(stubOptions(g, &stubOpener{})...)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApplyDefaultOptions(t *testing.T) {
	options, err := applyDefaultOptions()
	require.NoError(t, err)

	assert.NotNil(t, options.Logger)
	assert.Equal(t, contracts.DefaultRootNote, *options.RootNote)
	assert.Equal(t, contracts.DefaultVelocity, options.Velocity)
	assert.Equal(t, 0, options.Channel)
	assert.Equal(t, engine.CanonicalRows, options.Rows)
	assert.Equal(t, engine.DefaultExitCombo, *options.ExitCombo)
	assert.Equal(t, "midikbd", options.CoreMIDIConfig.ClientName)
}
