//go:build linux
// +build linux

package sinkrtmidi

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/midikbd/internal/midiwire"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/multierr"
)

// Opener publishes virtual ALSA sequencer ports through rtmidi.
type Opener struct {
	logger contracts.Logger
}

// NewMIDIOpener returns the rtmidi MIDI backend.
func NewMIDIOpener(options *contracts.ClientOptions) (contracts.MIDIOpener, error) {
	return &Opener{logger: options.Logger}, nil
}

// Open creates a virtual output port other applications can connect to.
func (o *Opener) Open(portName string) (contracts.MIDIPort, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: rtmidi driver: %w", contracts.ErrPortOpen, err)
	}

	out, err := drv.OpenVirtualOut(portName)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("%w: %q: %w", contracts.ErrPortOpen, portName, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		_ = out.Close()
		_ = drv.Close()
		return nil, fmt.Errorf("%w: %q: %w", contracts.ErrPortOpen, portName, err)
	}

	name := out.String()
	if name == "" {
		name = portName
	}
	o.logger.Info("Virtual MIDI port created", o.logger.Field().String("port", name))

	return &port{drv: drv, out: out, send: send, name: name}, nil
}

type port struct {
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(midi.Message) error
	name string

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func (p *port) Name() string { return p.name }

func (p *port) Send(ev contracts.NoteEvent) error {
	msg, err := midiwire.Encode(ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("port %q is closed", p.name)
	}
	return p.send(msg)
}

// Close unpublishes the port and shuts the driver down.
func (p *port) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.closeErr = multierr.Combine(p.out.Close(), p.drv.Close())
	})
	return p.closeErr
}
