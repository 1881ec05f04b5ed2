//go:build darwin
// +build darwin

package sinkdarwin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/midikbd/internal/midiwire"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// ErrPortClosed is returned by Send after Close.
var ErrPortClosed = errors.New("virtual source closed")

// Opener publishes CoreMIDI virtual sources. A virtual source is what other
// applications list as a MIDI input.
type Opener struct {
	logger         contracts.Logger
	coreMIDIConfig *contracts.CoreMIDIConfig

	mu     sync.Mutex
	client *coremidi.Client
}

// NewMIDIOpener initializes the CoreMIDI backend. The CoreMIDI client itself
// is created on the first Open.
func NewMIDIOpener(options *contracts.ClientOptions) (contracts.MIDIOpener, error) {
	return &Opener{
		logger:         options.Logger,
		coreMIDIConfig: options.CoreMIDIConfig,
	}, nil
}

func (o *Opener) coreClient() (coremidi.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.client != nil {
		return *o.client, nil
	}
	client, err := coremidi.NewClient(o.coreMIDIConfig.ClientName)
	if err != nil {
		return coremidi.Client{}, err
	}
	o.logger.Info("CoreMIDI client successfully created",
		o.logger.Field().String("client", o.coreMIDIConfig.ClientName))
	o.client = &client
	return client, nil
}

// Open creates a virtual source named portName.
func (o *Opener) Open(portName string) (contracts.MIDIPort, error) {
	client, err := o.coreClient()
	if err != nil {
		return nil, fmt.Errorf("%w: coremidi client: %v", contracts.ErrPortOpen, err)
	}

	source, err := coremidi.NewSource(client, portName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", contracts.ErrPortOpen, portName, err)
	}

	name := source.Name()
	if name == "" {
		name = portName
	}
	o.logger.Info("Virtual MIDI source created", o.logger.Field().String("port", name))
	return &virtualSource{source: source, name: name, logger: o.logger}, nil
}

// virtualSource sends by posting packets as if they were received from the
// source, which is how CoreMIDI delivers them to connected destinations.
type virtualSource struct {
	source coremidi.Source
	name   string
	logger contracts.Logger

	mu     sync.Mutex
	closed bool
}

func (v *virtualSource) Name() string { return v.name }

func (v *virtualSource) Send(ev contracts.NoteEvent) error {
	msg, err := midiwire.Encode(ev)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrPortClosed
	}
	packet := coremidi.NewPacket(msg, 0)
	return packet.Received(&v.source)
}

// Close stops sending. CoreMIDI removes the source when the client process
// exits.
func (v *virtualSource) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.closed = true
		v.logger.Debug("Virtual MIDI source closed", v.logger.Field().String("port", v.name))
	}
	return nil
}
