//go:build !darwin
// +build !darwin

package sinkdarwin

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikbd/sdk/contracts"
)

type DummyMIDIOpener struct {
	logger contracts.Logger
}

func NewMIDIOpener(options *contracts.ClientOptions) (contracts.MIDIOpener, error) {
	options.Logger.Debug("Using dummy CoreMIDI backend for non-macOS system")
	return &DummyMIDIOpener{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIOpener) Open(portName string) (contracts.MIDIPort, error) {
	m.logger.Warn("Open called on dummy CoreMIDI backend")
	return nil, fmt.Errorf("%w: CoreMIDI on %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}
