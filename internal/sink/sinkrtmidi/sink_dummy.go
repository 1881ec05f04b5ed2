//go:build !linux
// +build !linux

package sinkrtmidi

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikbd/sdk/contracts"
)

type dummyOpener struct {
	logger contracts.Logger
}

// NewMIDIOpener initializes a dummy rtmidi backend for non-Linux systems.
func NewMIDIOpener(options *contracts.ClientOptions) (contracts.MIDIOpener, error) {
	options.Logger.Debug("Using dummy rtmidi backend for non-Linux system")
	return &dummyOpener{logger: options.Logger}, nil
}

func (o *dummyOpener) Open(portName string) (contracts.MIDIPort, error) {
	o.logger.Warn("Open called on dummy rtmidi backend")
	return nil, fmt.Errorf("%w: rtmidi backend on %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}
