package midikbd

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikbd/internal/capture/capturelinux"
	"github.com/leandrodaf/midikbd/internal/sink/sinkdarwin"
	"github.com/leandrodaf/midikbd/internal/sink/sinkrtmidi"
	"github.com/leandrodaf/midikbd/sdk/contracts"
)

// grabberInitializers maps OS names to input backend initializers.
var grabberInitializers = map[string]func(*contracts.ClientOptions) (contracts.KeyboardGrabber, error){
	"linux": capturelinux.NewKeyboardGrabber, // evdev with EVIOCGRAB.
}

// openerInitializers maps OS names to MIDI backend initializers.
var openerInitializers = map[string]func(*contracts.ClientOptions) (contracts.MIDIOpener, error){
	"linux":  sinkrtmidi.NewMIDIOpener, // ALSA sequencer via rtmidi.
	"darwin": sinkdarwin.NewMIDIOpener, // CoreMIDI virtual source.
}

// newGrabber returns the injected input backend or the one for the current
// operating system, or ErrUnsupportedOS.
func newGrabber(opts *contracts.ClientOptions) (contracts.KeyboardGrabber, error) {
	if opts.Grabber != nil {
		return opts.Grabber, nil
	}
	if initializer, exists := grabberInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: no keyboard capture backend for %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}

// newOpener returns the injected MIDI backend or the one for the current
// operating system, or ErrUnsupportedOS.
func newOpener(opts *contracts.ClientOptions) (contracts.MIDIOpener, error) {
	if opts.Opener != nil {
		return opts.Opener, nil
	}
	if initializer, exists := openerInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: no MIDI backend for %s", contracts.ErrUnsupportedOS, runtime.GOOS)
}
