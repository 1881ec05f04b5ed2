// Package midiwire encodes note events as MIDI channel voice messages.
package midiwire

import (
	"fmt"

	"github.com/leandrodaf/midikbd/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// Encode returns the three-byte wire form of ev.
func Encode(ev contracts.NoteEvent) (midi.Message, error) {
	switch ev.Kind {
	case contracts.NoteOn:
		return midi.NoteOn(ev.Channel, ev.Note, ev.Velocity), nil
	case contracts.NoteOff:
		return midi.NoteOffVelocity(ev.Channel, ev.Note, ev.Velocity), nil
	}
	return nil, fmt.Errorf("unsupported note kind 0x%X", byte(ev.Kind))
}
