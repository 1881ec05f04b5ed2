package contracts

import "fmt"

// NoteKind is the MIDI status nibble of a note message.
type NoteKind byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn NoteKind = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff NoteKind = 0x80
)

// String returns "note_on" or "note_off".
func (k NoteKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	}
	return fmt.Sprintf("note_kind(0x%X)", byte(k))
}

// NoteEvent is a single note message handed to a MIDIPort. Values are only
// built through NewNoteEvent and are not modified afterwards.
type NoteEvent struct {
	Kind     NoteKind
	Channel  uint8 // 0-15
	Note     uint8 // 0-127
	Velocity uint8 // 0-127
}

// NewNoteEvent builds a NoteEvent, masking every field into its MIDI range.
func NewNoteEvent(kind NoteKind, channel, note, velocity uint8) NoteEvent {
	return NoteEvent{
		Kind:     kind,
		Channel:  channel & 0x0F,
		Note:     note & 0x7F,
		Velocity: velocity & 0x7F,
	}
}

// Status returns the MIDI status byte (command | channel).
func (e NoteEvent) Status() byte {
	return byte(e.Kind) | e.Channel
}

func (e NoteEvent) String() string {
	return fmt.Sprintf("%s ch=%d note=%d vel=%d", e.Kind, e.Channel, e.Note, e.Velocity)
}

// MIDIOpener publishes virtual MIDI output ports.
type MIDIOpener interface {
	Open(portName string) (MIDIPort, error)
}

// MIDIPort is an open virtual MIDI output port.
type MIDIPort interface {
	// Name is the name under which the port was actually advertised.
	Name() string
	// Send transmits one note message synchronously.
	Send(event NoteEvent) error
	Close() error
}
