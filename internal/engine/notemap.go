package engine

import (
	"fmt"

	"github.com/leandrodaf/midikbd/sdk/contracts"
)

// Keycodes use X numbering (evdev code + 8), the numbers printed by xev.
const (
	KeyControlL = 37
	KeyControlR = 105
	KeyC        = 54
)

// CanonicalRows is the en_US layout: 1..=, q..], a..\ and z../.
// The keycodes between rows (backspace, tab, enter, ctrl, shift...) are dead.
var CanonicalRows = []contracts.KeyRange{
	{First: 10, Last: 21},
	{First: 24, Last: 35},
	{First: 38, Last: 48},
	{First: 51, Last: 61},
}

// MapResult tells what a keycode maps to.
type MapResult int

const (
	// Unmapped keycodes are outside every row.
	Unmapped MapResult = iota
	// Mapped keycodes yield a valid MIDI note.
	Mapped
	// OutOfRange keycodes fall in a row but compute a note outside 0-127.
	OutOfRange
)

type layoutRow struct {
	contracts.KeyRange
	dead int // keycodes skipped before this row, cumulative
}

// Layout is an ordered table of keycode rows. Notes run continuously across
// rows: the dead keycodes between two rows do not consume pitches.
type Layout struct {
	rows []layoutRow
}

// NewLayout validates rows and precomputes the dead-key offset of each one.
// Rows must be non-empty, not inverted, non-negative and strictly ascending.
func NewLayout(rows []contracts.KeyRange) (Layout, error) {
	if len(rows) == 0 {
		return Layout{}, fmt.Errorf("%w: no rows", contracts.ErrInvalidLayout)
	}

	out := make([]layoutRow, 0, len(rows))
	dead := 0
	for i, r := range rows {
		if r.First < 0 {
			return Layout{}, fmt.Errorf("%w: row %d starts at negative keycode %d", contracts.ErrInvalidLayout, i+1, r.First)
		}
		if r.First > r.Last {
			return Layout{}, fmt.Errorf("%w: row %d is inverted (%d-%d)", contracts.ErrInvalidLayout, i+1, r.First, r.Last)
		}
		if i > 0 {
			prev := rows[i-1]
			if r.First <= prev.Last {
				return Layout{}, fmt.Errorf("%w: row %d (%d-%d) overlaps or precedes row %d (%d-%d)",
					contracts.ErrInvalidLayout, i+1, r.First, r.Last, i, prev.First, prev.Last)
			}
			dead += r.First - prev.Last - 1
		}
		out = append(out, layoutRow{KeyRange: r, dead: dead})
	}
	return Layout{rows: out}, nil
}

// MustLayout is NewLayout for tables known to be valid.
func MustLayout(rows []contracts.KeyRange) Layout {
	l, err := NewLayout(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Offset returns the distance in semitones of keycode from the first key.
func (l Layout) Offset(keycode int) (int, bool) {
	if len(l.rows) == 0 {
		return 0, false
	}
	base := l.rows[0].First
	for _, r := range l.rows {
		if keycode < r.First {
			return 0, false
		}
		if keycode <= r.Last {
			return keycode - base - r.dead, true
		}
	}
	return 0, false
}

// Keys returns the number of mapped keycodes.
func (l Layout) Keys() int {
	n := 0
	for _, r := range l.rows {
		n += r.Last - r.First + 1
	}
	return n
}

// Rows returns a copy of the layout's rows.
func (l Layout) Rows() []contracts.KeyRange {
	out := make([]contracts.KeyRange, len(l.rows))
	for i, r := range l.rows {
		out[i] = r.KeyRange
	}
	return out
}

// Mapper turns keycodes into MIDI notes for a fixed layout and root note.
type Mapper struct {
	layout Layout
	root   int
}

// NewMapper binds a layout to a root note in 0-127.
func NewMapper(layout Layout, rootNote int) (Mapper, error) {
	if rootNote < 0 || rootNote > 127 {
		return Mapper{}, fmt.Errorf("%w: root note %d outside 0-127", contracts.ErrInvalidOption, rootNote)
	}
	return Mapper{layout: layout, root: rootNote}, nil
}

// Note returns the note for keycode. For OutOfRange the computed value is
// still returned so callers can report it.
func (m Mapper) Note(keycode int) (int, MapResult) {
	off, ok := m.layout.Offset(keycode)
	if !ok {
		return 0, Unmapped
	}
	note := m.root + off
	if note < 0 || note > 127 {
		return note, OutOfRange
	}
	return note, Mapped
}

// RootNote returns the note of the first key.
func (m Mapper) RootNote() int { return m.root }

// Highest returns the note computed for the last key of the layout.
func (m Mapper) Highest() int { return m.root + m.layout.Keys() - 1 }
