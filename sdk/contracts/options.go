package contracts

const (
	// DefaultRootNote is the pitch of the first mapped key (C2).
	DefaultRootNote = 36
	// DefaultVelocity is the fixed velocity of every note-on.
	DefaultVelocity = 64
)

// KeyRange is an inclusive range of keycodes forming one row of the layout.
type KeyRange struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// ExitComboConfig designates the chord that ends a session from the grabbed
// device: Terminator pressed while any of Modifiers is held.
type ExitComboConfig struct {
	Modifiers  []int `yaml:"modifiers"`
	Terminator int   `yaml:"terminator"`
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration of a capture session.
type ClientOptions struct {
	Logger         Logger           // Logger for logging events and errors.
	LogLevel       LogLevel         // Level of logging to use.
	LogFilePath    string           // File path for logging if file logging is enabled.
	RootNote       *int             // Pitch of the first mapped key, 0-127.
	Velocity       int              // Note-on velocity, 1-127.
	Channel        int              // MIDI channel, 0-15.
	Rows           []KeyRange       // Layout rows, ascending. Empty selects the built-in layout.
	ExitCombo      *ExitComboConfig // Exit chord. Nil selects ^C.
	CoreMIDIConfig *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	Grabber        KeyboardGrabber  // Input backend. Nil selects the platform backend.
	Opener         MIDIOpener       // MIDI backend. Nil selects the platform backend.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the session.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the session.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs logs to the given file instead of standard error.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithRootNote sets the pitch assigned to the first mapped key.
func WithRootNote(note int) Option {
	return func(opts *ClientOptions) {
		opts.RootNote = &note
	}
}

// WithVelocity sets the fixed note-on velocity.
func WithVelocity(velocity int) Option {
	return func(opts *ClientOptions) {
		opts.Velocity = velocity
	}
}

// WithChannel sets the MIDI channel (0-15) notes are sent on.
func WithChannel(channel int) Option {
	return func(opts *ClientOptions) {
		opts.Channel = channel
	}
}

// WithLayout replaces the built-in keyboard layout.
func WithLayout(rows ...KeyRange) Option {
	return func(opts *ClientOptions) {
		opts.Rows = append([]KeyRange(nil), rows...)
	}
}

// WithExitCombo replaces the default ^C exit chord.
func WithExitCombo(combo ExitComboConfig) Option {
	return func(opts *ClientOptions) {
		opts.ExitCombo = &combo
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration used on macOS.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithGrabber overrides the platform input backend.
func WithGrabber(g KeyboardGrabber) Option {
	return func(opts *ClientOptions) {
		opts.Grabber = g
	}
}

// WithOpener overrides the platform MIDI backend.
func WithOpener(o MIDIOpener) Option {
	return func(opts *ClientOptions) {
		opts.Opener = o
	}
}
