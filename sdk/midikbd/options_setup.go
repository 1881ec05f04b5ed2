package midikbd

import (
	"fmt"

	"github.com/leandrodaf/midikbd/internal/engine"
	"github.com/leandrodaf/midikbd/internal/logger"
	"github.com/leandrodaf/midikbd/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided
// and rejects values that are out of range.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized options with defaults applied.
//   - error: ErrInvalidOption or ErrInvalidLayout if a value cannot be used.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	if options.RootNote == nil {
		root := contracts.DefaultRootNote
		options.RootNote = &root
	}
	if options.Velocity == 0 {
		options.Velocity = contracts.DefaultVelocity
	}
	if len(options.Rows) == 0 {
		options.Rows = engine.CanonicalRows
	}
	if options.ExitCombo == nil {
		combo := engine.DefaultExitCombo
		options.ExitCombo = &combo
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "midikbd"}
	}

	options.Logger.SetLevel(options.LogLevel)

	if *options.RootNote < 0 || *options.RootNote > 127 {
		return *options, fmt.Errorf("%w: root note %d outside 0-127", contracts.ErrInvalidOption, *options.RootNote)
	}
	if options.Velocity < 1 || options.Velocity > 127 {
		return *options, fmt.Errorf("%w: velocity %d outside 1-127", contracts.ErrInvalidOption, options.Velocity)
	}
	if options.Channel < 0 || options.Channel > 15 {
		return *options, fmt.Errorf("%w: channel %d outside 0-15", contracts.ErrInvalidOption, options.Channel)
	}
	return *options, nil
}

// buildConfig turns validated options into the session's note mapping.
func buildConfig(options contracts.ClientOptions) (engine.Config, error) {
	layout, err := engine.NewLayout(options.Rows)
	if err != nil {
		return engine.Config{}, err
	}
	mapper, err := engine.NewMapper(layout, *options.RootNote)
	if err != nil {
		return engine.Config{}, err
	}
	combo, err := engine.NewExitCombo(*options.ExitCombo)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Mapper:   mapper,
		Combo:    combo,
		Velocity: uint8(options.Velocity),
		Channel:  uint8(options.Channel),
		Logger:   options.Logger,
	}, nil
}
