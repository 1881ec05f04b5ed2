package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/leandrodaf/midikbd/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// Config holds the settings that can be given through the environment.
// Command-line flags take precedence over every field.
type Config struct {
	RootNote int    `envconfig:"MIDIKBD_ROOT_NOTE" default:"36"`
	Layout   string `envconfig:"MIDIKBD_LAYOUT"`
	LogLevel string `envconfig:"MIDIKBD_LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"MIDIKBD_LOG_FILE"`
	Velocity int    `envconfig:"MIDIKBD_VELOCITY" default:"64"`
	Channel  int    `envconfig:"MIDIKBD_CHANNEL" default:"0"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", contracts.ErrInvalidOption, err)
	}
	return cfg, nil
}

// LayoutFile is the YAML document accepted by --layout.
//
//	rows:
//	  - {first: 10, last: 21}
//	  - {first: 24, last: 35}
//	exit_combo:
//	  modifiers: [37, 105]
//	  terminator: 54
type LayoutFile struct {
	Rows      []contracts.KeyRange       `yaml:"rows"`
	ExitCombo *contracts.ExitComboConfig `yaml:"exit_combo,omitempty"`
}

// LoadLayoutFile reads and decodes a layout file. Row validation is left to
// the engine so both files and options go through the same checks.
func LoadLayoutFile(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("%w: %w", contracts.ErrInvalidLayout, err)
	}

	var lf LayoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return LayoutFile{}, fmt.Errorf("%w: %s: %w", contracts.ErrInvalidLayout, path, err)
	}
	if len(lf.Rows) == 0 {
		return LayoutFile{}, fmt.Errorf("%w: %s: no rows", contracts.ErrInvalidLayout, path)
	}
	return lf, nil
}

// Options converts the configuration into session options.
func (c Config) Options() ([]contracts.Option, error) {
	level, err := contracts.ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	if c.Velocity < 1 || c.Velocity > 127 {
		return nil, fmt.Errorf("%w: velocity %d outside 1-127", contracts.ErrInvalidOption, c.Velocity)
	}
	opts := []contracts.Option{
		contracts.WithLogLevel(level),
		contracts.WithRootNote(c.RootNote),
		contracts.WithVelocity(c.Velocity),
		contracts.WithChannel(c.Channel),
	}
	if c.LogFile != "" {
		opts = append(opts, contracts.WithLogFile(c.LogFile))
	}
	if c.Layout != "" {
		lf, err := LoadLayoutFile(c.Layout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithLayout(lf.Rows...))
		if lf.ExitCombo != nil {
			opts = append(opts, contracts.WithExitCombo(*lf.ExitCombo))
		}
	}
	return opts, nil
}
