package engine

import (
	"fmt"
	"slices"

	"github.com/leandrodaf/midikbd/sdk/contracts"
)

// DefaultExitCombo is ^C with either control key.
var DefaultExitCombo = contracts.ExitComboConfig{
	Modifiers:  []int{KeyControlL, KeyControlR},
	Terminator: KeyC,
}

// ExitCombo recognises the chord that ends a session from the grabbed device.
type ExitCombo struct {
	modifiers  []int
	terminator int
}

// NewExitCombo validates cfg.
func NewExitCombo(cfg contracts.ExitComboConfig) (ExitCombo, error) {
	if len(cfg.Modifiers) == 0 {
		return ExitCombo{}, fmt.Errorf("%w: exit combo needs at least one modifier", contracts.ErrInvalidOption)
	}
	if cfg.Terminator < 0 {
		return ExitCombo{}, fmt.Errorf("%w: exit combo terminator %d is negative", contracts.ErrInvalidOption, cfg.Terminator)
	}
	for _, m := range cfg.Modifiers {
		if m < 0 {
			return ExitCombo{}, fmt.Errorf("%w: exit combo modifier %d is negative", contracts.ErrInvalidOption, m)
		}
		if m == cfg.Terminator {
			return ExitCombo{}, fmt.Errorf("%w: keycode %d is both modifier and terminator", contracts.ErrInvalidOption, m)
		}
	}
	return ExitCombo{modifiers: slices.Clone(cfg.Modifiers), terminator: cfg.Terminator}, nil
}

// IsModifier reports whether keycode is one of the combo's modifiers.
func (c ExitCombo) IsModifier(keycode int) bool {
	return slices.Contains(c.modifiers, keycode)
}

// ShouldTerminate reports whether keycode is the terminator while a modifier is held.
func (c ExitCombo) ShouldTerminate(keycode int, held *HeldKeys) bool {
	if keycode != c.terminator {
		return false
	}
	for _, m := range c.modifiers {
		if held.IsHeld(m) {
			return true
		}
	}
	return false
}
