package engine

import "sort"

// HeldKeys records which keycodes are currently down. A keycode is present
// only while its last event was a press; absence means released.
type HeldKeys struct {
	down map[int]bool
}

// NewHeldKeys returns an empty tracker.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{down: make(map[int]bool, 16)}
}

// IsHeld reports whether keycode is down.
func (h *HeldKeys) IsHeld(keycode int) bool {
	return h.down[keycode]
}

// Set marks keycode as down or up.
func (h *HeldKeys) Set(keycode int, held bool) {
	if held {
		h.down[keycode] = true
		return
	}
	delete(h.down, keycode)
}

// Len returns the number of keys down.
func (h *HeldKeys) Len() int { return len(h.down) }

// Held returns the keycodes currently down in ascending order.
func (h *HeldKeys) Held() []int {
	out := make([]int, 0, len(h.down))
	for k := range h.down {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Clear forgets every key.
func (h *HeldKeys) Clear() {
	clear(h.down)
}
