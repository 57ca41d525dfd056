// Package keys provides key chord parsing and the key binding set used
// by the terminal settings system.
//
// A chord is a single key press with optional modifiers, written in
// config files as "ctrl+shift+t". Bindings map chords to named commands
// and support JSON layering: documents applied later override earlier
// ones per chord.
package keys

import (
	"fmt"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical config-file spelling, e.g. "ctrl+shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(name)]; ok {
		return m
	}
	return ModNone
}

// Chord is a single key press with modifiers.
type Chord struct {
	// Modifiers are the modifier keys held during the press.
	Modifiers Modifier

	// Key is the normalized (lowercase) key name, e.g. "t", "f11", "enter".
	Key string
}

// ParseChord parses a chord spelling like "ctrl+shift+t".
// The final segment is the key; everything before it must be a known
// modifier name. Parsing is case-insensitive.
func ParseChord(s string) (Chord, error) {
	if s == "+" {
		return Chord{Key: "+"}, nil
	}

	segments := strings.Split(s, "+")

	// "ctrl++" means ctrl and the plus key.
	if strings.HasSuffix(s, "++") {
		segments = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	}

	var chord Chord
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if i == len(segments)-1 {
			if seg == "" {
				return Chord{}, fmt.Errorf("key chord %q has no key", s)
			}
			chord.Key = strings.ToLower(seg)
			continue
		}

		mod := ModifierFromName(seg)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("key chord %q has unknown modifier %q", s, seg)
		}
		chord.Modifiers = chord.Modifiers.With(mod)
	}

	return chord, nil
}

// String returns the canonical spelling of the chord.
func (c Chord) String() string {
	if c.Modifiers.IsEmpty() {
		return c.Key
	}
	return c.Modifiers.String() + "+" + c.Key
}

// IsZero returns true for the zero chord.
func (c Chord) IsZero() bool {
	return c.Key == "" && c.Modifiers.IsEmpty()
}
