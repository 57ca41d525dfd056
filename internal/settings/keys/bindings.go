package keys

import (
	"fmt"
	"sort"
)

// UnboundCommand removes a chord's binding when used as the command of
// a layered binding entry.
const UnboundCommand = "unbound"

// JSON keys for a serialized binding entry.
const (
	commandKey = "command"
	keysKey    = "keys"
)

// Bindings maps key chords to command names. It is one node in the
// settings tree: the owner layers partial JSON documents onto it and
// serializes it back with ToJSON.
//
// Bindings performs no synchronization; the owning settings object
// serializes access.
type Bindings struct {
	byChord map[string]string // canonical chord spelling -> command
}

// NewBindings creates an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{
		byChord: make(map[string]string),
	}
}

// Bind associates a chord with a command, replacing any previous
// binding for that chord.
func (b *Bindings) Bind(command string, chord Chord) {
	b.byChord[chord.String()] = command
}

// BindKeys parses a chord spelling and binds it to a command.
func (b *Bindings) BindKeys(command, keys string) error {
	chord, err := ParseChord(keys)
	if err != nil {
		return err
	}
	b.Bind(command, chord)
	return nil
}

// Unbind removes the binding for a chord.
// Returns true if a binding existed.
func (b *Bindings) Unbind(chord Chord) bool {
	key := chord.String()
	if _, ok := b.byChord[key]; !ok {
		return false
	}
	delete(b.byChord, key)
	return true
}

// Command returns the command bound to a chord.
func (b *Bindings) Command(chord Chord) (string, bool) {
	cmd, ok := b.byChord[chord.String()]
	return cmd, ok
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(b.byChord)
}

// Chords returns the bound chord spellings in sorted order.
func (b *Bindings) Chords() []string {
	chords := make([]string, 0, len(b.byChord))
	for c := range b.byChord {
		chords = append(chords, c)
	}
	sort.Strings(chords)
	return chords
}

// Clone returns an independent copy of the binding set.
func (b *Bindings) Clone() *Bindings {
	clone := NewBindings()
	for chord, cmd := range b.byChord {
		clone.byChord[chord] = cmd
	}
	return clone
}

// ToJSON serializes the binding set as an array of binding objects,
// sorted by chord for stable output.
func (b *Bindings) ToJSON() []any {
	out := make([]any, 0, len(b.byChord))
	for _, chord := range b.Chords() {
		out = append(out, map[string]any{
			commandKey: b.byChord[chord],
			keysKey:    chord,
		})
	}
	return out
}

// LayerJSON merges an array of binding objects into the set. Each entry
// is an object with a "command" string and a "keys" chord spelling
// (a single string or an array of spellings). Entries are applied in
// order, so later entries override earlier ones for the same chord.
// A command of "unbound" removes the chord's binding.
//
// Malformed entries and chord spellings are reported as errors; the
// bindings applied before the failing entry remain in place.
func (b *Bindings) LayerJSON(v any) error {
	entries, ok := v.([]any)
	if !ok {
		return fmt.Errorf("keybindings must be an array, got %T", v)
	}

	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("keybinding %d: expected an object, got %T", i, entry)
		}

		command, ok := obj[commandKey].(string)
		if !ok {
			return fmt.Errorf("keybinding %d: missing command", i)
		}

		var spellings []string
		switch keys := obj[keysKey].(type) {
		case string:
			spellings = []string{keys}
		case []any:
			for _, k := range keys {
				s, ok := k.(string)
				if !ok {
					return fmt.Errorf("keybinding %d: keys must be strings, got %T", i, k)
				}
				spellings = append(spellings, s)
			}
		default:
			return fmt.Errorf("keybinding %d: missing keys", i)
		}

		for _, spelling := range spellings {
			chord, err := ParseChord(spelling)
			if err != nil {
				return fmt.Errorf("keybinding %d: %w", i, err)
			}
			if command == UnboundCommand {
				b.Unbind(chord)
				continue
			}
			b.Bind(command, chord)
		}
	}

	return nil
}
