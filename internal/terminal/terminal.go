// Package terminal holds the runtime terminal state fed by the settings
// system: the projected global settings a terminal session consumes and
// the color scheme to tcell bridge.
package terminal

import (
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termstorm/internal/settings/keys"
)

// Settings is the per-session view of the global settings. The settings
// manager projects onto it via ApplyToTerminal; the session reads from
// it on every key press and selection.
type Settings struct {
	mu sync.RWMutex

	keyBindings    *keys.Bindings
	initialRows    int
	initialCols    int
	wordDelimiters string
	copyOnSelect   bool

	// delims is wordDelimiters exploded for O(1) rune lookup.
	delims map[rune]struct{}
}

// NewSettings creates an empty runtime settings view.
func NewSettings() *Settings {
	return &Settings{
		keyBindings: keys.NewBindings(),
		delims:      map[rune]struct{}{},
	}
}

// SetKeyBindings installs the chord to command table.
func (s *Settings) SetKeyBindings(b *keys.Bindings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyBindings = b
}

// SetInitialRows sets the row count for new sessions.
func (s *Settings) SetInitialRows(rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialRows = rows
}

// SetInitialCols sets the column count for new sessions.
func (s *Settings) SetInitialCols(cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialCols = cols
}

// SetWordDelimiters sets the characters that break a double-click word
// selection.
func (s *Settings) SetWordDelimiters(delims string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wordDelimiters = delims
	s.delims = make(map[rune]struct{}, len(delims))
	for _, r := range delims {
		s.delims[r] = struct{}{}
	}
}

// SetCopyOnSelect sets whether selecting text copies it immediately.
func (s *Settings) SetCopyOnSelect(copy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyOnSelect = copy
}

// InitialRows returns the row count for new sessions.
func (s *Settings) InitialRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialRows
}

// InitialCols returns the column count for new sessions.
func (s *Settings) InitialCols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialCols
}

// WordDelimiters returns the word break character set.
func (s *Settings) WordDelimiters() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wordDelimiters
}

// CopyOnSelect returns whether selecting text copies it immediately.
func (s *Settings) CopyOnSelect() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOnSelect
}

// IsWordDelimiter reports whether r breaks a word selection.
func (s *Settings) IsWordDelimiter(r rune) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.delims[r]
	return ok
}

// CommandForEvent resolves a tcell key event against the bound chords.
// Returns the command name and true when a binding matches.
func (s *Settings) CommandForEvent(ev *tcell.EventKey) (string, bool) {
	chord, ok := ChordFromEvent(ev)
	if !ok {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyBindings.Command(chord)
}

// ChordFromEvent converts a tcell key event to a chord. Returns false
// for events with no chord spelling (for example a bare modifier).
func ChordFromEvent(ev *tcell.EventKey) (keys.Chord, bool) {
	chord := keys.Chord{Modifiers: modifiersFromMask(ev.Modifiers())}

	k := ev.Key()

	// Named keys first: tcell overlaps KeyEnter, KeyTab, and
	// KeyBackspace with the ctrl+letter control-character codes.
	if name, ok := specialKeyNames[k]; ok {
		chord.Key = name
		return chord, true
	}

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			chord.Key = "space"
		} else {
			chord.Key = strings.ToLower(string(r))
		}

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// tcell reports ctrl+letter as a dedicated key code.
		chord.Key = string(rune('a' + (k - tcell.KeyCtrlA)))
		chord.Modifiers = chord.Modifiers.With(keys.ModCtrl)

	case k == tcell.KeyCtrlSpace:
		chord.Key = "space"
		chord.Modifiers = chord.Modifiers.With(keys.ModCtrl)

	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		chord.Key = "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)

	default:
		return keys.Chord{}, false
	}

	return chord, true
}

// specialKeyNames maps tcell non-rune keys to chord key names.
var specialKeyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "backtab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
}

// modifiersFromMask converts a tcell modifier mask.
func modifiersFromMask(m tcell.ModMask) keys.Modifier {
	var result keys.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(keys.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(keys.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(keys.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(keys.ModMeta)
	}
	return result
}
