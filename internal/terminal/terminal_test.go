package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termstorm/internal/settings"
	"github.com/dshills/termstorm/internal/settings/keys"
	"github.com/dshills/termstorm/internal/settings/scheme"
)

var _ settings.TerminalTarget = (*Settings)(nil)

func TestApplyFromGlobals(t *testing.T) {
	g := settings.NewGlobalSettings()
	g.SetInitialRows(48)
	g.SetInitialCols(160)
	g.SetWordDelimiters(" ()")
	g.SetCopyOnSelect(true)
	if err := g.KeyBindings().BindKeys("paste", "ctrl+shift+v"); err != nil {
		t.Fatal(err)
	}

	s := NewSettings()
	g.ApplyToTerminal(s)

	if s.InitialRows() != 48 || s.InitialCols() != 160 {
		t.Errorf("grid = %dx%d, want 48x160", s.InitialRows(), s.InitialCols())
	}
	if !s.CopyOnSelect() {
		t.Error("copyOnSelect not applied")
	}
	if s.WordDelimiters() != " ()" {
		t.Errorf("WordDelimiters = %q", s.WordDelimiters())
	}

	ev := tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModCtrl|tcell.ModShift)
	if cmd, ok := s.CommandForEvent(ev); !ok || cmd != "paste" {
		t.Errorf("CommandForEvent = %q, %v; want paste, true", cmd, ok)
	}
}

func TestIsWordDelimiter(t *testing.T) {
	s := NewSettings()
	s.SetWordDelimiters(" /\\()")

	for _, r := range " /\\()" {
		if !s.IsWordDelimiter(r) {
			t.Errorf("IsWordDelimiter(%q) = false", r)
		}
	}
	for _, r := range "abc9_" {
		if s.IsWordDelimiter(r) {
			t.Errorf("IsWordDelimiter(%q) = true", r)
		}
	}
}

func TestChordFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{
			name: "plain rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone),
			want: "t",
		},
		{
			name: "modified rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModCtrl|tcell.ModShift),
			want: "ctrl+shift+t",
		},
		{
			name: "space rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModAlt),
			want: "alt+space",
		},
		{
			name: "dedicated ctrl key code",
			ev:   tcell.NewEventKey(tcell.KeyCtrlW, 'w', tcell.ModCtrl),
			want: "ctrl+w",
		},
		{
			name: "function key",
			ev:   tcell.NewEventKey(tcell.KeyF11, 0, tcell.ModNone),
			want: "f11",
		},
		{
			name: "named key",
			ev:   tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModShift),
			want: "shift+pageup",
		},
		{
			name: "enter",
			ev:   tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			want: "enter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chord, ok := ChordFromEvent(tt.ev)
			if !ok {
				t.Fatal("ChordFromEvent returned false")
			}
			if chord.String() != tt.want {
				t.Errorf("chord = %q, want %q", chord.String(), tt.want)
			}
		})
	}
}

func TestChordFromEventMatchesParse(t *testing.T) {
	// Chords produced from events must resolve against chords parsed
	// from config text.
	parsed, err := keys.ParseChord("ctrl+shift+t")
	if err != nil {
		t.Fatal(err)
	}

	fromEvent, ok := ChordFromEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModCtrl|tcell.ModShift))
	if !ok {
		t.Fatal("ChordFromEvent returned false")
	}
	if fromEvent != parsed {
		t.Errorf("event chord %v != parsed chord %v", fromEvent, parsed)
	}
}

func TestStyleFromScheme(t *testing.T) {
	s, err := scheme.FromJSON(map[string]any{
		"name":       "Campbell",
		"foreground": "#CCCCCC",
		"background": "#0C0C0C",
	})
	if err != nil {
		t.Fatal(err)
	}

	fg, bg, _ := StyleFromScheme(s).Decompose()
	if r, g, b := fg.RGB(); r != 0xCC || g != 0xCC || b != 0xCC {
		t.Errorf("foreground = %02x%02x%02x, want cccccc", r, g, b)
	}
	if r, g, b := bg.RGB(); r != 0x0C || g != 0x0C || b != 0x0C {
		t.Errorf("background = %02x%02x%02x, want 0c0c0c", r, g, b)
	}
}

func TestPaletteFromScheme(t *testing.T) {
	s, err := scheme.FromJSON(map[string]any{
		"name": "test",
		"red":  "#FF0000",
		"blue": "#0000FF",
	})
	if err != nil {
		t.Fatal(err)
	}

	p := PaletteFromScheme(s)

	if r, g, b := p.Color(1).RGB(); r != 0xFF || g != 0 || b != 0 {
		t.Errorf("red slot = %02x%02x%02x", r, g, b)
	}
	if r, g, b := p.Color(4).RGB(); r != 0 || g != 0 || b != 0xFF {
		t.Errorf("blue slot = %02x%02x%02x", r, g, b)
	}
	if p.Color(99) != tcell.ColorDefault {
		t.Error("out of range index should yield the default color")
	}
	if p.Color(-1) != tcell.ColorDefault {
		t.Error("negative index should yield the default color")
	}
}
