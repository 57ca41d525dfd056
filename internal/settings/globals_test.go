package settings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/termstorm/internal/settings/keys"
	"github.com/dshills/termstorm/internal/settings/scheme"
)

func TestNewGlobalSettingsDefaults(t *testing.T) {
	g := NewGlobalSettings()

	if g.DefaultProfile() != uuid.Nil {
		t.Errorf("DefaultProfile = %v, want zero GUID", g.DefaultProfile())
	}
	if g.KeyBindings() == nil || g.KeyBindings().Len() != 0 {
		t.Error("KeyBindings should be an empty set")
	}
	if len(g.ColorSchemes()) != 0 {
		t.Errorf("ColorSchemes has %d entries, want 0", len(g.ColorSchemes()))
	}
	if !g.AlwaysShowTabs() {
		t.Error("AlwaysShowTabs = false, want true")
	}
	if g.InitialRows() != DefaultRows {
		t.Errorf("InitialRows = %d, want %d", g.InitialRows(), DefaultRows)
	}
	if g.InitialCols() != DefaultCols {
		t.Errorf("InitialCols = %d, want %d", g.InitialCols(), DefaultCols)
	}
	if !g.ShowTitleInTitlebar() {
		t.Error("ShowTitleInTitlebar = false, want true")
	}
	if !g.ShowTabsInTitlebar() {
		t.Error("ShowTabsInTitlebar = false, want true")
	}
	if g.RequestedTheme() != ThemeSystem {
		t.Errorf("RequestedTheme = %v, want ThemeSystem", g.RequestedTheme())
	}
	if g.WordDelimiters() != DefaultWordDelimiters {
		t.Errorf("WordDelimiters = %q, want default set", g.WordDelimiters())
	}
	if g.CopyOnSelect() {
		t.Error("CopyOnSelect = true, want false")
	}
}

func TestLayerJSONEmptyDocKeepsDefaults(t *testing.T) {
	g := NewGlobalSettings()
	if err := g.LayerJSON(map[string]any{}); err != nil {
		t.Fatalf("LayerJSON: %v", err)
	}

	defaults := NewGlobalSettings()
	if !reflect.DeepEqual(g.ToJSON(), defaults.ToJSON()) {
		t.Errorf("empty layer changed fields:\n got %v\nwant %v", g.ToJSON(), defaults.ToJSON())
	}
}

func TestLayerJSONSingleKeyLeavesOthers(t *testing.T) {
	g := NewGlobalSettings()
	if err := g.LayerJSON(map[string]any{"alwaysShowTabs": false}); err != nil {
		t.Fatalf("LayerJSON: %v", err)
	}

	if g.AlwaysShowTabs() {
		t.Error("alwaysShowTabs not overridden")
	}

	// Every other field stays at its default.
	if g.InitialRows() != DefaultRows || g.InitialCols() != DefaultCols {
		t.Error("grid size changed by unrelated key")
	}
	if g.RequestedTheme() != ThemeSystem {
		t.Error("theme changed by unrelated key")
	}
	if !g.ShowTitleInTitlebar() || !g.ShowTabsInTitlebar() {
		t.Error("titlebar flags changed by unrelated key")
	}
	if g.CopyOnSelect() || g.WordDelimiters() != DefaultWordDelimiters {
		t.Error("selection settings changed by unrelated key")
	}
}

func TestLayerJSONAllKeys(t *testing.T) {
	g := NewGlobalSettings()
	err := g.LayerJSON(map[string]any{
		"defaultProfile":              "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
		"alwaysShowTabs":              false,
		"initialRows":                 40.0,
		"initialCols":                 90.0,
		"showTerminalTitleInTitlebar": false,
		"showTabsInTitlebar":          false,
		"wordDelimiters":              " ",
		"copyOnSelect":                true,
		"requestedTheme":              "dark",
		"keybindings": []any{
			map[string]any{"command": "newTab", "keys": "ctrl+shift+t"},
		},
	})
	if err != nil {
		t.Fatalf("LayerJSON: %v", err)
	}

	want := uuid.MustParse("61c54bbd-c2c6-5271-96e7-009a87ff44bf")
	if g.DefaultProfile() != want {
		t.Errorf("DefaultProfile = %v, want %v", g.DefaultProfile(), want)
	}
	if g.AlwaysShowTabs() || g.ShowTitleInTitlebar() || g.ShowTabsInTitlebar() {
		t.Error("bool fields not overridden")
	}
	if g.InitialRows() != 40 || g.InitialCols() != 90 {
		t.Errorf("grid = %dx%d, want 40x90", g.InitialRows(), g.InitialCols())
	}
	if g.WordDelimiters() != " " {
		t.Errorf("WordDelimiters = %q, want single space", g.WordDelimiters())
	}
	if !g.CopyOnSelect() {
		t.Error("CopyOnSelect not overridden")
	}
	if g.RequestedTheme() != ThemeDark {
		t.Errorf("RequestedTheme = %v, want ThemeDark", g.RequestedTheme())
	}

	chord, _ := keys.ParseChord("ctrl+shift+t")
	if cmd, ok := g.KeyBindings().Command(chord); !ok || cmd != "newTab" {
		t.Errorf("keybinding = %q, %v; want newTab, true", cmd, ok)
	}
}

func TestLayerJSONUnknownThemeDefaults(t *testing.T) {
	g := NewGlobalSettings()
	g.SetRequestedTheme(ThemeDark)

	if err := g.LayerJSON(map[string]any{"requestedTheme": "sepia"}); err != nil {
		t.Fatalf("unknown theme should not error: %v", err)
	}
	if g.RequestedTheme() != ThemeSystem {
		t.Errorf("RequestedTheme = %v, want ThemeSystem", g.RequestedTheme())
	}
}

func TestLayerJSONUnknownKeysIgnored(t *testing.T) {
	g := NewGlobalSettings()
	err := g.LayerJSON(map[string]any{
		"futureSetting": map[string]any{"nested": true},
		"rowsTypo":      13.0,
	})
	if err != nil {
		t.Fatalf("unknown keys should be ignored: %v", err)
	}
	if g.InitialRows() != DefaultRows {
		t.Error("unknown key affected a field")
	}
}

func TestLayerJSONOrderMatters(t *testing.T) {
	g := NewGlobalSettings()
	if err := g.LayerJSON(map[string]any{"initialRows": 10.0}); err != nil {
		t.Fatal(err)
	}
	if err := g.LayerJSON(map[string]any{"initialRows": 20.0}); err != nil {
		t.Fatal(err)
	}
	if g.InitialRows() != 20 {
		t.Errorf("InitialRows = %d, want 20 (last write wins)", g.InitialRows())
	}

	if err := g.LayerJSON(map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if g.InitialRows() != 20 {
		t.Errorf("InitialRows = %d, want 20 (absent key must not reset)", g.InitialRows())
	}
}

func TestLayerJSONMalformedProfileFails(t *testing.T) {
	g := NewGlobalSettings()
	err := g.LayerJSON(map[string]any{"defaultProfile": "not-a-guid"})
	if err == nil {
		t.Fatal("malformed GUID must be an error, not a silent default")
	}
	if g.DefaultProfile() != uuid.Nil {
		t.Errorf("DefaultProfile = %v, want zero GUID after failure", g.DefaultProfile())
	}
}

func TestLayerJSONTypeMismatches(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{name: "bool as string", doc: map[string]any{"copyOnSelect": "yes"}},
		{name: "int as string", doc: map[string]any{"initialRows": "forty"}},
		{name: "string as number", doc: map[string]any{"wordDelimiters": 3.0}},
		{name: "theme as number", doc: map[string]any{"requestedTheme": 1.0}},
		{name: "profile as number", doc: map[string]any{"defaultProfile": 9.0}},
		{name: "keybindings as object", doc: map[string]any{"keybindings": map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGlobalSettings()
			err := g.LayerJSON(tt.doc)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.name != "profile as number" && tt.name != "keybindings as object" {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Errorf("error %v should match ErrTypeMismatch", err)
				}
			}
		})
	}
}

func TestFromJSONToJSONRoundTrip(t *testing.T) {
	g := NewGlobalSettings()
	g.SetDefaultProfile(uuid.MustParse("0caa0dad-35be-5f56-a8ff-afceeeaa6101"))
	g.SetAlwaysShowTabs(false)
	g.SetInitialRows(42)
	g.SetInitialCols(99)
	g.SetShowTitleInTitlebar(false)
	g.SetRequestedTheme(ThemeLight)
	g.SetWordDelimiters(" \t")
	g.SetCopyOnSelect(true)
	if err := g.KeyBindings().BindKeys("closeTab", "ctrl+w"); err != nil {
		t.Fatal(err)
	}

	restored, err := FromJSON(g.ToJSON())
	if err != nil {
		t.Fatalf("FromJSON(ToJSON()): %v", err)
	}

	if !reflect.DeepEqual(restored.ToJSON(), g.ToJSON()) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", restored.ToJSON(), g.ToJSON())
	}
}

func TestToJSONThemeEncoding(t *testing.T) {
	tests := []struct {
		theme    Theme
		expected string
	}{
		{ThemeLight, "light"},
		{ThemeDark, "dark"},
		{ThemeSystem, "system"},
		{Theme(250), "system"},
	}

	for _, tt := range tests {
		g := NewGlobalSettings()
		g.SetRequestedTheme(tt.theme)
		if got := g.ToJSON()["requestedTheme"]; got != tt.expected {
			t.Errorf("theme %v encoded as %v, want %q", tt.theme, got, tt.expected)
		}
	}
}

func TestAddColorSchemeReplacesByName(t *testing.T) {
	g := NewGlobalSettings()

	first := scheme.New("Campbell")
	g.AddColorScheme(first)

	second := scheme.New("Campbell")
	g.AddColorScheme(second)

	if len(g.ColorSchemes()) != 1 {
		t.Fatalf("ColorSchemes has %d entries, want 1", len(g.ColorSchemes()))
	}
	if g.ColorSchemes()["Campbell"] != second {
		t.Error("existing scheme was not replaced")
	}
}

type fakeTerminal struct {
	bindings   *keys.Bindings
	rows, cols int
	delims     string
	copySel    bool
}

func (f *fakeTerminal) SetKeyBindings(b *keys.Bindings) { f.bindings = b }
func (f *fakeTerminal) SetInitialRows(rows int)         { f.rows = rows }
func (f *fakeTerminal) SetInitialCols(cols int)         { f.cols = cols }
func (f *fakeTerminal) SetWordDelimiters(d string)      { f.delims = d }
func (f *fakeTerminal) SetCopyOnSelect(c bool)          { f.copySel = c }

func TestApplyToTerminal(t *testing.T) {
	g := NewGlobalSettings()
	g.SetInitialRows(50)
	g.SetInitialCols(132)
	g.SetWordDelimiters(" ")
	g.SetCopyOnSelect(true)

	var target fakeTerminal
	g.ApplyToTerminal(&target)

	if target.bindings != g.KeyBindings() {
		t.Error("key bindings not projected")
	}
	if target.rows != 50 || target.cols != 132 {
		t.Errorf("grid = %dx%d, want 50x132", target.rows, target.cols)
	}
	if target.delims != " " {
		t.Errorf("delimiters = %q, want single space", target.delims)
	}
	if !target.copySel {
		t.Error("copyOnSelect not projected")
	}
}
