package settings

import (
	"fmt"

	"github.com/google/uuid"
)

// Settings document keys recognized by LayerJSON.
const (
	keybindingsKey         = "keybindings"
	defaultProfileKey      = "defaultProfile"
	alwaysShowTabsKey      = "alwaysShowTabs"
	initialRowsKey         = "initialRows"
	initialColsKey         = "initialCols"
	showTitleInTitlebarKey = "showTerminalTitleInTitlebar"
	showTabsInTitlebarKey  = "showTabsInTitlebar"
	wordDelimitersKey      = "wordDelimiters"
	copyOnSelectKey        = "copyOnSelect"
	requestedThemeKey      = "requestedTheme"
)

// FromJSON creates a GlobalSettings from a settings document:
// defaults first, then one LayerJSON pass.
func FromJSON(doc map[string]any) (*GlobalSettings, error) {
	g := NewGlobalSettings()
	if err := g.LayerJSON(doc); err != nil {
		return nil, err
	}
	return g, nil
}

// ToJSON serializes the settings as a JSON document with one key per
// serializable field. The default profile GUID is rendered in its
// braced canonical form and the key bindings are nested under their own
// key. Color schemes are serialized separately by the Manager.
func (g *GlobalSettings) ToJSON() map[string]any {
	return map[string]any{
		defaultProfileKey:      formatProfileID(g.defaultProfile),
		initialRowsKey:         g.initialRows,
		initialColsKey:         g.initialCols,
		alwaysShowTabsKey:      g.alwaysShowTabs,
		showTitleInTitlebarKey: g.showTitleInTitlebar,
		showTabsInTitlebarKey:  g.showTabsInTitlebar,
		wordDelimitersKey:      g.wordDelimiters,
		copyOnSelectKey:        g.copyOnSelect,
		requestedThemeKey:      g.requestedTheme.String(),
		keybindingsKey:         g.keyBindings.ToJSON(),
	}
}

// LayerJSON merges a partial settings document onto the current values.
// Only keys present in doc overwrite their fields; absent keys leave
// the current values untouched, so repeated calls accumulate overrides
// in call order. Unrecognized keys are ignored.
//
// A malformed defaultProfile GUID or a scalar of the wrong JSON type is
// an error; fields processed before the failing key may already be
// applied, so callers should treat an error as a rejected document.
// Unknown theme strings are not errors; they resolve to ThemeSystem.
func (g *GlobalSettings) LayerJSON(doc map[string]any) error {
	if v, ok := doc[defaultProfileKey]; ok {
		s, ok := v.(string)
		if !ok {
			return &TypeError{Key: defaultProfileKey, Expected: "string", Actual: typeName(v)}
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", defaultProfileKey, err)
		}
		g.defaultProfile = id
	}

	if err := layerBool(doc, alwaysShowTabsKey, &g.alwaysShowTabs); err != nil {
		return err
	}
	if err := layerInt(doc, initialRowsKey, &g.initialRows); err != nil {
		return err
	}
	if err := layerInt(doc, initialColsKey, &g.initialCols); err != nil {
		return err
	}
	if err := layerBool(doc, showTitleInTitlebarKey, &g.showTitleInTitlebar); err != nil {
		return err
	}
	if err := layerBool(doc, showTabsInTitlebarKey, &g.showTabsInTitlebar); err != nil {
		return err
	}
	if err := layerString(doc, wordDelimitersKey, &g.wordDelimiters); err != nil {
		return err
	}
	if err := layerBool(doc, copyOnSelectKey, &g.copyOnSelect); err != nil {
		return err
	}

	if v, ok := doc[requestedThemeKey]; ok {
		s, ok := v.(string)
		if !ok {
			return &TypeError{Key: requestedThemeKey, Expected: "string", Actual: typeName(v)}
		}
		g.requestedTheme = ParseTheme(s)
	}

	if v, ok := doc[keybindingsKey]; ok {
		if err := g.keyBindings.LayerJSON(v); err != nil {
			return err
		}
	}

	return nil
}

// formatProfileID renders a GUID in its braced canonical form.
func formatProfileID(id uuid.UUID) string {
	return "{" + id.String() + "}"
}

// layerBool overwrites dst with the bool at key, if present.
func layerBool(doc map[string]any, key string, dst *bool) error {
	v, ok := doc[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return &TypeError{Key: key, Expected: "bool", Actual: typeName(v)}
	}
	*dst = b
	return nil
}

// layerInt overwrites dst with the integer at key, if present.
// JSON numbers decode as float64; TOML decodes as int64. Both coerce.
func layerInt(doc map[string]any, key string, dst *int) error {
	v, ok := doc[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case float64:
		*dst = int(n)
	default:
		return &TypeError{Key: key, Expected: "int", Actual: typeName(v)}
	}
	return nil
}

// layerString overwrites dst with the string at key, if present.
func layerString(doc map[string]any, key string, dst *string) error {
	v, ok := doc[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return &TypeError{Key: key, Expected: "string", Actual: typeName(v)}
	}
	*dst = s
	return nil
}
