// Package scheme provides terminal color schemes for the settings system.
//
// A color scheme is a named set of foreground, background, and ANSI
// table colors. Schemes are settings-tree nodes: they layer partial
// JSON documents onto themselves and serialize back with ToJSON.
package scheme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// TableSize is the number of ANSI table colors in a scheme.
const TableSize = 16

// JSON keys recognized by LayerJSON.
const (
	nameKey       = "name"
	foregroundKey = "foreground"
	backgroundKey = "background"
)

// tableKeys are the JSON keys for the ANSI color table, in table order.
var tableKeys = [TableSize]string{
	"black",
	"red",
	"green",
	"yellow",
	"blue",
	"purple",
	"cyan",
	"white",
	"brightBlack",
	"brightRed",
	"brightGreen",
	"brightYellow",
	"brightBlue",
	"brightPurple",
	"brightCyan",
	"brightWhite",
}

// ColorScheme is a named terminal color palette.
type ColorScheme struct {
	// Name is the unique scheme identifier used as the registry key.
	Name string

	// Foreground is the default text color.
	Foreground colorful.Color

	// Background is the default background color.
	Background colorful.Color

	// Table holds the 16 ANSI colors.
	Table [TableSize]colorful.Color
}

// New creates an empty (all-black) scheme with the given name.
func New(name string) *ColorScheme {
	return &ColorScheme{Name: name}
}

// FromJSON creates a scheme from a JSON document.
func FromJSON(doc map[string]any) (*ColorScheme, error) {
	s := &ColorScheme{}
	if err := s.LayerJSON(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// LayerJSON merges a partial scheme document. Keys present in the
// document overwrite the corresponding colors; absent keys are left
// untouched; unrecognized keys are ignored. Colors are hex strings
// like "#rrggbb"; malformed hex is an error.
func (s *ColorScheme) LayerJSON(doc map[string]any) error {
	if name, ok := doc[nameKey]; ok {
		str, ok := name.(string)
		if !ok {
			return fmt.Errorf("scheme name must be a string, got %T", name)
		}
		s.Name = str
	}

	if err := layerColor(doc, foregroundKey, &s.Foreground); err != nil {
		return err
	}
	if err := layerColor(doc, backgroundKey, &s.Background); err != nil {
		return err
	}
	for i, key := range tableKeys {
		if err := layerColor(doc, key, &s.Table[i]); err != nil {
			return err
		}
	}

	return nil
}

// ToJSON serializes the scheme as a JSON object with one key per color
// plus the name.
func (s *ColorScheme) ToJSON() map[string]any {
	doc := map[string]any{
		nameKey:       s.Name,
		foregroundKey: s.Foreground.Hex(),
		backgroundKey: s.Background.Hex(),
	}
	for i, key := range tableKeys {
		doc[key] = s.Table[i].Hex()
	}
	return doc
}

// Clone returns an independent copy of the scheme.
func (s *ColorScheme) Clone() *ColorScheme {
	clone := *s
	return &clone
}

// layerColor overwrites dst with the parsed hex color at key, if present.
func layerColor(doc map[string]any, key string, dst *colorful.Color) error {
	v, ok := doc[key]
	if !ok {
		return nil
	}

	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("scheme color %q must be a hex string, got %T", key, v)
	}

	c, err := colorful.Hex(str)
	if err != nil {
		return fmt.Errorf("scheme color %q: %w", key, err)
	}
	*dst = c
	return nil
}
