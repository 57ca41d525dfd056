package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termstorm/internal/settings/scheme"
)

// Palette is the 16 ANSI colors of a scheme in tcell form, indexed by
// standard ANSI order (black through brightWhite).
type Palette [scheme.TableSize]tcell.Color

// StyleFromScheme returns the default cell style for a color scheme.
func StyleFromScheme(s *scheme.ColorScheme) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background))
}

// PaletteFromScheme converts a scheme's ANSI table for tcell rendering.
func PaletteFromScheme(s *scheme.ColorScheme) Palette {
	var p Palette
	for i, c := range s.Table {
		p[i] = toTcellColor(c)
	}
	return p
}

// Color resolves an ANSI color index against the palette. Indexes
// outside the table fall back to the terminal default.
func (p Palette) Color(index int) tcell.Color {
	if index < 0 || index >= len(p) {
		return tcell.ColorDefault
	}
	return p[index]
}

// toTcellColor converts a parsed scheme color to a tcell RGB color.
func toTcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
