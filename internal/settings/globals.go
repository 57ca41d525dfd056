package settings

import (
	"github.com/google/uuid"

	"github.com/dshills/termstorm/internal/settings/keys"
	"github.com/dshills/termstorm/internal/settings/scheme"
)

// Default terminal grid size at launch.
const (
	DefaultRows = 30
	DefaultCols = 120
)

// DefaultWordDelimiters is the default word-selection delimiter set.
const DefaultWordDelimiters = " ./\\()\"'-:,.;<>~!@#$%^&*|+=[]{}~?│"

// GlobalSettings holds the terminal-wide configuration: key bindings,
// the default profile, tab display options, theme, word delimiters, and
// copy behavior.
//
// One instance exists per settings load. It is created with built-in
// defaults, mutated in place by successive LayerJSON calls, read by the
// runtime layer, and serialized back on save. GlobalSettings performs
// no synchronization; the owning Manager serializes access.
type GlobalSettings struct {
	defaultProfile      uuid.UUID
	keyBindings         *keys.Bindings
	colorSchemes        map[string]*scheme.ColorScheme
	alwaysShowTabs      bool
	initialRows         int
	initialCols         int
	showTitleInTitlebar bool
	showTabsInTitlebar  bool
	requestedTheme      Theme
	wordDelimiters      string
	copyOnSelect        bool
}

// NewGlobalSettings creates settings populated entirely with built-in
// defaults. It performs no I/O and cannot fail.
func NewGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		keyBindings:         keys.NewBindings(),
		colorSchemes:        make(map[string]*scheme.ColorScheme),
		alwaysShowTabs:      true,
		initialRows:         DefaultRows,
		initialCols:         DefaultCols,
		showTitleInTitlebar: true,
		showTabsInTitlebar:  true,
		requestedTheme:      ThemeSystem,
		wordDelimiters:      DefaultWordDelimiters,
		copyOnSelect:        false,
	}
}

// DefaultProfile returns the GUID of the profile launched by default.
func (g *GlobalSettings) DefaultProfile() uuid.UUID {
	return g.defaultProfile
}

// SetDefaultProfile sets the GUID of the profile launched by default.
func (g *GlobalSettings) SetDefaultProfile(id uuid.UUID) {
	g.defaultProfile = id
}

// KeyBindings returns the owned key binding set.
func (g *GlobalSettings) KeyBindings() *keys.Bindings {
	return g.keyBindings
}

// ColorSchemes returns the registered color schemes keyed by name.
// The returned map is the live registry, not a copy.
func (g *GlobalSettings) ColorSchemes() map[string]*scheme.ColorScheme {
	return g.colorSchemes
}

// AddColorScheme registers a scheme under its own name, silently
// replacing any existing scheme with that name.
func (g *GlobalSettings) AddColorScheme(s *scheme.ColorScheme) {
	g.colorSchemes[s.Name] = s
}

// AlwaysShowTabs reports whether the tab bar is shown with one tab open.
func (g *GlobalSettings) AlwaysShowTabs() bool {
	return g.alwaysShowTabs
}

// SetAlwaysShowTabs sets whether the tab bar is shown with one tab open.
func (g *GlobalSettings) SetAlwaysShowTabs(show bool) {
	g.alwaysShowTabs = show
}

// InitialRows returns the terminal grid height at launch.
func (g *GlobalSettings) InitialRows() int {
	return g.initialRows
}

// SetInitialRows sets the terminal grid height at launch.
func (g *GlobalSettings) SetInitialRows(rows int) {
	g.initialRows = rows
}

// InitialCols returns the terminal grid width at launch.
func (g *GlobalSettings) InitialCols() int {
	return g.initialCols
}

// SetInitialCols sets the terminal grid width at launch.
func (g *GlobalSettings) SetInitialCols(cols int) {
	g.initialCols = cols
}

// ShowTitleInTitlebar reports whether the terminal title is shown in
// the window titlebar.
func (g *GlobalSettings) ShowTitleInTitlebar() bool {
	return g.showTitleInTitlebar
}

// SetShowTitleInTitlebar sets whether the terminal title is shown in
// the window titlebar.
func (g *GlobalSettings) SetShowTitleInTitlebar(show bool) {
	g.showTitleInTitlebar = show
}

// ShowTabsInTitlebar reports whether tabs are drawn into the titlebar.
// Experimental.
func (g *GlobalSettings) ShowTabsInTitlebar() bool {
	return g.showTabsInTitlebar
}

// SetShowTabsInTitlebar sets whether tabs are drawn into the titlebar.
func (g *GlobalSettings) SetShowTabsInTitlebar(show bool) {
	g.showTabsInTitlebar = show
}

// RequestedTheme returns the requested application theme.
func (g *GlobalSettings) RequestedTheme() Theme {
	return g.requestedTheme
}

// SetRequestedTheme sets the requested application theme.
func (g *GlobalSettings) SetRequestedTheme(theme Theme) {
	g.requestedTheme = theme
}

// WordDelimiters returns the word-selection delimiter set.
func (g *GlobalSettings) WordDelimiters() string {
	return g.wordDelimiters
}

// SetWordDelimiters sets the word-selection delimiter set.
func (g *GlobalSettings) SetWordDelimiters(delimiters string) {
	g.wordDelimiters = delimiters
}

// CopyOnSelect reports whether selected text is copied immediately.
func (g *GlobalSettings) CopyOnSelect() bool {
	return g.copyOnSelect
}

// SetCopyOnSelect sets whether selected text is copied immediately.
func (g *GlobalSettings) SetCopyOnSelect(copy bool) {
	g.copyOnSelect = copy
}

// TerminalTarget receives the subset of global settings that apply to
// a single terminal session.
type TerminalTarget interface {
	SetKeyBindings(*keys.Bindings)
	SetInitialRows(int)
	SetInitialCols(int)
	SetWordDelimiters(string)
	SetCopyOnSelect(bool)
}

// ApplyToTerminal copies the session-relevant settings onto target.
// Theme, tab display options, and color schemes are consumed elsewhere
// and are not projected.
func (g *GlobalSettings) ApplyToTerminal(target TerminalTarget) {
	target.SetKeyBindings(g.keyBindings)
	target.SetInitialRows(g.initialRows)
	target.SetInitialCols(g.initialCols)
	target.SetWordDelimiters(g.wordDelimiters)
	target.SetCopyOnSelect(g.copyOnSelect)
}
