package settings

// Theme selects the application-wide light/dark appearance.
type Theme uint8

const (
	// ThemeSystem follows the platform appearance. This is the default
	// and the fallback for unrecognized serialized values.
	ThemeSystem Theme = iota

	// ThemeLight forces the light appearance.
	ThemeLight

	// ThemeDark forces the dark appearance.
	ThemeDark
)

// Serialized theme values.
const (
	lightThemeValue  = "light"
	darkThemeValue   = "dark"
	systemThemeValue = "system"
)

// ParseTheme decodes a serialized theme value. Anything other than
// "light" or "dark" (including "system") decodes to ThemeSystem;
// parsing never fails.
func ParseTheme(s string) Theme {
	switch s {
	case lightThemeValue:
		return ThemeLight
	case darkThemeValue:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

// String returns the serialized form of the theme.
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return lightThemeValue
	case ThemeDark:
		return darkThemeValue
	default:
		return systemThemeValue
	}
}
