package loader

import (
	"os"
	"strconv"
)

// EnvLoader loads settings overrides from environment variables.
// Variables map onto the same document keys the JSON settings file
// uses, so the result layers like any other settings document.
type EnvLoader struct {
	mapping map[string]string // Env var -> document key
}

// NewEnvLoader creates a new environment variable loader with the
// default TERMSTORM_* mapping.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		mapping: defaultEnvMapping(),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"TERMSTORM_DEFAULT_PROFILE":  "defaultProfile",
		"TERMSTORM_THEME":            "requestedTheme",
		"TERMSTORM_INITIAL_ROWS":     "initialRows",
		"TERMSTORM_INITIAL_COLS":     "initialCols",
		"TERMSTORM_WORD_DELIMITERS":  "wordDelimiters",
		"TERMSTORM_COPY_ON_SELECT":   "copyOnSelect",
		"TERMSTORM_ALWAYS_SHOW_TABS": "alwaysShowTabs",
	}
}

// Load reads mapped environment variables into a settings document.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	doc := make(map[string]any)

	for env, key := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			doc[key] = parseValue(val)
		}
	}

	return doc, nil
}

// parseValue converts an environment string to the closest JSON scalar:
// bool, then number, then string.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return float64(n)
	}

	return s
}
