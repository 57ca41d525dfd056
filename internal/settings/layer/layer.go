// Package layer manages the ordered settings documents that make up
// the effective terminal configuration.
//
// Each source (built-in defaults, the shipped defaults file, the user
// settings file, environment overrides) contributes one layer. Layers
// are applied in priority order; higher priority layers override values
// from lower ones, key by key.
package layer

import (
	"time"
)

// Layer is a single settings document plus its provenance.
type Layer struct {
	// Name identifies the layer (e.g., "user", "defaults").
	Name string

	// Priority determines apply order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the settings document.
	Data map[string]any

	// ModTime is when the source was last modified.
	ModTime time.Time
}

// Layer priorities, lowest to highest.
const (
	PriorityBuiltin  = 0
	PriorityDefaults = 10
	PriorityUser     = 20
	PriorityEnv      = 30
	PrioritySession  = 40
)

// New creates a layer with the given document.
func New(name string, source Source, priority int, data map[string]any) *Layer {
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
		ModTime:  time.Now(),
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Path:     l.Path,
		Data:     cloneMap(l.Data),
		ModTime:  l.ModTime,
	}
}

// Source indicates where a settings layer came from.
type Source uint8

const (
	// SourceBuiltin represents compiled-in default settings.
	SourceBuiltin Source = iota
	// SourceDefaults represents the shipped defaults file.
	SourceDefaults
	// SourceUser represents the user settings file.
	SourceUser
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceSession represents in-memory session overrides.
	SourceSession
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceDefaults:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceEnv:
		return "environment"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}
