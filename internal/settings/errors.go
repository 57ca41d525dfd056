package settings

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch indicates a document value has the wrong JSON type.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeError is returned when a document value cannot be coerced to the
// field's type.
type TypeError struct {
	// Key is the settings document key.
	Key string
	// Expected is the expected JSON type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Key, e.Expected, e.Actual)
}

// Is implements error matching for TypeError.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
