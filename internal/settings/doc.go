// Package settings provides the configuration system for termstorm.
//
// The settings package manages loading, layering, and providing access
// to the terminal-wide configuration: key bindings, the default
// profile, tab display options, theme, word delimiters, and copy
// behavior.
//
// # Architecture
//
// Settings are organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Session Overrides       │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← TERMSTORM_*
//	├─────────────────────────────┤
//	│  3. User Settings           │  ← ~/.config/termstorm/settings.json
//	├─────────────────────────────┤
//	│  2. Shipped Defaults File   │  ← defaults.json
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is a partial JSON document. Layering is a merge, not a
// replace: keys present in a document overwrite the corresponding
// fields, absent keys leave prior values untouched, and unrecognized
// keys are ignored for forward compatibility.
//
// # Sub-packages
//
//   - loader: settings file loading (JSON, TOML, YAML, environment)
//   - layer: layer bookkeeping and document merging
//   - keys: key chord parsing and the key binding set
//   - scheme: terminal color schemes
//   - watcher: file watching for live reload
//   - notify: change notification
//
// # Basic Usage
//
// Load settings from the default paths:
//
//	mgr := settings.NewManager()
//	if err := mgr.Load(ctx); err != nil {
//	    // handle error
//	}
//	defer mgr.Close()
//
//	globals := mgr.Globals()
//	rows := globals.InitialRows()
//
// Apply the session-relevant subset to a terminal:
//
//	term := terminal.NewSettings()
//	globals.ApplyToTerminal(term)
//
// # Error Handling
//
// A malformed defaultProfile GUID or a wrongly-typed scalar rejects the
// document being layered. An unrecognized theme string is never an
// error; it resolves to the system default. Missing and unknown keys
// are never errors.
package settings
