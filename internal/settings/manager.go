package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/termstorm/internal/settings/layer"
	"github.com/dshills/termstorm/internal/settings/loader"
	"github.com/dshills/termstorm/internal/settings/notify"
	"github.com/dshills/termstorm/internal/settings/scheme"
	"github.com/dshills/termstorm/internal/settings/watcher"
)

// Settings file names recognized in the user config directory, in
// preference order.
var userSettingsNames = []string{"settings.json", "settings.toml", "settings.yaml"}

// defaultsFileName is the shipped defaults document layered below the
// user's own settings.
const defaultsFileName = "defaults.json"

// schemesKey is the top-level document key holding color schemes. It is
// handled by the Manager, not by GlobalSettings.LayerJSON.
const schemesKey = "schemes"

// Manager owns the application's settings: it loads the layered
// documents, applies them to a GlobalSettings, watches the files for
// live reload, and writes user changes back to disk.
//
// There is no ambient global; construct a Manager and pass it to
// whichever component performs settings load.
type Manager struct {
	mu sync.RWMutex

	// Layer bookkeeping for the loaded documents.
	layers *layer.Manager

	// Change notifier.
	notifier *notify.Notifier

	// File watcher for live reload.
	watch *watcher.Watcher

	// The effective settings, rebuilt from the layers.
	globals *GlobalSettings

	// Configuration paths.
	userConfigDir string
	userPath      string // resolved user settings file

	// Options.
	fs            loader.FileSystem
	enableWatcher bool
	enableEnv     bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(m *Manager) {
		m.userConfigDir = dir
	}
}

// WithWatcher enables or disables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(m *Manager) {
		m.enableWatcher = enable
	}
}

// WithEnvironment enables or disables the TERMSTORM_* environment layer.
func WithEnvironment(enable bool) Option {
	return func(m *Manager) {
		m.enableEnv = enable
	}
}

// WithFS sets the file system used for reading settings files.
func WithFS(fs loader.FileSystem) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// NewManager creates a new settings manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		layers:        layer.NewManager(),
		notifier:      notify.New(),
		globals:       NewGlobalSettings(),
		fs:            loader.DefaultFS(),
		enableWatcher: true,
		enableEnv:     true,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.userConfigDir == "" {
		m.userConfigDir = defaultUserConfigDir()
	}

	return m
}

// Load loads the settings documents from all sources and applies them
// in layer order. Missing files are not errors; malformed files and
// rejected documents are.
func (m *Manager) Load(_ context.Context) error {
	m.mu.Lock()

	if err := m.loadDefaultsFile(); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := m.loadUserSettings(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.enableEnv {
		if err := m.loadEnvironment(); err != nil {
			m.mu.Unlock()
			return err
		}
	}

	if err := m.rebuildLocked(); err != nil {
		m.mu.Unlock()
		return err
	}

	var toWatch []string
	if m.enableWatcher {
		// Watching requires the config directory to exist; without it
		// there is nothing to reload anyway.
		if _, err := os.Stat(m.userConfigDir); err == nil {
			toWatch = append(toWatch, filepath.Join(m.userConfigDir, defaultsFileName))
			if m.userPath != "" {
				toWatch = append(toWatch, m.userPath)
			} else {
				toWatch = append(toWatch, filepath.Join(m.userConfigDir, "settings.json"))
			}
		}
	}
	m.mu.Unlock()

	// Start the watcher outside the lock; its callbacks reacquire it.
	if len(toWatch) > 0 {
		w, err := watcher.New()
		if err != nil {
			return fmt.Errorf("starting settings watcher: %w", err)
		}
		w.OnChange(m.handleFileChange)
		for _, path := range toWatch {
			if err := w.Watch(path); err != nil {
				w.Stop()
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		w.Start()

		m.mu.Lock()
		m.watch = w
		m.mu.Unlock()
	}

	return nil
}

// Close shuts down the settings manager.
func (m *Manager) Close() {
	m.mu.Lock()
	w := m.watch
	m.watch = nil
	m.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Globals returns the effective settings. The returned object is
// replaced wholesale on reload; callers that cache it should subscribe
// for reload events.
func (m *Manager) Globals() *GlobalSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.globals
}

// UserSettingsPath returns the resolved user settings file path, or ""
// if no user file was found.
func (m *Manager) UserSettingsPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userPath
}

// Subscribe registers an observer for all settings changes.
func (m *Manager) Subscribe(observer notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(observer)
}

// SubscribeKey registers an observer for changes to a specific key.
func (m *Manager) SubscribeKey(key string, observer notify.Observer) *notify.Subscription {
	return m.notifier.SubscribeKey(key, observer)
}

// Set stores a session override for a top-level document key and
// reapplies the layers. Session overrides are not persisted by Save.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()

	old := m.layers.Merged()[key]

	session := m.layers.Get("session")
	if session == nil {
		session = layer.New("session", layer.SourceSession, layer.PrioritySession, make(map[string]any))
		m.layers.Add(session)
	}
	session.Data[key] = value

	if err := m.rebuildLocked(); err != nil {
		// Roll back the bad override so the layers stay applicable.
		delete(session.Data, key)
		rebuildErr := m.rebuildLocked()
		m.mu.Unlock()
		if rebuildErr != nil {
			return rebuildErr
		}
		return err
	}
	m.mu.Unlock()

	m.notifier.NotifySet(key, old, value, "session")
	return nil
}

// Save writes the effective global settings and color schemes to the
// user settings file as JSON. If no user file existed, settings.json is
// created in the user config directory.
func (m *Manager) Save() error {
	m.mu.RLock()
	doc := m.globals.ToJSON()

	schemes := make([]any, 0, len(m.globals.colorSchemes))
	names := make([]string, 0, len(m.globals.colorSchemes))
	for name := range m.globals.colorSchemes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		schemes = append(schemes, m.globals.colorSchemes[name].ToJSON())
	}
	doc[schemesKey] = schemes

	path := m.userPath
	dir := m.userConfigDir
	m.mu.RUnlock()

	if path == "" || !strings.HasSuffix(path, ".json") {
		path = filepath.Join(dir, "settings.json")
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	m.mu.Lock()
	m.userPath = path
	m.mu.Unlock()
	return nil
}

// loadDefaultsFile loads the shipped defaults document, if present.
func (m *Manager) loadDefaultsFile() error {
	path := filepath.Join(m.userConfigDir, defaultsFileName)
	doc, err := loader.NewJSONLoaderWithFS(m.fs, path).Load()
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	l := layer.New("defaults", layer.SourceDefaults, layer.PriorityDefaults, doc)
	l.Path = path
	m.layers.Add(l)
	return nil
}

// loadUserSettings loads the user settings file in the first supported
// format found.
func (m *Manager) loadUserSettings() error {
	for _, name := range userSettingsNames {
		path := filepath.Join(m.userConfigDir, name)
		doc, err := m.loaderForPath(path).LoadFrom(path)
		if err != nil {
			return err
		}
		if doc == nil {
			continue
		}

		l := layer.New("user", layer.SourceUser, layer.PriorityUser, doc)
		l.Path = path
		m.layers.Add(l)
		m.userPath = path
		return nil
	}

	// No user file is fine; defaults still apply.
	return nil
}

// loadEnvironment loads the TERMSTORM_* environment overrides.
func (m *Manager) loadEnvironment() error {
	doc, err := loader.NewEnvLoader().Load()
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		return nil
	}

	m.layers.Add(layer.New("environment", layer.SourceEnv, layer.PriorityEnv, doc))
	return nil
}

// rebuildLocked reapplies all layers onto fresh defaults and swaps the
// effective settings. Must be called with the write lock held.
func (m *Manager) rebuildLocked() error {
	g := NewGlobalSettings()

	for _, l := range m.layers.Layers() {
		if err := applyDocument(g, l.Data); err != nil {
			return fmt.Errorf("applying %s settings: %w", l.Name, err)
		}
	}

	m.globals = g
	return nil
}

// applyDocument layers one document onto the settings, including its
// color schemes.
func applyDocument(g *GlobalSettings, doc map[string]any) error {
	if err := g.LayerJSON(doc); err != nil {
		return err
	}
	return applySchemes(g, doc)
}

// applySchemes processes the top-level schemes array: each entry layers
// onto the registered scheme of the same name, or creates a new one.
func applySchemes(g *GlobalSettings, doc map[string]any) error {
	v, ok := doc[schemesKey]
	if !ok {
		return nil
	}
	entries, ok := v.([]any)
	if !ok {
		return &TypeError{Key: schemesKey, Expected: "array", Actual: typeName(v)}
	}

	for i, entry := range entries {
		schemeDoc, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("scheme %d: expected an object, got %T", i, entry)
		}

		name, _ := schemeDoc["name"].(string)
		if existing, ok := g.colorSchemes[name]; ok && name != "" {
			if err := existing.LayerJSON(schemeDoc); err != nil {
				return err
			}
			continue
		}

		s, err := scheme.FromJSON(schemeDoc)
		if err != nil {
			return err
		}
		g.AddColorScheme(s)
	}

	return nil
}

// handleFileChange reloads the layer backing a changed settings file.
func (m *Manager) handleFileChange(event watcher.Event) {
	m.mu.Lock()

	var layerName string
	switch filepath.Base(event.Path) {
	case defaultsFileName:
		layerName = "defaults"
	default:
		layerName = "user"
	}

	if event.Op == watcher.OpRemove {
		m.layers.Remove(layerName)
		_ = m.rebuildLocked()
		m.mu.Unlock()
		m.notifier.NotifyReload(event.Path)
		return
	}

	doc, err := m.loaderForPath(event.Path).LoadFrom(event.Path)
	if err != nil || doc == nil {
		// A malformed save keeps the last good configuration.
		m.mu.Unlock()
		return
	}

	prev := m.layers.Get(layerName)

	var l *layer.Layer
	if layerName == "defaults" {
		l = layer.New(layerName, layer.SourceDefaults, layer.PriorityDefaults, doc)
	} else {
		l = layer.New(layerName, layer.SourceUser, layer.PriorityUser, doc)
		m.userPath = event.Path
	}
	l.Path = event.Path
	m.layers.Add(l)

	if err := m.rebuildLocked(); err != nil {
		// Reject the document, restore the previous layer state.
		if prev != nil {
			m.layers.Add(prev)
		} else {
			m.layers.Remove(layerName)
		}
		_ = m.rebuildLocked()
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.notifier.NotifyReload(event.Path)
}

// loaderForPath selects a file loader by extension. JSON is the
// default.
func (m *Manager) loaderForPath(path string) loader.FileLoader {
	switch filepath.Ext(path) {
	case ".toml":
		return loader.NewTOMLLoaderWithFS(m.fs, path)
	case ".yaml", ".yml":
		return loader.NewYAMLLoaderWithFS(m.fs, path)
	default:
		return loader.NewJSONLoaderWithFS(m.fs, path)
	}
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "termstorm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "termstorm")
}
