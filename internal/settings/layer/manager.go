package layer

import (
	"sort"
	"sync"
)

// Manager keeps settings layers sorted by priority and hands them out
// in apply order.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // Sorted by priority (ascending)
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{
		layers: make([]*Layer, 0),
	}
}

// Add adds a layer, replacing any existing layer with the same name.
func (m *Manager) Add(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layers {
		if l.Name == layer.Name {
			m.layers[i] = layer
			m.sortLayers()
			return
		}
	}

	m.layers = append(m.layers, layer)
	m.sortLayers()
}

// Remove removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, layer := range m.layers {
		if layer.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a layer by name, or nil if absent.
func (m *Manager) Get(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, layer := range m.layers {
		if layer.Name == name {
			return layer
		}
	}
	return nil
}

// Layers returns all layers in apply order (lowest priority first).
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Merged combines all layer documents into a single document, lowest
// priority first. The result is independent of the layers' data.
func (m *Manager) Merged() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any)
	for _, layer := range m.layers {
		result = DeepMerge(result, layer.Data)
	}
	return result
}

// WhichLayer returns the name of the highest-priority layer that
// provides a top-level key, or "" if no layer has it.
func (m *Manager) WhichLayer(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if _, ok := m.layers[i].Data[key]; ok {
			return m.layers[i].Name
		}
	}
	return ""
}

// Clear removes all layers.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = nil
}

// sortLayers sorts layers by priority (ascending). Must be called with
// the lock held.
func (m *Manager) sortLayers() {
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}
