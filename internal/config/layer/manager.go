package layer

import (
	"sort"
	"sync"
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer       // Sorted by priority (ascending)
	merged map[string]any // Cached merged result
	dirty  bool           // Whether merged cache needs refresh
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{
		layers: make([]*Layer, 0),
		dirty:  true,
	}
}

// AddLayer adds a layer to the manager.
// Layers are kept sorted by priority; equal priorities keep insertion order.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = append(m.layers, layer)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// Names returns the layer names, lowest priority first.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.layers))
	for i, layer := range m.layers {
		names[i] = layer.Name
	}
	return names
}

// mergedData refreshes the cache if dirty. Must be called with the lock held.
func (m *Manager) mergedData() map[string]any {
	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, layer := range m.layers {
			result = DeepMerge(result, layer.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return m.merged
}

// GetValue returns the merged value for a setting path.
func (m *Manager) GetValue(path string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return GetByPath(m.mergedData(), path)
}

// Get returns the effective value for a setting path along with the
// layer it came from.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		layer := m.layers[i]
		if val, ok := GetByPath(layer.Data, path); ok {
			return val, layer, true
		}
	}
	return nil, nil, false
}

// WhichLayer returns the name of the layer that provides a value.
func (m *Manager) WhichLayer(path string) string {
	_, layer, found := m.Get(path)
	if !found {
		return ""
	}
	return layer.Name
}
