package status

import (
	"sort"
	"sync"
)

// MetricMap is a named set of metric cells of type T
// Lookup takes a lock; callers cache the returned pointer and write to it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell for name, allocating it on first use
func (m *MetricMap[T]) Get(name string) *T {
	m.mu.RLock()
	cell, ok := m.cells[name]
	m.mu.RUnlock()
	if ok {
		return cell
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cell, ok := m.cells[name]; ok {
		return cell
	}
	cell = new(T)
	m.cells[name] = cell
	return cell
}

// Has reports whether name was registered
func (m *MetricMap[T]) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cells[name]
	return ok
}

// Range visits cells in name order
func (m *MetricMap[T]) Range(fn func(name string, cell *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.cells))
	for name := range m.cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn(name, m.cells[name])
	}
}

// Count returns the number of registered cells
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
