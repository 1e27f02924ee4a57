package status

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Registry holds session counters readable from the host goroutine
// The session writes through cached cell pointers; the host reads them for the HUD and exit log
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Float]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Float](),
	}
}

// TotalCount returns the number of cells across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// MarshalZerologObject writes every cell as a field, so a Registry can be passed to Event.Object
func (r *Registry) MarshalZerologObject(e *zerolog.Event) {
	r.Bools.Range(func(name string, b *atomic.Bool) { e.Bool(name, b.Load()) })
	r.Ints.Range(func(name string, n *atomic.Int64) { e.Int64(name, n.Load()) })
	r.Floats.Range(func(name string, f *Float) { e.Float64(name, f.Load()) })
}
