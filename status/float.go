package status

import (
	"math"
	"sync/atomic"
)

// Float is a float64 cell with the same Load/Store surface as atomic.Int64
// Values are kept as IEEE bits; the zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *Float) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Update applies fn with a CAS loop and returns the stored result
// fn may run more than once under contention
func (f *Float) Update(fn func(old float64) float64) float64 {
	for {
		old := f.bits.Load()
		next := fn(math.Float64frombits(old))
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Add accumulates delta, used for running totals such as damage taken
func (f *Float) Add(delta float64) float64 {
	return f.Update(func(old float64) float64 { return old + delta })
}

// Max raises the cell to v if v is larger, used for high-water marks
func (f *Float) Max(v float64) float64 {
	return f.Update(func(old float64) float64 { return math.Max(old, v) })
}
