package vector

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// SizeInUse returns the number of bytes occupied by live elements.
func (v *Vector[T]) SizeInUse() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * v.size
}

// CapacityBytes returns the size of the backing storage in bytes.
func (v *Vector[T]) CapacityBytes() int {
	return v.data.Bytes()
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	capacity := v.Cap()
	if capacity == 0 {
		return 0
	}
	return float64(v.size) / float64(capacity)
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() Metrics {
	var zero T
	return Metrics{
		Size:          v.size,
		Capacity:      v.Cap(),
		ElemSize:      int(unsafe.Sizeof(zero)),
		SizeInUse:     v.SizeInUse(),
		CapacityBytes: v.CapacityBytes(),
		Utilization:   v.Utilization(),
	}
}

// Metrics contains statistical information about a vector.
type Metrics struct {
	Size          int     // Live elements
	Capacity      int     // Slots in the backing storage
	ElemSize      int     // Bytes per slot
	SizeInUse     int     // Bytes occupied by live elements
	CapacityBytes int     // Bytes of backing storage
	Utilization   float64 // Ratio of live elements to capacity (0.0-1.0)
}

func (m Metrics) String() string {
	return fmt.Sprintf("size=%d cap=%d in_use=%s storage=%s utilization=%.1f%%",
		m.Size, m.Capacity, humanize.IBytes(uint64(m.SizeInUse)), humanize.IBytes(uint64(m.CapacityBytes)), m.Utilization*100)
}
