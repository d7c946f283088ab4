package vector

import (
	"iter"

	"github.com/pavanmanishd/vector/internal/assert"
	"github.com/pavanmanishd/vector/rawmem"
)

// Vector is a contiguous, growable sequence of T. Slots [0,Size) hold live
// elements, slots [Size,Cap) are uninitialized.
//
// The zero value is an empty vector with zero capacity and default Ops.
// A Vector must not be copied by value; use Clone, Take or Assign.
// Not goroutine-safe.
type Vector[T any] struct {
	data rawmem.Storage[T]
	size int
	ops  *Ops[T]
}

// Option configures a Vector at construction.
type Option[T any] func(*Vector[T])

// WithOps sets the element lifetime callbacks.
func WithOps[T any](ops Ops[T]) Option[T] {
	return func(v *Vector[T]) {
		v.ops = &ops
	}
}

// New returns an empty vector with zero capacity.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewSized returns a vector of n value-constructed elements with capacity n.
// If constructing element k fails, elements [0,k) are destroyed, the storage
// is released and the error is returned.
func NewSized[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	data, err := rawmem.New[T](n)
	if err != nil {
		return nil, err
	}
	if err := v.ops.constructN(data.Slots(0, n)); err != nil {
		data.Release()
		return nil, err
	}
	v.data.Swap(data)
	v.size = n
	return v, nil
}

// Clone returns a deep copy of v, sized to v's element count. On a copy
// failure nothing is leaked and v is unchanged.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.cloneWith(v.ops)
}

// cloneWith copies v's elements into a new vector that uses ops.
func (v *Vector[T]) cloneWith(ops *Ops[T]) (*Vector[T], error) {
	ops.requireCopyable()
	out := &Vector[T]{ops: ops}
	if v.size == 0 {
		return out, nil
	}
	data, err := rawmem.New[T](v.size)
	if err != nil {
		return nil, err
	}
	if err := ops.copyN(data.Slots(0, v.size), v.data.Slots(0, v.size)); err != nil {
		data.Release()
		return nil, err
	}
	out.data.Swap(data)
	out.size = v.size
	return out, nil
}

// Take moves v's storage and elements into a new vector in constant time.
// v is left empty with zero capacity.
func (v *Vector[T]) Take() *Vector[T] {
	out := &Vector[T]{ops: v.ops}
	out.Swap(v)
	return out
}

// Assign replaces v's elements with copies of rhs's.
//
// If rhs does not fit in v's capacity, a full copy is built first and
// swapped in, so a failure leaves v untouched. Otherwise v's storage is
// reused: the common prefix is copy-assigned, then the excess suffix is
// destroyed or the missing suffix is copy-constructed. A failure on that
// path leaves v holding the elements processed so far with its old size.
// Either way v keeps its own Ops, which perform every copy.
func (v *Vector[T]) Assign(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	v.ops.requireCopyable()
	if rhs.size > v.Cap() {
		tmp, err := rhs.cloneWith(v.ops)
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Release()
		return nil
	}

	common := min(v.size, rhs.size)
	for i := 0; i < common; i++ {
		if err := v.ops.copyAssign(v.data.At(i), rhs.data.At(i)); err != nil {
			return err
		}
	}
	if v.size > rhs.size {
		v.ops.destroyN(v.data.Slots(rhs.size, v.size))
	} else if err := v.ops.copyN(v.data.Slots(v.size, rhs.size), rhs.data.Slots(v.size, rhs.size)); err != nil {
		return err
	}
	v.size = rhs.size
	return nil
}

// MoveAssign exchanges the contents of v and rhs in constant time. rhs is
// left holding v's former elements, which its owner destroys as usual.
func (v *Vector[T]) MoveAssign(rhs *Vector[T]) {
	if v == rhs {
		return
	}
	v.Swap(rhs)
}

// Swap exchanges storage, size and Ops of v and other without touching any
// element.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
	v.ops, other.ops = other.ops, v.ops
}

// Release destroys every element and returns the storage to the allocator.
// v remains usable as an empty vector.
func (v *Vector[T]) Release() {
	v.ops.destroyN(v.data.Slots(0, v.size))
	v.size = 0
	v.data.Release()
}

// Size returns the number of live elements.
func (v *Vector[T]) Size() int {
	return v.size
}

// Cap returns the number of slots in the current storage.
func (v *Vector[T]) Cap() int {
	return v.data.Capacity()
}

// Empty reports whether v has no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// At returns a pointer to element i. i must be in [0,Size); this is only
// checked in vectordebug builds. The pointer is invalidated by any
// operation that reallocates.
func (v *Vector[T]) At(i int) *T {
	if assert.Enabled && (i < 0 || i >= v.size) {
		assert.Failf("vector: index %d out of range [0,%d)", i, v.size)
	}
	return v.data.At(i)
}

// Get returns element i by value.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// Front returns a pointer to the first element.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns a pointer to the last element.
func (v *Vector[T]) Back() *T {
	return v.At(v.size - 1)
}

// Begin returns the position of the first element.
func (v *Vector[T]) Begin() int {
	return 0
}

// End returns the position one past the last element. It is a valid
// insertion position.
func (v *Vector[T]) End() int {
	return v.size
}

// Data returns the live elements as a slice aliasing v's storage. The slice
// cannot be appended into v's spare capacity.
func (v *Vector[T]) Data() []T {
	return v.data.Slots(0, v.size)
}

// All iterates positions and elements from front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.data.At(i)) {
				return
			}
		}
	}
}

// Backward iterates positions and elements from back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, *v.data.At(i)) {
				return
			}
		}
	}
}

// Values iterates elements from front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.data.At(i)) {
				return
			}
		}
	}
}
