// Package rawmem manages untyped element storage: blocks sized for exactly N
// slots of T that hold no live elements until their owner constructs them.
// Storage never runs element destructors; that is the owner's job.
package rawmem

import (
	"unsafe"

	"github.com/pavanmanishd/vector/internal/assert"
)

// noCopy makes go vet's copylocks check reject value copies of Storage.
// Copying raw storage has no meaning without knowing which slots are live.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Storage owns one block of capacity slots drawn from Default.
// The zero value is an empty storage with capacity 0 and no block.
type Storage[T any] struct {
	_     noCopy
	block []T
}

// New allocates storage for exactly capacity slots. capacity == 0 yields an
// empty storage without an allocation.
func New[T any](capacity int) (*Storage[T], error) {
	block, err := Allocate[T](Default, capacity)
	if err != nil {
		return nil, err
	}
	return &Storage[T]{block: block}, nil
}

// Capacity returns the number of slots in the block.
func (s *Storage[T]) Capacity() int {
	return len(s.block)
}

// Bytes returns the size of the block in bytes.
func (s *Storage[T]) Bytes() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * len(s.block)
}

// At returns the address of slot k. k must be below Capacity; this is only
// checked in vectordebug builds.
func (s *Storage[T]) At(k int) *T {
	if assert.Enabled && (k < 0 || k >= len(s.block)) {
		assert.Failf("rawmem: slot %d out of range [0,%d)", k, len(s.block))
	}
	var zero T
	base := unsafe.Pointer(unsafe.SliceData(s.block))
	return (*T)(unsafe.Add(base, uintptr(k)*unsafe.Sizeof(zero)))
}

// Slots returns slots [lo,hi) as a slice aliasing the block. hi may equal
// Capacity, so Slots(c, c) is the empty range one past the last slot.
func (s *Storage[T]) Slots(lo, hi int) []T {
	if assert.Enabled && (lo < 0 || lo > hi || hi > len(s.block)) {
		assert.Failf("rawmem: slot range [%d,%d) out of range [0,%d]", lo, hi, len(s.block))
	}
	return s.block[lo:hi:hi]
}

// Swap exchanges the blocks of s and o. Nothing is allocated and no slot is
// touched.
func (s *Storage[T]) Swap(o *Storage[T]) {
	s.block, o.block = o.block, s.block
}

// Take moves the block into a new Storage and leaves s empty.
func (s *Storage[T]) Take() *Storage[T] {
	out := &Storage[T]{block: s.block}
	s.block = nil
	return out
}

// MoveFrom releases the block held by s, then takes o's block, leaving o
// empty. s and o may be the same storage.
func (s *Storage[T]) MoveFrom(o *Storage[T]) {
	if s == o {
		return
	}
	s.Release()
	s.block, o.block = o.block, nil
}

// Release returns the block to the allocator and leaves s empty.
// The caller must have destroyed every live element first.
func (s *Storage[T]) Release() {
	Deallocate(Default, s.block)
	s.block = nil
}
